package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Pawan0019/Hotel-Room-Booking/config"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/failure"
	"github.com/Pawan0019/Hotel-Room-Booking/transport/console/command"
	"github.com/Pawan0019/Hotel-Room-Booking/transport/console/response"
	"github.com/Pawan0019/Hotel-Room-Booking/transport/console/router"

	"github.com/rs/zerolog/log"
)

const prompt = "hotel> "

type Console struct {
	Config *config.Config
	Router router.Router

	in  io.Reader
	out io.Writer
	mux *command.Mux
}

func New(cfg *config.Config, r router.Router) *Console {
	return &Console{
		Config: cfg,
		Router: r,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// WithIO reads commands from in and writes replies to out instead of the standard streams.
func (c *Console) WithIO(in io.Reader, out io.Writer) *Console {
	c.in = in
	c.out = out

	return c
}

// Serve reads one command per line until quit, the end of input or ctx is done.
func (c *Console) Serve(ctx context.Context) error {
	c.setupRoutes()

	lines := make(chan string)
	readErr := make(chan error, 1)

	go c.read(ctx, lines, readErr)

	log.Info().Msg("Console ready, type help for the command list.")
	c.prompt()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Console stopped.")

			return nil
		case err := <-readErr:
			return err
		case line := <-lines:
			if !c.handle(ctx, line) {
				return nil
			}

			c.prompt()
		}
	}
}

func (c *Console) setupRoutes() {
	c.mux = command.NewMux()
	c.Router.SetupRoutes(c.mux)
}

// read forwards input lines until ctx is done. It reports nil at the end of input.
func (c *Console) read(ctx context.Context, lines chan<- string, readErr chan<- error) {
	scanner := bufio.NewScanner(c.in)

	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}

	if err := scanner.Err(); err != nil {
		readErr <- fmt.Errorf("failed to read console input: %w", err)

		return
	}

	readErr <- nil
}

// handle runs one line and reports whether the console should keep reading.
func (c *Console) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)

	switch strings.ToLower(line) {
	case "":
		return true
	case "quit", "exit":
		return false
	case "help":
		fmt.Fprintln(c.out, strings.Join(append(c.mux.Usage(), "help", "quit"), "\n"))

		return true
	}

	if !c.mux.Dispatch(ctx, c.out, line) {
		name := strings.Fields(line)[0]
		response.WithError(c.out, failure.InvalidInput("", fmt.Sprintf("unknown command %q, type help for the command list", name)))
	}

	return true
}

func (c *Console) prompt() {
	fmt.Fprint(c.out, prompt)
}
