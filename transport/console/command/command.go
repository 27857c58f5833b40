// Package command routes console lines to handlers.
package command

import (
	"context"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Pawan0019/Hotel-Room-Booking/shared"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/failure"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/timezone"
)

type HandlerFunc func(ctx context.Context, writer io.Writer, args Args)

type route struct {
	usage   string
	handler HandlerFunc
}

// Mux maps the first word of a line to a handler.
type Mux struct {
	routes map[string]route
}

func NewMux() *Mux {
	return &Mux{routes: map[string]route{}}
}

// Handle registers handler under name. usage is printed by help and on argument errors.
func (m *Mux) Handle(name, usage string, handler HandlerFunc) {
	m.routes[name] = route{usage: usage, handler: handler}
}

// Dispatch runs the handler registered for the line's first word. It reports false when no
// handler matches.
func (m *Mux) Dispatch(ctx context.Context, writer io.Writer, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}

	r, ok := m.routes[strings.ToLower(parts[0])]
	if !ok {
		return false
	}

	r.handler(ctx, writer, Args{usage: r.usage, values: parts[1:]})

	return true
}

// Usage lists every registered command, sorted by name.
func (m *Mux) Usage() []string {
	names := make([]string, 0, len(m.routes))
	for name := range m.routes {
		names = append(names, name)
	}

	slices.Sort(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, m.routes[name].usage)
	}

	return lines
}

// Args are the words after the command name.
type Args struct {
	usage  string
	values []string
}

func NewArgs(usage string, values ...string) Args {
	return Args{usage: usage, values: values}
}

func (a Args) Len() int {
	return len(a.values)
}

// Require fails with the command usage when fewer than n words were given.
func (a Args) Require(n int) error {
	if len(a.values) < n {
		return a.UsageError()
	}

	return nil
}

func (a Args) UsageError() error {
	return failure.InvalidInput("", "usage: "+a.usage) // nolint:wrapcheck
}

func (a Args) String(i int) string {
	if i >= len(a.values) {
		return ""
	}

	return a.values[i]
}

// Rest joins the words from i onwards with single spaces.
func (a Args) Rest(i int) string {
	if i >= len(a.values) {
		return ""
	}

	return strings.Join(a.values[i:], " ")
}

func (a Args) ID(i int, field string) (int64, error) {
	id, err := strconv.ParseInt(a.String(i), 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.InvalidInput(field, field+" must be a positive number") // nolint:wrapcheck
	}

	return id, nil
}

func (a Args) Float(i int, field string) (float64, error) {
	value, err := strconv.ParseFloat(a.String(i), 64)
	if err != nil {
		return 0, failure.InvalidInput(field, field+" must be a number") // nolint:wrapcheck
	}

	return value, nil
}

func (a Args) Bool(i int, field string) (bool, error) {
	value := shared.ConvertStringToBool(a.String(i))
	if value == nil {
		return false, failure.InvalidInput(field, field+" must be true or false") // nolint:wrapcheck
	}

	return *value, nil
}

// Date parses a YYYY-MM-DD word.
func (a Args) Date(i int, field string) (time.Time, error) {
	value, err := timezone.ParseDate(a.String(i))
	if err != nil {
		return time.Time{}, failure.InvalidDate(field, field+" must be a YYYY-MM-DD date") // nolint:wrapcheck
	}

	return value, nil
}
