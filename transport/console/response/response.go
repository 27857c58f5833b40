package response

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/Pawan0019/Hotel-Room-Booking/shared/failure"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/logger"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
	Kind  string  `json:"kind,omitempty"`
	Field string  `json:"field,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage writes a simple text message
func WithMessage(writer io.Writer, message string) {
	response(writer, Message{Message: &message})
}

// WithJSON writes a payload wrapped in a data envelope
func WithJSON(writer io.Writer, payload any) {
	response(writer, Data[any]{Data: &payload})
}

// WithError writes an error with its failure kind, when it has one
func WithError(writer io.Writer, err error) {
	errMsg := err.Error()
	res := Error{Error: &errMsg}

	var f *failure.Failure
	if errors.As(err, &f) {
		res.Kind = f.Kind.String()
		res.Field = f.Field
	}

	response(writer, res)
}

func response(writer io.Writer, payload any) {
	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(payload); err != nil {
		logger.ErrorWithStack(err)
	}
}
