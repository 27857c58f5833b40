package mocks

import (
	"context"
	"sync"

	"github.com/Pawan0019/Hotel-Room-Booking/infras/otel"
)

// Recorder is an otel.Otel that keeps every error traced on its scopes, keyed by span name.
type Recorder struct {
	mu     sync.Mutex
	errors map[string][]error
}

func NewRecorder() *Recorder {
	return &Recorder{errors: map[string][]error{}}
}

// NewScope implements otel.Otel.
func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	return ctx, &recordingScope{name: spanName, recorder: r}
}

// Shutdown implements otel.Otel.
func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Errors returns the errors traced on spans called spanName.
func (r *Recorder) Errors(spanName string) []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errors[spanName]...)
}

func (r *Recorder) record(spanName string, err error) {
	r.mu.Lock()
	r.errors[spanName] = append(r.errors[spanName], err)
	r.mu.Unlock()
}

type recordingScope struct {
	scopeImpl

	name     string
	recorder *Recorder
}

// TraceError implements otel.Scope.
func (s *recordingScope) TraceError(err error) {
	s.recorder.record(s.name, err)
}

// TraceIfError implements otel.Scope.
func (s *recordingScope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}
