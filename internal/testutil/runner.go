// Package testutil provides test doubles shared across packages.
package testutil

import (
	"context"
	"sync"

	"github.com/tapbuild/tap/internal/execrun"
)

// RecordingRunner captures every Spec it is asked to run instead of
// spawning processes. Errors are served from a per-call queue; once the
// queue is exhausted every call succeeds.
type RecordingRunner struct {
	mu    sync.Mutex
	calls []execrun.Spec
	errs  []error

	// OnRun, when set, is invoked for each call after recording; it lets
	// a test simulate backend side effects (e.g. producing an artifact).
	OnRun func(spec execrun.Spec) error
}

var _ execrun.Runner = (*RecordingRunner)(nil)

// NewRecordingRunner returns an empty recorder.
func NewRecordingRunner() *RecordingRunner {
	return &RecordingRunner{}
}

// FailWith queues errors returned by successive Run calls.
func (r *RecordingRunner) FailWith(errs ...error) *RecordingRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, errs...)
	return r
}

// Run records the spec and returns the next queued error, if any.
func (r *RecordingRunner) Run(_ context.Context, spec execrun.Spec) error {
	r.mu.Lock()
	r.calls = append(r.calls, spec)
	var err error
	if len(r.errs) > 0 {
		err = r.errs[0]
		r.errs = r.errs[1:]
	}
	onRun := r.OnRun
	r.mu.Unlock()

	if err != nil {
		return err
	}
	if onRun != nil {
		return onRun(spec)
	}
	return nil
}

// Calls returns a copy of the recorded specs in call order.
func (r *RecordingRunner) Calls() []execrun.Spec {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]execrun.Spec, len(r.calls))
	copy(out, r.calls)
	return out
}
