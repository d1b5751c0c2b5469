// Package step runs best-effort scenario steps whose failure must not fail the
// scenario but must stay visible.
package step

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/amazona/e2e/internal/logging"
)

// Outcome records what happened to one optional step
type Outcome struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Skipped reports whether the step failed and was tolerated
func (o Outcome) Skipped() bool {
	return o.Err != nil
}

func (o Outcome) String() string {
	if o.Err != nil {
		return fmt.Sprintf("%s: skipped (%v)", o.Name, o.Err)
	}
	return fmt.Sprintf("%s: ok", o.Name)
}

// Recorder collects outcomes of optional steps. The zero value is not usable;
// build one with NewRecorder.
type Recorder struct {
	log *zap.Logger

	mu       sync.Mutex
	outcomes []Outcome
}

// NewRecorder returns a Recorder logging to log (nil for no logging)
func NewRecorder(log *zap.Logger) *Recorder {
	return &Recorder{log: logging.OrNop(log)}
}

// Optional runs fn. A failure is logged and recorded, never returned.
func (r *Recorder) Optional(name string, fn func() error) Outcome {
	start := time.Now()
	var err error
	func() {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("panic: %v", p)
			}
		}()
		err = fn()
	}()

	out := Outcome{Name: name, Err: err, Duration: time.Since(start)}
	if err != nil {
		r.log.Info("optional step skipped", zap.String("step", name), zap.Error(err))
	} else {
		r.log.Debug("optional step done", zap.String("step", name), zap.Duration("took", out.Duration))
	}

	r.mu.Lock()
	r.outcomes = append(r.outcomes, out)
	r.mu.Unlock()
	return out
}

// Outcomes returns a copy of every recorded outcome in execution order
func (r *Recorder) Outcomes() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Outcome(nil), r.outcomes...)
}

// Optional runs fn without recording, logging a failure to log
func Optional(log *zap.Logger, name string, fn func() error) Outcome {
	return NewRecorder(log).Optional(name, fn)
}
