// Package wait polls a condition until it holds or a deadline passes.
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is wrapped by For when the condition never held in time
var ErrTimeout = errors.New("timed out")

type stopError struct{ err error }

func (s stopError) Error() string { return s.err.Error() }
func (s stopError) Unwrap() error { return s.err }

// Stop marks err as final: For returns it immediately instead of retrying
func Stop(err error) error {
	if err == nil {
		return nil
	}
	return stopError{err: err}
}

// For calls check until it returns nil, returns a Stop error, or timeout
// elapses. check always runs at least once. On timeout the last error from
// check is returned wrapped together with ErrTimeout.
func For(timeout, interval time.Duration, check func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return Until(ctx, interval, check)
}

// Until is For bounded by a context instead of a timeout
func Until(ctx context.Context, interval time.Duration, check func() error) error {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		err := check()
		if err == nil {
			return nil
		}
		var stop stopError
		if errors.As(err, &stop) {
			return stop.err
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrTimeout, err)
		case <-ticker.C:
		}
	}
}
