package wait

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	errNotYet := errors.New("not yet")
	errFatal := errors.New("fatal")

	tests := []struct {
		name      string
		succeedAt int // call number that succeeds, 0 = never
		stopAt    int // call number that returns Stop(errFatal)
		wantErr   error
		wantCalls func(calls int) bool
	}{
		{
			name:      "immediate success",
			succeedAt: 1,
			wantCalls: func(c int) bool { return c == 1 },
		},
		{
			name:      "eventual success",
			succeedAt: 3,
			wantCalls: func(c int) bool { return c == 3 },
		},
		{
			name:      "never succeeds",
			wantErr:   ErrTimeout,
			wantCalls: func(c int) bool { return c >= 2 },
		},
		{
			name:      "stopped early",
			stopAt:    2,
			wantErr:   errFatal,
			wantCalls: func(c int) bool { return c == 2 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := For(200*time.Millisecond, 10*time.Millisecond, func() error {
				calls++
				switch {
				case calls == tt.succeedAt:
					return nil
				case calls == tt.stopAt:
					return Stop(errFatal)
				default:
					return errNotYet
				}
			})

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.True(t, tt.wantCalls(calls), "unexpected call count %d", calls)
		})
	}
}

func TestFor_TimeoutKeepsLastError(t *testing.T) {
	errLast := errors.New("element missing")

	err := For(30*time.Millisecond, 5*time.Millisecond, func() error { return errLast })

	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, errLast)
}

func TestUntil_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Until(ctx, time.Second, func() error {
		calls++
		return errors.New("nope")
	})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, 1, calls)
}

func TestStop_Nil(t *testing.T) {
	assert.NoError(t, Stop(nil))
}
