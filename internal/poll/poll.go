// Package poll provides a bounded poll-until-ready loop with an
// injectable clock so callers waiting on slow remote state transitions
// can be tested without real wall-clock waits.
package poll

import (
	"context"
	"errors"
	"time"
)

// ErrDeadline indicates the condition did not hold before the timeout
var ErrDeadline = errors.New("poll deadline exceeded")

// Clock abstracts time for the poll loop
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RealClock returns a Clock backed by the system clock
func RealClock() Clock { return realClock{} }

// Condition reports whether the awaited state has been reached. A
// returned error aborts the loop immediately.
type Condition func(ctx context.Context) (done bool, err error)

// Until invokes cond every interval until it reports done, returns an
// error, the timeout elapses (ErrDeadline), or ctx is cancelled. cond is
// always called at least once, immediately.
func Until(ctx context.Context, clock Clock, interval, timeout time.Duration, cond Condition) error {
	deadline := clock.Now().Add(timeout)
	for {
		done, err := cond(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if !clock.Now().Add(interval).Before(deadline) {
			return ErrDeadline
		}
		if err := clock.Sleep(ctx, interval); err != nil {
			return err
		}
	}
}
