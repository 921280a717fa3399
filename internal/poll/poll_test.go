package poll

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeClock advances instantly on Sleep so poll loops run without
// real waiting
type fakeClock struct {
	now    time.Time
	sleeps int
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.now = c.now.Add(d)
	c.sleeps++
	return nil
}

func TestUntilSucceedsAfterRetries(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	calls := 0

	err := Until(context.Background(), clock, 5*time.Second, 300*time.Second, func(ctx context.Context) (bool, error) {
		calls++
		return calls >= 3, nil
	})
	if err != nil {
		t.Fatalf("Until failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 condition calls, got %d", calls)
	}
	if clock.sleeps != 2 {
		t.Errorf("expected 2 sleeps, got %d", clock.sleeps)
	}
}

func TestUntilImmediateSuccessDoesNotSleep(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}

	err := Until(context.Background(), clock, time.Second, time.Minute, func(ctx context.Context) (bool, error) {
		return true, nil
	})
	if err != nil {
		t.Fatalf("Until failed: %v", err)
	}
	if clock.sleeps != 0 {
		t.Errorf("expected no sleeps, got %d", clock.sleeps)
	}
}

func TestUntilDeadline(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	calls := 0

	err := Until(context.Background(), clock, 5*time.Second, 12*time.Second, func(ctx context.Context) (bool, error) {
		calls++
		return false, nil
	})
	if !errors.Is(err, ErrDeadline) {
		t.Fatalf("expected ErrDeadline, got %v", err)
	}
	// Polls at t=0, 5, 10; the next one would land past the deadline
	if calls != 3 {
		t.Errorf("expected 3 condition calls, got %d", calls)
	}
}

func TestUntilConditionErrorAborts(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	boom := errors.New("remote state failed")

	err := Until(context.Background(), clock, time.Second, time.Minute, func(ctx context.Context) (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected condition error, got %v", err)
	}
	if clock.sleeps != 0 {
		t.Errorf("error must abort before sleeping, got %d sleeps", clock.sleeps)
	}
}

func TestUntilCancelledContext(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Until(ctx, clock, time.Second, time.Minute, func(ctx context.Context) (bool, error) {
		return false, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
