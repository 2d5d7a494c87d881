// Package retry runs an operation a bounded number of times with a linear
// backoff between failed attempts.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrExhausted is wrapped by the error returned when every attempt failed.
var ErrExhausted = errors.New("retry attempts exhausted")

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the default Sleeper: a timer raced against the context, so a
// waiting caller holds no thread and stops promptly on cancellation.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Linear waits attempt*Step after failed attempt number attempt (1-based),
// including after the final one.
type Linear struct {
	Attempts int
	Step     time.Duration
	Sleep    Sleeper
	// OnRetry is called after the backoff that follows each failed attempt.
	OnRetry func(attempt int, err error)
}

// Delay is the wait that follows failed attempt n.
func (l Linear) Delay(n int) time.Duration {
	return time.Duration(n) * l.Step
}

// Do runs fn until it succeeds or the attempts are used up.
func (l Linear) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := l.Attempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := l.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if err := sleep(ctx, l.Delay(attempt)); err != nil {
			return fmt.Errorf("retry interrupted after attempt %d: %w", attempt, err)
		}
		if l.OnRetry != nil {
			l.OnRetry(attempt, lastErr)
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempts, lastErr)
}
