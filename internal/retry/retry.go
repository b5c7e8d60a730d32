// Package retry runs an operation under a bounded retry policy.
package retry

import (
	"context"
	"fmt"
	"time"
)

// DefaultMaxAttempts is the attempt bound used when a Policy leaves it unset.
const DefaultMaxAttempts = 3

// Policy describes how often and how patiently an operation is retried. The
// zero value retries every error DefaultMaxAttempts times with a linear
// one-second backoff.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// Backoff returns the wait after the given failed attempt (1-based).
	Backoff func(attempt int) time.Duration
	// Retryable reports whether err is worth another attempt. Nil retries all.
	Retryable func(err error) bool
	// Sleep waits for d or until ctx is done. Tests replace it to avoid real delays.
	Sleep func(ctx context.Context, d time.Duration) error
	// Notify is called after each failed attempt that will be retried.
	Notify func(attempt int, err error, wait time.Duration)
}

// Linear returns a backoff of attempt × step.
func Linear(step time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * step
	}
}

// Sleep waits for d, returning early with the context error if ctx ends.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Error is returned when every attempt failed.
type Error struct {
	Attempts int
	Last     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("gave up after %d attempt(s): %v", e.Attempts, e.Last)
}

func (e *Error) Unwrap() error { return e.Last }

// Do runs fn until it succeeds, the error is not retryable, attempts run out,
// or ctx is done. There is no wait after the final failed attempt.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	p = p.withDefaults()

	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if !p.Retryable(err) {
			return err
		}
		if attempt == p.MaxAttempts {
			break
		}
		wait := p.Backoff(attempt)
		if p.Notify != nil {
			p.Notify(attempt, err, wait)
		}
		if serr := p.Sleep(ctx, wait); serr != nil {
			return fmt.Errorf("retry interrupted after attempt %d: %w", attempt, serr)
		}
	}
	return &Error{Attempts: p.MaxAttempts, Last: err}
}

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.Backoff == nil {
		p.Backoff = Linear(time.Second)
	}
	if p.Retryable == nil {
		p.Retryable = func(error) bool { return true }
	}
	if p.Sleep == nil {
		p.Sleep = Sleep
	}
	return p
}
