// Package retry wraps github.com/sethvargo/go-retry with an attempt-budgeted
// policy whose retry decision is made per error.
package retry

import (
	"context"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// Decision tells the policy what to do with a failed attempt.
type Decision int

const (
	// Abort returns the error to the caller immediately.
	Abort Decision = iota
	// Retry schedules another attempt if the budget allows it.
	Retry
)

// BackoffFunc returns the delay to wait after the given (1-based) failed attempt.
type BackoffFunc func(attempt int) time.Duration

// Linear waits base * attempt after each failure.
func Linear(base time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return base * time.Duration(attempt)
	}
}

// Policy bounds how many times an operation runs and how long to wait in between.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	Backoff     BackoffFunc
	// Classify decides whether an error is worth another attempt.
	// A nil Classify never retries.
	Classify func(err error) Decision
	// OnRetry is called before sleeping ahead of the next attempt.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// Do runs fn until it succeeds, Classify aborts, the attempt budget is spent
// or ctx is done. The error of the last attempt is returned unwrapped.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context, attempt int) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	backoff := p.Backoff
	if backoff == nil {
		backoff = func(int) time.Duration { return 0 }
	}

	attempt := 0
	var lastErr error
	b := goretry.BackoffFunc(func() (time.Duration, bool) {
		if attempt >= maxAttempts {
			return 0, true
		}
		delay := backoff(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, delay, lastErr)
		}
		return delay, false
	})

	return goretry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		err := fn(ctx, attempt)
		if err == nil {
			return nil
		}
		lastErr = err
		if p.Classify != nil && p.Classify(err) == Retry {
			return goretry.RetryableError(err)
		}
		return err
	})
}
