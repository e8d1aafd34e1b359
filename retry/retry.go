// Package retry runs a whole scrape attempt again when it fails, up to a
// fixed budget. Attempts run one after another: each one re-drives the same
// site session, so they must never overlap.
package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// MaxAttempts is the number of times an attempt is tried before giving up.
const MaxAttempts = 5

// ErrAborted is returned once every attempt has failed. It wraps the last
// attempt's error.
var ErrAborted = errors.New("scrape aborted after exhausting retries")

// Budget counts the attempts made during one run.
type Budget struct {
	Attempts    int
	MaxAttempts int
}

// Exhausted reports whether no attempts remain.
func (b *Budget) Exhausted() bool {
	return b.Attempts >= b.MaxAttempts
}

// Runner retries an attempt function sequentially.
type Runner struct {
	delay  time.Duration
	logger *slog.Logger
	budget Budget
}

// NewRunner creates a runner that waits delay between attempts. A nil
// logger discards output.
func NewRunner(delay time.Duration, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		delay:  delay,
		logger: logger,
		budget: Budget{MaxAttempts: MaxAttempts},
	}
}

// Attempts returns how many attempts the most recent Run made.
func (r *Runner) Attempts() int {
	return r.budget.Attempts
}

// Run calls attempt until it succeeds or the budget is spent. The result of
// a failed attempt is discarded, never merged into a later one. On
// exhaustion the returned error wraps both ErrAborted and the last failure.
// The budget resets at the start of every Run.
func Run[T any](ctx context.Context, r *Runner, attempt func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	r.budget = Budget{MaxAttempts: MaxAttempts}

	for {
		result, err := attempt(ctx)
		r.budget.Attempts++
		if err == nil {
			return result, nil
		}

		r.logger.Warn("scrape attempt failed",
			"attempt", r.budget.Attempts,
			"max_attempts", r.budget.MaxAttempts,
			"error", err)

		if r.budget.Exhausted() {
			r.logger.Error("max retries reached, aborting", "attempts", r.budget.Attempts)
			return zero, fmt.Errorf("%w: %w", ErrAborted, err)
		}

		if r.delay > 0 {
			select {
			case <-ctx.Done():
				return zero, fmt.Errorf("%w: %w", ErrAborted, ctx.Err())
			case <-time.After(r.delay):
			}
		}
	}
}
