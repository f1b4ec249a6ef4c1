package retry

import (
	"context"
	"log"
	"time"
)

// Policy is a reusable delay-then-retry loop shared by all outbound calls
// (storage upload, STT, tip generation). No jitter.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64 // applied to the delay after each failed attempt; <=1 keeps it fixed
}

// Do runs fn up to MaxAttempts times, sleeping between attempts. It returns
// nil on the first success, or the last error once attempts are exhausted.
func (p Policy) Do(ctx context.Context, name string, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	delay := p.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		log.Printf("[Retry] %s attempt %d/%d failed: %v", name, attempt, attempts, lastErr)

		if attempt == attempts {
			break
		}
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			if p.Multiplier > 1 {
				delay = time.Duration(float64(delay) * p.Multiplier)
			}
		}
	}

	return lastErr
}
