// Package debugutils holds helpers for simulated backends.
package debugutils

import (
	"context"
	"time"
)

// Delay blocks for d or until ctx is done, returning ctx.Err() in that case.
// A non-positive d returns immediately.
func Delay(ctx context.Context, d time.Duration) error {
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

