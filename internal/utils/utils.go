package utils

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// WaitFor blocks for d on clock or until ctx is done, whichever comes first.
func WaitFor(ctx context.Context, clock clockwork.Clock, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}
