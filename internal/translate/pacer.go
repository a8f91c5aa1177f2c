package translate

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// pacer enforces a minimum delay between consecutive calls.
// Callers are serialized while they wait.
type pacer struct {
	last     time.Time
	interval time.Duration
	mu       sync.Mutex
}

// newPacer creates a pacer with the given minimum inter-call delay.
func newPacer(interval time.Duration) *pacer {
	if interval < 0 {
		interval = 0
	}
	return &pacer{interval: interval}
}

// wait blocks until the interval since the previous call has elapsed or the
// context is canceled.
func (p *pacer) wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.last.IsZero() {
		if remaining := p.interval - time.Since(p.last); remaining > 0 {
			timer := time.NewTimer(remaining)
			defer timer.Stop()

			select {
			case <-ctx.Done():
				return fmt.Errorf("pacer canceled: %w", ctx.Err())
			case <-timer.C:
			}
		}
	}

	p.last = time.Now()
	return nil
}
