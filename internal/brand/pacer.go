package brand

import (
	"context"
	"time"
)

// Limiter gates consecutive upstream requests within one fetch batch.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Pacer is an interval Limiter: the first Wait returns immediately, every
// later Wait blocks for the full interval or until the context is done.
// Not safe for concurrent use; callers hold one Pacer per batch.
type Pacer struct {
	interval time.Duration
	primed   bool
}

// NewPacer creates a pacer with the given interval between requests.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

// Wait blocks until the next request may be issued.
func (p *Pacer) Wait(ctx context.Context) error {
	if !p.primed {
		p.primed = true
		return nil
	}
	if p.interval <= 0 {
		return nil
	}

	timer := time.NewTimer(p.interval)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
