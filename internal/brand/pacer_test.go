package brand

import (
	"context"
	"testing"
	"time"
)

func TestPacerFirstWaitImmediate(t *testing.T) {
	p := NewPacer(time.Second)

	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("first wait should be immediate, took %v", elapsed)
	}
}

func TestPacerSubsequentWaitsBlock(t *testing.T) {
	p := NewPacer(50 * time.Millisecond)
	ctx := context.Background()

	p.Wait(ctx)
	start := time.Now()
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected wait of at least 50ms, got %v", elapsed)
	}
}

func TestPacerZeroIntervalNeverBlocks(t *testing.T) {
	p := NewPacer(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 10; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("zero interval should not block, took %v", elapsed)
	}
}

func TestPacerCancelledContext(t *testing.T) {
	p := NewPacer(time.Minute)

	p.Wait(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Wait(ctx); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
