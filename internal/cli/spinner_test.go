package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner("working")
	if s.Cancelled() {
		t.Error("fresh spinner reports cancelled")
	}
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("working")
	s.Start()

	// Repeated stops must not panic or deadlock.
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "working")
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should report cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "working")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should report cancelled after context timeout")
	}
	s.Stop()
}

func TestSpinnerStopMessages(t *testing.T) {
	s := newSpinner("rendering")
	s.Start()
	s.StopWithSuccess("rendered")

	s = newSpinner("rendering")
	s.Start()
	s.StopWithError("render failed")
}
