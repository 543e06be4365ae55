package sla_test

import (
	"context"
	"testing"
	"time"

	"github.com/gojkop/mindpick/internal/sla"
)

func TestCountdown_EmitsImmediatelyAndTicks(t *testing.T) {
	updates := make(chan sla.Update, 8)

	c := sla.NewCountdown(time.Now().Add(-23*time.Hour).Unix(), 24, 10*time.Millisecond, nil)
	c.Start(context.Background(), func(u sla.Update) {
		select {
		case updates <- u:
		default:
		}
	})
	defer c.Stop()

	// first update is synchronous-ish: delivered before the first tick
	select {
	case u := <-updates:
		if u.Urgency != sla.Urgent {
			t.Fatalf("expected urgent with 1h remaining, got %q", u.Urgency)
		}
		if u.RemainingSeconds <= 0 || u.RemainingSeconds > 3600 {
			t.Fatalf("unexpected remaining seconds %d", u.RemainingSeconds)
		}
	case <-time.After(time.Second):
		t.Fatalf("no initial update delivered")
	}

	// at least one periodic re-evaluation
	select {
	case <-updates:
	case <-time.After(time.Second):
		t.Fatalf("no periodic update delivered")
	}
}

func TestCountdown_StopIsIdempotentAndTerminates(t *testing.T) {
	c := sla.NewCountdown(time.Now().Unix(), 24, 5*time.Millisecond, nil)
	c.Start(context.Background(), func(sla.Update) {})
	c.Stop()
	c.Stop()
}

func TestCountdown_ContextCancelStopsTicker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan struct{}, 1)

	c := sla.NewCountdown(time.Now().Unix(), 24, 5*time.Millisecond, nil)
	c.Start(ctx, func(sla.Update) {
		select {
		case got <- struct{}{}:
		default:
		}
	})

	<-got
	cancel()
	// Stop must return even though the goroutine exited via ctx
	c.Stop()
}
