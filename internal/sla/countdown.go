package sla

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Update is one tick of a live countdown.
type Update struct {
	Urgency          Urgency `json:"urgency"`
	RemainingSeconds int64   `json:"remaining_seconds"`
	Deadline         int64   `json:"deadline"`
}

// Evaluate computes the countdown state for one question at one instant.
func Evaluate(createdAt int64, slaHours float64, now time.Time) Update {
	return Update{
		Urgency:          Classify(createdAt, slaHours, now),
		RemainingSeconds: int64(Remaining(createdAt, slaHours, now).Seconds()),
		Deadline:         Deadline(createdAt, slaHours).Unix(),
	}
}

// Countdown re-evaluates one question's urgency on a fixed interval and
// delivers each Update to a callback. It must be stopped when the caller
// that owns it goes away, so the ticker does not keep running against a
// record nobody is watching.
type Countdown struct {
	createdAt int64
	slaHours  float64
	interval  time.Duration
	logger    *slog.Logger

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewCountdown(createdAt int64, slaHours float64, interval time.Duration, logger *slog.Logger) *Countdown {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Countdown{
		createdAt: createdAt,
		slaHours:  slaHours,
		interval:  interval,
		logger:    logger,
		stop:      make(chan struct{}),
	}
}

// Start launches the countdown goroutine. fn receives an Update
// immediately and then once per interval until Stop is called or ctx is
// canceled.
func (c *Countdown) Start(ctx context.Context, fn func(Update)) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		fn(Evaluate(c.createdAt, c.slaHours, time.Now()))

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-c.stop:
				return
			case <-ctx.Done():
				c.logger.Debug("countdown context canceled")
				return
			case now := <-ticker.C:
				fn(Evaluate(c.createdAt, c.slaHours, now))
			}
		}
	}()
}

// Stop signals the countdown goroutine and waits for it. Safe to call
// more than once.
func (c *Countdown) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
	c.wg.Wait()
}
