package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gojkop/mindpick/internal/analytics"
	"github.com/gojkop/mindpick/pkg/models"
	"github.com/gojkop/mindpick/pkg/repository"
)

// Fetcher is the upstream dependency of the refresher. *xano.Client
// satisfies it; tests substitute a canned implementation.
type Fetcher interface {
	FetchDashboard(ctx context.Context, expertID int64) (*models.DashboardData, error)
}

// Refresher keeps dashboard metrics warm: it remembers which experts have
// asked for metrics recently and re-fetches and re-aggregates their data
// on a fixed interval, holding the latest snapshot in memory and
// persisting it through the snapshot repository. Urgency counts go stale
// within minutes of a deadline approaching, so the interval is short.
type Refresher struct {
	fetcher   Fetcher
	snapshots repository.SnapshotRepo
	logger    *slog.Logger
	interval  time.Duration

	mu      sync.RWMutex
	tracked map[int64]struct{}
	latest  map[int64]models.Snapshot

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func New(f Fetcher, snapshots repository.SnapshotRepo, logger *slog.Logger, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		fetcher:   f,
		snapshots: snapshots,
		logger:    logger,
		interval:  interval,
		tracked:   make(map[int64]struct{}),
		latest:    make(map[int64]models.Snapshot),
		stop:      make(chan struct{}),
	}
}

// Track registers an expert for periodic refresh.
func (r *Refresher) Track(expertID int64) {
	r.mu.Lock()
	r.tracked[expertID] = struct{}{}
	r.mu.Unlock()
}

// Latest returns the most recent in-memory snapshot for an expert.
func (r *Refresher) Latest(expertID int64) (models.Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.latest[expertID]
	return s, ok
}

// RefreshOne fetches, aggregates, and stores metrics for one expert.
func (r *Refresher) RefreshOne(ctx context.Context, expertID int64) (models.Snapshot, error) {
	data, err := r.fetcher.FetchDashboard(ctx, expertID)
	if err != nil {
		return models.Snapshot{}, err
	}

	now := time.Now().UTC()
	snap := models.Snapshot{
		ExpertID:   expertID,
		Metrics:    analytics.Aggregate(data.Questions, data.Answers, now),
		ComputedAt: now.Unix(),
	}

	r.mu.Lock()
	r.latest[expertID] = snap
	r.mu.Unlock()

	if r.snapshots != nil {
		if err := r.snapshots.SaveSnapshot(ctx, &snap); err != nil {
			// memory copy is current; persistence catches up next tick
			r.logger.Warn("persist snapshot", "expert_id", expertID, "err", err)
		}
	}

	return snap, nil
}

// Start launches the refresh loop goroutine.
func (r *Refresher) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.loop(ctx)
}

// Stop signals the loop to stop and waits for it. Safe to call more than
// once.
func (r *Refresher) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	r.wg.Wait()
}

func (r *Refresher) loop(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			r.logger.Info("refresher stopping")
			return
		case <-ctx.Done():
			r.logger.Info("context canceled, refresher exiting")
			return
		case <-ticker.C:
			r.refreshTracked(ctx)
		}
	}
}

func (r *Refresher) refreshTracked(ctx context.Context) {
	r.mu.RLock()
	ids := make([]int64, 0, len(r.tracked))
	for id := range r.tracked {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	for _, id := range ids {
		if _, err := r.RefreshOne(ctx, id); err != nil {
			// keep the last good snapshot rather than zeroing it out
			r.logger.Error("refresh metrics", "expert_id", id, "err", err)
		}
	}
}
