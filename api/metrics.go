package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"log/slog"

	"github.com/gojkop/mindpick/internal/analytics"
	"github.com/gojkop/mindpick/internal/refresh"
	"github.com/gojkop/mindpick/internal/sla"
	"github.com/gojkop/mindpick/pkg/models"
	"github.com/gojkop/mindpick/pkg/repository"
)

// Upstream is what the metrics handlers need from the Xano client.
type Upstream interface {
	FetchDashboard(ctx context.Context, expertID int64) (*models.DashboardData, error)
	ListQuestions(ctx context.Context, expertID int64) ([]models.QuestionRecord, error)
	ListAnswers(ctx context.Context, expertID int64) ([]models.AnswerRecord, error)
}

type MetricsHandler struct {
	upstream          Upstream
	snapshots         repository.SnapshotRepo
	refresher         *refresh.Refresher
	defaultSLAHours   float64
	countdownInterval time.Duration
}

func NewMetricsHandler(upstream Upstream, snapshots repository.SnapshotRepo, refresher *refresh.Refresher, defaultSLAHours float64, countdownInterval time.Duration) *MetricsHandler {
	return &MetricsHandler{
		upstream:          upstream,
		snapshots:         snapshots,
		refresher:         refresher,
		defaultSLAHours:   defaultSLAHours,
		countdownInterval: countdownInterval,
	}
}

// GetMetrics aggregates the expert's dashboard KPIs from a live upstream
// fetch. When the fetch fails the response is the zeroed metric set, not
// an error: the dashboard renders empty tiles instead of breaking.
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	expertID, ok := expertIDFrom(r)
	if !ok {
		http.Error(w, "expert scope required", http.StatusBadRequest)
		return
	}

	data, err := h.upstream.FetchDashboard(r.Context(), expertID)
	if err != nil {
		logger.Warn("dashboard fetch failed, serving zeroed metrics",
			slog.Int64("expert_id", expertID), slog.Any("err", err))
		writeJSON(w, models.Metrics{}, http.StatusOK)
		return
	}

	if h.refresher != nil {
		h.refresher.Track(expertID)
	}

	m := analytics.Aggregate(data.Questions, data.Answers, time.Now())
	writeJSON(w, m, http.StatusOK)
}

// GetSnapshot returns the refresher's latest stored metrics without
// touching the upstream.
func (h *MetricsHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	expertID, ok := expertIDFrom(r)
	if !ok {
		http.Error(w, "expert scope required", http.StatusBadRequest)
		return
	}

	if h.refresher != nil {
		if snap, ok := h.refresher.Latest(expertID); ok {
			writeJSON(w, snap, http.StatusOK)
			return
		}
	}

	snap, err := h.snapshots.GetSnapshot(r.Context(), expertID)
	if err != nil {
		http.Error(w, "failed to load snapshot", http.StatusInternalServerError)
		return
	}
	if snap == nil {
		http.Error(w, "no snapshot yet", http.StatusNotFound)
		return
	}
	writeJSON(w, snap, http.StatusOK)
}

func (h *MetricsHandler) GetResponseTimes(w http.ResponseWriter, r *http.Request) {
	expertID, ok := expertIDFrom(r)
	if !ok {
		http.Error(w, "expert scope required", http.StatusBadRequest)
		return
	}

	qs, err := h.upstream.ListQuestions(r.Context(), expertID)
	if err != nil {
		upstreamError(w, err)
		return
	}
	writeJSON(w, analytics.BuildResponseTimeHistogram(qs), http.StatusOK)
}

func (h *MetricsHandler) GetRatings(w http.ResponseWriter, r *http.Request) {
	expertID, ok := expertIDFrom(r)
	if !ok {
		http.Error(w, "expert scope required", http.StatusBadRequest)
		return
	}

	as, err := h.upstream.ListAnswers(r.Context(), expertID)
	if err != nil {
		upstreamError(w, err)
		return
	}
	writeJSON(w, analytics.BuildRatingDistribution(as), http.StatusOK)
}

func (h *MetricsHandler) GetTierSplit(w http.ResponseWriter, r *http.Request) {
	expertID, ok := expertIDFrom(r)
	if !ok {
		http.Error(w, "expert scope required", http.StatusBadRequest)
		return
	}

	qs, err := h.upstream.ListQuestions(r.Context(), expertID)
	if err != nil {
		upstreamError(w, err)
		return
	}
	writeJSON(w, analytics.BuildTierSplit(qs), http.StatusOK)
}

// GetUrgency classifies a single question for countdown display. Pure
// computation over query parameters, no upstream call.
func (h *MetricsHandler) GetUrgency(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	createdStr := q.Get("created_at")
	created, err := strconv.ParseInt(createdStr, 10, 64)
	if err != nil || created <= 0 {
		http.Error(w, "created_at is required", http.StatusBadRequest)
		return
	}
	created = analytics.NormalizeTimestamp(created)

	var snapshot *float64
	if s := q.Get("sla_hours"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			http.Error(w, "invalid sla_hours", http.StatusBadRequest)
			return
		}
		snapshot = &v
	}
	hours := sla.EffectiveSLAHours(snapshot, h.defaultSLAHours)

	writeJSON(w, sla.Evaluate(created, hours, time.Now()), http.StatusOK)
}

// upstreamError distinguishes payloads we refuse to trust from transport
// failures.
func upstreamError(w http.ResponseWriter, err error) {
	var verr *analytics.ValidationError
	if errors.As(err, &verr) {
		logger.Error("upstream payload rejected", slog.Any("err", err))
		http.Error(w, "invalid upstream payload", http.StatusBadGateway)
		return
	}
	http.Error(w, "upstream unavailable", http.StatusBadGateway)
}
