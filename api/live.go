package api

import (
	"context"
	"net/http"

	"log/slog"

	"github.com/gojkop/mindpick/internal/analytics"
	"github.com/gojkop/mindpick/internal/sla"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// countdownRequest is the first (and only expected) message the client
// sends after connecting: which question to watch.
type countdownRequest struct {
	CreatedAt int64    `json:"created_at"`
	SLAHours  *float64 `json:"sla_hours_snapshot,omitempty"`
}

// Countdown streams the live urgency classification for one question over
// a websocket. One update goes out immediately, then one per interval.
// The ticker stops the moment the client disconnects, so no countdown
// runs against a record nobody is displaying.
func (h *MetricsHandler) Countdown(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("countdown: websocket upgrade", slog.Any("err", err))
		return
	}
	defer conn.Close()

	var req countdownRequest
	if err := conn.ReadJSON(&req); err != nil {
		logger.Error("countdown: read request", slog.Any("err", err))
		return
	}
	if req.CreatedAt <= 0 {
		_ = conn.WriteJSON(map[string]string{"error": "created_at is required"})
		return
	}

	created := analytics.NormalizeTimestamp(req.CreatedAt)
	hours := sla.EffectiveSLAHours(req.SLAHours, h.defaultSLAHours)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	cd := sla.NewCountdown(created, hours, h.countdownInterval, logger)
	defer cd.Stop()
	cd.Start(ctx, func(u sla.Update) {
		if err := conn.WriteJSON(u); err != nil {
			cancel()
		}
	})

	// block until the client goes away; any read error means teardown
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Error("countdown: websocket read", slog.Any("err", err))
			}
			return
		}
	}
}
