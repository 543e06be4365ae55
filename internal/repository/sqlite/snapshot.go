package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/gojkop/mindpick/pkg/models"
)

// SaveSnapshot upserts the latest metrics snapshot for one expert.
func (r *SQLiteRepo) SaveSnapshot(ctx context.Context, s *models.Snapshot) error {
	b, err := json.Marshal(s.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	_, err = r.conn.Exec(ctx, `INSERT INTO metric_snapshots (expert_id, metrics_json, computed_at) VALUES (?, ?, ?)
		ON CONFLICT(expert_id) DO UPDATE SET metrics_json=excluded.metrics_json, computed_at=excluded.computed_at`,
		s.ExpertID, string(b), s.ComputedAt)
	return err
}

// GetSnapshot returns the latest snapshot for one expert, or nil when the
// refresher has not run for them yet.
func (r *SQLiteRepo) GetSnapshot(ctx context.Context, expertID int64) (*models.Snapshot, error) {
	row := r.conn.QueryRow(ctx, `SELECT expert_id, metrics_json, computed_at FROM metric_snapshots WHERE expert_id = ?`, expertID)
	var (
		s    models.Snapshot
		blob string
	)
	if err := row.Scan(&s.ExpertID, &blob, &s.ComputedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(blob), &s.Metrics); err != nil {
		return nil, fmt.Errorf("decode snapshot metrics: %w", err)
	}
	return &s, nil
}
