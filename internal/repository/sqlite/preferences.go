package sqlite

import (
	"context"
	"database/sql"

	"github.com/gojkop/mindpick/pkg/models"
)

// SetPreference inserts or replaces one preference entry.
func (r *SQLiteRepo) SetPreference(ctx context.Context, expertID int64, key, value string) error {
	_, err := r.conn.Exec(ctx, `INSERT INTO preferences (expert_id, key, value, updated) VALUES (?, ?, ?, ?)
		ON CONFLICT(expert_id, key) DO UPDATE SET value=excluded.value, updated=excluded.updated`,
		expertID, key, value, now())
	return err
}

// GetPreference returns one preference entry, or nil when absent.
func (r *SQLiteRepo) GetPreference(ctx context.Context, expertID int64, key string) (*models.Preference, error) {
	row := r.conn.QueryRow(ctx, `SELECT expert_id, key, value, updated FROM preferences WHERE expert_id = ? AND key = ?`, expertID, key)
	var p models.Preference
	if err := row.Scan(&p.ExpertID, &p.Key, &p.Value, &p.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// ListPreferences returns all preference entries for one expert.
func (r *SQLiteRepo) ListPreferences(ctx context.Context, expertID int64) ([]models.Preference, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT expert_id, key, value, updated FROM preferences WHERE expert_id = ? ORDER BY key`, expertID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Preference
	for rows.Next() {
		var p models.Preference
		if err := rows.Scan(&p.ExpertID, &p.Key, &p.Value, &p.Updated); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePreference removes one preference entry. Deleting an absent key is
// not an error.
func (r *SQLiteRepo) DeletePreference(ctx context.Context, expertID int64, key string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM preferences WHERE expert_id = ? AND key = ?`, expertID, key)
	return err
}
