package repository

import (
	"context"

	"github.com/gojkop/mindpick/pkg/models"
)

// Repository interfaces for the service's own durable state. These are the
// public contracts consumers should depend on; concrete implementations
// live under internal/.

// PreferencesRepo is the injected replacement for browser-local preference
// state: drafts, pinned questions, sidebar layout. Values are opaque
// strings owned by the frontend.
type PreferencesRepo interface {
	GetPreference(ctx context.Context, expertID int64, key string) (*models.Preference, error)
	SetPreference(ctx context.Context, expertID int64, key, value string) error
	ListPreferences(ctx context.Context, expertID int64) ([]models.Preference, error)
	DeletePreference(ctx context.Context, expertID int64, key string) error
}

// SnapshotRepo stores the latest computed metrics per expert so the
// dashboard can render instantly while a fresh fetch runs.
type SnapshotRepo interface {
	SaveSnapshot(ctx context.Context, s *models.Snapshot) error
	GetSnapshot(ctx context.Context, expertID int64) (*models.Snapshot, error)
}
