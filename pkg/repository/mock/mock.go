package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/gojkop/mindpick/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	Prefs     *PreferencesRepo
	Snapshots *SnapshotRepo
	Fetcher   *Fetcher
}

func NewMocks() *Mocks {
	return &Mocks{
		Prefs:     &PreferencesRepo{entries: map[string]models.Preference{}},
		Snapshots: &SnapshotRepo{snapshots: map[int64]models.Snapshot{}},
		Fetcher:   &Fetcher{},
	}
}

type PreferencesRepo struct {
	mu      sync.Mutex
	entries map[string]models.Preference
	SetErr  error
}

func key(expertID int64, k string) string { return fmt.Sprintf("%d/%s", expertID, k) }

func (m *PreferencesRepo) SetPreference(ctx context.Context, expertID int64, k, v string) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key(expertID, k)] = models.Preference{ExpertID: expertID, Key: k, Value: v}
	return nil
}

func (m *PreferencesRepo) GetPreference(ctx context.Context, expertID int64, k string) (*models.Preference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.entries[key(expertID, k)]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *PreferencesRepo) ListPreferences(ctx context.Context, expertID int64) ([]models.Preference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Preference
	for _, p := range m.entries {
		if p.ExpertID == expertID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *PreferencesRepo) DeletePreference(ctx context.Context, expertID int64, k string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key(expertID, k))
	return nil
}

type SnapshotRepo struct {
	mu        sync.Mutex
	snapshots map[int64]models.Snapshot
	SaveErr   error
	Saves     int
}

func (m *SnapshotRepo) SaveSnapshot(ctx context.Context, s *models.Snapshot) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[s.ExpertID] = *s
	m.Saves++
	return nil
}

func (m *SnapshotRepo) GetSnapshot(ctx context.Context, expertID int64) (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.snapshots[expertID]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *SnapshotRepo) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Saves
}

// Fetcher is a canned upstream for handler and refresher tests.
type Fetcher struct {
	mu    sync.Mutex
	Data  models.DashboardData
	Err   error
	calls int
}

func (m *Fetcher) FetchDashboard(ctx context.Context, expertID int64) (*models.DashboardData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}
	d := m.Data
	return &d, nil
}

func (m *Fetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *Fetcher) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}
