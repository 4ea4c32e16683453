package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"sync"

	"footcrop/types"

	"github.com/google/uuid"
)

// MemoryStore keeps jobs and settings in process memory. It is used when
// no database is configured.
type MemoryStore struct {
	mu       sync.Mutex
	jobs     map[uuid.UUID]types.Job
	settings types.Settings
}

func NewMemoryStore(defaults types.Settings) *MemoryStore {
	return &MemoryStore{
		jobs:     make(map[uuid.UUID]types.Job),
		settings: defaults,
	}
}

func (m *MemoryStore) SaveJob(_ context.Context, job types.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
	return nil
}

func (m *MemoryStore) GetJobByID(_ context.Context, id uuid.UUID) (*types.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &job, nil
}

func (m *MemoryStore) ListJobs(_ context.Context, limit int) ([]types.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	jobs := make([]types.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	if limit >= 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

func (m *MemoryStore) GetSettings(context.Context) (*types.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.settings
	return &s, nil
}

// SetSettings applies column/value pairs the same way the Postgres store
// does, matching keys against the db tags of types.Settings.
func (m *MemoryStore) SetSettings(_ context.Context, set map[string]any) (*types.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fields := map[string]any{
		"footer_height": m.settings.FooterHeight,
		"box":           m.settings.Box,
	}
	for k, v := range set {
		if _, ok := fields[k]; ok {
			fields[k] = v
		}
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var s types.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	m.settings = s
	return &s, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
