package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"footcrop/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreJobs(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(types.Settings{FooterHeight: 50, Box: types.MediaBox})

	now := time.Now()
	older := types.Job{ID: uuid.New(), Source: "a.pdf", Status: types.JobDone, CreatedAt: now.Add(-time.Minute)}
	newer := types.Job{ID: uuid.New(), Source: "b.pdf", Status: types.JobFailed, CreatedAt: now}
	require.NoError(t, m.SaveJob(ctx, older))
	require.NoError(t, m.SaveJob(ctx, newer))

	got, err := m.GetJobByID(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", got.Source)

	_, err = m.GetJobByID(ctx, uuid.New())
	assert.ErrorIs(t, err, sql.ErrNoRows)

	jobs, err := m.ListJobs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, newer.ID, jobs[0].ID)

	jobs, err = m.ListJobs(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestMemoryStoreSettings(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(types.Settings{FooterHeight: 50, Box: types.MediaBox})

	s, err := m.SetSettings(ctx, map[string]any{"footer_height": 36.0, "unknown": 1})
	require.NoError(t, err)
	assert.Equal(t, types.Settings{FooterHeight: 36, Box: types.MediaBox}, *s)

	s, err = m.SetSettings(ctx, map[string]any{"box": "crop"})
	require.NoError(t, err)
	assert.Equal(t, types.Settings{FooterHeight: 36, Box: types.CropBox}, *s)

	s, err = m.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.CropBox, s.Box)
}
