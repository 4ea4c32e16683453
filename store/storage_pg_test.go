package store

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"testing"
	"time"

	"footcrop/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPostgresStore connects to the database described by the PG_*
// variables and skips the test when PG_HOST is not set.
func newTestPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()
	host := os.Getenv("PG_HOST")
	if host == "" {
		t.Skip("PG_HOST not set")
	}

	port := 5432
	if v := os.Getenv("PG_PORT"); v != "" {
		var err error
		port, err = strconv.Atoi(v)
		require.NoError(t, err)
	}

	ctx := context.Background()
	connStr := ConnString(host, port, os.Getenv("PG_USER"), os.Getenv("PG_PASS"), os.Getenv("PG_DB_NAME"))
	pg, err := NewPostgresStore(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pg.Close() })

	require.NoError(t, pg.Init(ctx, types.Settings{FooterHeight: 50, Box: types.MediaBox}))
	return pg
}

func TestPostgresStoreJobs(t *testing.T) {
	pg := newTestPostgresStore(t)
	ctx := context.Background()

	job := types.Job{
		ID:           uuid.New(),
		Source:       "report.pdf",
		Output:       "output/report.pdf",
		FooterHeight: 50,
		Box:          types.CropBox,
		Pages:        3,
		Status:       types.JobDone,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
	t.Cleanup(func() {
		pg.pool.Exec(context.Background(), "DELETE FROM crop_jobs WHERE id = $1", job.ID)
	})
	require.NoError(t, pg.SaveJob(ctx, job))

	got, err := pg.GetJobByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.Source, got.Source)
	assert.Equal(t, types.CropBox, got.Box)
	assert.Equal(t, types.JobDone, got.Status)
	assert.Equal(t, 3, got.Pages)
	assert.True(t, job.CreatedAt.Equal(got.CreatedAt))

	// Saving the same id again updates the outcome.
	job.Status = types.JobFailed
	job.Error = "boom"
	job.Pages = 0
	require.NoError(t, pg.SaveJob(ctx, job))

	got, err = pg.GetJobByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, types.JobFailed, got.Status)
	assert.Equal(t, "boom", got.Error)
	assert.Zero(t, got.Pages)

	jobs, err := pg.ListJobs(ctx, 1000)
	require.NoError(t, err)
	found := false
	for _, j := range jobs {
		if j.ID == job.ID {
			found = true
		}
	}
	assert.True(t, found)

	_, err = pg.GetJobByID(ctx, uuid.New())
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPostgresStoreSettings(t *testing.T) {
	pg := newTestPostgresStore(t)
	ctx := context.Background()

	before, err := pg.GetSettings(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		pg.SetSettings(context.Background(), map[string]any{
			"footer_height": before.FooterHeight,
			"box":           string(before.Box),
		})
	})

	got, err := pg.SetSettings(ctx, map[string]any{"footer_height": 36.0, "box": "crop"})
	require.NoError(t, err)
	assert.Equal(t, types.Settings{FooterHeight: 36, Box: types.CropBox}, *got)
}
