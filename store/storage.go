package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"footcrop/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DBStorer interface {
	SaveJob(context.Context, types.Job) error
	GetJobByID(context.Context, uuid.UUID) (*types.Job, error)
	ListJobs(context.Context, int) ([]types.Job, error)
	GetSettings(context.Context) (*types.Settings, error)
	SetSettings(context.Context, map[string]any) (*types.Settings, error)
}

type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnString builds a libpq connection string.
func ConnString(host string, port int, user, pass, dbName string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", host, port, user, pass, dbName)
}

func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{
		pool: pool,
	}, nil
}

func (p *PostgresStore) SaveJob(ctx context.Context, job types.Job) error {
	query := `INSERT INTO crop_jobs (id, source, output, footer_height, box, pages, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			output = EXCLUDED.output,
			pages = EXCLUDED.pages,
			status = EXCLUDED.status,
			error = EXCLUDED.error
		`
	_, err := p.pool.Exec(
		ctx,
		query,
		job.ID,
		job.Source,
		job.Output,
		job.FooterHeight,
		string(job.Box),
		job.Pages,
		string(job.Status),
		job.Error,
		job.CreatedAt,
	)
	return err
}

const jobColumns = "id, source, output, footer_height, box, pages, status, error, created_at"

func scanJob(row pgx.Row) (*types.Job, error) {
	job := &types.Job{}
	if err := row.Scan(
		&job.ID,
		&job.Source,
		&job.Output,
		&job.FooterHeight,
		&job.Box,
		&job.Pages,
		&job.Status,
		&job.Error,
		&job.CreatedAt); err != nil {
		return nil, err
	}
	return job, nil
}

func (p *PostgresStore) GetJobByID(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	rows, err := p.pool.Query(ctx, "SELECT "+jobColumns+" FROM crop_jobs WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, sql.ErrNoRows
	}
	return scanJob(rows)
}

func (p *PostgresStore) ListJobs(ctx context.Context, limit int) ([]types.Job, error) {
	rows, err := p.pool.Query(ctx, "SELECT "+jobColumns+" FROM crop_jobs ORDER BY created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []types.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (p *PostgresStore) GetSettings(ctx context.Context) (*types.Settings, error) {
	s := &types.Settings{}
	err := p.pool.QueryRow(ctx, "SELECT footer_height, box FROM settings WHERE id = 1").Scan(&s.FooterHeight, &s.Box)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// SetSettings updates the given columns of the settings row. Keys are
// column names, see the db tags of types.Settings.
func (p *PostgresStore) SetSettings(ctx context.Context, set map[string]any) (*types.Settings, error) {
	query, args := updateQuery("settings", set)
	if _, err := p.pool.Exec(ctx, query+" WHERE id = 1", args...); err != nil {
		return nil, err
	}
	return p.GetSettings(ctx)
}

func updateQuery(table string, set map[string]any) (string, []any) {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s = $%d", k, i+1)
		args[i] = set[k]
	}
	return fmt.Sprintf("UPDATE %s SET %s", table, strings.Join(parts, ", ")), args
}

func (p *PostgresStore) createTables(ctx context.Context, defaults types.Settings) error {
	query := `
	CREATE TABLE IF NOT EXISTS crop_jobs (
		id UUID PRIMARY KEY,
		source TEXT NOT NULL,
		output TEXT,
		footer_height DOUBLE PRECISION NOT NULL,
		box TEXT NOT NULL DEFAULT 'media',
		pages INTEGER NOT NULL DEFAULT 0,
		status TEXT CHECK (status IN ('done','failed')),
		error TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE
	);

	CREATE INDEX IF NOT EXISTS idx_crop_jobs_created_at ON crop_jobs(created_at);

	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY,
		footer_height DOUBLE PRECISION NOT NULL,
		box TEXT NOT NULL
	);
	`
	if _, err := p.pool.Exec(ctx, query); err != nil {
		return err
	}

	_, err := p.pool.Exec(ctx,
		"INSERT INTO settings (id, footer_height, box) VALUES (1, $1, $2) ON CONFLICT (id) DO NOTHING",
		defaults.FooterHeight, string(defaults.Box))
	return err
}

// Init creates the tables and seeds the settings row with defaults
// unless it already exists.
func (p *PostgresStore) Init(ctx context.Context, defaults types.Settings) error {
	return p.createTables(ctx, defaults)
}

func (p *PostgresStore) Close() error {
	if p.pool != nil {
		p.pool.Close()
		log.Println("Postgres connection pool is closed")
	}
	return nil
}
