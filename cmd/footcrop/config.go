package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"footcrop/cropper"
	"footcrop/store"
	"footcrop/types"

	"github.com/joho/godotenv"
)

// Storer is a job journal that owns resources.
type Storer interface {
	store.DBStorer
	Close() error
}

// loadEnv reads .env when there is one. Variables already set win.
func loadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	return nil
}

func loadConfig() (types.Config, error) {
	cfg := types.Config{
		SourceDir:  getenv("SOURCE_DIR", "source"),
		OutputDir:  getenv("OUTPUT_DIR", "output"),
		ArchiveDir: getenv("ARCHIVE_DIR", "archive"),
		BadDir:     getenv("BAD_DIR", "bad"),
		Box:        types.BoxKind(getenv("CROP_BOX", string(types.MediaBox))),
	}

	var err error
	if cfg.MonitoringTime, err = time.ParseDuration(getenv("MONITORING_TIME", "5s")); err != nil {
		return cfg, fmt.Errorf("MONITORING_TIME: %w", err)
	}
	if cfg.FooterHeight, err = strconv.ParseFloat(getenv("FOOTER_HEIGHT", strconv.FormatFloat(cropper.DefaultFooterHeight, 'f', -1, 64)), 64); err != nil {
		return cfg, fmt.Errorf("FOOTER_HEIGHT: %w", err)
	}

	opts := cropper.Options{FooterHeight: cfg.FooterHeight, Box: cfg.Box}
	if err := opts.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openStore connects to Postgres when PG_HOST is set and falls back to
// an in-memory journal otherwise.
func openStore(ctx context.Context, defaults types.Settings) (Storer, error) {
	host := os.Getenv("PG_HOST")
	if host == "" {
		log.Println("PG_HOST is not set, jobs are kept in memory")
		return store.NewMemoryStore(defaults), nil
	}

	port, err := strconv.Atoi(getenv("PG_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("PG_PORT: %w", err)
	}

	connStr := store.ConnString(host, port, os.Getenv("PG_USER"), os.Getenv("PG_PASS"), os.Getenv("PG_DB_NAME"))
	pg, err := store.NewPostgresStore(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("error to connect to Postgres database: %w", err)
	}

	if err := pg.Init(ctx, defaults); err != nil {
		pg.Close()
		return nil, fmt.Errorf("error to create tables: %w", err)
	}
	return pg, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
