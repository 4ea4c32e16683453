package main

import (
	"context"
	"testing"
	"time"

	"footcrop/cropper"
	"footcrop/store"
	"footcrop/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"SOURCE_DIR", "OUTPUT_DIR", "ARCHIVE_DIR", "BAD_DIR", "CROP_BOX", "MONITORING_TIME", "FOOTER_HEIGHT"} {
		t.Setenv(k, "")
	}

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "source", cfg.SourceDir)
	assert.Equal(t, types.MediaBox, cfg.Box)
	assert.Equal(t, 5*time.Second, cfg.MonitoringTime)
	assert.Equal(t, cropper.DefaultFooterHeight, cfg.FooterHeight)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SOURCE_DIR", "/srv/in")
	t.Setenv("CROP_BOX", "crop")
	t.Setenv("MONITORING_TIME", "250ms")
	t.Setenv("FOOTER_HEIGHT", "36")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/srv/in", cfg.SourceDir)
	assert.Equal(t, types.CropBox, cfg.Box)
	assert.Equal(t, 250*time.Millisecond, cfg.MonitoringTime)
	assert.Equal(t, 36.0, cfg.FooterHeight)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("FOOTER_HEIGHT", "-1")
	_, err := loadConfig()
	assert.ErrorIs(t, err, cropper.ErrInvalidOptions)

	t.Setenv("FOOTER_HEIGHT", "")
	t.Setenv("MONITORING_TIME", "soon")
	_, err = loadConfig()
	assert.Error(t, err)
}

func TestOpenStoreWithoutPostgres(t *testing.T) {
	t.Setenv("PG_HOST", "")

	st, err := openStore(context.Background(), types.Settings{FooterHeight: 50})
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, st)
}
