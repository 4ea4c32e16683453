package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateQuery(t *testing.T) {
	query, args := updateQuery("settings", map[string]any{
		"footer_height": 36.0,
		"box":           "crop",
	})

	assert.Equal(t, "UPDATE settings SET box = $1, footer_height = $2", query)
	assert.Equal(t, []any{"crop", 36.0}, args)
}

func TestConnString(t *testing.T) {
	assert.Equal(t,
		"host=db port=5432 user=u password=p dbname=footcrop sslmode=disable",
		ConnString("db", 5432, "u", "p", "footcrop"))
}
