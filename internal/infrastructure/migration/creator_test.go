package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/money/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add outcomes table", "add_outcomes_table"},
		{"Add-Outcome-Index", "add_outcome_index"},
		{"ADD__CATEGORY__COLOR", "add_category_color"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading and trailing_", "leading_and_trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreate_NumbersSequentially(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "migrations")

	first, err := Create(dir, "create outcomes", "Outcome read model")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_create_outcomes.up.sql"), first.UpPath)

	content, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "-- create_outcomes")
	assert.Contains(t, string(content), "-- Outcome read model")

	second, err := Create(dir, "add index", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)
	assert.FileExists(t, second.DownPath)
}

func TestCreate_RejectsEmptyName(t *testing.T) {
	_, err := Create(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	fsys := fstest.MapFS{
		"000002_b.up.sql":   {},
		"000001_a.up.sql":   {},
		"000001_a.down.sql": {},
		"README.md":         {},
		"x_nonumber.up.sql": {},
		"000003_c.sql":      {},

		"nested/000009_z.up.sql": {},
	}

	entries, err := List(fsys)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Version: 1, Name: "a", HasDown: true},
		{Version: 2, Name: "b"},
	}, entries)
}

func TestList_EmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := List(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for i, e := range entries {
		assert.Equal(t, uint(i+1), e.Version, "versions have no gaps")
		assert.True(t, e.HasDown, "%s has a down migration", e.Name)
	}
}
