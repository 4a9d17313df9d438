package feed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeenFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seen.json")

	seen, err := LoadSeen(path)
	require.NoError(t, err)
	assert.Empty(t, seen.Items)

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	seen.Append(sampleOpportunities().ToSeen("profile-1", now))
	require.NoError(t, seen.ToFile(path))

	loaded, err := LoadSeen(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4"}, loaded.IDs())
	assert.Equal(t, "profile-1", loaded.Items[0].ProfileID)
	assert.True(t, loaded.Items[0].SeenAt.Equal(now))
}

func TestLoadSeenEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seen.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	seen, err := LoadSeen(path)
	require.NoError(t, err)
	assert.Empty(t, seen.Items)
}
