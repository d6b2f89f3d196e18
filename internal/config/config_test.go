package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultOptions(t *testing.T) {
	opts := GetDefaultOptions()

	assert.Equal(t, 5001, opts.Port)
	assert.Equal(t, "0.0.0.0", opts.Host)
	assert.Equal(t, "info", opts.LogLevel)
	assert.Len(t, opts.Subjects, 10)
	assert.Contains(t, opts.Subjects, "fiction")
	assert.Equal(t, 200, opts.MaxPerSubject)
	assert.Equal(t, 24, opts.FetchIntervalHours)
	assert.Equal(t, 100, opts.SeedLimit)
	assert.Equal(t, 5*time.Minute, opts.SearchCacheTTL)
	assert.Equal(t, 256, opts.SearchCacheSize)
	assert.Equal(t, 20, opts.SearchMaxResults)
	assert.Equal(t, 10*time.Second, opts.UpstreamTimeout)
	assert.Equal(t, 1, opts.OpenLibraryRateLimit)
	assert.Empty(t, opts.GoogleBooksAPIKey)
}

func TestParseFileOverridesDefaults(t *testing.T) {
	GetDefaultOptions()

	file := filepath.Join(t.TempDir(), "config.toml")
	content := `
port = 8080
log_level = "debug"
subjects = ["horror", "poetry"]
max_per_subject = 80
search_cache_ttl = "10m"
google_books_api_key = "secret"
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	opts, err := ParseFile(file)
	require.NoError(t, err)

	assert.Equal(t, 8080, opts.Port)
	assert.Equal(t, "debug", opts.LogLevel)
	assert.Equal(t, []string{"horror", "poetry"}, opts.Subjects)
	assert.Equal(t, 80, opts.MaxPerSubject)
	assert.Equal(t, 10*time.Minute, opts.SearchCacheTTL)
	assert.Equal(t, "secret", opts.GoogleBooksAPIKey)

	// Untouched keys keep their defaults.
	assert.Equal(t, "0.0.0.0", opts.Host)
	assert.Equal(t, 100, opts.SeedLimit)
}

func TestParseFileMissing(t *testing.T) {
	GetDefaultOptions()

	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestGetConfigResolvesDataDir(t *testing.T) {
	GetDefaultOptions()
	Opts.Data = filepath.Join(t.TempDir(), "data")

	opts, err := GetConfig()
	require.NoError(t, err)

	assert.DirExists(t, opts.Data)
	assert.Equal(t, filepath.Join(opts.Data, "bookhive.db"), opts.DSN)
}
