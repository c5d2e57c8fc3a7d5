package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LastFM-Go/pkg/lastfm"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LASTFM_API_KEY", "key")

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, lastfm.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, lastfm.DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, DefaultDatabasePath, cfg.DatabasePath)
	assert.Equal(t, DefaultRateLimit, cfg.RateLimit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Debug)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("LASTFM_API_KEY", "key")
	t.Setenv("LASTFM_SECRET", "secret")
	t.Setenv("LASTFM_TIMEOUT", "3s")
	t.Setenv("LASTFM_DEBUG", "true")
	t.Setenv("LASTFM_LOG_FORMAT", "json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Secret)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "lastfm.yaml")
	require.NoError(t, os.WriteFile(file, []byte("api_key: from-file\nlisten_addr: \":9000\"\ntimeout: 5s\n"), 0o600))
	t.Setenv("LASTFM_LISTEN_ADDR", ":9100")

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.APIKey)
	assert.Equal(t, ":9100", cfg.ListenAddr)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, (&Config{}).Validate(), ErrMissingAPIKey)
	assert.Error(t, (&Config{APIKey: "k", Timeout: -time.Second}).Validate())
}

func TestClient(t *testing.T) {
	cfg := &Config{APIKey: "k", Secret: "s", BaseURL: "http://example.test/"}
	c := cfg.Client(nil)
	assert.Equal(t, "http://example.test/", c.Caller().BaseURL())
	assert.Equal(t, "k", c.APIKey())

	cc := cfg.CallerConfig(nil)
	assert.Equal(t, DefaultTimeout, cc.HTTP.Timeout)
}
