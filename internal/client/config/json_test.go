package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"scanfact"}, args...)
	t.Cleanup(func() { os.Args = old })
}

func TestParseJson_OverlaysValues(t *testing.T) {
	path := writeConfigFile(t, `{
		"server_url": "https://api.example.com",
		"request_timeout": "30s",
		"credential_db": "/tmp/creds.db",
		"page_size": 10
	}`)
	withArgs(t, "-c", path)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, "https://api.example.com", cfg.ServerURL)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, "/tmp/creds.db", cfg.CredentialDB)
	require.Equal(t, 10, cfg.PageSize)
}

func TestParseJson_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `{"server_url": "https://api.example.com"}`)
	withArgs(t, "-c", path)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, "https://api.example.com", cfg.ServerURL)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
	require.Equal(t, 6, cfg.PageSize)
}

func TestParseJson_NoFlagNoOverlay(t *testing.T) {
	withArgs(t)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, "http://127.0.0.1:8080", cfg.ServerURL)
}
