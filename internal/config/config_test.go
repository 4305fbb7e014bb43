package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inboxpilot/dashboard-client/internal/store"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"client"}, args...)
	t.Cleanup(func() { os.Args = old })
}

func TestLoadConfig_Defaults(t *testing.T) {
	setArgs(t)

	cfg := LoadConfig()

	require.Equal(t, "http://127.0.0.1:8080", cfg.GatewayBaseURL)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, store.BackendSQLite, cfg.StoreBackend)
	require.Equal(t, "session.db", cfg.StorePath)
}

func TestLoadConfig_Flags(t *testing.T) {
	setArgs(t, "-a", "https://api.example.com", "-b", "memory", "-s", "/tmp/s.db")

	cfg := LoadConfig()

	require.Equal(t, "https://api.example.com", cfg.GatewayBaseURL)
	require.Equal(t, store.BackendMemory, cfg.StoreBackend)
	require.Equal(t, "/tmp/s.db", cfg.StorePath)
}

func TestLoadConfig_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"gateway_base_url": "https://api.json.example",
		"request_timeout": "30s",
		"store_backend": "bolt",
		"store_path": "json.bolt"
	}`), 0o600))

	setArgs(t, "-c", path)

	cfg := LoadConfig()

	require.Equal(t, "https://api.json.example", cfg.GatewayBaseURL)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, store.BackendBolt, cfg.StoreBackend)
	require.Equal(t, "json.bolt", cfg.StorePath)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"gateway_base_url": "https://api.json.example"}`), 0o600))

	setArgs(t, "-c", path, "-a", "https://api.flag.example")

	cfg := LoadConfig()

	require.Equal(t, "https://api.flag.example", cfg.GatewayBaseURL)
}

func TestLoadConfig_BadJSONPanics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))

	setArgs(t, "-c", path)

	require.Panics(t, func() { LoadConfig() })
}
