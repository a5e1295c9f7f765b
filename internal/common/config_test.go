package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "VND", config.DisplayCurrency)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "data/fincatch", config.Storage.Path)
	assert.Equal(t, 10, config.Clients.SSI.RateLimit)
	assert.Equal(t, "info", config.Logging.Level)
	assert.False(t, config.IsProduction())
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, "VND", config.DisplayCurrency)
	assert.Equal(t, 8080, config.Server.Port)
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fincatch.toml")
	content := `
environment = "production"
display_currency = "USD"

[server]
host = "127.0.0.1"
port = 9090

[storage]
path = "/var/lib/fincatch"

[clients.ssi]
base_url = "http://localhost:9999"
rate_limit = 2
timeout = "5s"

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, "USD", config.DisplayCurrency)
	assert.Equal(t, "127.0.0.1", config.Server.Host)
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "/var/lib/fincatch", config.Storage.Path)
	assert.Equal(t, "http://localhost:9999", config.Clients.SSI.BaseURL)
	assert.Equal(t, 5*time.Second, config.Clients.SSI.GetTimeout())
	assert.Equal(t, "debug", config.Logging.Level)

	// Sections absent from the file keep their defaults.
	assert.Equal(t, 5, config.Clients.SJC.RateLimit)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fincatch.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FINCATCH_DISPLAY_CURRENCY", "USD")
	t.Setenv("FINCATCH_SERVER_PORT", "3000")
	t.Setenv("FINCATCH_LOG_LEVEL", "debug")
	t.Setenv("FINCATCH_SSI_BASE_URL", "http://localhost:8181")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "USD", config.DisplayCurrency)
	assert.Equal(t, 3000, config.Server.Port)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "http://localhost:8181", config.Clients.SSI.BaseURL)
}

func TestLoadConfig_InvalidPortEnvIgnored(t *testing.T) {
	t.Setenv("FINCATCH_SERVER_PORT", "not-a-port")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 8080, config.Server.Port)
}

func TestClientConfig_GetTimeout(t *testing.T) {
	c := ClientConfig{Timeout: "45s"}
	assert.Equal(t, 45*time.Second, c.GetTimeout())

	c = ClientConfig{Timeout: "garbage"}
	assert.Equal(t, 30*time.Second, c.GetTimeout())

	c = ClientConfig{}
	assert.Equal(t, 30*time.Second, c.GetTimeout())
}
