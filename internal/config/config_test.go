package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:     AppConfig{Environment: "development"},
		Logger:  LoggerConfig{Level: "info"},
		Server:  ServerConfig{Port: "8080"},
		Storage: StorageConfig{Driver: DriverBadger, DataPath: "/some/path"},
	}
}

// isolatedArgs points LoadConfig at a data dir and an absent .env file.
func isolatedArgs(t *testing.T, extra ...string) []string {
	t.Helper()
	dir := t.TempDir()
	args := []string{
		"--env-file", filepath.Join(dir, "missing.env"),
		"--data-path", filepath.Join(dir, "data"),
	}
	return append(args, extra...)
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true},  // case insensitive
		{"trace", false}, // not supported
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_StorageDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = DriverSQLite
	assert.NoError(t, cfg.Validate())

	cfg.Storage.Driver = "mongodb"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage driver")
}

func TestValidate_Port(t *testing.T) {
	for _, port := range []string{"", "0", "70000", "http"} {
		t.Run(port, func(t *testing.T) {
			cfg := validConfig()
			cfg.Server.Port = port
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_EmptyDataPath(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.DataPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data path cannot be empty")
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(isolatedArgs(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, DriverBadger, cfg.Storage.Driver)
	assert.True(t, cfg.Search.Enabled)
	assert.Equal(t, 30, cfg.Web.FormRateLimit)
	assert.Equal(t, 30, cfg.Web.FormRateBurst)
	assert.Empty(t, cfg.Web.TemplateDir)
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"# catalog\nSERVER_PORT=7000\nLOG_LEVEL=warn\nSTORAGE_DRIVER=sqlite\n"), 0o600))

	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig([]string{
		"--env-file", envFile,
		"--data-path", filepath.Join(dir, "data"),
		"--port", "9000",
	})
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port, "flag beats .env")
	assert.Equal(t, "debug", cfg.Logger.Level, "environment beats .env")
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver, ".env beats default")
}

func TestLoadConfig_EnvironmentValues(t *testing.T) {
	t.Setenv("SEARCH_ENABLED", "no")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("FORM_RATE_LIMIT", "5")
	t.Setenv("FORM_RATE_BURST", "2")
	t.Setenv("SERVER_WRITE_TIMEOUT", "30s")

	cfg, err := LoadConfig(isolatedArgs(t))
	require.NoError(t, err)

	assert.False(t, cfg.Search.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 5, cfg.Web.FormRateLimit)
	assert.Equal(t, 2, cfg.Web.FormRateBurst)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	_, err := LoadConfig(isolatedArgs(t, "--read-timeout", "soon"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid read timeout")
}

func TestLoadConfig_InvalidDriver(t *testing.T) {
	_, err := LoadConfig(isolatedArgs(t, "--storage-driver", "csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfig_UnknownFlag(t *testing.T) {
	_, err := LoadConfig([]string{"--metadata-path", "/tmp"})
	assert.Error(t, err)
}

func TestExpandDataPath_EmptyUsesDefault(t *testing.T) {
	cfg := &Config{}

	require.NoError(t, cfg.expandDataPath())

	homeDir, _ := os.UserHomeDir() //nolint:errcheck // Test setup
	assert.Equal(t, filepath.Join(homeDir, "LocalLibrary", "data"), cfg.Storage.DataPath)
}

func TestExpandDataPath_TildeExpansion(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{DataPath: "~/catalog"}}

	require.NoError(t, cfg.expandDataPath())

	homeDir, _ := os.UserHomeDir() //nolint:errcheck // Test setup
	assert.Equal(t, filepath.Join(homeDir, "catalog"), cfg.Storage.DataPath)
}

func TestExpandTemplateDir_EmptyStaysEmpty(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.expandTemplateDir())
	assert.Empty(t, cfg.Web.TemplateDir)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b "))
}
