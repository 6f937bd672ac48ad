// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Server  ServerConfig
	Storage StorageConfig
	Search  SearchConfig
	Web     WebConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
	CORSOrigins  []string      // Allowed origins for /api/v1 (default: any)
}

// StorageConfig holds catalog storage configuration.
type StorageConfig struct {
	Driver   string // badger or sqlite
	DataPath string // Directory holding the database and search index
}

// SearchConfig holds full-text search configuration.
type SearchConfig struct {
	Enabled bool
}

// WebConfig holds settings for the HTML catalog.
type WebConfig struct {
	// TemplateDir overrides the embedded templates and enables hot reload.
	TemplateDir string
	// FormRateLimit is the number of form submissions allowed per minute per client. Zero disables limiting.
	FormRateLimit int
	FormRateBurst int
}

// keys maps viper keys to their flag names.
var keys = map[string]string{
	"env":                  "env",
	"log_level":            "log-level",
	"server_port":          "port",
	"server_read_timeout":  "read-timeout",
	"server_write_timeout": "write-timeout",
	"server_idle_timeout":  "idle-timeout",
	"cors_origins":         "cors-origins",
	"data_path":            "data-path",
	"storage_driver":       "storage-driver",
	"search_enabled":       "search-enabled",
	"template_dir":         "template-dir",
	"form_rate_limit":      "form-rate-limit",
	"form_rate_burst":      "form-rate-burst",
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("library", pflag.ContinueOnError)
	fs.String("env", "", "Environment (development, staging, production)")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")
	fs.String("port", "", "Server port (default: 8080)")
	fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	fs.String("cors-origins", "", "Comma-separated origins allowed to call /api/v1 (default: *)")
	fs.String("data-path", "", "Directory for the database and search index")
	fs.String("storage-driver", "", "Storage backend: badger or sqlite (default: badger)")
	fs.String("search-enabled", "", "Enable full-text search (default: true)")
	fs.String("template-dir", "", "Load templates from this directory and reload on change")
	fs.String("form-rate-limit", "", "Form submissions per minute per client, 0 disables (default: 30)")
	fs.String("form-rate-burst", "", "Burst size for form submissions (default: form-rate-limit)")
	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	// Missing .env files are fine.
	if _, err := os.Stat(*envFile); err == nil {
		v.SetConfigFile(*envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read env file %s: %w", *envFile, err)
		}
	}

	v.AutomaticEnv()

	for key, flagName := range keys {
		if err := v.BindPFlag(key, fs.Lookup(flagName)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flagName, err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("server_port", "8080")
	v.SetDefault("server_read_timeout", "15s")
	v.SetDefault("server_write_timeout", "15s")
	v.SetDefault("server_idle_timeout", "60s")
	v.SetDefault("cors_origins", "")
	v.SetDefault("data_path", "")
	v.SetDefault("storage_driver", DriverBadger)
	v.SetDefault("search_enabled", "true")
	v.SetDefault("template_dir", "")
	v.SetDefault("form_rate_limit", "30")
	v.SetDefault("form_rate_burst", "")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Environment: v.GetString("env"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("log_level"),
		},
		Server: ServerConfig{
			Port:        v.GetString("server_port"),
			CORSOrigins: splitList(v.GetString("cors_origins")),
		},
		Storage: StorageConfig{
			Driver:   strings.ToLower(v.GetString("storage_driver")),
			DataPath: v.GetString("data_path"),
		},
		Search: SearchConfig{
			Enabled: parseBool(v.GetString("search_enabled"), true),
		},
		Web: WebConfig{
			TemplateDir: v.GetString("template_dir"),
		},
	}

	var err error
	if cfg.Server.ReadTimeout, err = parseDuration(v, "server_read_timeout", "read timeout"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = parseDuration(v, "server_write_timeout", "write timeout"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = parseDuration(v, "server_idle_timeout", "idle timeout"); err != nil {
		return nil, err
	}

	if cfg.Web.FormRateLimit, err = parseInt(v.GetString("form_rate_limit")); err != nil {
		return nil, fmt.Errorf("invalid form rate limit: %w", err)
	}
	cfg.Web.FormRateBurst = cfg.Web.FormRateLimit
	if raw := v.GetString("form_rate_burst"); raw != "" {
		if cfg.Web.FormRateBurst, err = parseInt(raw); err != nil {
			return nil, fmt.Errorf("invalid form rate burst: %w", err)
		}
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}
	if err := cfg.expandTemplateDir(); err != nil {
		return nil, fmt.Errorf("invalid template dir: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Storage.Driver != DriverBadger && c.Storage.Driver != DriverSQLite {
		return fmt.Errorf("invalid storage driver: %s (must be badger or sqlite)", c.Storage.Driver)
	}

	if c.Storage.DataPath == "" {
		return errors.New("data path cannot be empty after expansion")
	}

	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port: %s", c.Server.Port)
	}

	if c.Web.FormRateLimit < 0 || c.Web.FormRateBurst < 0 {
		return errors.New("form rate limit and burst must not be negative")
	}

	return nil
}

// IsProduction reports whether the app runs in production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath defaults to ~/LocalLibrary/data.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "LocalLibrary", "data")

	expanded, err := expandPath(c.Storage.DataPath, defaultPath)
	if err != nil {
		return err
	}
	c.Storage.DataPath = expanded
	return nil
}

// expandTemplateDir leaves an empty dir empty so the embedded templates are used.
func (c *Config) expandTemplateDir() error {
	if c.Web.TemplateDir == "" {
		return nil
	}
	expanded, err := expandPath(c.Web.TemplateDir, "")
	if err != nil {
		return err
	}
	c.Web.TemplateDir = expanded
	return nil
}

func parseDuration(v *viper.Viper, key, what string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", what, raw, err)
	}
	return d, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return n, nil
}

// parseBool accepts "true", "1", "yes" (case-insensitive) as true.
func parseBool(s string, defaultValue bool) bool {
	if s == "" {
		return defaultValue
	}
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes"
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
