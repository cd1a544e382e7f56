package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds the unified application configuration
type Config struct {
	DataDir     string `json:"data_dir"`
	Backend     string `json:"backend"`
	DefaultView string `json:"default_view"`
	LogLevel    string `json:"log_level"`
	ToastTTL    string `json:"toast_ttl"`
}

// Settings represents the config file structure
type Settings struct {
	DataDir     string `json:"data_dir,omitempty"`
	Backend     string `json:"backend,omitempty"`
	DefaultView string `json:"default_view,omitempty"`
	LogLevel    string `json:"log_level,omitempty"`
	ToastTTL    string `json:"toast_ttl,omitempty"`
}

// envSettings is filled by cleanenv from the process environment.
type envSettings struct {
	DataDir     string `env:"PROJECTOR_DATA_DIR"`
	Backend     string `env:"PROJECTOR_BACKEND"`
	DefaultView string `env:"PROJECTOR_VIEW"`
	LogLevel    string `env:"PROJECTOR_LOG_LEVEL"`
	ToastTTL    string `env:"PROJECTOR_TOAST_TTL"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	DataDir     string
	Backend     string
	DefaultView string
	LogLevel    string
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	dataDir, err := GetDefaultDataDir()
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		DataDir:     dataDir,
		Backend:     BackendFile,
		DefaultView: "/dashboard",
		LogLevel:    "info",
		ToastTTL:    "4s",
	}

	configPath, err := getConfigPath()
	if err == nil {
		if fileConfig, err := loadConfigFile(configPath); err == nil {
			cfg.apply(fileConfig.DataDir, fileConfig.Backend, fileConfig.DefaultView, fileConfig.LogLevel, fileConfig.ToastTTL)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading %s: %w", configPath, err)
		}
	}

	var env envSettings
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, fmt.Errorf("error reading environment: %w", err)
	}
	cfg.apply(env.DataDir, env.Backend, env.DefaultView, env.LogLevel, env.ToastTTL)

	cfg.apply(flags.DataDir, flags.Backend, flags.DefaultView, flags.LogLevel, "")

	cfg.DataDir = expandPath(cfg.DataDir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) apply(dataDir, backend, view, level, ttl string) {
	if dataDir != "" {
		c.DataDir = dataDir
	}
	if backend != "" {
		c.Backend = strings.ToLower(backend)
	}
	if view != "" {
		c.DefaultView = normalizeView(view)
	}
	if level != "" {
		c.LogLevel = level
	}
	if ttl != "" {
		c.ToastTTL = ttl
	}
}

// Validate rejects unknown backends and malformed durations.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want file, sqlite or memory)", c.Backend)
	}
	if _, err := time.ParseDuration(c.ToastTTL); err != nil {
		return fmt.Errorf("invalid toast_ttl %q: %w", c.ToastTTL, err)
	}
	return nil
}

// ToastDuration returns the parsed toast lifetime.
func (c *Config) ToastDuration() time.Duration {
	d, err := time.ParseDuration(c.ToastTTL)
	if err != nil || d <= 0 {
		return 4 * time.Second
	}
	return d
}

// SQLitePath is the database file used by the sqlite backend.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "projector.db")
}

// GetDefaultDataDir returns the default data directory path
func GetDefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "projector"), nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	if p := os.Getenv("PROJECTOR_CONFIG"); p != "" {
		return expandPath(p), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "projector", "config.json"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	dataDir, err := GetDefaultDataDir()
	if err != nil {
		return err
	}

	settings := Settings{
		DataDir:     dataDir,
		Backend:     BackendFile,
		DefaultView: "/dashboard",
		LogLevel:    "info",
		ToastTTL:    "4s",
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// normalizeView accepts "goals" as well as "/goals".
func normalizeView(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "/") {
		v = "/" + v
	}
	return v
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
