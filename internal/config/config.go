package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Data DataConfig `yaml:"data"`
	Log  LogConfig  `yaml:"log"`
}

type DataConfig struct {
	Dir       string `yaml:"dir"`
	StoreFile string `yaml:"store_file"`
	BackupDir string `yaml:"backup_dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// StorePath returns the full path of the vault database.
func (d DataConfig) StorePath() string {
	return filepath.Join(d.Dir, d.StoreFile)
}

// SlogLevel maps the configured level name onto slog's levels.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns the configuration used when no config file is given:
// everything under ~/.repvault, env overrides still applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	applyEnvOverrides(cfg)
	return cfg
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix REPVAULT_:
//
//	REPVAULT_DATA_DIR, REPVAULT_STORE_FILE, REPVAULT_BACKUP_DIR,
//	REPVAULT_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Data.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.Data.Dir = filepath.Join(home, ".repvault")
	}
	if c.Data.StoreFile == "" {
		c.Data.StoreFile = "vault.db"
	}
	if c.Data.BackupDir == "" {
		c.Data.BackupDir = filepath.Join(c.Data.Dir, "backups")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("REPVAULT_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("REPVAULT_STORE_FILE"); v != "" {
		cfg.Data.StoreFile = v
	}
	if v := os.Getenv("REPVAULT_BACKUP_DIR"); v != "" {
		cfg.Data.BackupDir = v
	}
	if v := os.Getenv("REPVAULT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func (c *Config) validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Data.StoreFile == "" {
		return fmt.Errorf("data.store_file is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}
