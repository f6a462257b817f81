package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	defaultConnectionString = "file:./myfitlist.db?cache=shared&mode=rwc"
	devConnectionString     = "file:./local.db?cache=shared&mode=rwc"
)

type Config struct {
	Timezone string    `toml:"timezone"` // IANA name used to print dates; empty is the local zone.
	DB       DBConfig  `toml:"database"`
	Log      LogConfig `toml:"log"`
}

type DBConfig struct {
	ConnectionString string `toml:"connection_string"` // The entire DB connection string.
}

type LogConfig struct {
	Level      string `toml:"level"`
	FormatJSON bool   `toml:"format_json"`
	File       string `toml:"file"`      // Empty logs to stdout only.
	ToStdout   bool   `toml:"to_stdout"` // Also log to stdout when File is set.
}

func Default() *Config {
	return &Config{
		DB: DBConfig{ConnectionString: defaultConnectionString},
		Log: LogConfig{
			Level:    "warn",
			ToStdout: true,
		},
	}
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".config", "myfitlist")
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfig reads the configuration from path, or from the default location
// when path is empty. A missing file leaves the defaults in place.
// Environment overrides, in order: TURSO_DATABASE_URL (also read from a .env
// file in the working directory), then DEV_MODE=true.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return nil, err
		}
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if url := os.Getenv("TURSO_DATABASE_URL"); url != "" {
		cfg.DB.ConnectionString = url
	}

	// Check for a DEV_MODE environment variable.
	if os.Getenv("DEV_MODE") == "true" {
		cfg.DB.ConnectionString = devConnectionString
	}

	if cfg.DB.ConnectionString == "" {
		cfg.DB.ConnectionString = defaultConnectionString
	}
	return cfg, nil
}
