// Package config loads chatstore settings.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults
//  2. a YAML file (optional)
//  3. a .env file in the working directory (optional), then CHATSTORE_*
//     environment variables
//
// Command-line flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/roach88/chatstore/internal/ident"
)

// Environment variable names.
const (
	EnvDatabase    = "CHATSTORE_DB"
	EnvServerRoot  = "CHATSTORE_SERVER_ROOT"
	EnvLogLevel    = "CHATSTORE_LOG_LEVEL"
	EnvMetricsAddr = "CHATSTORE_METRICS_ADDR"
)

// Generation bounds the user generation counter.
type Generation struct {
	Start uint32 `yaml:"start"`
	End   uint32 `yaml:"end"`
}

// Config holds every setting the process needs.
type Config struct {
	Database    string     `yaml:"database"`
	ServerRoot  string     `yaml:"server_root"`
	Generation  Generation `yaml:"generation"`
	LogLevel    string     `yaml:"log_level"`
	MetricsAddr string     `yaml:"metrics_addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Database:   "chatstore.db",
		ServerRoot: "[UUID:1]",
		Generation: Generation{
			Start: 1,
			End:   math.MaxUint32,
		},
		LogLevel:    "info",
		MetricsAddr: ":9464",
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// .env is optional; only a malformed file is an error.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvDatabase); ok {
		cfg.Database = v
	}
	if v, ok := os.LookupEnv(EnvServerRoot); ok {
		cfg.ServerRoot = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvMetricsAddr); ok {
		cfg.MetricsAddr = v
	}
}

// Validate checks for settings that cannot work.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database) == "" {
		return errors.New("config: database path is required")
	}
	if c.Generation.End != 0 && c.Generation.Start > c.Generation.End {
		return fmt.Errorf("config: generation start %d is past end %d", c.Generation.Start, c.Generation.End)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	if _, err := c.Root(); err != nil {
		return err
	}
	return nil
}

// Root parses ServerRoot, the lineage entity ids are issued under.
func (c Config) Root() (ident.UUID, error) {
	root, err := ident.Parse(c.ServerRoot)
	if err != nil {
		return ident.UUID{}, fmt.Errorf("config: server_root: %w", err)
	}
	return root, nil
}

// Level maps LogLevel to a slog level.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
