// Package config loads bi settings from defaults, an optional YAML file and
// BI_ prefixed environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/roach88/bi/internal/pg"
)

// EnvPrefix is stripped from environment variables. BI_POSTGRES_HOST sets
// postgres.host.
const EnvPrefix = "BI_"

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the full bi configuration.
type Config struct {
	Driver   string        `mapstructure:"driver"`
	SQLite   SQLiteConfig  `mapstructure:"sqlite"`
	Postgres pg.Config     `mapstructure:"postgres"`
	Log      LogConfig     `mapstructure:"log"`
	Metrics  MetricsConfig `mapstructure:"metrics"`
}

// SQLiteConfig locates the database file.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig sets the minimum log level: debug, info, warn or error.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// MetricsConfig toggles query instrumentation.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("driver", DriverSQLite)
	v.SetDefault("sqlite.path", "bi.db")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.name", "bi")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.enabled", false)
}

// Load reads configuration. An empty path looks for bi.yaml in the working
// directory and skips it if absent; an explicit path must exist.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("bi")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	applyEnv(v, os.Environ())

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// applyEnv overlays BI_ variables. Keys are lowercased and _ becomes a
// path separator, so only single-word keys are reachable this way.
func applyEnv(v *viper.Viper, environ []string) {
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		prop := strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(name, EnvPrefix), "_", "."))
		if prop == "" {
			continue
		}
		v.Set(prop, value)
	}
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if c.SQLite.Path == "" {
			return errors.New("sqlite.path is required")
		}
	case DriverPostgres:
		if c.Postgres.Host == "" {
			return errors.New("postgres.host is required")
		}
		if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
			return fmt.Errorf("postgres.port %d out of range", c.Postgres.Port)
		}
	default:
		return fmt.Errorf("unknown driver %q (want %s or %s)", c.Driver, DriverSQLite, DriverPostgres)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
