package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.Equal(t, "bi.db", cfg.SQLite.Path)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Metrics.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
driver: postgres
postgres:
  host: db.internal
  port: 6543
  name: catalog
log:
  level: debug
metrics:
  enabled: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Driver)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 6543, cfg.Postgres.Port)
	assert.Equal(t, "catalog", cfg.Postgres.Name)
	assert.Equal(t, "postgres", cfg.Postgres.User, "unset keys keep defaults")
	assert.True(t, cfg.Metrics.Enabled)

	lvl, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoad_DiscoversFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bi.yaml"), []byte("sqlite:\n  path: found.db\n"), 0o644))
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "found.db", cfg.SQLite.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("postgres:\n  host: from-file\n"), 0o644))
	t.Setenv("BI_POSTGRES_HOST", "from-env")
	t.Setenv("BI_DRIVER", "postgres")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Postgres.Host)
	assert.Equal(t, DriverPostgres, cfg.Driver)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("driver: [unclosed\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Driver: DriverSQLite,
			SQLite: SQLiteConfig{Path: "bi.db"},
			Log:    LogConfig{Level: "info"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid sqlite", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Driver = "oracle" }, "unknown driver"},
		{"missing path", func(c *Config) { c.SQLite.Path = "" }, "sqlite.path"},
		{"missing host", func(c *Config) { c.Driver = DriverPostgres; c.Postgres.Port = 5432 }, "postgres.host"},
		{"bad port", func(c *Config) { c.Driver = DriverPostgres; c.Postgres.Host = "h" }, "out of range"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyEnv_IgnoresOtherPrefixes(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	applyEnv(v, []string{"HOME=/root", "BI_=x", "BI_LOG_LEVEL=warn", "BIG_THING=1", "BI_SQLITE_PATH"})

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "bi.db", cfg.SQLite.Path)
	assert.False(t, v.IsSet("thing"))
}
