package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janscope/annotator/internal/config"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, "annotator", cfg.Service.Name)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 3, cfg.Resolver.WindowSize)
	assert.Equal(t, 4*time.Hour, cfg.Resolver.WindowMaxAge)
	assert.InDelta(t, 0.75, cfg.Resolver.SemanticMinScore, 1e-9)
	assert.InDelta(t, 0.92, cfg.Consensus.HighPrecisionBar, 1e-9)
	assert.InDelta(t, 0.85, cfg.Consensus.StandardBar, 1e-9)
	assert.Equal(t, config.SemanticOff, cfg.Semantic.Mode)
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := []byte(`
logging:
  level: debug
resolver:
  window_size: 5
consensus:
  standard_bar: 0.8
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	t.Setenv("LOG_LEVEL", "warn") // env wins over file

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 5, cfg.Resolver.WindowSize)
	assert.InDelta(t, 0.8, cfg.Consensus.StandardBar, 1e-9)
	// Untouched fields keep defaults.
	assert.InDelta(t, 0.5, cfg.Resolver.TieBreak.Base, 1e-9)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(_ *config.Config) {},
			wantErr: false,
		},
		{
			name: "bad semantic mode",
			mutate: func(c *config.Config) {
				c.Semantic.Mode = "faiss"
			},
			wantErr: true,
		},
		{
			name: "sidecar mode requires url",
			mutate: func(c *config.Config) {
				c.Semantic.Mode = config.SemanticSidecar
				c.Semantic.SidecarURL = ""
			},
			wantErr: true,
		},
		{
			name: "high precision bar below standard bar",
			mutate: func(c *config.Config) {
				c.Consensus.HighPrecisionBar = 0.5
			},
			wantErr: true,
		},
		{
			name: "sqlite driver without path",
			mutate: func(c *config.Config) {
				c.Database.Enabled = true
				c.Database.Driver = "sqlite3"
				c.Database.Path = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
			require.NoError(t, err)

			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	pg := config.DatabaseConfig{
		Driver: "postgres", Host: "db", Port: 5432,
		User: "svc", Password: "pw", Database: "gaz", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=svc password=pw dbname=gaz sslmode=disable",
		pg.DSN())

	lite := config.DatabaseConfig{Driver: "sqlite3", Path: "/data/gaz.db"}
	assert.Equal(t, "/data/gaz.db", lite.DSN())
}
