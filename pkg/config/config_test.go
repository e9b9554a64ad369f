package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/matzehuels/valvepath/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "valvepath.toml", `
entry = "BB"
budget = 26
workers = 4

[cache]
redis = "redis://localhost:6379/1"

[server]
addr = ":9090"
read_timeout = "5s"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "BB", cfg.Entry)
	assert.Equal(t, 26, cfg.Budget)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Cache.Redis)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout, "unset fields keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "valvepath.yml", `
budget: 20
top: 5
cache:
  disabled: true
server:
  write_timeout: 1m
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "AA", cfg.Entry)
	assert.Equal(t, 20, cfg.Budget)
	assert.Equal(t, 5, cfg.Top)
	assert.True(t, cfg.Cache.Disabled)
	assert.Equal(t, time.Minute, cfg.Server.WriteTimeout)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		wantCode pkgerrors.Code
	}{
		{"Missing", filepath.Join(dir, "nope.toml"), pkgerrors.ErrCodeFileNotFound},
		{"BadExtension", writeFile(t, dir, "valvepath.ini", "budget=1"), pkgerrors.ErrCodeInvalidConfig},
		{"BadTOML", writeFile(t, dir, "bad.toml", "budget = ["), pkgerrors.ErrCodeInvalidConfig},
		{"BadYAML", writeFile(t, dir, "bad.yaml", "budget: [1"), pkgerrors.ErrCodeInvalidConfig},
		{"NegativeBudget", writeFile(t, dir, "neg.toml", "budget = -1"), pkgerrors.ErrCodeInvalidConfig},
		{"BadLevel", writeFile(t, dir, "lvl.toml", "[log]\nlevel = \"loud\""), pkgerrors.ErrCodeInvalidConfig},
		{"BadRedis", writeFile(t, dir, "redis.toml", "[cache]\nredis = \"http://x\""), pkgerrors.ErrCodeInvalidConfig},
		{"BadEntry", writeFile(t, dir, "entry.yaml", "entry: \"A A\""), pkgerrors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, pkgerrors.GetCode(err), err.Error())
		})
	}
}

func TestResolve(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)

	dir, err := Dir()
	require.NoError(t, err)

	// Nothing on disk: defaults.
	cfg, path, err := Resolve("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.MkdirAll(dir, 0o755))
	found := writeFile(t, dir, "valvepath.yaml", "budget: 12\n")

	cfg, path, err = Resolve("")
	require.NoError(t, err)
	assert.Equal(t, found, path)
	assert.Equal(t, 12, cfg.Budget)

	explicit := writeFile(t, t.TempDir(), "other.toml", "budget = 7\n")
	cfg, path, err = Resolve(explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, path)
	assert.Equal(t, 7, cfg.Budget)
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Workers = 2
	cfg.Top = 3

	opts := cfg.Options()
	assert.Equal(t, "AA", opts.Entry)
	assert.Equal(t, 30, opts.Budget)
	assert.Equal(t, 2, opts.Workers)
	assert.Equal(t, 3, opts.Top)
}
