package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/ncli/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.Empty(t, cfg.StatusFile)
	assert.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, `
version: 1
status_file: /var/nagios/status.dat
strict: true
output:
  color: never
filters:
  states: [CRIT, WARN]
  older_than: 2h
  problems: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/nagios/status.dat", cfg.StatusFile)
	assert.Equal(t, "auto", cfg.Format, "unset keys keep defaults")
	assert.True(t, cfg.Strict)
	assert.Equal(t, "never", cfg.Output.Color)
	assert.Equal(t, []string{"CRIT", "WARN"}, cfg.Filters.States)
	assert.Equal(t, "2h", cfg.Filters.OlderThan)
	assert.True(t, cfg.Filters.Problems)
}

func TestLoad_EmptyPathUsesDefaultsAndEnv(t *testing.T) {
	t.Setenv("NCLI_STATUS_FILE", "/tmp/status.dat")
	t.Setenv("NCLI_OUTPUT_COLOR", "always")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/status.dat", cfg.StatusFile)
	assert.Equal(t, "always", cfg.Output.Color)
}

func TestLoad_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "status_file: ~/nagios/status.dat\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "nagios", "status.dat"), cfg.StatusFile)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "output: [unclosed\n")
	_, err = Load(bad)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		writeFile(t, path, "version: 1\n")

		found, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("walks up to parent", func(t *testing.T) {
		root := t.TempDir()
		t.Setenv("HOME", t.TempDir())
		writeFile(t, filepath.Join(root, ConfigFileName), "version: 1\n")
		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o755))
		t.Chdir(nested)

		found, err := Find("")
		require.NoError(t, err)
		want, err := filepath.EvalSymlinks(filepath.Join(root, ConfigFileName))
		require.NoError(t, err)
		got, err := filepath.EvalSymlinks(found)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("stops at git root", func(t *testing.T) {
		root := t.TempDir()
		t.Setenv("HOME", t.TempDir())
		writeFile(t, filepath.Join(root, ConfigFileName), "version: 1\n")
		repo := filepath.Join(root, "repo")
		require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
		t.Chdir(repo)

		found, err := Find("")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("falls back to global", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		writeFile(t, global, "version: 1\n")
		work := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(work, ".git"), 0o755))
		t.Chdir(work)

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, global, found)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "future version", mutate: func(c *Config) { c.Version = 99 }, wantErr: "from the future"},
		{name: "bad format", mutate: func(c *Config) { c.Format = "xml" }, wantErr: "format 'xml'"},
		{name: "bad color", mutate: func(c *Config) { c.Output.Color = "rainbow" }, wantErr: "output.color"},
		{name: "bad state", mutate: func(c *Config) { c.Filters.States = []string{"CRIT", "bad"} }, wantErr: "filters.states"},
		{name: "bad duration", mutate: func(c *Config) { c.Filters.OlderThan = "2 hours" }, wantErr: "filters.older_than"},
		{name: "good filters", mutate: func(c *Config) {
			c.Filters.States = []string{"warning", "CRIT"}
			c.Filters.OlderThan = "1w"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)
	cfg := DefaultConfig()
	cfg.StatusFile = "/var/nagios/status.dat"
	cfg.Filters.Problems = true

	require.NoError(t, Write(path, cfg, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# ncli configuration")
	assert.Contains(t, string(data), "status_file: /var/nagios/status.dat")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.StatusFile, loaded.StatusFile)
	assert.True(t, loaded.Filters.Problems)

	err = Write(path, cfg, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	assert.NoError(t, Write(path, cfg, true))
}
