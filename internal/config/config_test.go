package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setFakeHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv(EnvRegistryPath, "")
	os.Unsetenv(EnvRegistryPath)
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := setFakeHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "AI-Tools", "port-registry.json"), cfg.RegistryPath)
	require.Equal(t, 11000, cfg.PreferredStart)
	require.Equal(t, 12000, cfg.PreferredEnd)
	require.Equal(t, 3000, cfg.LegacyStart)
	require.Equal(t, 8000, cfg.LegacyEnd)
}

func TestLoadEnvOverridesPath(t *testing.T) {
	setFakeHome(t)
	t.Setenv(EnvRegistryPath, "/tmp/custom/registry.json")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/custom/registry.json", cfg.RegistryPath)
}

func TestLoadTomlOverrides(t *testing.T) {
	home := setFakeHome(t)
	dir := filepath.Join(home, "AI-Tools")
	require.NoError(t, os.MkdirAll(dir, 0755))

	toml := `
registry_path = "~/registry/ports.json"
preferred_start = 20000
preferred_end = 20100
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "registry", "ports.json"), cfg.RegistryPath)
	require.Equal(t, 20000, cfg.PreferredStart)
	require.Equal(t, 20100, cfg.PreferredEnd)
	// Untouched keys keep their defaults.
	require.Equal(t, 3000, cfg.LegacyStart)
}

func TestLoadEnvBeatsToml(t *testing.T) {
	home := setFakeHome(t)
	dir := filepath.Join(home, "AI-Tools")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte(`registry_path = "/from/toml.json"`), 0644))

	t.Setenv(EnvRegistryPath, "/from/env.json")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/from/env.json", cfg.RegistryPath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults ok", func(c *Config) {}, false},
		{"inverted preferred", func(c *Config) { c.PreferredStart, c.PreferredEnd = 12000, 11000 }, true},
		{"legacy above max", func(c *Config) { c.LegacyEnd = 70000 }, true},
		{"negative start", func(c *Config) { c.PreferredStart = -1 }, true},
		{"empty path", func(c *Config) { c.RegistryPath = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				RegistryPath:   "/tmp/r.json",
				PreferredStart: 11000,
				PreferredEnd:   12000,
				LegacyStart:    3000,
				LegacyEnd:      8000,
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
