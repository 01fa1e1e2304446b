package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// EnvRegistryPath is the environment variable consumers in any language use
// to locate the registry file instead of hard-coding its path.
const EnvRegistryPath = "PORT_REGISTRY_PATH"

// Config holds the registry location and the port ranges.
type Config struct {
	RegistryPath string

	// Ports in this range are handed out to new applications. Deliberately
	// above common developer defaults (3000-8000) to minimize first-pass
	// collisions.
	PreferredStart int
	PreferredEnd   int

	// Ports in this range are flagged as migration candidates.
	LegacyStart int
	LegacyEnd   int
}

// fileConfig is the shape of the optional config.toml.
type fileConfig struct {
	RegistryPath   string `toml:"registry_path"`
	PreferredStart int    `toml:"preferred_start"`
	PreferredEnd   int    `toml:"preferred_end"`
	LegacyStart    int    `toml:"legacy_start"`
	LegacyEnd      int    `toml:"legacy_end"`
}

// Load builds the configuration in layers: built-in defaults, then the
// optional ~/AI-Tools/config.toml, then the environment. A .env file in the
// working directory is loaded first so the environment layer sees it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		PreferredStart: 11000,
		PreferredEnd:   12000,
		LegacyStart:    3000,
		LegacyEnd:      8000,
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	cfg.RegistryPath = filepath.Join(home, "AI-Tools", "port-registry.json")

	tomlPath := filepath.Join(home, "AI-Tools", "config.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		if err := loadConfigFile(tomlPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", tomlPath, err)
		}
	}

	if path := os.Getenv(EnvRegistryPath); path != "" {
		cfg.RegistryPath = path
	}

	if err := cfg.expandVariables(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return err
	}

	if fc.RegistryPath != "" {
		cfg.RegistryPath = fc.RegistryPath
	}
	if fc.PreferredStart != 0 {
		cfg.PreferredStart = fc.PreferredStart
	}
	if fc.PreferredEnd != 0 {
		cfg.PreferredEnd = fc.PreferredEnd
	}
	if fc.LegacyStart != 0 {
		cfg.LegacyStart = fc.LegacyStart
	}
	if fc.LegacyEnd != 0 {
		cfg.LegacyEnd = fc.LegacyEnd
	}

	return nil
}

// expandVariables expands a leading tilde in the registry path.
func (c *Config) expandVariables() error {
	if strings.HasPrefix(c.RegistryPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to expand ~ in registry path: %w", err)
		}
		c.RegistryPath = strings.Replace(c.RegistryPath, "~", home, 1)
	}
	return nil
}

// Validate checks the port ranges are sane.
func (c *Config) Validate() error {
	ranges := []struct {
		name       string
		start, end int
	}{
		{"preferred", c.PreferredStart, c.PreferredEnd},
		{"legacy", c.LegacyStart, c.LegacyEnd},
	}

	for _, r := range ranges {
		if r.start < 0 || r.end > 65535 {
			return fmt.Errorf("%s range %d-%d outside 0-65535", r.name, r.start, r.end)
		}
		if r.start > r.end {
			return fmt.Errorf("%s range %d-%d is inverted", r.name, r.start, r.end)
		}
	}

	if c.RegistryPath == "" {
		return errors.New("registry path is empty")
	}

	return nil
}
