package cmd

import (
	"fmt"

	"github.com/kmransom56/portreg/internal/config"
	"github.com/kmransom56/portreg/internal/portscan"
	"github.com/kmransom56/portreg/internal/registry"
)

// openRegistry wires the registry from config, store and the OS prober.
func openRegistry() (*registry.Registry, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	opts := registry.Options{
		PreferredStart: cfg.PreferredStart,
		PreferredEnd:   cfg.PreferredEnd,
		LegacyStart:    cfg.LegacyStart,
		LegacyEnd:      cfg.LegacyEnd,
	}

	return registry.New(registry.NewStore(cfg.RegistryPath), portscan.New(), opts), nil
}
