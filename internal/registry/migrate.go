package registry

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// ListMigrationCandidates reports listeners bound inside the legacy range,
// each with a best-effort owning process name. A failed name lookup reports
// the port as "Unknown" rather than failing the whole listing.
func (r *Registry) ListMigrationCandidates(ctx context.Context) ([]MigrationCandidate, error) {
	bound, err := r.scan.ListeningPorts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan bound ports: %w", err)
	}

	var ports []int
	for port := range bound {
		if port >= r.opts.LegacyStart && port <= r.opts.LegacyEnd {
			ports = append(ports, port)
		}
	}
	sort.Ints(ports)

	candidates := make([]MigrationCandidate, 0, len(ports))
	for _, port := range ports {
		candidates = append(candidates, MigrationCandidate{
			Port:        port,
			ProcessName: r.scan.ProcessNameForPort(ctx, port),
		})
	}

	return candidates, nil
}

// MigratePort allocates a fresh port in the preferred range for the named
// application and records the move: a Migrated history event linking old to
// new, and a MigratedTo pointer on the old registration when one exists.
// The process bound to the old port is left alone; stopping or restarting
// it is the caller's job.
func (r *Registry) MigratePort(ctx context.Context, oldPort int, applicationName string) (int, error) {
	newPort, err := r.FindAvailablePort(ctx, applicationName, 0)
	if err != nil {
		return 0, err
	}

	err = r.store.WithLock(func() error {
		doc, err := r.store.Load()
		if err != nil {
			return err
		}

		if reg, ok := doc.RegisteredPorts[oldPort]; ok {
			target := newPort
			reg.MigratedTo = &target
			doc.RegisteredPorts[oldPort] = reg
		}

		from, to := oldPort, newPort
		doc.PortHistory = append(doc.PortHistory, PortHistoryEvent{
			Port:            oldPort,
			ApplicationName: applicationName,
			Action:          ActionMigrated,
			Timestamp:       time.Now().UTC(),
			OldPort:         &from,
			NewPort:         &to,
		})

		return r.store.Save(doc)
	})
	if err != nil {
		return 0, err
	}

	return newPort, nil
}
