package registry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoPortAvailable means every port in the preferred range is taken.
// Callers should surface this as "no port available", not retry.
var ErrNoPortAvailable = errors.New("no port available")

// ErrNotRegistered means no registration matched the lookup. This is an
// empty result, not a failure of the registry itself.
var ErrNotRegistered = errors.New("application not registered")

// Scanner enumerates what is actually bound on the host right now. The
// result is point-in-time and advisory: a port reported free can be bound
// by another process before the caller gets to it.
type Scanner interface {
	ListeningPorts(ctx context.Context) (map[int]struct{}, error)
	ProcessNameForPort(ctx context.Context, port int) string
}

// Options configures the port ranges the allocator works with.
type Options struct {
	// PreferredStart/End is the range new allocations come from.
	PreferredStart int
	PreferredEnd   int
	// LegacyStart/End is the range scanned for migration candidates.
	LegacyStart int
	LegacyEnd   int
}

// DefaultOptions returns the stock ranges: allocations from [11000, 12000],
// migration candidates from [3000, 8000].
func DefaultOptions() Options {
	return Options{
		PreferredStart: 11000,
		PreferredEnd:   12000,
		LegacyStart:    3000,
		LegacyEnd:      8000,
	}
}

// Registry manages port allocations backed by the shared registry file.
type Registry struct {
	store *Store
	scan  Scanner
	opts  Options
}

// New creates a registry over the given store and OS scanner.
func New(store *Store, scanner Scanner, opts Options) *Registry {
	return &Registry{store: store, scan: scanner, opts: opts}
}

// FindAvailablePort picks a free port for the named application, registers
// it, and returns it. A port counts as used if the OS scan sees a listener
// on it or the registry holds a reservation for it, so a port registered
// moments ago stays protected even before its owner starts listening.
//
// A non-zero preferred port is honored when it falls inside the preferred
// range and is unused; otherwise the preferred range is scanned ascending
// for the first free port. Returns ErrNoPortAvailable when the range is
// exhausted.
func (r *Registry) FindAvailablePort(ctx context.Context, applicationName string, preferredPort int) (int, error) {
	if applicationName == "" {
		return 0, errors.New("application name is required")
	}

	var assigned int
	err := r.store.WithLock(func() error {
		doc, err := r.store.Load()
		if err != nil {
			return err
		}

		bound, err := r.scan.ListeningPorts(ctx)
		if err != nil {
			return fmt.Errorf("failed to scan bound ports: %w", err)
		}
		scannedAt := time.Now().UTC()

		used := make(map[int]struct{}, len(bound)+len(doc.RegisteredPorts))
		for port := range bound {
			used[port] = struct{}{}
		}
		for port := range doc.RegisteredPorts {
			used[port] = struct{}{}
		}

		port := 0
		if preferredPort != 0 && r.inPreferredRange(preferredPort) {
			if _, taken := used[preferredPort]; !taken {
				port = preferredPort
			}
		}
		if port == 0 {
			for p := r.opts.PreferredStart; p <= r.opts.PreferredEnd; p++ {
				if _, taken := used[p]; !taken {
					port = p
					break
				}
			}
		}
		if port == 0 {
			return fmt.Errorf("no free port in range %d-%d: %w",
				r.opts.PreferredStart, r.opts.PreferredEnd, ErrNoPortAvailable)
		}

		now := time.Now().UTC()
		doc.RegisteredPorts[port] = PortRegistration{
			ApplicationName: applicationName,
			RegisteredAt:    now,
			LastUsed:        now,
		}
		doc.PortHistory = append(doc.PortHistory, PortHistoryEvent{
			Port:            port,
			ApplicationName: applicationName,
			Action:          ActionRegistered,
			Timestamp:       now,
		})
		doc.LastScan = &scannedAt

		if err := r.store.Save(doc); err != nil {
			return err
		}
		assigned = port
		return nil
	})
	if err != nil {
		return 0, err
	}

	return assigned, nil
}

// RegisterPort records a reservation for a port the caller already knows is
// free, for example because it just bound the socket itself. No scan or
// exclusivity check runs; a prior registration for the same port is
// silently overwritten.
func (r *Registry) RegisterPort(port int, applicationName, description string) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("port %d out of range 0-65535", port)
	}
	if applicationName == "" {
		return errors.New("application name is required")
	}

	return r.store.WithLock(func() error {
		doc, err := r.store.Load()
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		doc.RegisteredPorts[port] = PortRegistration{
			ApplicationName: applicationName,
			Description:     description,
			RegisteredAt:    now,
			LastUsed:        now,
		}
		doc.PortHistory = append(doc.PortHistory, PortHistoryEvent{
			Port:            port,
			ApplicationName: applicationName,
			Action:          ActionRegistered,
			Timestamp:       now,
		})

		return r.store.Save(doc)
	})
}

// GetApplicationPort resolves an application name to its registered port.
// Matching is exact and case-sensitive. If several ports share the name,
// the most recently registered entry wins, ties broken by higher port so
// repeated lookups stay deterministic. Lookups do not refresh LastUsed.
func (r *Registry) GetApplicationPort(applicationName string) (int, error) {
	doc, err := r.store.Load()
	if err != nil {
		return 0, err
	}

	found := -1
	var foundAt time.Time
	for port, reg := range doc.RegisteredPorts {
		if reg.ApplicationName != applicationName {
			continue
		}
		if found == -1 || reg.RegisteredAt.After(foundAt) ||
			(reg.RegisteredAt.Equal(foundAt) && port > found) {
			found = port
			foundAt = reg.RegisteredAt
		}
	}

	if found == -1 {
		return 0, fmt.Errorf("no port registered for %s: %w", applicationName, ErrNotRegistered)
	}
	return found, nil
}

// UnregisterPort releases a reservation. Unregistering a port that was
// never registered is a no-op and records nothing.
func (r *Registry) UnregisterPort(port int) error {
	return r.store.WithLock(func() error {
		doc, err := r.store.Load()
		if err != nil {
			return err
		}

		reg, ok := doc.RegisteredPorts[port]
		if !ok {
			return nil
		}

		delete(doc.RegisteredPorts, port)
		doc.PortHistory = append(doc.PortHistory, PortHistoryEvent{
			Port:            port,
			ApplicationName: reg.ApplicationName,
			Action:          ActionUnregistered,
			Timestamp:       time.Now().UTC(),
		})

		return r.store.Save(doc)
	})
}

// List returns the full registrations map.
func (r *Registry) List() (map[int]PortRegistration, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return doc.RegisteredPorts, nil
}

// History returns the append-only audit log, oldest first.
func (r *Registry) History() ([]PortHistoryEvent, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return doc.PortHistory, nil
}

func (r *Registry) inPreferredRange(port int) bool {
	return port >= r.opts.PreferredStart && port <= r.opts.PreferredEnd
}
