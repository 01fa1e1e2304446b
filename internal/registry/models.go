package registry

import "time"

// History event actions.
const (
	ActionRegistered   = "Registered"
	ActionUnregistered = "Unregistered"
	ActionMigrated     = "Migrated"
)

// PortRegistration is one reserved port. A registration is a reservation,
// not a liveness check: the port stays reserved even if nothing is
// currently listening on it.
type PortRegistration struct {
	ApplicationName string    `json:"ApplicationName"`
	Description     string    `json:"Description"`
	RegisteredAt    time.Time `json:"RegisteredAt"`
	LastUsed        time.Time `json:"LastUsed"`
	MigratedTo      *int      `json:"MigratedTo,omitempty"`
}

// PortHistoryEvent is an append-only audit record. Events are never mutated
// or deleted, and the allocator never reads them back for decisions.
type PortHistoryEvent struct {
	Port            int       `json:"Port"`
	ApplicationName string    `json:"ApplicationName"`
	Action          string    `json:"Action"`
	Timestamp       time.Time `json:"Timestamp"`
	OldPort         *int      `json:"OldPort,omitempty"`
	NewPort         *int      `json:"NewPort,omitempty"`
}

// Document mirrors the registry file on disk. The JSON layout is a contract
// shared with non-Go helpers that read the file directly, so field names
// match the document verbatim. Map keys serialize as decimal strings.
type Document struct {
	RegisteredPorts map[int]PortRegistration `json:"RegisteredPorts"`
	PortHistory     []PortHistoryEvent       `json:"PortHistory"`
	LastScan        *time.Time               `json:"LastScan,omitempty"`
}

// NewDocument returns an empty registry document.
func NewDocument() *Document {
	return &Document{
		RegisteredPorts: make(map[int]PortRegistration),
		PortHistory:     []PortHistoryEvent{},
	}
}

// MigrationCandidate is a listener found in the legacy port range.
type MigrationCandidate struct {
	Port        int    `json:"Port"`
	ProcessName string `json:"ProcessName"`
}
