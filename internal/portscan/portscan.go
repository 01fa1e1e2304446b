// Package portscan enumerates the TCP ports currently bound on the local
// host. Results are point-in-time: a port reported free here can be bound
// by another process before the caller acts on it.
package portscan

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	gnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// Prober reads the OS connection table. It unions two overlapping methods:
// the structured connection-table API and parsed netstat output, because on
// some platforms the API misses certain listener types.
type Prober struct{}

// New creates a Prober.
func New() *Prober {
	return &Prober{}
}

// ListeningPorts returns every local TCP port with a listener on it. One of
// the two detection methods failing is tolerated as long as the other
// succeeds.
func (p *Prober) ListeningPorts(ctx context.Context) (map[int]struct{}, error) {
	ports := make(map[int]struct{})

	apiPorts, apiErr := connectionTablePorts(ctx)
	for port := range apiPorts {
		ports[port] = struct{}{}
	}

	nsPorts, nsErr := netstatPorts(ctx)
	for port := range nsPorts {
		ports[port] = struct{}{}
	}

	if apiErr != nil && nsErr != nil {
		return nil, fmt.Errorf("failed to enumerate listening ports: %w", apiErr)
	}

	return ports, nil
}

// ProcessNameForPort resolves the name of the process listening on port.
// Best effort only: any failure reports "Unknown".
func (p *Prober) ProcessNameForPort(ctx context.Context, port int) string {
	conns, err := gnet.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		return "Unknown"
	}

	for _, conn := range conns {
		if conn.Status != "LISTEN" || int(conn.Laddr.Port) != port || conn.Pid <= 0 {
			continue
		}
		proc, err := process.NewProcessWithContext(ctx, conn.Pid)
		if err != nil {
			continue
		}
		name, err := proc.NameWithContext(ctx)
		if err != nil || name == "" {
			continue
		}
		return name
	}

	return "Unknown"
}

func connectionTablePorts(ctx context.Context) (map[int]struct{}, error) {
	conns, err := gnet.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		return nil, fmt.Errorf("failed to read connection table: %w", err)
	}

	ports := make(map[int]struct{})
	for _, conn := range conns {
		if conn.Status == "LISTEN" {
			ports[int(conn.Laddr.Port)] = struct{}{}
		}
	}
	return ports, nil
}

func netstatPorts(ctx context.Context) (map[int]struct{}, error) {
	out, err := exec.CommandContext(ctx, "netstat", "-an").Output()
	if err != nil {
		return nil, fmt.Errorf("netstat failed: %w", err)
	}
	return parseNetstat(string(out)), nil
}

// parseNetstat extracts listening local ports from netstat -an output. It
// handles the Windows ("TCP 0.0.0.0:80 ... LISTENING"), Linux
// ("tcp ... 0.0.0.0:80 ... LISTEN") and BSD ("tcp4 ... *.80 ... LISTEN")
// formats. The local address is always the first field that carries a port.
func parseNetstat(out string) map[int]struct{} {
	ports := make(map[int]struct{})

	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "LISTEN") {
			continue
		}
		for _, field := range strings.Fields(line) {
			port, ok := splitPort(field)
			if ok {
				ports[port] = struct{}{}
				break
			}
		}
	}

	return ports
}

// splitPort pulls the port out of an address like "0.0.0.0:80", "[::]:80"
// or "*.80".
func splitPort(addr string) (int, bool) {
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		if port, ok := parsePort(addr[i+1:]); ok {
			return port, true
		}
	}
	if i := strings.LastIndex(addr, "."); i >= 0 {
		if port, ok := parsePort(addr[i+1:]); ok {
			return port, true
		}
	}
	return 0, false
}

func parsePort(s string) (int, bool) {
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return 0, false
	}
	return port, true
}
