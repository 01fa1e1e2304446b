package cmd

import (
	"fmt"
	"sort"

	"github.com/kmransom56/portreg/internal/portscan"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Print all TCP ports currently bound on this host",
		Long: `Enumerates local listening TCP ports. The result is point-in-time:
a port shown free here can be taken by another process a moment later.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prober := portscan.New()

			bound, err := prober.ListeningPorts(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to scan ports: %w", err)
			}

			ports := make([]int, 0, len(bound))
			for port := range bound {
				ports = append(ports, port)
			}
			sort.Ints(ports)

			for _, port := range ports {
				fmt.Println(port)
			}

			return nil
		},
	}

	return cmd
}
