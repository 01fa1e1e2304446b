package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewUnregisterCmd creates the unregister command
func NewUnregisterCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "unregister",
		Short: "Release a port reservation",
		Long:  `Removes the registration for a port. Unregistering a port that was never registered is a no-op.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry()
			if err != nil {
				return err
			}

			if err := reg.UnregisterPort(port); err != nil {
				return err
			}

			fmt.Printf("Unregistered port %d\n", port)
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to unregister (required)")
	_ = cmd.MarkFlagRequired("port")

	return cmd
}
