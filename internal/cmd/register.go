package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var (
		app  string
		port int
		desc string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a specific port for an application",
		Long: `Records a reservation for a port the caller already knows is free,
without scanning. Any prior registration for the port is overwritten.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry()
			if err != nil {
				return err
			}

			if err := reg.RegisterPort(port, app, desc); err != nil {
				return err
			}

			fmt.Printf("Registered port %d for %s\n", port, app)
			return nil
		},
	}

	cmd.Flags().StringVar(&app, "app", "", "Application name (required)")
	cmd.Flags().IntVar(&port, "port", 0, "Port to register (required)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	_ = cmd.MarkFlagRequired("app")
	_ = cmd.MarkFlagRequired("port")

	return cmd
}
