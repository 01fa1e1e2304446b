package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewGetCmd creates the get command
func NewGetCmd() *cobra.Command {
	var (
		app  string
		port int
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Assign a free port to an application",
		Long: `Finds a free port for the named application, registers it in the
port registry, and prints it. A preferred port is honored when it is free
and inside the preferred range.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry()
			if err != nil {
				return err
			}

			assigned, err := reg.FindAvailablePort(cmd.Context(), app, port)
			if err != nil {
				return err
			}

			fmt.Println(assigned)
			return nil
		},
	}

	cmd.Flags().StringVar(&app, "app", "", "Application name (required)")
	cmd.Flags().IntVar(&port, "port", 0, "Preferred port (0 to auto-assign)")
	_ = cmd.MarkFlagRequired("app")

	return cmd
}
