package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	var app string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Look up the registered port for an application",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry()
			if err != nil {
				return err
			}

			port, err := reg.GetApplicationPort(app)
			if err != nil {
				return err
			}

			fmt.Println(port)
			return nil
		},
	}

	cmd.Flags().StringVar(&app, "app", "", "Application name (required)")
	_ = cmd.MarkFlagRequired("app")

	return cmd
}
