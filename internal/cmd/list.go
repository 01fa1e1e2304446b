package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print all port registrations as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry()
			if err != nil {
				return err
			}

			registrations, err := reg.List()
			if err != nil {
				return fmt.Errorf("failed to list registrations: %w", err)
			}

			out, err := json.MarshalIndent(registrations, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to serialize registrations: %w", err)
			}

			fmt.Println(string(out))
			return nil
		},
	}

	return cmd
}
