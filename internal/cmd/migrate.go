package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate command
func NewMigrateCmd() *cobra.Command {
	var (
		port int
		app  string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "List legacy-range listeners, or move one to the preferred range",
		Long: `Without flags, lists TCP listeners bound in the legacy range with their
owning process where it can be resolved. With --port and --app, allocates a
fresh port in the preferred range and records the migration. The process
bound to the old port is not touched; restarting it on the new port is up
to you.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry()
			if err != nil {
				return err
			}

			if port != 0 {
				if app == "" {
					return fmt.Errorf("--app is required with --port")
				}

				newPort, err := reg.MigratePort(cmd.Context(), port, app)
				if err != nil {
					return err
				}

				fmt.Printf("Migrated %s: %d -> %d\n", app, port, newPort)
				fmt.Println("Restart the application on the new port to complete the move")
				return nil
			}

			candidates, err := reg.ListMigrationCandidates(cmd.Context())
			if err != nil {
				return err
			}

			if len(candidates) == 0 {
				fmt.Println("No listeners found in the legacy range")
				return nil
			}

			yellow := color.New(color.FgYellow).SprintFunc()

			fmt.Println("Legacy-range listeners")
			fmt.Println("======================")
			fmt.Println()
			for _, c := range candidates {
				fmt.Printf("  %s  %s\n", yellow(fmt.Sprintf("%5d", c.Port)), c.ProcessName)
			}
			fmt.Println()
			fmt.Println("Use 'portreg migrate --port <n> --app <name>' to move one")

			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Legacy port to migrate")
	cmd.Flags().StringVar(&app, "app", "", "Application name for the migrated port")

	return cmd
}
