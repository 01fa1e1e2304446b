package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/kmransom56/portreg/internal/registry"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the port allocation audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry()
			if err != nil {
				return err
			}

			events, err := reg.History()
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}

			if len(events) == 0 {
				fmt.Println("No history recorded")
				return nil
			}

			green := color.New(color.FgGreen).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()
			cyan := color.New(color.FgCyan).SprintFunc()

			for _, ev := range events {
				action := ev.Action
				switch ev.Action {
				case registry.ActionRegistered:
					action = green(ev.Action)
				case registry.ActionUnregistered:
					action = yellow(ev.Action)
				case registry.ActionMigrated:
					action = cyan(ev.Action)
				}

				fmt.Printf("%s  %-12s  port %d  %s",
					ev.Timestamp.Format("2006-01-02 15:04:05"), action, ev.Port, ev.ApplicationName)
				if ev.Action == registry.ActionMigrated && ev.OldPort != nil && ev.NewPort != nil {
					fmt.Printf("  (%d -> %d)", *ev.OldPort, *ev.NewPort)
				}
				fmt.Println()
			}

			return nil
		},
	}

	return cmd
}
