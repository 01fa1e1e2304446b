package main

import (
	"fmt"
	"os"

	"github.com/kmransom56/portreg/internal/cmd"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "portreg",
		Short: "Local TCP port registry for AI developer tools",
		Long: `Portreg hands out non-conflicting TCP ports to locally-run tools and
remembers who got what in a per-user registry file that helpers in any
language can read.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(cmd.NewGetCmd())
	rootCmd.AddCommand(cmd.NewRegisterCmd())
	rootCmd.AddCommand(cmd.NewCheckCmd())
	rootCmd.AddCommand(cmd.NewListCmd())
	rootCmd.AddCommand(cmd.NewUnregisterCmd())
	rootCmd.AddCommand(cmd.NewMigrateCmd())
	rootCmd.AddCommand(cmd.NewHistoryCmd())
	rootCmd.AddCommand(cmd.NewScanCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
