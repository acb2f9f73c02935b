package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/garland/internal/cli"
	"github.com/example/garland/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "garland",
		Short:   "garland - seasonal deployment topology and session tracker",
		Version: version.String(),
		Long: `garland tracks seasonal yard deployments: zones, timed work sessions,
the power wiring graph with photo evidence, staging totes, and teardown.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.DeploymentCmd())
	rootCmd.AddCommand(cli.SessionCmd())
	rootCmd.AddCommand(cli.ConnectionCmd())
	rootCmd.AddCommand(cli.StagingCmd())
	rootCmd.AddCommand(cli.TeardownCmd())
	rootCmd.AddCommand(cli.ServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
