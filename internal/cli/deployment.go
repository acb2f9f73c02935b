package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/example/garland/internal/wire"
)

// DeploymentCmd returns the deployment command
func DeploymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deployment",
		Short: "Manage seasonal deployments",
		Long:  `Create and manage seasonal deployments and their lifecycle phases.`,
	}

	cmd.AddCommand(deploymentCreateCmd())
	cmd.AddCommand(deploymentListCmd())
	cmd.AddCommand(deploymentShowCmd())
	cmd.AddCommand(deploymentStartSetupCmd())
	cmd.AddCommand(deploymentCompleteCmd())
	cmd.AddCommand(deploymentStartTeardownCmd())
	cmd.AddCommand(deploymentCompleteTeardownCmd())
	cmd.AddCommand(deploymentBoardCmd())

	return cmd
}

func deploymentCreateCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "create [season]",
		Short: "Create a new deployment",
		Long: `Create a deployment for a season and year with the fixed zone set.

Examples:
  garland deployment create CHRISTMAS
  garland deployment create HALLOWEEN --year 2027`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = time.Now().Year()
			}
			return wire.DeploymentAdapter().Create(cmd.Context(), args[0], year)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Deployment year (defaults to current year)")
	return cmd
}

func deploymentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List deployments, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DeploymentAdapter().List(cmd.Context())
		},
	}
}

func deploymentShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [deployment-id]",
		Short: "Show deployment details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DeploymentAdapter().Show(cmd.Context(), args[0])
		},
	}
}

func deploymentStartSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start-setup [deployment-id]",
		Short: "Begin active setup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DeploymentAdapter().StartSetup(cmd.Context(), args[0])
		},
	}
}

func deploymentCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete [deployment-id]",
		Short: "Complete setup and mark all deployed items",
		Long: `Complete the deployment. All work sessions must be closed first.
Every item deployed this season is pushed to Deployed status; push
failures are reported but do not undo the completion.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DeploymentAdapter().Complete(cmd.Context(), args[0])
		},
	}
}

func deploymentStartTeardownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start-teardown [deployment-id]",
		Short: "Begin post-season teardown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DeploymentAdapter().StartTeardown(cmd.Context(), args[0])
		},
	}
}

func deploymentCompleteTeardownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete-teardown [deployment-id]",
		Short: "Archive the deployment",
		Long:  `Archive the deployment. Every zone must be fully torn down first.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DeploymentAdapter().CompleteTeardown(cmd.Context(), args[0])
		},
	}
}

func deploymentBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board [deployment-id]",
		Short: "Show the deployment dashboard",
		Long:  `Show per-zone status, session statistics, staging and teardown progress.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DeploymentAdapter().Board(cmd.Context(), args[0])
		},
	}
}
