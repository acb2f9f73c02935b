package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/garland/internal/wire"
)

// TeardownCmd returns the teardown command
func TeardownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teardown",
		Short: "Track post-season teardown",
		Long:  `Mark deployed items as torn down and check per-zone progress.`,
	}

	cmd.AddCommand(teardownItemCmd())
	cmd.AddCommand(teardownStatusCmd())

	return cmd
}

func teardownItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "item [deployment-id] [zone-code] [item-id]",
		Short: "Mark a deployed item as torn down",
		Long: `Mark an item torn down. Idempotent: repeating the command is a no-op.
Only allowed while the deployment is in active teardown.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.TeardownAdapter().Item(cmd.Context(), args[0], args[1], args[2])
		},
	}
}

func teardownStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [deployment-id] [zone-code]",
		Short: "Check whether a zone is fully torn down",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.TeardownAdapter().Status(cmd.Context(), args[0], args[1])
		},
	}
}
