package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/garland/internal/wire"
)

// StagingCmd returns the staging command
func StagingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tote",
		Short: "Manage staging totes",
		Long:  `Register item totes and stage them for deployment.`,
	}

	cmd.AddCommand(toteCreateCmd())
	cmd.AddCommand(toteStageCmd())
	cmd.AddCommand(toteBoardCmd())

	return cmd
}

func toteCreateCmd() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "create [deployment-id] [item-id...]",
		Short: "Register a tote with its contents",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.StagingAdapter().CreateTote(cmd.Context(), args[0], label, args[1:])
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Human-readable tote label")
	return cmd
}

func toteStageCmd() *cobra.Command {
	var items []string

	cmd := &cobra.Command{
		Use:   "stage [tote-id]",
		Short: "Stage a tote's items",
		Long: `Mark items in a tote as staged. With no --items flag the whole tote
is staged. All-or-nothing: one already-staged item aborts the call.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.StagingAdapter().Stage(cmd.Context(), args[0], items)
		},
	}

	cmd.Flags().StringSliceVar(&items, "items", nil, "Subset of items to stage (default: all)")
	return cmd
}

func toteBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board [deployment-id]",
		Short: "Show the staging board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.StagingAdapter().Board(cmd.Context(), args[0])
		},
	}
}
