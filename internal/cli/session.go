package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/garland/internal/wire"
)

// SessionCmd returns the session command
func SessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage work sessions",
		Long:  `Open and close timed work sessions in deployment zones.`,
	}

	cmd.AddCommand(sessionStartCmd())
	cmd.AddCommand(sessionEndCmd())
	cmd.AddCommand(sessionShowCmd())
	cmd.AddCommand(sessionHistoryCmd())

	return cmd
}

func sessionStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start [deployment-id] [zone-code]",
		Short: "Open a work session in a zone",
		Long: `Open a work session. A zone can hold at most one open session.

Examples:
  garland session start DEP-2026-CHRISTMAS FY`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SessionAdapter().Start(cmd.Context(), args[0], args[1])
		},
	}
}

func sessionEndCmd() *cobra.Command {
	var notes string
	var skipPhotos bool

	cmd := &cobra.Command{
		Use:   "end [session-id]",
		Short: "Close a work session",
		Long: `Close a work session and record its duration. Fails while any
decoration-bound connection made in the session lacks photo evidence,
unless --skip-photos is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SessionAdapter().End(cmd.Context(), args[0], notes, skipPhotos)
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Session notes")
	cmd.Flags().BoolVar(&skipPhotos, "skip-photos", false, "Close without photo evidence review")
	return cmd
}

func sessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [session-id]",
		Short: "Show a session with its items and connections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SessionAdapter().Show(cmd.Context(), args[0])
		},
	}
}

func sessionHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [deployment-id] [zone-code]",
		Short: "Show a zone's session history",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SessionAdapter().History(cmd.Context(), args[0], args[1])
		},
	}
}
