package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/garland/internal/wire"
)

// ConnectionCmd returns the connection command
func ConnectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connection",
		Short: "Manage wiring connections",
		Long:  `Record, photograph, and remove power wiring connections between items.`,
	}

	cmd.AddCommand(connectionCreateCmd())
	cmd.AddCommand(connectionRemoveCmd())
	cmd.AddCommand(connectionPhotosCmd())
	cmd.AddCommand(connectionShowCmd())

	return cmd
}

func connectionCreateCmd() *cobra.Command {
	var illuminates []string
	var notes string

	cmd := &cobra.Command{
		Use:   "create [session-id] [from-item] [from-port] [to-item]",
		Short: "Wire a source port to a destination item",
		Long: `Record a connection inside an open session. The destination port is
derived from the destination item's socket type; the source port must
not already hold an active connection.

Examples:
  garland connection create SESS-001 ITEM-CORD Female_1 ITEM-SANTA --illuminates ITEM-SANTA`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ConnectionAdapter().Create(cmd.Context(), args[0], args[1], args[2], args[3], illuminates, notes)
		},
	}

	cmd.Flags().StringSliceVar(&illuminates, "illuminates", nil, "Items this connection lights up")
	cmd.Flags().StringVar(&notes, "notes", "", "Connection notes")
	return cmd
}

func connectionRemoveCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "remove [connection-id]",
		Short: "Remove a connection, freeing its source port",
		Long:  `Soft-remove a connection. It stays in the zone's audit trail.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ConnectionAdapter().Remove(cmd.Context(), args[0], reason)
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Why the connection was removed")
	return cmd
}

func connectionPhotosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "photos [connection-id] [file...]",
		Short: "Upload and attach photo evidence",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ConnectionAdapter().Photos(cmd.Context(), args[0], args[1:])
		},
	}
}

func connectionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [connection-id]",
		Short: "Show connection details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ConnectionAdapter().Show(cmd.Context(), args[0])
		},
	}
}
