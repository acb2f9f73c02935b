package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/garland/internal/ports/primary"
)

// ConnectionAdapter is a thin adapter that translates CLI operations to
// ConnectionService calls.
type ConnectionAdapter struct {
	service primary.ConnectionService
	out     io.Writer
}

// NewConnectionAdapter creates a new ConnectionAdapter with the given service.
func NewConnectionAdapter(service primary.ConnectionService, out io.Writer) *ConnectionAdapter {
	return &ConnectionAdapter{
		service: service,
		out:     out,
	}
}

// Create wires a source port to a destination item inside an open session.
func (a *ConnectionAdapter) Create(ctx context.Context, sessionID, fromItem, fromPort, toItem string, illuminates []string, notes string) error {
	conn, err := a.service.CreateConnection(ctx, primary.CreateConnectionRequest{
		SessionID:   sessionID,
		FromItemID:  fromItem,
		FromPort:    fromPort,
		ToItemID:    toItem,
		Illuminates: illuminates,
		Notes:       notes,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created connection %s: %s/%s -> %s/%s\n",
		conn.ID, conn.FromItemID, conn.FromPort, conn.ToItemID, conn.ToPort)
	return nil
}

// Remove soft-removes a connection, freeing its source port.
func (a *ConnectionAdapter) Remove(ctx context.Context, connectionID, reason string) error {
	conn, err := a.service.RemoveConnection(ctx, primary.RemoveConnectionRequest{
		ConnectionID: connectionID,
		Reason:       reason,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Removed connection %s (port %s/%s freed)\n",
		conn.ID, conn.FromItemID, conn.FromPort)
	return nil
}

// Photos uploads photo files and attaches the stored ids to a connection.
func (a *ConnectionAdapter) Photos(ctx context.Context, connectionID string, paths []string) error {
	conn, err := a.service.AttachPhotos(ctx, primary.AttachPhotosRequest{
		ConnectionID: connectionID,
		Paths:        paths,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Connection %s now has %d photo(s)\n", conn.ID, len(conn.PhotoIDs))
	return nil
}

// Show displays a single connection.
func (a *ConnectionAdapter) Show(ctx context.Context, connectionID string) error {
	conn, err := a.service.GetConnection(ctx, connectionID)
	if err != nil {
		return fmt.Errorf("failed to get connection: %w", err)
	}

	fmt.Fprintf(a.out, "\nConnection: %s\n", conn.ID)
	fmt.Fprintf(a.out, "Session:    %s (zone %s)\n", conn.SessionID, conn.ZoneCode)
	fmt.Fprintf(a.out, "Wiring:     %s/%s -> %s/%s\n", conn.FromItemID, conn.FromPort, conn.ToItemID, conn.ToPort)
	if len(conn.Illuminates) > 0 {
		fmt.Fprintf(a.out, "Illuminates: %s\n", strings.Join(conn.Illuminates, ", "))
	}
	if len(conn.PhotoIDs) > 0 {
		fmt.Fprintf(a.out, "Photos:     %s\n", strings.Join(conn.PhotoIDs, ", "))
	}
	if conn.Notes != "" {
		fmt.Fprintf(a.out, "Notes:      %s\n", conn.Notes)
	}
	fmt.Fprintf(a.out, "Connected:  %s\n", conn.ConnectedAt)
	if conn.Removed {
		reason := conn.RemovalReason
		if reason == "" {
			reason = "no reason recorded"
		}
		fmt.Fprintf(a.out, "Removed:    %s (%s)\n", conn.RemovedAt, reason)
	}
	fmt.Fprintln(a.out)

	return nil
}
