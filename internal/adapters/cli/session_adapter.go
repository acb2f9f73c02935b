package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/garland/internal/ports/primary"
)

// SessionAdapter is a thin adapter that translates CLI operations to
// SessionService calls.
type SessionAdapter struct {
	service primary.SessionService
	out     io.Writer
}

// NewSessionAdapter creates a new SessionAdapter with the given service.
func NewSessionAdapter(service primary.SessionService, out io.Writer) *SessionAdapter {
	return &SessionAdapter{
		service: service,
		out:     out,
	}
}

// Start opens a work session in a zone.
func (a *SessionAdapter) Start(ctx context.Context, deploymentID, zoneCode string) error {
	sess, err := a.service.StartSession(ctx, primary.StartSessionRequest{
		DeploymentID: deploymentID,
		ZoneCode:     zoneCode,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Started session %s in zone %s\n", sess.ID, sess.ZoneCode)
	return nil
}

// End closes a work session.
func (a *SessionAdapter) End(ctx context.Context, sessionID, notes string, skipPhotoReview bool) error {
	sess, err := a.service.EndSession(ctx, primary.EndSessionRequest{
		SessionID:       sessionID,
		Notes:           notes,
		SkipPhotoReview: skipPhotoReview,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Ended session %s (%s)\n", sess.ID, formatDuration(sess.DurationSeconds))
	return nil
}

// Show displays a session with its items and connections.
func (a *SessionAdapter) Show(ctx context.Context, sessionID string) error {
	sess, err := a.service.GetSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	a.printSession(sess)
	return nil
}

// History renders a zone's session history, newest entries last, with
// nested active and removed connections.
func (a *SessionAdapter) History(ctx context.Context, deploymentID, zoneCode string) error {
	sessions, err := a.service.ZoneHistory(ctx, deploymentID, zoneCode)
	if err != nil {
		return fmt.Errorf("failed to get zone history: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Fprintf(a.out, "No sessions in zone %s\n", zoneCode)
		return nil
	}

	for _, sess := range sessions {
		a.printSession(sess)
	}
	return nil
}

func (a *SessionAdapter) printSession(sess *primary.Session) {
	state := "open"
	if sess.EndTime != "" {
		state = formatDuration(sess.DurationSeconds)
	}
	fmt.Fprintf(a.out, "\nSession %s [%s] zone %s, started %s\n", sess.ID, state, sess.ZoneCode, sess.StartTime)
	if sess.Notes != "" {
		fmt.Fprintf(a.out, "  Notes: %s\n", sess.Notes)
	}
	if len(sess.ItemsDeployed) > 0 {
		fmt.Fprintf(a.out, "  Items: %s\n", strings.Join(sess.ItemsDeployed, ", "))
	}
	for _, c := range sess.Connections {
		fmt.Fprintf(a.out, "  %s: %s/%s -> %s/%s (%d photo(s))\n",
			c.ID, c.FromItemID, c.FromPort, c.ToItemID, c.ToPort, len(c.PhotoIDs))
	}
	for _, c := range sess.Removed {
		reason := c.RemovalReason
		if reason == "" {
			reason = "no reason recorded"
		}
		fmt.Fprintf(a.out, "  %s: %s/%s -> %s/%s [removed: %s]\n",
			c.ID, c.FromItemID, c.FromPort, c.ToItemID, c.ToPort, reason)
	}
}

// formatDuration renders a closed session duration as e.g. "1h05m".
func formatDuration(seconds int64) string {
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
