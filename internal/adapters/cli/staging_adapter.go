package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/garland/internal/ports/primary"
)

// StagingAdapter is a thin adapter that translates CLI operations to
// StagingService calls.
type StagingAdapter struct {
	service primary.StagingService
	out     io.Writer
}

// NewStagingAdapter creates a new StagingAdapter with the given service.
func NewStagingAdapter(service primary.StagingService, out io.Writer) *StagingAdapter {
	return &StagingAdapter{
		service: service,
		out:     out,
	}
}

// CreateTote registers a tote with its contents.
func (a *StagingAdapter) CreateTote(ctx context.Context, deploymentID, label string, itemIDs []string) error {
	tote, err := a.service.CreateTote(ctx, primary.CreateToteRequest{
		DeploymentID: deploymentID,
		Label:        label,
		ItemIDs:      itemIDs,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created tote %s (%q, %d item(s))\n", tote.ID, tote.Label, len(tote.Contents))
	return nil
}

// Stage marks the listed items (or the whole tote when none are given) as
// staged.
func (a *StagingAdapter) Stage(ctx context.Context, toteID string, itemIDs []string) error {
	tote, err := a.service.StageTote(ctx, primary.StageToteRequest{
		ToteID:  toteID,
		ItemIDs: itemIDs,
	})
	if err != nil {
		return err
	}

	if tote.Staged {
		fmt.Fprintf(a.out, "✓ Tote %s fully staged\n", tote.ID)
	} else {
		fmt.Fprintf(a.out, "✓ Staged %d of %d item(s) in tote %s\n",
			len(tote.StagedItems), len(tote.Contents), tote.ID)
	}
	return nil
}

// Board renders the staging board for a deployment.
func (a *StagingAdapter) Board(ctx context.Context, deploymentID string) error {
	board, err := a.service.StagingBoard(ctx, deploymentID)
	if err != nil {
		return fmt.Errorf("failed to build staging board: %w", err)
	}

	if len(board.Available) == 0 && len(board.Staged) == 0 {
		fmt.Fprintln(a.out, "No totes registered")
		return nil
	}

	fmt.Fprintln(a.out, "\nAvailable:")
	for _, t := range board.Available {
		fmt.Fprintf(a.out, "  %s %q (%d/%d staged): %s\n",
			t.ID, t.Label, len(t.StagedItems), len(t.Contents), strings.Join(t.Contents, ", "))
	}
	fmt.Fprintln(a.out, "\nStaged:")
	for _, t := range board.Staged {
		fmt.Fprintf(a.out, "  %s %q: %s\n", t.ID, t.Label, strings.Join(t.Contents, ", "))
	}
	fmt.Fprintln(a.out)

	return nil
}
