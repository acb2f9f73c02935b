package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/garland/internal/ports/primary"
)

// TeardownAdapter is a thin adapter that translates CLI operations to
// TeardownService calls.
type TeardownAdapter struct {
	service primary.TeardownService
	out     io.Writer
}

// NewTeardownAdapter creates a new TeardownAdapter with the given service.
func NewTeardownAdapter(service primary.TeardownService, out io.Writer) *TeardownAdapter {
	return &TeardownAdapter{
		service: service,
		out:     out,
	}
}

// Item marks a deployed item as torn down.
func (a *TeardownAdapter) Item(ctx context.Context, deploymentID, zoneCode, itemID string) error {
	resp, err := a.service.TeardownItem(ctx, primary.TeardownItemRequest{
		DeploymentID: deploymentID,
		ZoneCode:     zoneCode,
		ItemID:       itemID,
	})
	if err != nil {
		return err
	}

	if resp.AlreadyDone {
		fmt.Fprintf(a.out, "Item %s already torn down\n", resp.ItemID)
	} else {
		fmt.Fprintf(a.out, "✓ Tore down %s in zone %s\n", resp.ItemID, resp.ZoneCode)
	}
	if resp.ZoneCompleted {
		fmt.Fprintf(a.out, "✓ Zone %s fully torn down\n", resp.ZoneCode)
	}
	return nil
}

// Status reports whether a zone is fully torn down.
func (a *TeardownAdapter) Status(ctx context.Context, deploymentID, zoneCode string) error {
	done, err := a.service.ZoneFullyTornDown(ctx, deploymentID, zoneCode)
	if err != nil {
		return fmt.Errorf("failed to check zone teardown: %w", err)
	}

	if done {
		fmt.Fprintf(a.out, "Zone %s: fully torn down\n", zoneCode)
	} else {
		fmt.Fprintf(a.out, "Zone %s: teardown incomplete\n", zoneCode)
	}
	return nil
}
