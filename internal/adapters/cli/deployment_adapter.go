// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// all business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/garland/internal/ports/primary"
)

// DeploymentAdapter is a thin adapter that translates CLI operations to
// DeploymentService calls. It depends only on the DeploymentService
// interface, enabling easy testing with mocks.
type DeploymentAdapter struct {
	service primary.DeploymentService
	out     io.Writer
}

// NewDeploymentAdapter creates a new DeploymentAdapter with the given service.
func NewDeploymentAdapter(service primary.DeploymentService, out io.Writer) *DeploymentAdapter {
	return &DeploymentAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a new deployment for the given season and year.
func (a *DeploymentAdapter) Create(ctx context.Context, season string, year int) error {
	dep, err := a.service.CreateDeployment(ctx, primary.CreateDeploymentRequest{
		Season: season,
		Year:   year,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created deployment %s (%s %d)\n", dep.ID, dep.Season, dep.Year)
	return nil
}

// List lists all deployments, newest first.
func (a *DeploymentAdapter) List(ctx context.Context) error {
	deployments, err := a.service.ListDeployments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list deployments: %w", err)
	}

	if len(deployments) == 0 {
		fmt.Fprintln(a.out, "No deployments found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-22s %-12s %-6s %s\n", "ID", "SEASON", "YEAR", "STATUS")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, d := range deployments {
		fmt.Fprintf(a.out, "%-22s %-12s %-6d %s\n", d.ID, d.Season, d.Year, statusColor(d.Status))
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays details for a single deployment.
func (a *DeploymentAdapter) Show(ctx context.Context, deploymentID string) error {
	dep, err := a.service.GetDeployment(ctx, deploymentID)
	if err != nil {
		return fmt.Errorf("failed to get deployment: %w", err)
	}

	fmt.Fprintf(a.out, "\nDeployment: %s\n", dep.ID)
	fmt.Fprintf(a.out, "Season:     %s %d\n", dep.Season, dep.Year)
	fmt.Fprintf(a.out, "Status:     %s\n", statusColor(dep.Status))
	if dep.SetupStartedAt != "" {
		fmt.Fprintf(a.out, "Setup started:      %s\n", dep.SetupStartedAt)
	}
	if dep.SetupCompletedAt != "" {
		fmt.Fprintf(a.out, "Setup completed:    %s\n", dep.SetupCompletedAt)
	}
	if dep.TeardownStartedAt != "" {
		fmt.Fprintf(a.out, "Teardown started:   %s\n", dep.TeardownStartedAt)
	}
	if dep.TeardownCompletedAt != "" {
		fmt.Fprintf(a.out, "Teardown completed: %s\n", dep.TeardownCompletedAt)
	}
	fmt.Fprintln(a.out)

	return nil
}

// StartSetup moves the deployment from pre_deployment to active_setup.
func (a *DeploymentAdapter) StartSetup(ctx context.Context, deploymentID string) error {
	dep, err := a.service.StartSetup(ctx, deploymentID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Setup started for %s at %s\n", dep.ID, dep.SetupStartedAt)
	return nil
}

// Complete moves the deployment to completed and reports the item status
// push outcome.
func (a *DeploymentAdapter) Complete(ctx context.Context, deploymentID string) error {
	resp, err := a.service.CompleteDeployment(ctx, deploymentID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Deployment %s completed\n", resp.Deployment.ID)
	fmt.Fprintf(a.out, "  Items marked Deployed: %d\n", resp.ItemsUpdated)
	if resp.ItemsFailed > 0 {
		fmt.Fprintf(a.out, "  %s %d item(s) could not be updated: %s\n",
			color.YellowString("!"), resp.ItemsFailed, strings.Join(resp.FailedItems, ", "))
	}
	return nil
}

// StartTeardown moves the deployment from completed to active_teardown.
func (a *DeploymentAdapter) StartTeardown(ctx context.Context, deploymentID string) error {
	dep, err := a.service.StartTeardown(ctx, deploymentID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Teardown started for %s at %s\n", dep.ID, dep.TeardownStartedAt)
	return nil
}

// CompleteTeardown archives the deployment.
func (a *DeploymentAdapter) CompleteTeardown(ctx context.Context, deploymentID string) error {
	dep, err := a.service.CompleteTeardown(ctx, deploymentID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Deployment %s archived at %s\n", dep.ID, dep.TeardownCompletedAt)
	return nil
}

// Board renders the full dashboard for a deployment.
func (a *DeploymentAdapter) Board(ctx context.Context, deploymentID string) error {
	board, err := a.service.GetBoard(ctx, deploymentID)
	if err != nil {
		return fmt.Errorf("failed to build board: %w", err)
	}

	dep := board.Deployment
	fmt.Fprintf(a.out, "\n%s: %s %d [%s]\n", dep.ID, dep.Season, dep.Year, statusColor(dep.Status))
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")

	fmt.Fprintf(a.out, "%-6s %-16s %-12s %-6s %-9s %-8s %s\n",
		"ZONE", "NAME", "STATUS", "ITEMS", "SESSIONS", "MINUTES", "OPEN")
	for _, z := range board.Zones {
		open := "-"
		if z.OpenSessionID != "" {
			open = z.OpenSessionID
		}
		fmt.Fprintf(a.out, "%-6s %-16s %-12s %-6d %-9d %-8d %s\n",
			z.Code, z.Name, zoneStatusColor(z.Status), z.ItemCount, z.SessionCount, z.TotalMinutes, open)
	}

	if board.Staging != nil {
		fmt.Fprintf(a.out, "\nStaging: %d available, %d staged\n",
			len(board.Staging.Available), len(board.Staging.Staged))
	}

	if board.Teardown != nil && len(board.Teardown.Zones) > 0 {
		fmt.Fprintln(a.out, "\nTeardown progress:")
		for _, z := range board.Teardown.Zones {
			mark := " "
			if z.FullyTornDown {
				mark = color.GreenString("✓")
			}
			fmt.Fprintf(a.out, "  [%s] %s: %d/%d torn down\n", mark, z.Code, z.TornDownItems, z.DeployedItems)
			if len(z.RemainingItems) > 0 {
				fmt.Fprintf(a.out, "      remaining: %s\n", strings.Join(z.RemainingItems, ", "))
			}
		}
	}
	fmt.Fprintln(a.out)

	return nil
}

// statusColor renders a deployment phase with a phase-appropriate color.
func statusColor(status string) string {
	switch status {
	case "pre_deployment":
		return color.CyanString(status)
	case "active_setup", "active_teardown":
		return color.YellowString(status)
	case "completed":
		return color.GreenString(status)
	case "archived":
		return color.HiBlackString(status)
	default:
		return status
	}
}

// zoneStatusColor renders a derived zone status.
func zoneStatusColor(status string) string {
	switch status {
	case "pending":
		return color.CyanString(status)
	case "in_progress":
		return color.YellowString(status)
	case "deployed":
		return color.GreenString(status)
	default:
		return status
	}
}
