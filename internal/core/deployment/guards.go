package deployment

import (
	"strings"

	"github.com/example/garland/internal/core/fault"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Fault   *fault.Error // populated when not allowed
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return r.Fault
}

func allowed() GuardResult { return GuardResult{Allowed: true} }

func denied(f *fault.Error) GuardResult { return GuardResult{Fault: f} }

// TransitionContext provides the context for phase transition guards.
// Populated by the caller with pre-fetched state.
type TransitionContext struct {
	DeploymentID string
	Current      Phase
	Target       Phase

	// OpenSessionZones lists zones that currently hold an open session.
	// Consulted when completing setup.
	OpenSessionZones []ZoneCode

	// ZonesNotTornDown lists zones with deployed items not yet torn down.
	// Consulted when completing teardown.
	ZonesNotTornDown []ZoneCode
}

// CanTransition evaluates whether the deployment may move to ctx.Target.
// Rules:
//   - only the single legal successor of Current is ever allowed
//   - active_setup -> completed additionally requires no open session
//   - active_teardown -> archived additionally requires every zone torn down
func CanTransition(ctx TransitionContext) GuardResult {
	next, ok := Next(ctx.Current)
	if !ok || next != ctx.Target {
		// completeDeployment on a deployment already past setup gets the
		// dedicated kind so callers can tell "done already" from "not yet".
		if ctx.Target == PhaseCompleted && pastSetup(ctx.Current) {
			return denied(fault.New(fault.KindAlreadyCompleted, ctx.DeploymentID,
				"deployment %s is already completed (phase %s)", ctx.DeploymentID, ctx.Current))
		}
		return denied(fault.New(fault.KindInvalidPhaseTransition, ctx.DeploymentID,
			"deployment %s cannot move from %s to %s", ctx.DeploymentID, ctx.Current, ctx.Target))
	}

	if ctx.Target == PhaseCompleted && len(ctx.OpenSessionZones) > 0 {
		f := fault.New(fault.KindSessionStillOpen, string(ctx.OpenSessionZones[0]),
			"cannot complete deployment %s: zone %s still has an open session",
			ctx.DeploymentID, ctx.OpenSessionZones[0])
		f.Offending = zoneStrings(ctx.OpenSessionZones)
		return denied(f)
	}

	if ctx.Target == PhaseArchived && len(ctx.ZonesNotTornDown) > 0 {
		f := fault.New(fault.KindTeardownIncomplete, string(ctx.ZonesNotTornDown[0]),
			"cannot archive deployment %s: zones not fully torn down: %s",
			ctx.DeploymentID, strings.Join(zoneStrings(ctx.ZonesNotTornDown), ", "))
		f.Offending = zoneStrings(ctx.ZonesNotTornDown)
		return denied(f)
	}

	return allowed()
}

// CanMutate evaluates whether any mutating command may touch the deployment.
// Archived deployments reject everything.
func CanMutate(deploymentID string, current Phase) GuardResult {
	if !Mutable(current) {
		return denied(fault.New(fault.KindDeploymentArchived, deploymentID,
			"deployment %s is archived and no longer accepts changes", deploymentID))
	}
	return allowed()
}

func pastSetup(p Phase) bool {
	return p == PhaseCompleted || p == PhaseActiveTeardown || p == PhaseArchived
}

func zoneStrings(zones []ZoneCode) []string {
	out := make([]string, len(zones))
	for i, z := range zones {
		out[i] = string(z)
	}
	return out
}
