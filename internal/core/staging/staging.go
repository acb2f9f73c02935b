// Package staging contains the pure business logic for moving totes from
// available to staged before a deployment begins. No I/O.
package staging

import (
	"github.com/example/garland/internal/core/deployment"
	"github.com/example/garland/internal/core/fault"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Fault   *fault.Error
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return r.Fault
}

// StageContext provides context for the stage-tote guard.
type StageContext struct {
	ToteID string
	Phase  deployment.Phase

	// ItemIDs are the items the caller wants to stage.
	ItemIDs []string

	// AlreadyStaged flags, parallel to ItemIDs, whether each item has been
	// staged before (in this tote or any other).
	AlreadyStaged []bool
}

// CanStageTote evaluates whether the whole tote may be staged. Staging is
// all-or-nothing: one already-staged item aborts the operation, because
// partial staging would leave the tote's derived "fully staged" flag
// undefined.
func CanStageTote(ctx StageContext) GuardResult {
	if ctx.Phase != deployment.PhasePreDeployment && ctx.Phase != deployment.PhaseActiveSetup {
		return GuardResult{Fault: fault.New(fault.KindInvalidPhaseTransition, ctx.ToteID,
			"cannot stage tote %s while the deployment is in phase %s", ctx.ToteID, ctx.Phase)}
	}
	var staged []string
	for i, id := range ctx.ItemIDs {
		if i < len(ctx.AlreadyStaged) && ctx.AlreadyStaged[i] {
			staged = append(staged, id)
		}
	}
	if len(staged) > 0 {
		f := fault.New(fault.KindAlreadyStaged, staged[0],
			"item %s is already staged; tote %s left untouched", staged[0], ctx.ToteID)
		f.Offending = staged
		return GuardResult{Fault: f}
	}
	return GuardResult{Allowed: true}
}

// IsFullyStaged derives a tote's staged flag: true once every item in its
// contents has been marked staged. Empty totes are never considered staged.
func IsFullyStaged(contents []string, staged map[string]bool) bool {
	if len(contents) == 0 {
		return false
	}
	for _, id := range contents {
		if !staged[id] {
			return false
		}
	}
	return true
}
