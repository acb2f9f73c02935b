// Package teardown contains the pure business logic for post-season item
// teardown. No I/O.
package teardown

import (
	"github.com/example/garland/internal/core/deployment"
	"github.com/example/garland/internal/core/fault"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	// NoOp is set when the operation is allowed but has already happened;
	// the caller must skip side effects (idempotent teardown).
	NoOp  bool
	Fault *fault.Error
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return r.Fault
}

// ItemContext provides context for the teardown-item guard.
type ItemContext struct {
	DeploymentID string
	ItemID       string
	Phase        deployment.Phase
	TornDown     bool // item already marked torn down
}

// CanTeardownItem evaluates whether the item may be torn down.
// Rules:
//   - the deployment must be in active_teardown
//   - repeating teardown on a torn-down item is a no-op, not an error
func CanTeardownItem(ctx ItemContext) GuardResult {
	if ctx.Phase != deployment.PhaseActiveTeardown {
		return GuardResult{Fault: fault.New(fault.KindTeardownNotStarted, ctx.DeploymentID,
			"deployment %s is in phase %s; start teardown before tearing down items",
			ctx.DeploymentID, ctx.Phase)}
	}
	if ctx.TornDown {
		return GuardResult{Allowed: true, NoOp: true}
	}
	return GuardResult{Allowed: true}
}

// ZoneFullyTornDown derives whether every deployed item in a zone has been
// torn down. Purely derived, never stored. A zone with no deployed items is
// trivially torn down.
func ZoneFullyTornDown(deployedItems []string, tornDown map[string]bool) bool {
	for _, id := range deployedItems {
		if !tornDown[id] {
			return false
		}
	}
	return true
}
