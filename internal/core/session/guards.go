// Package session contains the pure business logic for work sessions: the
// per-zone open/close state machine and the derived zone views. No I/O.
package session

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

// StartContext provides context for the start-session guard.
type StartContext struct {
	DeploymentID string
	Zone         deployment.ZoneCode
	Phase        deployment.Phase

	// OpenSessionID is the id of the zone's currently open session, empty if
	// the zone is closed.
	OpenSessionID string
}

// CanStartSession evaluates whether a session may be opened in the zone.
// Rules:
//   - the zone must be one of the fixed zones
//   - sessions only happen during active setup
//   - at most one open session per zone, ever
func CanStartSession(ctx StartContext) GuardResult {
	if !deployment.ValidZone(ctx.Zone) {
		return GuardResult{Fault: fault.New(fault.KindNotFound, string(ctx.Zone),
			"zone %s does not exist", ctx.Zone)}
	}
	if ctx.Phase != deployment.PhaseActiveSetup {
		return GuardResult{Fault: fault.New(fault.KindInvalidPhaseTransition, ctx.DeploymentID,
			"cannot start a session while deployment %s is in phase %s", ctx.DeploymentID, ctx.Phase)}
	}
	if ctx.OpenSessionID != "" {
		return GuardResult{Fault: fault.New(fault.KindSessionAlreadyOpen, string(ctx.Zone),
			"zone %s already has open session %s", ctx.Zone, ctx.OpenSessionID)}
	}
	return GuardResult{Allowed: true}
}

// EndContext provides context for the end-session guard.
type EndContext struct {
	SessionID string
	Closed    bool

	// SkipPhotoReview is the caller's explicit override of the evidence check.
	SkipPhotoReview bool

	// MissingPhotoConnections holds the connections that still need photo
	// evidence, freshly computed by the photos package. Ignored when the
	// caller skips review.
	MissingPhotoConnections []string
}

// CanEndSession evaluates whether the session may be closed.
func CanEndSession(ctx EndContext) GuardResult {
	if ctx.Closed {
		return GuardResult{Fault: fault.New(fault.KindSessionAlreadyClosed, ctx.SessionID,
			"session %s is already closed", ctx.SessionID)}
	}
	if !ctx.SkipPhotoReview && len(ctx.MissingPhotoConnections) > 0 {
		f := fault.New(fault.KindPhotosIncomplete, ctx.SessionID,
			"session %s has %d connections without required photos",
			ctx.SessionID, len(ctx.MissingPhotoConnections))
		f.Offending = ctx.MissingPhotoConnections
		return GuardResult{Fault: f}
	}
	return GuardResult{Allowed: true}
}
