// Package deployment contains the pure business logic for the deployment
// phase state machine. No I/O, only pure functions.
package deployment

import (
	"fmt"
	"strings"
	"time"
)

// Phase represents the lifecycle phase of a deployment.
type Phase string

const (
	PhasePreDeployment  Phase = "pre_deployment"
	PhaseActiveSetup    Phase = "active_setup"
	PhaseCompleted      Phase = "completed"
	PhaseActiveTeardown Phase = "active_teardown"
	PhaseArchived       Phase = "archived"
)

// InitialPhase returns the phase for a newly created deployment.
func InitialPhase() Phase {
	return PhasePreDeployment
}

// Next returns the single legal successor phase. The machine is strictly
// forward: no backward transitions, no skipping. ok is false for the
// terminal phase and for unknown values.
func Next(p Phase) (Phase, bool) {
	switch p {
	case PhasePreDeployment:
		return PhaseActiveSetup, true
	case PhaseActiveSetup:
		return PhaseCompleted, true
	case PhaseCompleted:
		return PhaseActiveTeardown, true
	case PhaseActiveTeardown:
		return PhaseArchived, true
	default:
		return "", false
	}
}

// Mutable reports whether the deployment still accepts any mutation.
// Archived is terminal: deployments, zones, sessions and connections are
// frozen once archived.
func Mutable(p Phase) bool {
	return p != PhaseArchived
}

// TransitionResult captures the phase change plus the timestamp side effect
// belonging to it. The caller passes the clock to keep this testable.
type TransitionResult struct {
	NewPhase Phase

	SetupStartedAt      *time.Time
	SetupCompletedAt    *time.Time
	TeardownStartedAt   *time.Time
	TeardownCompletedAt *time.Time
}

// ApplyTransition records the timestamp that belongs to entering target.
// Callers must have validated the transition with CanTransition first.
func ApplyTransition(target Phase, now time.Time) TransitionResult {
	result := TransitionResult{NewPhase: target}
	switch target {
	case PhaseActiveSetup:
		result.SetupStartedAt = &now
	case PhaseCompleted:
		result.SetupCompletedAt = &now
	case PhaseActiveTeardown:
		result.TeardownStartedAt = &now
	case PhaseArchived:
		result.TeardownCompletedAt = &now
	}
	return result
}

// ParsePhase validates a stored phase string.
func ParsePhase(s string) (Phase, error) {
	switch Phase(s) {
	case PhasePreDeployment, PhaseActiveSetup, PhaseCompleted, PhaseActiveTeardown, PhaseArchived:
		return Phase(s), nil
	}
	return "", fmt.Errorf("unknown deployment phase %q", s)
}

// DeploymentID derives the canonical deployment id from its identity.
func DeploymentID(season string, year int) string {
	return fmt.Sprintf("DEP-%d-%s", year, strings.ToUpper(season))
}
