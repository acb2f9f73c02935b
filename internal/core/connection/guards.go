package connection

import (
	"github.com/example/garland/internal/core/fault"
)

// Destination port names. The inlet side is derived from the destination
// item's physical socket type and is deliberately not exclusivity-checked:
// multiple connections may terminate at the same inlet. Only source ports
// are scarce. Enforcing destination exclusivity is a policy decision the
// engine does not take.
const (
	PortMale1      = "Male_1"
	PortPowerInlet = "Power_Inlet"
)

// DeriveDestinationPort maps the destination item's socket type to its inlet
// port name.
func DeriveDestinationPort(socketType string) string {
	if socketType == "male" {
		return PortMale1
	}
	return PortPowerInlet
}

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

// CreateContext provides context for the create-connection guard.
type CreateContext struct {
	SessionID   string
	SessionOpen bool
	FromItemID  string
	FromPort    string
	// SourcePortFree is the allocator's answer for (FromItemID, FromPort).
	SourcePortFree bool
	// HeldBy names the connection holding the port when it is not free.
	HeldBy string
}

// CanCreateConnection evaluates whether a connection may be created.
// Rules:
//   - the owning session must be open
//   - the source port must be free
func CanCreateConnection(ctx CreateContext) GuardResult {
	if !ctx.SessionOpen {
		return GuardResult{Fault: fault.New(fault.KindSessionAlreadyClosed, ctx.SessionID,
			"session %s is not open; connections can only be created in an open session", ctx.SessionID)}
	}
	if !ctx.SourcePortFree {
		key := PortKey{ItemID: ctx.FromItemID, Port: ctx.FromPort}
		return GuardResult{Fault: fault.New(fault.KindPortConflict, key.String(),
			"port %s on item %s is already used by connection %s", ctx.FromPort, ctx.FromItemID, ctx.HeldBy)}
	}
	return GuardResult{Allowed: true}
}

// MergePhotoIDs appends incoming photo ids to existing, dropping duplicates
// while preserving order. The graph itself enforces no cap; callers apply
// the attachment policy.
func MergePhotoIDs(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing)+len(incoming))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, id := range existing {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	for _, id := range incoming {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	return merged
}
