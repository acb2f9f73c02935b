// Package connection contains the pure business logic for the wiring graph:
// port allocation, destination port derivation, and connection guards.
// No I/O, only pure functions and in-memory state rebuilt from records.
package connection

import (
	"fmt"

	"github.com/example/garland/internal/core/fault"
)

// PortKey identifies a physical port on an item.
type PortKey struct {
	ItemID string
	Port   string
}

func (k PortKey) String() string {
	return fmt.Sprintf("%s/%s", k.ItemID, k.Port)
}

// Allocation ties a source port to the connection consuming it.
type Allocation struct {
	ItemID       string
	Port         string
	ConnectionID string
}

// Allocator tracks which source ports are consumed. Port state is derived:
// a port is free iff no non-removed connection uses it as its from endpoint,
// so the allocator is rebuilt from the active connection records rather than
// stored on its own.
type Allocator struct {
	byPort map[PortKey]string  // port -> connection id
	byConn map[string]PortKey  // connection id -> port
}

// NewAllocator builds an allocator from the active (non-removed) connections
// of a deployment.
func NewAllocator(active []Allocation) *Allocator {
	a := &Allocator{
		byPort: make(map[PortKey]string, len(active)),
		byConn: make(map[string]PortKey, len(active)),
	}
	for _, al := range active {
		key := PortKey{ItemID: al.ItemID, Port: al.Port}
		a.byPort[key] = al.ConnectionID
		a.byConn[al.ConnectionID] = key
	}
	return a
}

// IsPortFree reports whether the (item, port) pair is unconsumed.
func (a *Allocator) IsPortFree(itemID, port string) bool {
	_, taken := a.byPort[PortKey{ItemID: itemID, Port: port}]
	return !taken
}

// Holder returns the id of the connection consuming the port, or "" if the
// port is free.
func (a *Allocator) Holder(itemID, port string) string {
	return a.byPort[PortKey{ItemID: itemID, Port: port}]
}

// Allocate consumes the port for connectionID. Allocating a port already
// held by the same connection is a no-op; held by any other connection is a
// PortConflict.
func (a *Allocator) Allocate(itemID, port, connectionID string) error {
	key := PortKey{ItemID: itemID, Port: port}
	if holder, taken := a.byPort[key]; taken {
		if holder == connectionID {
			return nil
		}
		return fault.New(fault.KindPortConflict, key.String(),
			"port %s on item %s is already used by connection %s", port, itemID, holder)
	}
	a.byPort[key] = connectionID
	a.byConn[connectionID] = key
	return nil
}

// Release frees whatever port connectionID holds. Releasing a connection
// that holds nothing is a no-op, so marking a connection removed frees its
// port without a reconciliation pass.
func (a *Allocator) Release(connectionID string) {
	key, ok := a.byConn[connectionID]
	if !ok {
		return
	}
	delete(a.byConn, connectionID)
	delete(a.byPort, key)
}
