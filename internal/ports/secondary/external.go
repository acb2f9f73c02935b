package secondary

import "context"

// Item statuses the engine pushes to the items service.
const (
	ItemStatusActive   = "Active"
	ItemStatusStaged   = "Staged"
	ItemStatusDeployed = "Deployed"
	ItemStatusTearDown = "TearDown"
	ItemStatusRetired  = "Retired"
)

// ItemInfo is the slice of an item record the engine cares about. The full
// record lives in the external items service; the engine references items by
// id only.
type ItemInfo struct {
	ID         string
	Name       string
	Class      string // Decoration, Accessory, Light, ...
	SocketType string // physical inlet socket: "male" or "inlet"
	Status     string
	Ports      []string // named source ports, e.g. Male_1, Male_2
}

// ItemFilters narrows an item search.
type ItemFilters struct {
	Class  string
	Status string
}

// ItemsService is the external items service the engine consults for item
// class/ports and pushes status transitions to. Status pushes are
// fire-and-forget side effects; the engine's own state stays the source of
// truth for the wiring graph.
type ItemsService interface {
	// GetItem looks up a single item.
	GetItem(ctx context.Context, id string) (*ItemInfo, error)

	// SearchItems lists items matching the filters.
	SearchItems(ctx context.Context, filters ItemFilters) ([]*ItemInfo, error)

	// SetItemStatus pushes a status transition for the item.
	SetItemStatus(ctx context.Context, id, status string) error
}

// PhotoService is the external photo storage service. The engine uploads a
// batch scoped to a connection and keeps only the returned ids.
type PhotoService interface {
	// UploadBatch uploads the images at the given paths, scoped to the
	// connection, and returns the stored photo ids.
	UploadBatch(ctx context.Context, connectionID string, paths []string) ([]string, error)
}
