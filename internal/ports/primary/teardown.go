package primary

import "context"

// TeardownService defines the primary port for post-season teardown.
type TeardownService interface {
	// TeardownItem transitions a deployed item to TearDown. Idempotent:
	// repeating it is a no-op. Rejected unless the deployment is in
	// active_teardown.
	TeardownItem(ctx context.Context, req TeardownItemRequest) (*TeardownItemResponse, error)

	// ZoneFullyTornDown reports whether every deployed item in the zone has
	// been torn down. Purely derived, never stored.
	ZoneFullyTornDown(ctx context.Context, deploymentID, zoneCode string) (bool, error)
}

// TeardownItemRequest contains parameters for tearing down an item.
type TeardownItemRequest struct {
	DeploymentID string
	ZoneCode     string
	ItemID       string
}

// TeardownItemResponse reports the teardown outcome. AlreadyDone is set when
// the call was an idempotent repeat.
type TeardownItemResponse struct {
	ItemID        string
	ZoneCode      string
	AlreadyDone   bool
	ZoneCompleted bool
}
