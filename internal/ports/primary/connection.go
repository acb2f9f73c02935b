package primary

import "context"

// ConnectionService defines the primary port for the wiring graph.
type ConnectionService interface {
	// CreateConnection wires a source port to a destination item inside an
	// open session. The destination port is derived from the destination
	// item's socket type; the source port must be free.
	CreateConnection(ctx context.Context, req CreateConnectionRequest) (*Connection, error)

	// RemoveConnection soft-removes a connection, recording the reason and
	// freeing its source port. The connection stays in the audit trail.
	RemoveConnection(ctx context.Context, req RemoveConnectionRequest) (*Connection, error)

	// AttachPhotos uploads photos for a connection and appends the returned
	// ids, de-duplicated, up to the attachment policy cap.
	AttachPhotos(ctx context.Context, req AttachPhotosRequest) (*Connection, error)

	// GetConnection retrieves a connection by ID.
	GetConnection(ctx context.Context, connectionID string) (*Connection, error)
}

// CreateConnectionRequest contains parameters for creating a connection.
type CreateConnectionRequest struct {
	SessionID   string
	FromItemID  string
	FromPort    string
	ToItemID    string
	Illuminates []string
	Notes       string
}

// RemoveConnectionRequest contains parameters for soft-removing a
// connection. Reason may be empty but is always recorded.
type RemoveConnectionRequest struct {
	ConnectionID string
	Reason       string
}

// AttachPhotosRequest contains parameters for attaching photo evidence.
// Either Paths (files to upload through the photo service) or PhotoIDs
// (already-stored ids) may be supplied.
type AttachPhotosRequest struct {
	ConnectionID string
	Paths        []string
	PhotoIDs     []string
}

// Connection represents a wiring connection at the port boundary.
type Connection struct {
	ID            string
	SessionID     string
	ZoneCode      string
	FromItemID    string
	FromPort      string
	ToItemID      string
	ToPort        string
	Illuminates   []string
	PhotoIDs      []string
	Notes         string
	ConnectedAt   string
	Removed       bool
	RemovalReason string
	RemovedAt     string
}
