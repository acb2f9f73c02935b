package primary

import "context"

// SessionService defines the primary port for work session operations.
type SessionService interface {
	// StartSession opens a session in a zone. Fails with SessionAlreadyOpen
	// if the zone already has one.
	StartSession(ctx context.Context, req StartSessionRequest) (*Session, error)

	// EndSession closes a session, computing its duration. Unless the
	// caller skips photo review, it fails with PhotosIncomplete while any
	// decoration-bound connection lacks photos.
	EndSession(ctx context.Context, req EndSessionRequest) (*Session, error)

	// GetSession retrieves a session with its items and connections.
	GetSession(ctx context.Context, sessionID string) (*Session, error)

	// ZoneHistory returns a zone's ordered session history with nested
	// active and removed connections.
	ZoneHistory(ctx context.Context, deploymentID, zoneCode string) ([]*Session, error)
}

// StartSessionRequest contains parameters for opening a session.
type StartSessionRequest struct {
	DeploymentID string
	ZoneCode     string
}

// EndSessionRequest contains parameters for closing a session.
type EndSessionRequest struct {
	SessionID       string
	Notes           string
	SkipPhotoReview bool
}

// Session represents a work session at the port boundary.
type Session struct {
	ID              string
	DeploymentID    string
	ZoneCode        string
	StartTime       string
	EndTime         string // empty while open
	DurationSeconds int64  // valid once closed
	Notes           string
	ItemsDeployed   []string
	Connections     []*Connection
	Removed         []*Connection
}
