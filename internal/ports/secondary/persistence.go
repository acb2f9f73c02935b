// Package secondary defines the secondary ports (driven adapters) for the
// engine: persistence repositories and the external collaborator clients.
package secondary

import (
	"context"
	"time"
)

// DeploymentRecord represents a deployment as stored in persistence.
// Timestamps are RFC3339 strings; empty means not yet recorded.
type DeploymentRecord struct {
	ID                  string
	Season              string
	Year                int
	Status              string
	SetupStartedAt      string
	SetupCompletedAt    string
	TeardownStartedAt   string
	TeardownCompletedAt string
	CreatedAt           string
}

// ZoneRecord represents one of a deployment's fixed zones.
type ZoneRecord struct {
	DeploymentID string
	Code         string
	Name         string
	ReceptacleID string
}

// DeploymentRepository defines the secondary port for deployment persistence.
type DeploymentRepository interface {
	// Create persists a deployment together with its fixed zone set.
	Create(ctx context.Context, dep *DeploymentRecord, zones []*ZoneRecord) error

	// GetByID retrieves a deployment by its ID.
	GetByID(ctx context.Context, id string) (*DeploymentRecord, error)

	// List retrieves all deployments, newest first.
	List(ctx context.Context) ([]*DeploymentRecord, error)

	// UpdateStatus stores a phase transition and its timestamps.
	UpdateStatus(ctx context.Context, dep *DeploymentRecord) error

	// ListZones retrieves the deployment's zones in board order.
	ListZones(ctx context.Context, deploymentID string) ([]*ZoneRecord, error)
}

// SessionRecord represents a work session as stored in persistence.
// Closed false means the session is open and EndTime is meaningless.
type SessionRecord struct {
	ID              string
	DeploymentID    string
	ZoneCode        string
	StartTime       time.Time
	EndTime         time.Time
	Closed          bool
	DurationSeconds int64
	Notes           string
}

// SessionRepository defines the secondary port for session persistence.
type SessionRepository interface {
	// Create persists a new open session. ID must be pre-populated.
	Create(ctx context.Context, session *SessionRecord) error

	// GetByID retrieves a session by its ID.
	GetByID(ctx context.Context, id string) (*SessionRecord, error)

	// GetOpenByZone returns the zone's open session, or nil if the zone is
	// closed.
	GetOpenByZone(ctx context.Context, deploymentID, zoneCode string) (*SessionRecord, error)

	// ListOpenZones returns the codes of zones holding an open session.
	ListOpenZones(ctx context.Context, deploymentID string) ([]string, error)

	// ListByZone returns the zone's sessions, oldest first.
	ListByZone(ctx context.Context, deploymentID, zoneCode string) ([]*SessionRecord, error)

	// Close stores end time, duration, and notes for a session.
	Close(ctx context.Context, session *SessionRecord) error

	// AddItem records an item as touched in the session. Adding the same
	// item twice is a no-op.
	AddItem(ctx context.Context, sessionID, itemID string) error

	// ListItems returns the items touched in the session.
	ListItems(ctx context.Context, sessionID string) ([]string, error)

	// ListZoneItems returns the distinct items deployed in a zone across
	// all of its sessions.
	ListZoneItems(ctx context.Context, deploymentID, zoneCode string) ([]string, error)

	// ListDeploymentItems returns zone -> distinct deployed items for the
	// whole deployment.
	ListDeploymentItems(ctx context.Context, deploymentID string) (map[string][]string, error)

	// NextID returns the next session ID for the deployment.
	NextID(ctx context.Context, deploymentID string) (string, error)
}

// ConnectionRecord represents a wiring connection as stored in persistence.
// Connections are immutable once created except for photo attachment and the
// soft removal pair; they are never physically deleted.
type ConnectionRecord struct {
	ID            string
	DeploymentID  string
	SessionID     string
	ZoneCode      string
	FromItemID    string
	FromPort      string
	ToItemID      string
	ToPort        string
	Illuminates   []string
	PhotoIDs      []string
	Notes         string
	ConnectedAt   time.Time
	Removed       bool
	RemovalReason string
	RemovedAt     time.Time
}

// ConnectionRepository defines the secondary port for connection persistence.
type ConnectionRepository interface {
	// Create persists a new connection. ID must be pre-populated.
	Create(ctx context.Context, conn *ConnectionRecord) error

	// GetByID retrieves a connection by its ID.
	GetByID(ctx context.Context, id string) (*ConnectionRecord, error)

	// ListActiveBySession returns the session's non-removed connections in
	// creation order.
	ListActiveBySession(ctx context.Context, sessionID string) ([]*ConnectionRecord, error)

	// ListRemovedBySession returns the session's removed connections in
	// creation order, removal reason included.
	ListRemovedBySession(ctx context.Context, sessionID string) ([]*ConnectionRecord, error)

	// ListActiveByDeployment returns every non-removed connection of the
	// deployment; used to rebuild the port allocator.
	ListActiveByDeployment(ctx context.Context, deploymentID string) ([]*ConnectionRecord, error)

	// MarkRemoved soft-deletes the connection with the supplied reason.
	MarkRemoved(ctx context.Context, id, reason string, at time.Time) error

	// ReplacePhotos stores the full merged photo id list for the connection.
	ReplacePhotos(ctx context.Context, id string, photoIDs []string) error

	// NextID returns the next connection ID for the deployment.
	NextID(ctx context.Context, deploymentID string) (string, error)
}

// ToteRecord represents an item container staged as a unit.
type ToteRecord struct {
	ID           string
	DeploymentID string
	Label        string
	Contents     []string
	StagedItems  map[string]bool
}

// ToteRepository defines the secondary port for tote persistence.
type ToteRepository interface {
	// Create persists a tote with its contents. ID must be pre-populated.
	Create(ctx context.Context, tote *ToteRecord) error

	// GetByID retrieves a tote with its contents and staged flags.
	GetByID(ctx context.Context, id string) (*ToteRecord, error)

	// ListByDeployment returns the deployment's totes in creation order.
	ListByDeployment(ctx context.Context, deploymentID string) ([]*ToteRecord, error)

	// StagedItems returns, for the given items, which are already staged in
	// any tote of the deployment.
	StagedItems(ctx context.Context, deploymentID string, itemIDs []string) (map[string]bool, error)

	// MarkStaged marks the tote's items staged in one transaction; either
	// every item is marked or none is.
	MarkStaged(ctx context.Context, toteID string, itemIDs []string, at time.Time) error

	// NextID returns the next tote ID for the deployment.
	NextID(ctx context.Context, deploymentID string) (string, error)
}

// TeardownRepository defines the secondary port for teardown tracking.
type TeardownRepository interface {
	// MarkTornDown records an item as torn down in a zone. Recording the
	// same item twice is a no-op.
	MarkTornDown(ctx context.Context, deploymentID, zoneCode, itemID string, at time.Time) error

	// TornDownItems returns the set of torn-down items in a zone.
	TornDownItems(ctx context.Context, deploymentID, zoneCode string) (map[string]bool, error)
}
