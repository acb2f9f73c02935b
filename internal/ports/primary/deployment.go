// Package primary defines the primary ports (driving adapters) for the
// engine. These are the interfaces through which the CLI and the HTTP API
// drive the deployment lifecycle.
package primary

import "context"

// DeploymentService defines the primary port for the deployment lifecycle.
type DeploymentService interface {
	// CreateDeployment creates a deployment with its fixed zone set.
	CreateDeployment(ctx context.Context, req CreateDeploymentRequest) (*Deployment, error)

	// GetDeployment retrieves a deployment by ID.
	GetDeployment(ctx context.Context, deploymentID string) (*Deployment, error)

	// ListDeployments lists all deployments, newest first.
	ListDeployments(ctx context.Context) ([]*Deployment, error)

	// StartSetup moves pre_deployment -> active_setup.
	StartSetup(ctx context.Context, deploymentID string) (*Deployment, error)

	// CompleteDeployment moves active_setup -> completed. Requires no open
	// session in any zone; pushes Deployed status for every deployed item
	// best-effort and reports the per-item outcome.
	CompleteDeployment(ctx context.Context, deploymentID string) (*CompleteDeploymentResponse, error)

	// StartTeardown moves completed -> active_teardown.
	StartTeardown(ctx context.Context, deploymentID string) (*Deployment, error)

	// CompleteTeardown moves active_teardown -> archived. Requires every
	// zone fully torn down. Archived is terminal.
	CompleteTeardown(ctx context.Context, deploymentID string) (*Deployment, error)

	// GetBoard builds the dashboard read model for a deployment.
	GetBoard(ctx context.Context, deploymentID string) (*Board, error)
}

// CreateDeploymentRequest contains parameters for creating a deployment.
type CreateDeploymentRequest struct {
	Season string
	Year   int
}

// Deployment represents a deployment at the port boundary.
type Deployment struct {
	ID                  string
	Season              string
	Year                int
	Status              string
	SetupStartedAt      string
	SetupCompletedAt    string
	TeardownStartedAt   string
	TeardownCompletedAt string
}

// CompleteDeploymentResponse reports the phase transition plus the
// best-effort item status pushes. Failed pushes are counted, never rolled
// back: the items are physically placed regardless of bookkeeping.
type CompleteDeploymentResponse struct {
	Deployment   *Deployment
	ItemsUpdated int
	ItemsFailed  int
	FailedItems  []string
}

// Board is the dashboard read model: zones with derived status and
// statistics plus staging and teardown progress, recomputed on every read.
type Board struct {
	Deployment *Deployment
	Zones      []*ZoneView
	Staging    *StagingBoard
	Teardown   *TeardownBoard
}

// ZoneView is the derived per-zone dashboard row.
type ZoneView struct {
	Code           string
	Name           string
	ReceptacleID   string
	Status         string
	OpenSessionID  string
	ItemCount      int
	SessionCount   int
	TotalMinutes   int64
	LongestMinutes int64
}

// TeardownBoard summarizes teardown progress per zone.
type TeardownBoard struct {
	Zones []*ZoneTeardownView
}

// ZoneTeardownView is the per-zone teardown progress row.
type ZoneTeardownView struct {
	Code           string
	DeployedItems  int
	TornDownItems  int
	FullyTornDown  bool
	RemainingItems []string
}
