package primary

import "context"

// StagingService defines the primary port for tote staging.
type StagingService interface {
	// CreateTote registers a tote with its contents.
	CreateTote(ctx context.Context, req CreateToteRequest) (*Tote, error)

	// StageTote marks every listed item Staged and the tote staged with
	// them. All-or-nothing: one already-staged item aborts the operation.
	StageTote(ctx context.Context, req StageToteRequest) (*Tote, error)

	// StagingBoard partitions the deployment's totes into available and
	// staged.
	StagingBoard(ctx context.Context, deploymentID string) (*StagingBoard, error)
}

// CreateToteRequest contains parameters for registering a tote.
type CreateToteRequest struct {
	DeploymentID string
	Label        string
	ItemIDs      []string
}

// StageToteRequest contains parameters for staging a tote.
type StageToteRequest struct {
	ToteID  string
	ItemIDs []string
}

// Tote represents an item container at the port boundary. Staged is derived:
// true once every item in Contents is staged.
type Tote struct {
	ID          string
	Label       string
	Contents    []string
	StagedItems []string
	Staged      bool
}

// StagingBoard partitions totes by their derived staged flag.
type StagingBoard struct {
	Available []*Tote
	Staged    []*Tote
}
