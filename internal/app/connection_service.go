package app

import (
	"context"
	"fmt"
	"time"

	coreconnection "github.com/example/garland/internal/core/connection"
	coredeployment "github.com/example/garland/internal/core/deployment"
	"github.com/example/garland/internal/core/photos"
	"github.com/example/garland/internal/ports/primary"
	"github.com/example/garland/internal/ports/secondary"
)

// ConnectionServiceImpl implements the ConnectionService interface: the
// wiring graph with source-port exclusivity and the soft-removal audit
// trail.
type ConnectionServiceImpl struct {
	locker         *DeploymentLocker
	deploymentRepo secondary.DeploymentRepository
	sessionRepo    secondary.SessionRepository
	connectionRepo secondary.ConnectionRepository
	items          secondary.ItemsService
	photoStore     secondary.PhotoService
}

// NewConnectionService creates a new ConnectionService with injected
// dependencies.
func NewConnectionService(
	locker *DeploymentLocker,
	deploymentRepo secondary.DeploymentRepository,
	sessionRepo secondary.SessionRepository,
	connectionRepo secondary.ConnectionRepository,
	items secondary.ItemsService,
	photoStore secondary.PhotoService,
) *ConnectionServiceImpl {
	return &ConnectionServiceImpl{
		locker:         locker,
		deploymentRepo: deploymentRepo,
		sessionRepo:    sessionRepo,
		connectionRepo: connectionRepo,
		items:          items,
		photoStore:     photoStore,
	}
}

// CreateConnection wires a source port to a destination item.
func (s *ConnectionServiceImpl) CreateConnection(ctx context.Context, req primary.CreateConnectionRequest) (*primary.Connection, error) {
	peek, err := s.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	release, err := s.locker.Acquire(ctx, peek.DeploymentID)
	if err != nil {
		return nil, err
	}
	defer release()

	session, err := s.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	dep, err := s.deploymentRepo.GetByID(ctx, session.DeploymentID)
	if err != nil {
		return nil, fmt.Errorf("deployment not found: %w", err)
	}
	phase, err := coredeployment.ParsePhase(dep.Status)
	if err != nil {
		return nil, err
	}
	if result := coredeployment.CanMutate(dep.ID, phase); !result.Allowed {
		return nil, result.Error()
	}

	// The destination item's socket type decides the inlet port name; its
	// class later decides the photo obligation.
	toItem, err := s.items.GetItem(ctx, req.ToItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up destination item %s: %w", req.ToItemID, err)
	}

	// Port state is derived from the non-removed connections, so the
	// allocator is rebuilt inside the lock rather than kept warm.
	allocator, err := s.buildAllocator(ctx, session.DeploymentID)
	if err != nil {
		return nil, err
	}
	free := allocator.IsPortFree(req.FromItemID, req.FromPort)

	guardCtx := coreconnection.CreateContext{
		SessionID:      session.ID,
		SessionOpen:    !session.Closed,
		FromItemID:     req.FromItemID,
		FromPort:       req.FromPort,
		SourcePortFree: free,
		HeldBy:         allocator.Holder(req.FromItemID, req.FromPort),
	}
	if result := coreconnection.CanCreateConnection(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	nextID, err := s.connectionRepo.NextID(ctx, session.DeploymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate connection ID: %w", err)
	}
	if err := allocator.Allocate(req.FromItemID, req.FromPort, nextID); err != nil {
		return nil, err
	}

	record := &secondary.ConnectionRecord{
		ID:           nextID,
		DeploymentID: session.DeploymentID,
		SessionID:    session.ID,
		ZoneCode:     session.ZoneCode,
		FromItemID:   req.FromItemID,
		FromPort:     req.FromPort,
		ToItemID:     req.ToItemID,
		ToPort:       coreconnection.DeriveDestinationPort(toItem.SocketType),
		Illuminates:  req.Illuminates,
		Notes:        req.Notes,
		ConnectedAt:  time.Now().UTC(),
	}
	if err := s.connectionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}

	// Every item touched by the connection joins the session's deployed set.
	touched := append([]string{req.FromItemID, req.ToItemID}, req.Illuminates...)
	for _, itemID := range touched {
		if err := s.sessionRepo.AddItem(ctx, session.ID, itemID); err != nil {
			return nil, fmt.Errorf("failed to record session item %s: %w", itemID, err)
		}
	}

	// Status pushes run after the local commit; a failure fails the command
	// but the connection stays, matching the physical reality.
	for _, itemID := range []string{req.FromItemID, req.ToItemID} {
		if err := s.items.SetItemStatus(ctx, itemID, secondary.ItemStatusDeployed); err != nil {
			return nil, fmt.Errorf("connection %s created but item %s status push failed: %w", record.ID, itemID, err)
		}
	}

	return connectionView(record), nil
}

// RemoveConnection soft-removes a connection, recording the reason. The
// source port becomes free because port state is derived from non-removed
// connections only. Removing an already-removed connection is a no-op.
func (s *ConnectionServiceImpl) RemoveConnection(ctx context.Context, req primary.RemoveConnectionRequest) (*primary.Connection, error) {
	peek, err := s.connectionRepo.GetByID(ctx, req.ConnectionID)
	if err != nil {
		return nil, fmt.Errorf("connection not found: %w", err)
	}

	release, err := s.locker.Acquire(ctx, peek.DeploymentID)
	if err != nil {
		return nil, err
	}
	defer release()

	conn, err := s.connectionRepo.GetByID(ctx, req.ConnectionID)
	if err != nil {
		return nil, fmt.Errorf("connection not found: %w", err)
	}
	if conn.Removed {
		return connectionView(conn), nil
	}

	dep, err := s.deploymentRepo.GetByID(ctx, conn.DeploymentID)
	if err != nil {
		return nil, fmt.Errorf("deployment not found: %w", err)
	}
	phase, err := coredeployment.ParsePhase(dep.Status)
	if err != nil {
		return nil, err
	}
	if result := coredeployment.CanMutate(dep.ID, phase); !result.Allowed {
		return nil, result.Error()
	}

	now := time.Now().UTC()
	if err := s.connectionRepo.MarkRemoved(ctx, conn.ID, req.Reason, now); err != nil {
		return nil, fmt.Errorf("failed to remove connection: %w", err)
	}
	conn.Removed = true
	conn.RemovalReason = req.Reason
	conn.RemovedAt = now
	return connectionView(conn), nil
}

// AttachPhotos uploads photos (if paths are given) and appends the ids.
func (s *ConnectionServiceImpl) AttachPhotos(ctx context.Context, req primary.AttachPhotosRequest) (*primary.Connection, error) {
	peek, err := s.connectionRepo.GetByID(ctx, req.ConnectionID)
	if err != nil {
		return nil, fmt.Errorf("connection not found: %w", err)
	}

	release, err := s.locker.Acquire(ctx, peek.DeploymentID)
	if err != nil {
		return nil, err
	}
	defer release()

	conn, err := s.connectionRepo.GetByID(ctx, req.ConnectionID)
	if err != nil {
		return nil, fmt.Errorf("connection not found: %w", err)
	}

	dep, err := s.deploymentRepo.GetByID(ctx, conn.DeploymentID)
	if err != nil {
		return nil, fmt.Errorf("deployment not found: %w", err)
	}
	phase, err := coredeployment.ParsePhase(dep.Status)
	if err != nil {
		return nil, err
	}
	if result := coredeployment.CanMutate(dep.ID, phase); !result.Allowed {
		return nil, result.Error()
	}

	incoming := append([]string{}, req.PhotoIDs...)
	if len(req.Paths) > 0 {
		uploaded, err := s.photoStore.UploadBatch(ctx, conn.ID, req.Paths)
		if err != nil {
			return nil, fmt.Errorf("photo upload failed: %w", err)
		}
		incoming = append(incoming, uploaded...)
	}

	merged := coreconnection.MergePhotoIDs(conn.PhotoIDs, incoming)
	if len(merged) > photos.MaxPhotosPerConnection {
		return nil, fmt.Errorf("connection %s would have %d photos, max %d",
			conn.ID, len(merged), photos.MaxPhotosPerConnection)
	}
	if err := s.connectionRepo.ReplacePhotos(ctx, conn.ID, merged); err != nil {
		return nil, fmt.Errorf("failed to attach photos: %w", err)
	}
	conn.PhotoIDs = merged
	return connectionView(conn), nil
}

// GetConnection retrieves a connection by ID.
func (s *ConnectionServiceImpl) GetConnection(ctx context.Context, connectionID string) (*primary.Connection, error) {
	conn, err := s.connectionRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, fmt.Errorf("connection not found: %w", err)
	}
	return connectionView(conn), nil
}

func (s *ConnectionServiceImpl) buildAllocator(ctx context.Context, deploymentID string) (*coreconnection.Allocator, error) {
	active, err := s.connectionRepo.ListActiveByDeployment(ctx, deploymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active connections: %w", err)
	}
	allocations := make([]coreconnection.Allocation, 0, len(active))
	for _, conn := range active {
		allocations = append(allocations, coreconnection.Allocation{
			ItemID:       conn.FromItemID,
			Port:         conn.FromPort,
			ConnectionID: conn.ID,
		})
	}
	return coreconnection.NewAllocator(allocations), nil
}

var _ primary.ConnectionService = (*ConnectionServiceImpl)(nil)
