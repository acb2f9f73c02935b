package app

import (
	"context"
	"fmt"
	"time"

	coredeployment "github.com/example/garland/internal/core/deployment"
	coreteardown "github.com/example/garland/internal/core/teardown"
	"github.com/example/garland/internal/ports/primary"
	"github.com/example/garland/internal/ports/secondary"
)

// TeardownServiceImpl implements the TeardownService interface.
type TeardownServiceImpl struct {
	locker         *DeploymentLocker
	deploymentRepo secondary.DeploymentRepository
	sessionRepo    secondary.SessionRepository
	teardownRepo   secondary.TeardownRepository
	items          secondary.ItemsService
}

// NewTeardownService creates a new TeardownService with injected
// dependencies.
func NewTeardownService(
	locker *DeploymentLocker,
	deploymentRepo secondary.DeploymentRepository,
	sessionRepo secondary.SessionRepository,
	teardownRepo secondary.TeardownRepository,
	items secondary.ItemsService,
) *TeardownServiceImpl {
	return &TeardownServiceImpl{
		locker:         locker,
		deploymentRepo: deploymentRepo,
		sessionRepo:    sessionRepo,
		teardownRepo:   teardownRepo,
		items:          items,
	}
}

// TeardownItem transitions a deployed item to TearDown. Idempotent.
func (s *TeardownServiceImpl) TeardownItem(ctx context.Context, req primary.TeardownItemRequest) (*primary.TeardownItemResponse, error) {
	release, err := s.locker.Acquire(ctx, req.DeploymentID)
	if err != nil {
		return nil, err
	}
	defer release()

	dep, err := s.deploymentRepo.GetByID(ctx, req.DeploymentID)
	if err != nil {
		return nil, fmt.Errorf("deployment not found: %w", err)
	}
	phase, err := coredeployment.ParsePhase(dep.Status)
	if err != nil {
		return nil, err
	}

	tornDown, err := s.teardownRepo.TornDownItems(ctx, req.DeploymentID, req.ZoneCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load teardown state: %w", err)
	}

	guardCtx := coreteardown.ItemContext{
		DeploymentID: req.DeploymentID,
		ItemID:       req.ItemID,
		Phase:        phase,
		TornDown:     tornDown[req.ItemID],
	}
	result := coreteardown.CanTeardownItem(guardCtx)
	if !result.Allowed {
		return nil, result.Error()
	}

	resp := &primary.TeardownItemResponse{
		ItemID:      req.ItemID,
		ZoneCode:    req.ZoneCode,
		AlreadyDone: result.NoOp,
	}

	if !result.NoOp {
		if err := s.teardownRepo.MarkTornDown(ctx, req.DeploymentID, req.ZoneCode, req.ItemID, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("failed to record teardown: %w", err)
		}
		if err := s.items.SetItemStatus(ctx, req.ItemID, secondary.ItemStatusTearDown); err != nil {
			return nil, fmt.Errorf("item %s torn down but status push failed: %w", req.ItemID, err)
		}
		tornDown[req.ItemID] = true
	}

	deployed, err := s.sessionRepo.ListZoneItems(ctx, req.DeploymentID, req.ZoneCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list zone items: %w", err)
	}
	resp.ZoneCompleted = coreteardown.ZoneFullyTornDown(deployed, tornDown)
	return resp, nil
}

// ZoneFullyTornDown derives the zone's teardown completion from canonical
// state; nothing is stored.
func (s *TeardownServiceImpl) ZoneFullyTornDown(ctx context.Context, deploymentID, zoneCode string) (bool, error) {
	deployed, err := s.sessionRepo.ListZoneItems(ctx, deploymentID, zoneCode)
	if err != nil {
		return false, fmt.Errorf("failed to list zone items: %w", err)
	}
	tornDown, err := s.teardownRepo.TornDownItems(ctx, deploymentID, zoneCode)
	if err != nil {
		return false, fmt.Errorf("failed to load teardown state: %w", err)
	}
	return coreteardown.ZoneFullyTornDown(deployed, tornDown), nil
}

var _ primary.TeardownService = (*TeardownServiceImpl)(nil)
