package app

import (
	"context"
	"fmt"
	"time"

	coredeployment "github.com/example/garland/internal/core/deployment"
	corestaging "github.com/example/garland/internal/core/staging"
	"github.com/example/garland/internal/ports/primary"
	"github.com/example/garland/internal/ports/secondary"
)

// StagingServiceImpl implements the StagingService interface.
type StagingServiceImpl struct {
	locker         *DeploymentLocker
	deploymentRepo secondary.DeploymentRepository
	toteRepo       secondary.ToteRepository
	items          secondary.ItemsService
}

// NewStagingService creates a new StagingService with injected dependencies.
func NewStagingService(
	locker *DeploymentLocker,
	deploymentRepo secondary.DeploymentRepository,
	toteRepo secondary.ToteRepository,
	items secondary.ItemsService,
) *StagingServiceImpl {
	return &StagingServiceImpl{
		locker:         locker,
		deploymentRepo: deploymentRepo,
		toteRepo:       toteRepo,
		items:          items,
	}
}

// CreateTote registers a tote with its contents.
func (s *StagingServiceImpl) CreateTote(ctx context.Context, req primary.CreateToteRequest) (*primary.Tote, error) {
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
	if result := coredeployment.CanMutate(dep.ID, phase); !result.Allowed {
		return nil, result.Error()
	}

	nextID, err := s.toteRepo.NextID(ctx, req.DeploymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tote ID: %w", err)
	}
	record := &secondary.ToteRecord{
		ID:           nextID,
		DeploymentID: req.DeploymentID,
		Label:        req.Label,
		Contents:     req.ItemIDs,
	}
	if err := s.toteRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create tote: %w", err)
	}
	return toteView(record), nil
}

// StageTote marks the tote's items Staged, all-or-nothing.
func (s *StagingServiceImpl) StageTote(ctx context.Context, req primary.StageToteRequest) (*primary.Tote, error) {
	peek, err := s.toteRepo.GetByID(ctx, req.ToteID)
	if err != nil {
		return nil, fmt.Errorf("tote not found: %w", err)
	}

	release, err := s.locker.Acquire(ctx, peek.DeploymentID)
	if err != nil {
		return nil, err
	}
	defer release()

	tote, err := s.toteRepo.GetByID(ctx, req.ToteID)
	if err != nil {
		return nil, fmt.Errorf("tote not found: %w", err)
	}

	dep, err := s.deploymentRepo.GetByID(ctx, tote.DeploymentID)
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

	itemIDs := req.ItemIDs
	if len(itemIDs) == 0 {
		itemIDs = tote.Contents
	}

	// An item may only be staged once, across all totes.
	stagedSet, err := s.toteRepo.StagedItems(ctx, tote.DeploymentID, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to check staged items: %w", err)
	}
	alreadyStaged := make([]bool, len(itemIDs))
	for i, id := range itemIDs {
		alreadyStaged[i] = stagedSet[id]
	}

	guardCtx := corestaging.StageContext{
		ToteID:        tote.ID,
		Phase:         phase,
		ItemIDs:       itemIDs,
		AlreadyStaged: alreadyStaged,
	}
	if result := corestaging.CanStageTote(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	if err := s.toteRepo.MarkStaged(ctx, tote.ID, itemIDs, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to stage tote: %w", err)
	}

	// Status pushes run after the local commit; a failure fails the command
	// without unwinding the staged tote.
	for _, itemID := range itemIDs {
		if err := s.items.SetItemStatus(ctx, itemID, secondary.ItemStatusStaged); err != nil {
			return nil, fmt.Errorf("tote %s staged but item %s status push failed: %w", tote.ID, itemID, err)
		}
	}

	staged, err := s.toteRepo.GetByID(ctx, tote.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload tote: %w", err)
	}
	return toteView(staged), nil
}

// StagingBoard partitions the deployment's totes by their derived staged
// flag, recomputed on read.
func (s *StagingServiceImpl) StagingBoard(ctx context.Context, deploymentID string) (*primary.StagingBoard, error) {
	totes, err := s.toteRepo.ListByDeployment(ctx, deploymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list totes: %w", err)
	}
	board := &primary.StagingBoard{}
	for _, tote := range totes {
		view := toteView(tote)
		if view.Staged {
			board.Staged = append(board.Staged, view)
		} else {
			board.Available = append(board.Available, view)
		}
	}
	return board, nil
}

func toteView(record *secondary.ToteRecord) *primary.Tote {
	view := &primary.Tote{
		ID:       record.ID,
		Label:    record.Label,
		Contents: record.Contents,
		Staged:   corestaging.IsFullyStaged(record.Contents, record.StagedItems),
	}
	for _, id := range record.Contents {
		if record.StagedItems[id] {
			view.StagedItems = append(view.StagedItems, id)
		}
	}
	return view
}

var _ primary.StagingService = (*StagingServiceImpl)(nil)
