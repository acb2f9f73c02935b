package app

import (
	"context"
	"fmt"
	"time"

	coredeployment "github.com/example/garland/internal/core/deployment"
	coresession "github.com/example/garland/internal/core/session"
	coreteardown "github.com/example/garland/internal/core/teardown"
	"github.com/example/garland/internal/ports/primary"
	"github.com/example/garland/internal/ports/secondary"
)

// DeploymentServiceImpl implements the DeploymentService interface: the
// top-level phase state machine composing sessions, staging, and teardown.
type DeploymentServiceImpl struct {
	locker         *DeploymentLocker
	deploymentRepo secondary.DeploymentRepository
	sessionRepo    secondary.SessionRepository
	toteRepo       secondary.ToteRepository
	teardownRepo   secondary.TeardownRepository
	items          secondary.ItemsService
}

// NewDeploymentService creates a new DeploymentService with injected
// dependencies.
func NewDeploymentService(
	locker *DeploymentLocker,
	deploymentRepo secondary.DeploymentRepository,
	sessionRepo secondary.SessionRepository,
	toteRepo secondary.ToteRepository,
	teardownRepo secondary.TeardownRepository,
	items secondary.ItemsService,
) *DeploymentServiceImpl {
	return &DeploymentServiceImpl{
		locker:         locker,
		deploymentRepo: deploymentRepo,
		sessionRepo:    sessionRepo,
		toteRepo:       toteRepo,
		teardownRepo:   teardownRepo,
		items:          items,
	}
}

// CreateDeployment creates a deployment with its fixed three zones.
func (s *DeploymentServiceImpl) CreateDeployment(ctx context.Context, req primary.CreateDeploymentRequest) (*primary.Deployment, error) {
	if req.Season == "" {
		return nil, fmt.Errorf("season must not be empty")
	}
	if req.Year < 2000 || req.Year > 2100 {
		return nil, fmt.Errorf("year %d out of range", req.Year)
	}

	id := coredeployment.DeploymentID(req.Season, req.Year)
	record := &secondary.DeploymentRecord{
		ID:     id,
		Season: req.Season,
		Year:   req.Year,
		Status: string(coredeployment.InitialPhase()),
	}
	zones := make([]*secondary.ZoneRecord, 0, 3)
	for _, z := range coredeployment.Zones() {
		zones = append(zones, &secondary.ZoneRecord{
			DeploymentID: id,
			Code:         string(z.Code),
			Name:         z.Name,
			ReceptacleID: z.ReceptacleID,
		})
	}
	if err := s.deploymentRepo.Create(ctx, record, zones); err != nil {
		return nil, fmt.Errorf("failed to create deployment: %w", err)
	}
	return deploymentView(record), nil
}

// GetDeployment retrieves a deployment by ID.
func (s *DeploymentServiceImpl) GetDeployment(ctx context.Context, deploymentID string) (*primary.Deployment, error) {
	record, err := s.deploymentRepo.GetByID(ctx, deploymentID)
	if err != nil {
		return nil, fmt.Errorf("deployment not found: %w", err)
	}
	return deploymentView(record), nil
}

// ListDeployments lists all deployments, newest first.
func (s *DeploymentServiceImpl) ListDeployments(ctx context.Context) ([]*primary.Deployment, error) {
	records, err := s.deploymentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}
	views := make([]*primary.Deployment, 0, len(records))
	for _, r := range records {
		views = append(views, deploymentView(r))
	}
	return views, nil
}

// StartSetup moves pre_deployment -> active_setup.
func (s *DeploymentServiceImpl) StartSetup(ctx context.Context, deploymentID string) (*primary.Deployment, error) {
	return s.transition(ctx, deploymentID, coredeployment.PhaseActiveSetup)
}

// StartTeardown moves completed -> active_teardown.
func (s *DeploymentServiceImpl) StartTeardown(ctx context.Context, deploymentID string) (*primary.Deployment, error) {
	return s.transition(ctx, deploymentID, coredeployment.PhaseActiveTeardown)
}

// CompleteTeardown moves active_teardown -> archived.
func (s *DeploymentServiceImpl) CompleteTeardown(ctx context.Context, deploymentID string) (*primary.Deployment, error) {
	return s.transition(ctx, deploymentID, coredeployment.PhaseArchived)
}

// CompleteDeployment moves active_setup -> completed and pushes Deployed
// status for every item wired into any zone. Pushes are best-effort: the
// items are physically placed either way, so failures are counted and
// surfaced, never rolled back.
func (s *DeploymentServiceImpl) CompleteDeployment(ctx context.Context, deploymentID string) (*primary.CompleteDeploymentResponse, error) {
	release, err := s.locker.Acquire(ctx, deploymentID)
	if err != nil {
		return nil, err
	}
	defer release()

	record, err := s.guardedTransition(ctx, deploymentID, coredeployment.PhaseCompleted)
	if err != nil {
		return nil, err
	}

	resp := &primary.CompleteDeploymentResponse{Deployment: deploymentView(record)}

	zoneItems, err := s.sessionRepo.ListDeploymentItems(ctx, deploymentID)
	if err != nil {
		return nil, fmt.Errorf("completed but failed to list deployed items: %w", err)
	}
	seen := make(map[string]bool)
	for _, items := range zoneItems {
		for _, itemID := range items {
			if seen[itemID] {
				continue
			}
			seen[itemID] = true
			if err := s.items.SetItemStatus(ctx, itemID, secondary.ItemStatusDeployed); err != nil {
				resp.ItemsFailed++
				resp.FailedItems = append(resp.FailedItems, itemID)
				continue
			}
			resp.ItemsUpdated++
		}
	}
	return resp, nil
}

// GetBoard builds the dashboard read model. Everything here is derived from
// canonical state on each read; nothing is cached or stored.
func (s *DeploymentServiceImpl) GetBoard(ctx context.Context, deploymentID string) (*primary.Board, error) {
	record, err := s.deploymentRepo.GetByID(ctx, deploymentID)
	if err != nil {
		return nil, fmt.Errorf("deployment not found: %w", err)
	}

	zones, err := s.deploymentRepo.ListZones(ctx, deploymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}

	board := &primary.Board{
		Deployment: deploymentView(record),
		Teardown:   &primary.TeardownBoard{},
	}

	for _, zone := range zones {
		sessions, err := s.sessionRepo.ListByZone(ctx, deploymentID, zone.Code)
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions for zone %s: %w", zone.Code, err)
		}
		items, err := s.sessionRepo.ListZoneItems(ctx, deploymentID, zone.Code)
		if err != nil {
			return nil, fmt.Errorf("failed to list items for zone %s: %w", zone.Code, err)
		}

		intervals := make([]coresession.Interval, 0, len(sessions))
		openID := ""
		for _, sess := range sessions {
			intervals = append(intervals, coresession.Interval{
				Start: sess.StartTime,
				End:   sess.EndTime,
				Open:  !sess.Closed,
			})
			if !sess.Closed {
				openID = sess.ID
			}
		}
		stats := coresession.ComputeZoneStats(len(items), intervals)
		status := coresession.DeriveZoneStatus(openID != "", len(items))

		board.Zones = append(board.Zones, &primary.ZoneView{
			Code:           zone.Code,
			Name:           zone.Name,
			ReceptacleID:   zone.ReceptacleID,
			Status:         string(status),
			OpenSessionID:  openID,
			ItemCount:      stats.ItemCount,
			SessionCount:   stats.SessionCount,
			TotalMinutes:   stats.TotalMinutes,
			LongestMinutes: stats.LongestMinutes,
		})

		tornDown, err := s.teardownRepo.TornDownItems(ctx, deploymentID, zone.Code)
		if err != nil {
			return nil, fmt.Errorf("failed to load teardown state for zone %s: %w", zone.Code, err)
		}
		tdView := &primary.ZoneTeardownView{
			Code:          zone.Code,
			DeployedItems: len(items),
			FullyTornDown: coreteardown.ZoneFullyTornDown(items, tornDown),
		}
		for _, itemID := range items {
			if tornDown[itemID] {
				tdView.TornDownItems++
			} else {
				tdView.RemainingItems = append(tdView.RemainingItems, itemID)
			}
		}
		board.Teardown.Zones = append(board.Teardown.Zones, tdView)
	}

	totes, err := s.toteRepo.ListByDeployment(ctx, deploymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list totes: %w", err)
	}
	staging := &primary.StagingBoard{}
	for _, tote := range totes {
		view := toteView(tote)
		if view.Staged {
			staging.Staged = append(staging.Staged, view)
		} else {
			staging.Available = append(staging.Available, view)
		}
	}
	board.Staging = staging

	return board, nil
}

// transition runs a simple phase transition under the deployment lock.
func (s *DeploymentServiceImpl) transition(ctx context.Context, deploymentID string, target coredeployment.Phase) (*primary.Deployment, error) {
	release, err := s.locker.Acquire(ctx, deploymentID)
	if err != nil {
		return nil, err
	}
	defer release()

	record, err := s.guardedTransition(ctx, deploymentID, target)
	if err != nil {
		return nil, err
	}
	return deploymentView(record), nil
}

// guardedTransition validates and persists a phase change. Caller holds the
// deployment lock.
func (s *DeploymentServiceImpl) guardedTransition(ctx context.Context, deploymentID string, target coredeployment.Phase) (*secondary.DeploymentRecord, error) {
	record, err := s.deploymentRepo.GetByID(ctx, deploymentID)
	if err != nil {
		return nil, fmt.Errorf("deployment not found: %w", err)
	}
	current, err := coredeployment.ParsePhase(record.Status)
	if err != nil {
		return nil, err
	}

	guardCtx := coredeployment.TransitionContext{
		DeploymentID: deploymentID,
		Current:      current,
		Target:       target,
	}

	if target == coredeployment.PhaseCompleted {
		openZones, err := s.sessionRepo.ListOpenZones(ctx, deploymentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check open sessions: %w", err)
		}
		for _, z := range openZones {
			guardCtx.OpenSessionZones = append(guardCtx.OpenSessionZones, coredeployment.ZoneCode(z))
		}
	}

	if target == coredeployment.PhaseArchived {
		zoneItems, err := s.sessionRepo.ListDeploymentItems(ctx, deploymentID)
		if err != nil {
			return nil, fmt.Errorf("failed to list deployed items: %w", err)
		}
		for zone, items := range zoneItems {
			tornDown, err := s.teardownRepo.TornDownItems(ctx, deploymentID, zone)
			if err != nil {
				return nil, fmt.Errorf("failed to load teardown state: %w", err)
			}
			if !coreteardown.ZoneFullyTornDown(items, tornDown) {
				guardCtx.ZonesNotTornDown = append(guardCtx.ZonesNotTornDown, coredeployment.ZoneCode(zone))
			}
		}
	}

	if result := coredeployment.CanTransition(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	applied := coredeployment.ApplyTransition(target, time.Now().UTC())
	record.Status = string(applied.NewPhase)
	if applied.SetupStartedAt != nil {
		record.SetupStartedAt = applied.SetupStartedAt.Format(time.RFC3339)
	}
	if applied.SetupCompletedAt != nil {
		record.SetupCompletedAt = applied.SetupCompletedAt.Format(time.RFC3339)
	}
	if applied.TeardownStartedAt != nil {
		record.TeardownStartedAt = applied.TeardownStartedAt.Format(time.RFC3339)
	}
	if applied.TeardownCompletedAt != nil {
		record.TeardownCompletedAt = applied.TeardownCompletedAt.Format(time.RFC3339)
	}
	if err := s.deploymentRepo.UpdateStatus(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update deployment status: %w", err)
	}
	return record, nil
}

func deploymentView(record *secondary.DeploymentRecord) *primary.Deployment {
	return &primary.Deployment{
		ID:                  record.ID,
		Season:              record.Season,
		Year:                record.Year,
		Status:              record.Status,
		SetupStartedAt:      record.SetupStartedAt,
		SetupCompletedAt:    record.SetupCompletedAt,
		TeardownStartedAt:   record.TeardownStartedAt,
		TeardownCompletedAt: record.TeardownCompletedAt,
	}
}

var _ primary.DeploymentService = (*DeploymentServiceImpl)(nil)
