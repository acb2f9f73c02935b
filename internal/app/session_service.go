package app

import (
	"context"
	"fmt"
	"time"

	coredeployment "github.com/example/garland/internal/core/deployment"
	"github.com/example/garland/internal/core/photos"
	coresession "github.com/example/garland/internal/core/session"
	"github.com/example/garland/internal/ports/primary"
	"github.com/example/garland/internal/ports/secondary"
)

// SessionServiceImpl implements the SessionService interface.
type SessionServiceImpl struct {
	locker         *DeploymentLocker
	deploymentRepo secondary.DeploymentRepository
	sessionRepo    secondary.SessionRepository
	connectionRepo secondary.ConnectionRepository
	items          secondary.ItemsService
}

// NewSessionService creates a new SessionService with injected dependencies.
func NewSessionService(
	locker *DeploymentLocker,
	deploymentRepo secondary.DeploymentRepository,
	sessionRepo secondary.SessionRepository,
	connectionRepo secondary.ConnectionRepository,
	items secondary.ItemsService,
) *SessionServiceImpl {
	return &SessionServiceImpl{
		locker:         locker,
		deploymentRepo: deploymentRepo,
		sessionRepo:    sessionRepo,
		connectionRepo: connectionRepo,
		items:          items,
	}
}

// StartSession opens a work session in a zone.
func (s *SessionServiceImpl) StartSession(ctx context.Context, req primary.StartSessionRequest) (*primary.Session, error) {
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

	open, err := s.sessionRepo.GetOpenByZone(ctx, req.DeploymentID, req.ZoneCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check open session: %w", err)
	}
	openID := ""
	if open != nil {
		openID = open.ID
	}

	guardCtx := coresession.StartContext{
		DeploymentID:  req.DeploymentID,
		Zone:          coredeployment.ZoneCode(req.ZoneCode),
		Phase:         phase,
		OpenSessionID: openID,
	}
	if result := coresession.CanStartSession(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	nextID, err := s.sessionRepo.NextID(ctx, req.DeploymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	record := &secondary.SessionRecord{
		ID:           nextID,
		DeploymentID: req.DeploymentID,
		ZoneCode:     req.ZoneCode,
		StartTime:    time.Now().UTC(),
	}
	if err := s.sessionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.recordToSession(ctx, record, false)
}

// EndSession closes a session, enforcing photo review unless skipped.
func (s *SessionServiceImpl) EndSession(ctx context.Context, req primary.EndSessionRequest) (*primary.Session, error) {
	// Resolve the owning deployment before locking.
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

	// Photo evidence is recomputed at close time; attachment can race with
	// the review step, so nothing is cached.
	var missing []string
	if !req.SkipPhotoReview && !session.Closed {
		missing, err = s.missingPhotoConnections(ctx, session.ID)
		if err != nil {
			return nil, err
		}
	}

	guardCtx := coresession.EndContext{
		SessionID:               session.ID,
		Closed:                  session.Closed,
		SkipPhotoReview:         req.SkipPhotoReview,
		MissingPhotoConnections: missing,
	}
	if result := coresession.CanEndSession(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	now := time.Now().UTC()
	session.EndTime = now
	session.Closed = true
	session.DurationSeconds = coresession.Duration(session.StartTime, now)
	session.Notes = req.Notes
	if err := s.sessionRepo.Close(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to close session: %w", err)
	}

	return s.recordToSession(ctx, session, true)
}

// GetSession retrieves a session with its items and nested connections.
func (s *SessionServiceImpl) GetSession(ctx context.Context, sessionID string) (*primary.Session, error) {
	record, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	return s.recordToSession(ctx, record, true)
}

// ZoneHistory returns a zone's sessions oldest first, connections nested.
func (s *SessionServiceImpl) ZoneHistory(ctx context.Context, deploymentID, zoneCode string) ([]*primary.Session, error) {
	records, err := s.sessionRepo.ListByZone(ctx, deploymentID, zoneCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	sessions := make([]*primary.Session, 0, len(records))
	for _, record := range records {
		session, err := s.recordToSession(ctx, record, true)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// missingPhotoConnections evaluates the session's active connections against
// the destination item classes reported by the items service.
func (s *SessionServiceImpl) missingPhotoConnections(ctx context.Context, sessionID string) ([]string, error) {
	active, err := s.connectionRepo.ListActiveBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	evidence := make([]photos.ConnectionEvidence, 0, len(active))
	for _, conn := range active {
		item, err := s.items.GetItem(ctx, conn.ToItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up item %s: %w", conn.ToItemID, err)
		}
		evidence = append(evidence, photos.ConnectionEvidence{
			ConnectionID: conn.ID,
			ToItemClass:  item.Class,
			PhotoCount:   len(conn.PhotoIDs),
		})
	}
	return photos.MissingPhotoConnections(evidence), nil
}

func (s *SessionServiceImpl) recordToSession(ctx context.Context, record *secondary.SessionRecord, nested bool) (*primary.Session, error) {
	session := &primary.Session{
		ID:           record.ID,
		DeploymentID: record.DeploymentID,
		ZoneCode:     record.ZoneCode,
		StartTime:    record.StartTime.Format(time.RFC3339),
		Notes:        record.Notes,
	}
	if record.Closed {
		session.EndTime = record.EndTime.Format(time.RFC3339)
		session.DurationSeconds = record.DurationSeconds
	}
	if !nested {
		return session, nil
	}

	items, err := s.sessionRepo.ListItems(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session items: %w", err)
	}
	session.ItemsDeployed = items

	active, err := s.connectionRepo.ListActiveBySession(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	removed, err := s.connectionRepo.ListRemovedBySession(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list removed connections: %w", err)
	}
	session.Connections = connectionViews(active)
	session.Removed = connectionViews(removed)
	return session, nil
}

func connectionViews(records []*secondary.ConnectionRecord) []*primary.Connection {
	views := make([]*primary.Connection, 0, len(records))
	for _, r := range records {
		views = append(views, connectionView(r))
	}
	return views
}

func connectionView(r *secondary.ConnectionRecord) *primary.Connection {
	view := &primary.Connection{
		ID:            r.ID,
		SessionID:     r.SessionID,
		ZoneCode:      r.ZoneCode,
		FromItemID:    r.FromItemID,
		FromPort:      r.FromPort,
		ToItemID:      r.ToItemID,
		ToPort:        r.ToPort,
		Illuminates:   r.Illuminates,
		PhotoIDs:      r.PhotoIDs,
		Notes:         r.Notes,
		ConnectedAt:   r.ConnectedAt.Format(time.RFC3339),
		Removed:       r.Removed,
		RemovalReason: r.RemovalReason,
	}
	if r.Removed && !r.RemovedAt.IsZero() {
		view.RemovedAt = r.RemovedAt.Format(time.RFC3339)
	}
	return view
}

var _ primary.SessionService = (*SessionServiceImpl)(nil)
