package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/example/garland/internal/core/fault"
	"github.com/example/garland/internal/ports/secondary"
)

// Ensure the mocks implement the secondary ports
var _ secondary.DeploymentRepository = (*mockDeploymentRepo)(nil)
var _ secondary.SessionRepository = (*mockSessionRepo)(nil)
var _ secondary.ConnectionRepository = (*mockConnectionRepo)(nil)
var _ secondary.ToteRepository = (*mockToteRepo)(nil)
var _ secondary.TeardownRepository = (*mockTeardownRepo)(nil)
var _ secondary.ItemsService = (*mockItemsService)(nil)
var _ secondary.PhotoService = (*mockPhotoService)(nil)

// testEnv bundles the in-memory mocks with fully wired services.
type testEnv struct {
	locker         *DeploymentLocker
	deploymentRepo *mockDeploymentRepo
	sessionRepo    *mockSessionRepo
	connectionRepo *mockConnectionRepo
	toteRepo       *mockToteRepo
	teardownRepo   *mockTeardownRepo
	items          *mockItemsService
	photoStore     *mockPhotoService

	deployments *DeploymentServiceImpl
	sessions    *SessionServiceImpl
	connections *ConnectionServiceImpl
	staging     *StagingServiceImpl
	teardown    *TeardownServiceImpl
}

func newTestEnv() *testEnv {
	env := &testEnv{
		locker:         NewDeploymentLocker(DefaultLockTimeout),
		deploymentRepo: newMockDeploymentRepo(),
		sessionRepo:    newMockSessionRepo(),
		connectionRepo: newMockConnectionRepo(),
		toteRepo:       newMockToteRepo(),
		teardownRepo:   newMockTeardownRepo(),
		items:          newMockItemsService(),
		photoStore:     newMockPhotoService(),
	}
	env.deployments = NewDeploymentService(env.locker, env.deploymentRepo, env.sessionRepo, env.toteRepo, env.teardownRepo, env.items)
	env.sessions = NewSessionService(env.locker, env.deploymentRepo, env.sessionRepo, env.connectionRepo, env.items)
	env.connections = NewConnectionService(env.locker, env.deploymentRepo, env.sessionRepo, env.connectionRepo, env.items, env.photoStore)
	env.staging = NewStagingService(env.locker, env.deploymentRepo, env.toteRepo, env.items)
	env.teardown = NewTeardownService(env.locker, env.deploymentRepo, env.sessionRepo, env.teardownRepo, env.items)
	return env
}

// seedDeployment puts a deployment with its three zones directly into the
// repo in the given phase.
func (env *testEnv) seedDeployment(id, phase string) {
	env.deploymentRepo.deployments[id] = &secondary.DeploymentRecord{
		ID:     id,
		Season: "CHRISTMAS",
		Year:   2026,
		Status: phase,
	}
	env.deploymentRepo.zones[id] = []*secondary.ZoneRecord{
		{DeploymentID: id, Code: "FY", Name: "Front Yard", ReceptacleID: "RCP-FY-1"},
		{DeploymentID: id, Code: "BY", Name: "Back Yard", ReceptacleID: "RCP-BY-1"},
		{DeploymentID: id, Code: "SW", Name: "Side Walkway", ReceptacleID: "RCP-SW-1"},
	}
}

// mockDeploymentRepo implements secondary.DeploymentRepository in memory.
type mockDeploymentRepo struct {
	deployments map[string]*secondary.DeploymentRecord
	zones       map[string][]*secondary.ZoneRecord
	createErr   error
	updateErr   error
}

func newMockDeploymentRepo() *mockDeploymentRepo {
	return &mockDeploymentRepo{
		deployments: make(map[string]*secondary.DeploymentRecord),
		zones:       make(map[string][]*secondary.ZoneRecord),
	}
}

func (m *mockDeploymentRepo) Create(ctx context.Context, dep *secondary.DeploymentRecord, zones []*secondary.ZoneRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.deployments[dep.ID]; exists {
		return fmt.Errorf("deployment %s already exists", dep.ID)
	}
	copied := *dep
	m.deployments[dep.ID] = &copied
	m.zones[dep.ID] = zones
	return nil
}

func (m *mockDeploymentRepo) GetByID(ctx context.Context, id string) (*secondary.DeploymentRecord, error) {
	dep, ok := m.deployments[id]
	if !ok {
		return nil, fault.New(fault.KindNotFound, id, "deployment %s not found", id)
	}
	copied := *dep
	return &copied, nil
}

func (m *mockDeploymentRepo) List(ctx context.Context) ([]*secondary.DeploymentRecord, error) {
	ids := make([]string, 0, len(m.deployments))
	for id := range m.deployments {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	out := make([]*secondary.DeploymentRecord, 0, len(ids))
	for _, id := range ids {
		copied := *m.deployments[id]
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockDeploymentRepo) UpdateStatus(ctx context.Context, dep *secondary.DeploymentRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.deployments[dep.ID]; !ok {
		return fault.New(fault.KindNotFound, dep.ID, "deployment %s not found", dep.ID)
	}
	copied := *dep
	m.deployments[dep.ID] = &copied
	return nil
}

func (m *mockDeploymentRepo) ListZones(ctx context.Context, deploymentID string) ([]*secondary.ZoneRecord, error) {
	return m.zones[deploymentID], nil
}

// mockSessionRepo implements secondary.SessionRepository in memory.
type mockSessionRepo struct {
	sessions map[string]*secondary.SessionRecord
	order    []string
	items    map[string][]string
	nextID   int
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{
		sessions: make(map[string]*secondary.SessionRecord),
		items:    make(map[string][]string),
	}
}

func (m *mockSessionRepo) Create(ctx context.Context, session *secondary.SessionRecord) error {
	copied := *session
	m.sessions[session.ID] = &copied
	m.order = append(m.order, session.ID)
	return nil
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id string) (*secondary.SessionRecord, error) {
	sess, ok := m.sessions[id]
	if !ok {
		return nil, fault.New(fault.KindNotFound, id, "session %s not found", id)
	}
	copied := *sess
	return &copied, nil
}

func (m *mockSessionRepo) GetOpenByZone(ctx context.Context, deploymentID, zoneCode string) (*secondary.SessionRecord, error) {
	for _, id := range m.order {
		sess := m.sessions[id]
		if sess.DeploymentID == deploymentID && sess.ZoneCode == zoneCode && !sess.Closed {
			copied := *sess
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockSessionRepo) ListOpenZones(ctx context.Context, deploymentID string) ([]string, error) {
	seen := make(map[string]bool)
	var zones []string
	for _, id := range m.order {
		sess := m.sessions[id]
		if sess.DeploymentID == deploymentID && !sess.Closed && !seen[sess.ZoneCode] {
			seen[sess.ZoneCode] = true
			zones = append(zones, sess.ZoneCode)
		}
	}
	return zones, nil
}

func (m *mockSessionRepo) ListByZone(ctx context.Context, deploymentID, zoneCode string) ([]*secondary.SessionRecord, error) {
	var out []*secondary.SessionRecord
	for _, id := range m.order {
		sess := m.sessions[id]
		if sess.DeploymentID == deploymentID && sess.ZoneCode == zoneCode {
			copied := *sess
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockSessionRepo) Close(ctx context.Context, session *secondary.SessionRecord) error {
	if _, ok := m.sessions[session.ID]; !ok {
		return fault.New(fault.KindNotFound, session.ID, "session %s not found", session.ID)
	}
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

func (m *mockSessionRepo) AddItem(ctx context.Context, sessionID, itemID string) error {
	for _, existing := range m.items[sessionID] {
		if existing == itemID {
			return nil
		}
	}
	m.items[sessionID] = append(m.items[sessionID], itemID)
	return nil
}

func (m *mockSessionRepo) ListItems(ctx context.Context, sessionID string) ([]string, error) {
	return m.items[sessionID], nil
}

func (m *mockSessionRepo) ListZoneItems(ctx context.Context, deploymentID, zoneCode string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, id := range m.order {
		sess := m.sessions[id]
		if sess.DeploymentID != deploymentID || sess.ZoneCode != zoneCode {
			continue
		}
		for _, itemID := range m.items[id] {
			if !seen[itemID] {
				seen[itemID] = true
				out = append(out, itemID)
			}
		}
	}
	return out, nil
}

func (m *mockSessionRepo) ListDeploymentItems(ctx context.Context, deploymentID string) (map[string][]string, error) {
	out := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, id := range m.order {
		sess := m.sessions[id]
		if sess.DeploymentID != deploymentID {
			continue
		}
		if seen[sess.ZoneCode] == nil {
			seen[sess.ZoneCode] = make(map[string]bool)
		}
		for _, itemID := range m.items[id] {
			if !seen[sess.ZoneCode][itemID] {
				seen[sess.ZoneCode][itemID] = true
				out[sess.ZoneCode] = append(out[sess.ZoneCode], itemID)
			}
		}
	}
	return out, nil
}

func (m *mockSessionRepo) NextID(ctx context.Context, deploymentID string) (string, error) {
	m.nextID++
	return fmt.Sprintf("SESS-%03d", m.nextID), nil
}

// mockConnectionRepo implements secondary.ConnectionRepository in memory.
type mockConnectionRepo struct {
	connections map[string]*secondary.ConnectionRecord
	order       []string
	nextID      int
}

func newMockConnectionRepo() *mockConnectionRepo {
	return &mockConnectionRepo{connections: make(map[string]*secondary.ConnectionRecord)}
}

func (m *mockConnectionRepo) Create(ctx context.Context, conn *secondary.ConnectionRecord) error {
	copied := *conn
	m.connections[conn.ID] = &copied
	m.order = append(m.order, conn.ID)
	return nil
}

func (m *mockConnectionRepo) GetByID(ctx context.Context, id string) (*secondary.ConnectionRecord, error) {
	conn, ok := m.connections[id]
	if !ok {
		return nil, fault.New(fault.KindNotFound, id, "connection %s not found", id)
	}
	copied := *conn
	return &copied, nil
}

func (m *mockConnectionRepo) ListActiveBySession(ctx context.Context, sessionID string) ([]*secondary.ConnectionRecord, error) {
	return m.list(func(c *secondary.ConnectionRecord) bool {
		return c.SessionID == sessionID && !c.Removed
	}), nil
}

func (m *mockConnectionRepo) ListRemovedBySession(ctx context.Context, sessionID string) ([]*secondary.ConnectionRecord, error) {
	return m.list(func(c *secondary.ConnectionRecord) bool {
		return c.SessionID == sessionID && c.Removed
	}), nil
}

func (m *mockConnectionRepo) ListActiveByDeployment(ctx context.Context, deploymentID string) ([]*secondary.ConnectionRecord, error) {
	return m.list(func(c *secondary.ConnectionRecord) bool {
		return c.DeploymentID == deploymentID && !c.Removed
	}), nil
}

func (m *mockConnectionRepo) MarkRemoved(ctx context.Context, id, reason string, at time.Time) error {
	conn, ok := m.connections[id]
	if !ok {
		return fault.New(fault.KindNotFound, id, "connection %s not found", id)
	}
	conn.Removed = true
	conn.RemovalReason = reason
	conn.RemovedAt = at
	return nil
}

func (m *mockConnectionRepo) ReplacePhotos(ctx context.Context, id string, photoIDs []string) error {
	conn, ok := m.connections[id]
	if !ok {
		return fault.New(fault.KindNotFound, id, "connection %s not found", id)
	}
	conn.PhotoIDs = photoIDs
	return nil
}

func (m *mockConnectionRepo) NextID(ctx context.Context, deploymentID string) (string, error) {
	m.nextID++
	return fmt.Sprintf("CONN-%03d", m.nextID), nil
}

func (m *mockConnectionRepo) list(match func(*secondary.ConnectionRecord) bool) []*secondary.ConnectionRecord {
	var out []*secondary.ConnectionRecord
	for _, id := range m.order {
		if match(m.connections[id]) {
			copied := *m.connections[id]
			out = append(out, &copied)
		}
	}
	return out
}

// mockToteRepo implements secondary.ToteRepository in memory.
type mockToteRepo struct {
	totes        map[string]*secondary.ToteRecord
	order        []string
	nextID       int
	markStageErr error
}

func newMockToteRepo() *mockToteRepo {
	return &mockToteRepo{totes: make(map[string]*secondary.ToteRecord)}
}

func (m *mockToteRepo) Create(ctx context.Context, tote *secondary.ToteRecord) error {
	copied := *tote
	if copied.StagedItems == nil {
		copied.StagedItems = make(map[string]bool)
	}
	m.totes[tote.ID] = &copied
	m.order = append(m.order, tote.ID)
	return nil
}

func (m *mockToteRepo) GetByID(ctx context.Context, id string) (*secondary.ToteRecord, error) {
	tote, ok := m.totes[id]
	if !ok {
		return nil, fault.New(fault.KindNotFound, id, "tote %s not found", id)
	}
	copied := *tote
	copied.StagedItems = make(map[string]bool, len(tote.StagedItems))
	for k, v := range tote.StagedItems {
		copied.StagedItems[k] = v
	}
	return &copied, nil
}

func (m *mockToteRepo) ListByDeployment(ctx context.Context, deploymentID string) ([]*secondary.ToteRecord, error) {
	var out []*secondary.ToteRecord
	for _, id := range m.order {
		if m.totes[id].DeploymentID == deploymentID {
			tote, _ := m.GetByID(ctx, id)
			out = append(out, tote)
		}
	}
	return out, nil
}

func (m *mockToteRepo) StagedItems(ctx context.Context, deploymentID string, itemIDs []string) (map[string]bool, error) {
	staged := make(map[string]bool)
	for _, id := range m.order {
		tote := m.totes[id]
		if tote.DeploymentID != deploymentID {
			continue
		}
		for _, itemID := range itemIDs {
			if tote.StagedItems[itemID] {
				staged[itemID] = true
			}
		}
	}
	return staged, nil
}

func (m *mockToteRepo) MarkStaged(ctx context.Context, toteID string, itemIDs []string, at time.Time) error {
	if m.markStageErr != nil {
		return m.markStageErr
	}
	tote, ok := m.totes[toteID]
	if !ok {
		return fault.New(fault.KindNotFound, toteID, "tote %s not found", toteID)
	}
	for _, itemID := range itemIDs {
		tote.StagedItems[itemID] = true
	}
	return nil
}

func (m *mockToteRepo) NextID(ctx context.Context, deploymentID string) (string, error) {
	m.nextID++
	return fmt.Sprintf("TOTE-%03d", m.nextID), nil
}

// mockTeardownRepo implements secondary.TeardownRepository in memory.
type mockTeardownRepo struct {
	tornDown map[string]map[string]bool // deploymentID/zoneCode -> itemID set
}

func newMockTeardownRepo() *mockTeardownRepo {
	return &mockTeardownRepo{tornDown: make(map[string]map[string]bool)}
}

func (m *mockTeardownRepo) MarkTornDown(ctx context.Context, deploymentID, zoneCode, itemID string, at time.Time) error {
	key := deploymentID + "/" + zoneCode
	if m.tornDown[key] == nil {
		m.tornDown[key] = make(map[string]bool)
	}
	m.tornDown[key][itemID] = true
	return nil
}

func (m *mockTeardownRepo) TornDownItems(ctx context.Context, deploymentID, zoneCode string) (map[string]bool, error) {
	key := deploymentID + "/" + zoneCode
	out := make(map[string]bool, len(m.tornDown[key]))
	for itemID := range m.tornDown[key] {
		out[itemID] = true
	}
	return out, nil
}

// mockItemsService implements secondary.ItemsService with a fixed catalog.
type mockItemsService struct {
	items        map[string]*secondary.ItemInfo
	statusPushes map[string]string
	setStatusErr error
	failItems    map[string]bool
}

func newMockItemsService() *mockItemsService {
	return &mockItemsService{
		items:        make(map[string]*secondary.ItemInfo),
		statusPushes: make(map[string]string),
		failItems:    make(map[string]bool),
	}
}

func (m *mockItemsService) addItem(id, name, class, socketType string) {
	m.items[id] = &secondary.ItemInfo{
		ID:         id,
		Name:       name,
		Class:      class,
		SocketType: socketType,
		Status:     secondary.ItemStatusActive,
	}
}

func (m *mockItemsService) GetItem(ctx context.Context, id string) (*secondary.ItemInfo, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, fault.New(fault.KindNotFound, id, "item %s not found", id)
	}
	copied := *item
	return &copied, nil
}

func (m *mockItemsService) SearchItems(ctx context.Context, filters secondary.ItemFilters) ([]*secondary.ItemInfo, error) {
	var out []*secondary.ItemInfo
	for _, item := range m.items {
		if filters.Class != "" && item.Class != filters.Class {
			continue
		}
		if filters.Status != "" && item.Status != filters.Status {
			continue
		}
		copied := *item
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockItemsService) SetItemStatus(ctx context.Context, id, status string) error {
	if m.setStatusErr != nil {
		return m.setStatusErr
	}
	if m.failItems[id] {
		return fmt.Errorf("items service unavailable for %s", id)
	}
	if item, ok := m.items[id]; ok {
		item.Status = status
	}
	m.statusPushes[id] = status
	return nil
}

// mockPhotoService implements secondary.PhotoService, minting one photo id
// per uploaded path.
type mockPhotoService struct {
	uploaded  map[string][]string
	uploadErr error
	counter   int
}

func newMockPhotoService() *mockPhotoService {
	return &mockPhotoService{uploaded: make(map[string][]string)}
}

func (m *mockPhotoService) UploadBatch(ctx context.Context, connectionID string, paths []string) ([]string, error) {
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	ids := make([]string, 0, len(paths))
	for range paths {
		m.counter++
		ids = append(ids, fmt.Sprintf("PHOTO-%03d", m.counter))
	}
	m.uploaded[connectionID] = append(m.uploaded[connectionID], ids...)
	return ids, nil
}
