package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/example/garland/internal/ports/primary"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubDeploymentService implements primary.DeploymentService with
// overridable functions. Unset functions return zero-value success.
type stubDeploymentService struct {
	createFn           func(ctx context.Context, req primary.CreateDeploymentRequest) (*primary.Deployment, error)
	getFn              func(ctx context.Context, id string) (*primary.Deployment, error)
	listFn             func(ctx context.Context) ([]*primary.Deployment, error)
	startSetupFn       func(ctx context.Context, id string) (*primary.Deployment, error)
	completeFn         func(ctx context.Context, id string) (*primary.CompleteDeploymentResponse, error)
	startTeardownFn    func(ctx context.Context, id string) (*primary.Deployment, error)
	completeTeardownFn func(ctx context.Context, id string) (*primary.Deployment, error)
	boardFn            func(ctx context.Context, id string) (*primary.Board, error)
}

func (s *stubDeploymentService) CreateDeployment(ctx context.Context, req primary.CreateDeploymentRequest) (*primary.Deployment, error) {
	if s.createFn != nil {
		return s.createFn(ctx, req)
	}
	return &primary.Deployment{ID: "DEP-2026-CHRISTMAS", Season: req.Season, Year: req.Year, Status: "pre_deployment"}, nil
}

func (s *stubDeploymentService) GetDeployment(ctx context.Context, id string) (*primary.Deployment, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return &primary.Deployment{ID: id, Status: "active_setup"}, nil
}

func (s *stubDeploymentService) ListDeployments(ctx context.Context) ([]*primary.Deployment, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *stubDeploymentService) StartSetup(ctx context.Context, id string) (*primary.Deployment, error) {
	if s.startSetupFn != nil {
		return s.startSetupFn(ctx, id)
	}
	return &primary.Deployment{ID: id, Status: "active_setup"}, nil
}

func (s *stubDeploymentService) CompleteDeployment(ctx context.Context, id string) (*primary.CompleteDeploymentResponse, error) {
	if s.completeFn != nil {
		return s.completeFn(ctx, id)
	}
	return &primary.CompleteDeploymentResponse{Deployment: &primary.Deployment{ID: id, Status: "completed"}}, nil
}

func (s *stubDeploymentService) StartTeardown(ctx context.Context, id string) (*primary.Deployment, error) {
	if s.startTeardownFn != nil {
		return s.startTeardownFn(ctx, id)
	}
	return &primary.Deployment{ID: id, Status: "active_teardown"}, nil
}

func (s *stubDeploymentService) CompleteTeardown(ctx context.Context, id string) (*primary.Deployment, error) {
	if s.completeTeardownFn != nil {
		return s.completeTeardownFn(ctx, id)
	}
	return &primary.Deployment{ID: id, Status: "archived"}, nil
}

func (s *stubDeploymentService) GetBoard(ctx context.Context, id string) (*primary.Board, error) {
	if s.boardFn != nil {
		return s.boardFn(ctx, id)
	}
	return &primary.Board{Deployment: &primary.Deployment{ID: id}}, nil
}

type stubSessionService struct {
	startFn   func(ctx context.Context, req primary.StartSessionRequest) (*primary.Session, error)
	endFn     func(ctx context.Context, req primary.EndSessionRequest) (*primary.Session, error)
	getFn     func(ctx context.Context, id string) (*primary.Session, error)
	historyFn func(ctx context.Context, deploymentID, zoneCode string) ([]*primary.Session, error)
}

func (s *stubSessionService) StartSession(ctx context.Context, req primary.StartSessionRequest) (*primary.Session, error) {
	if s.startFn != nil {
		return s.startFn(ctx, req)
	}
	return &primary.Session{ID: "SESS-001", DeploymentID: req.DeploymentID, ZoneCode: req.ZoneCode}, nil
}

func (s *stubSessionService) EndSession(ctx context.Context, req primary.EndSessionRequest) (*primary.Session, error) {
	if s.endFn != nil {
		return s.endFn(ctx, req)
	}
	return &primary.Session{ID: req.SessionID, EndTime: "2026-11-28T11:00:00Z"}, nil
}

func (s *stubSessionService) GetSession(ctx context.Context, id string) (*primary.Session, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return &primary.Session{ID: id}, nil
}

func (s *stubSessionService) ZoneHistory(ctx context.Context, deploymentID, zoneCode string) ([]*primary.Session, error) {
	if s.historyFn != nil {
		return s.historyFn(ctx, deploymentID, zoneCode)
	}
	return nil, nil
}

type stubConnectionService struct {
	createFn func(ctx context.Context, req primary.CreateConnectionRequest) (*primary.Connection, error)
	removeFn func(ctx context.Context, req primary.RemoveConnectionRequest) (*primary.Connection, error)
	photosFn func(ctx context.Context, req primary.AttachPhotosRequest) (*primary.Connection, error)
	getFn    func(ctx context.Context, id string) (*primary.Connection, error)
}

func (s *stubConnectionService) CreateConnection(ctx context.Context, req primary.CreateConnectionRequest) (*primary.Connection, error) {
	if s.createFn != nil {
		return s.createFn(ctx, req)
	}
	return &primary.Connection{ID: "CONN-001", SessionID: req.SessionID, FromItemID: req.FromItemID, FromPort: req.FromPort, ToItemID: req.ToItemID, ToPort: "Power_Inlet"}, nil
}

func (s *stubConnectionService) RemoveConnection(ctx context.Context, req primary.RemoveConnectionRequest) (*primary.Connection, error) {
	if s.removeFn != nil {
		return s.removeFn(ctx, req)
	}
	return &primary.Connection{ID: req.ConnectionID, Removed: true, RemovalReason: req.Reason}, nil
}

func (s *stubConnectionService) AttachPhotos(ctx context.Context, req primary.AttachPhotosRequest) (*primary.Connection, error) {
	if s.photosFn != nil {
		return s.photosFn(ctx, req)
	}
	return &primary.Connection{ID: req.ConnectionID, PhotoIDs: req.PhotoIDs}, nil
}

func (s *stubConnectionService) GetConnection(ctx context.Context, id string) (*primary.Connection, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return &primary.Connection{ID: id}, nil
}

type stubStagingService struct {
	createFn func(ctx context.Context, req primary.CreateToteRequest) (*primary.Tote, error)
	stageFn  func(ctx context.Context, req primary.StageToteRequest) (*primary.Tote, error)
	boardFn  func(ctx context.Context, deploymentID string) (*primary.StagingBoard, error)
}

func (s *stubStagingService) CreateTote(ctx context.Context, req primary.CreateToteRequest) (*primary.Tote, error) {
	if s.createFn != nil {
		return s.createFn(ctx, req)
	}
	return &primary.Tote{ID: "TOTE-001", Label: req.Label, Contents: req.ItemIDs}, nil
}

func (s *stubStagingService) StageTote(ctx context.Context, req primary.StageToteRequest) (*primary.Tote, error) {
	if s.stageFn != nil {
		return s.stageFn(ctx, req)
	}
	return &primary.Tote{ID: req.ToteID, Staged: true}, nil
}

func (s *stubStagingService) StagingBoard(ctx context.Context, deploymentID string) (*primary.StagingBoard, error) {
	if s.boardFn != nil {
		return s.boardFn(ctx, deploymentID)
	}
	return &primary.StagingBoard{}, nil
}

type stubTeardownService struct {
	itemFn func(ctx context.Context, req primary.TeardownItemRequest) (*primary.TeardownItemResponse, error)
	zoneFn func(ctx context.Context, deploymentID, zoneCode string) (bool, error)
}

func (s *stubTeardownService) TeardownItem(ctx context.Context, req primary.TeardownItemRequest) (*primary.TeardownItemResponse, error) {
	if s.itemFn != nil {
		return s.itemFn(ctx, req)
	}
	return &primary.TeardownItemResponse{ItemID: req.ItemID, ZoneCode: req.ZoneCode}, nil
}

func (s *stubTeardownService) ZoneFullyTornDown(ctx context.Context, deploymentID, zoneCode string) (bool, error) {
	if s.zoneFn != nil {
		return s.zoneFn(ctx, deploymentID, zoneCode)
	}
	return false, nil
}

// testStubs bundles the stub services wired into a test server.
type testStubs struct {
	deployments *stubDeploymentService
	sessions    *stubSessionService
	connections *stubConnectionService
	staging     *stubStagingService
	teardown    *stubTeardownService
}

func newTestRouter() (*gin.Engine, *testStubs) {
	stubs := &testStubs{
		deployments: &stubDeploymentService{},
		sessions:    &stubSessionService{},
		connections: &stubConnectionService{},
		staging:     &stubStagingService{},
		teardown:    &stubTeardownService{},
	}
	srv := NewServer(
		stubs.deployments,
		stubs.sessions,
		stubs.connections,
		stubs.staging,
		stubs.teardown,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return srv.Router(), stubs
}

// doJSON performs a request with an optional JSON body against the router.
func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decode unmarshals a recorded JSON response into a map.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}
