// Package wire provides dependency injection for the garland application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"time"

	cliadapter "github.com/example/garland/internal/adapters/cli"
	"github.com/example/garland/internal/adapters/itemsvc"
	"github.com/example/garland/internal/adapters/photosvc"
	"github.com/example/garland/internal/adapters/sqlite"
	"github.com/example/garland/internal/app"
	"github.com/example/garland/internal/config"
	"github.com/example/garland/internal/db"
	"github.com/example/garland/internal/ports/primary"
)

var (
	cfg               *config.Config
	deploymentService primary.DeploymentService
	sessionService    primary.SessionService
	connectionService primary.ConnectionService
	stagingService    primary.StagingService
	teardownService   primary.TeardownService
	once              sync.Once
)

// Config returns the loaded application configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// DeploymentService returns the singleton DeploymentService instance.
func DeploymentService() primary.DeploymentService {
	once.Do(initServices)
	return deploymentService
}

// SessionService returns the singleton SessionService instance.
func SessionService() primary.SessionService {
	once.Do(initServices)
	return sessionService
}

// ConnectionService returns the singleton ConnectionService instance.
func ConnectionService() primary.ConnectionService {
	once.Do(initServices)
	return connectionService
}

// StagingService returns the singleton StagingService instance.
func StagingService() primary.StagingService {
	once.Do(initServices)
	return stagingService
}

// TeardownService returns the singleton TeardownService instance.
func TeardownService() primary.TeardownService {
	once.Do(initServices)
	return teardownService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	dir, err := config.ConfigDir()
	if err != nil {
		log.Fatalf("failed to locate config directory: %v", err)
	}
	cfg, err = config.LoadConfig(dir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.DBPath != "" {
		db.SetDBPath(cfg.DBPath)
	}
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Repository adapters (secondary ports) - sqlite adapters with injected DB
	deploymentRepo := sqlite.NewDeploymentRepository(database)
	sessionRepo := sqlite.NewSessionRepository(database)
	connectionRepo := sqlite.NewConnectionRepository(database)
	toteRepo := sqlite.NewToteRepository(database)
	teardownRepo := sqlite.NewTeardownRepository(database)

	// External service clients
	items := itemsvc.NewClient(cfg.ItemsServiceURL, 10*time.Second, logger)
	photos := photosvc.NewClient(cfg.PhotoServiceURL, 30*time.Second, logger)

	locker := app.NewDeploymentLocker(time.Duration(cfg.LockTimeoutSecs) * time.Second)

	// Services (primary ports implementation)
	deploymentService = app.NewDeploymentService(locker, deploymentRepo, sessionRepo, toteRepo, teardownRepo, items)
	sessionService = app.NewSessionService(locker, deploymentRepo, sessionRepo, connectionRepo, items)
	connectionService = app.NewConnectionService(locker, deploymentRepo, sessionRepo, connectionRepo, items, photos)
	stagingService = app.NewStagingService(locker, deploymentRepo, toteRepo, items)
	teardownService = app.NewTeardownService(locker, deploymentRepo, sessionRepo, teardownRepo, items)
}

// DeploymentAdapter returns a new DeploymentAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func DeploymentAdapter() *cliadapter.DeploymentAdapter {
	return DeploymentAdapterWithOutput(os.Stdout)
}

// DeploymentAdapterWithOutput returns a new DeploymentAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func DeploymentAdapterWithOutput(out io.Writer) *cliadapter.DeploymentAdapter {
	once.Do(initServices)
	return cliadapter.NewDeploymentAdapter(deploymentService, out)
}

// SessionAdapter returns a new SessionAdapter writing to stdout.
func SessionAdapter() *cliadapter.SessionAdapter {
	return SessionAdapterWithOutput(os.Stdout)
}

// SessionAdapterWithOutput returns a new SessionAdapter writing to the given output.
func SessionAdapterWithOutput(out io.Writer) *cliadapter.SessionAdapter {
	once.Do(initServices)
	return cliadapter.NewSessionAdapter(sessionService, out)
}

// ConnectionAdapter returns a new ConnectionAdapter writing to stdout.
func ConnectionAdapter() *cliadapter.ConnectionAdapter {
	return ConnectionAdapterWithOutput(os.Stdout)
}

// ConnectionAdapterWithOutput returns a new ConnectionAdapter writing to the given output.
func ConnectionAdapterWithOutput(out io.Writer) *cliadapter.ConnectionAdapter {
	once.Do(initServices)
	return cliadapter.NewConnectionAdapter(connectionService, out)
}

// StagingAdapter returns a new StagingAdapter writing to stdout.
func StagingAdapter() *cliadapter.StagingAdapter {
	return StagingAdapterWithOutput(os.Stdout)
}

// StagingAdapterWithOutput returns a new StagingAdapter writing to the given output.
func StagingAdapterWithOutput(out io.Writer) *cliadapter.StagingAdapter {
	once.Do(initServices)
	return cliadapter.NewStagingAdapter(stagingService, out)
}

// TeardownAdapter returns a new TeardownAdapter writing to stdout.
func TeardownAdapter() *cliadapter.TeardownAdapter {
	return TeardownAdapterWithOutput(os.Stdout)
}

// TeardownAdapterWithOutput returns a new TeardownAdapter writing to the given output.
func TeardownAdapterWithOutput(out io.Writer) *cliadapter.TeardownAdapter {
	once.Do(initServices)
	return cliadapter.NewTeardownAdapter(teardownService, out)
}
