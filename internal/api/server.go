// Package api exposes the deployment lifecycle over HTTP. Handlers are thin
// translations onto the primary ports; all domain rules live in the services.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/garland/internal/ports/primary"
)

// Server bundles the services the HTTP handlers dispatch to.
type Server struct {
	deployments primary.DeploymentService
	sessions    primary.SessionService
	connections primary.ConnectionService
	staging     primary.StagingService
	teardown    primary.TeardownService
	log         *slog.Logger
}

// NewServer creates a Server with injected services.
func NewServer(
	deployments primary.DeploymentService,
	sessions primary.SessionService,
	connections primary.ConnectionService,
	staging primary.StagingService,
	teardown primary.TeardownService,
	log *slog.Logger,
) *Server {
	return &Server{
		deployments: deployments,
		sessions:    sessions,
		connections: connections,
		staging:     staging,
		teardown:    teardown,
		log:         log,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.POST("/deployments", s.createDeployment)
		v1.GET("/deployments", s.listDeployments)
		v1.GET("/deployments/:id", s.getDeployment)
		v1.POST("/deployments/:id/start-setup", s.startSetup)
		v1.POST("/deployments/:id/complete", s.completeDeployment)
		v1.POST("/deployments/:id/start-teardown", s.startTeardown)
		v1.POST("/deployments/:id/complete-teardown", s.completeTeardown)
		v1.GET("/deployments/:id/board", s.getBoard)
		v1.GET("/deployments/:id/staging", s.stagingBoard)
		v1.GET("/deployments/:id/zones/:zone/history", s.zoneHistory)
		v1.GET("/deployments/:id/zones/:zone/teardown", s.zoneTeardownStatus)
		v1.POST("/deployments/:id/zones/:zone/teardown", s.teardownItem)

		v1.POST("/sessions", s.startSession)
		v1.GET("/sessions/:id", s.getSession)
		v1.POST("/sessions/:id/end", s.endSession)

		v1.POST("/connections", s.createConnection)
		v1.GET("/connections/:id", s.getConnection)
		v1.POST("/connections/:id/remove", s.removeConnection)
		v1.POST("/connections/:id/photos", s.attachPhotos)

		v1.POST("/totes", s.createTote)
		v1.POST("/totes/:id/stage", s.stageTote)
	}

	return r
}

// requestLogger tags each request with an id, emits one structured log line
// and feeds the request metrics.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observeRequest(c.Request.Method, route, status, time.Since(start))

		s.log.Info("request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
