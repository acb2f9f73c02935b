package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/garland/internal/ports/primary"
)

type startSessionRequest struct {
	DeploymentID string `json:"deployment_id" binding:"required"`
	ZoneCode     string `json:"zone_code" binding:"required"`
}

func (s *Server) startSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	sess, err := s.sessions.StartSession(c.Request.Context(), primary.StartSessionRequest{
		DeploymentID: req.DeploymentID,
		ZoneCode:     req.ZoneCode,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSessionJSON(sess))
}

type endSessionRequest struct {
	Notes           string `json:"notes"`
	SkipPhotoReview bool   `json:"skip_photo_review"`
}

func (s *Server) endSession(c *gin.Context) {
	// Body is optional: a bare POST closes the session with no notes.
	var req endSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(c, err)
		return
	}

	sess, err := s.sessions.EndSession(c.Request.Context(), primary.EndSessionRequest{
		SessionID:       c.Param("id"),
		Notes:           req.Notes,
		SkipPhotoReview: req.SkipPhotoReview,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionJSON(sess))
}

func (s *Server) getSession(c *gin.Context) {
	sess, err := s.sessions.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionJSON(sess))
}

func (s *Server) zoneHistory(c *gin.Context) {
	sessions, err := s.sessions.ZoneHistory(c.Request.Context(), c.Param("id"), c.Param("zone"))
	if err != nil {
		writeError(c, err)
		return
	}

	out := []sessionJSON{}
	for _, sess := range sessions {
		out = append(out, toSessionJSON(sess))
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out})
}
