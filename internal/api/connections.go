package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/garland/internal/ports/primary"
)

type createConnectionRequest struct {
	SessionID   string   `json:"session_id" binding:"required"`
	FromItemID  string   `json:"from_item_id" binding:"required"`
	FromPort    string   `json:"from_port" binding:"required"`
	ToItemID    string   `json:"to_item_id" binding:"required"`
	Illuminates []string `json:"illuminates"`
	Notes       string   `json:"notes"`
}

func (s *Server) createConnection(c *gin.Context) {
	var req createConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	conn, err := s.connections.CreateConnection(c.Request.Context(), primary.CreateConnectionRequest{
		SessionID:   req.SessionID,
		FromItemID:  req.FromItemID,
		FromPort:    req.FromPort,
		ToItemID:    req.ToItemID,
		Illuminates: req.Illuminates,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toConnectionJSON(conn))
}

type removeConnectionRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) removeConnection(c *gin.Context) {
	// Body is optional: removal without a recorded reason is allowed.
	var req removeConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(c, err)
		return
	}

	conn, err := s.connections.RemoveConnection(c.Request.Context(), primary.RemoveConnectionRequest{
		ConnectionID: c.Param("id"),
		Reason:       req.Reason,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toConnectionJSON(conn))
}

type attachPhotosRequest struct {
	PhotoIDs []string `json:"photo_ids" binding:"required"`
}

func (s *Server) attachPhotos(c *gin.Context) {
	var req attachPhotosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	conn, err := s.connections.AttachPhotos(c.Request.Context(), primary.AttachPhotosRequest{
		ConnectionID: c.Param("id"),
		PhotoIDs:     req.PhotoIDs,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toConnectionJSON(conn))
}

func (s *Server) getConnection(c *gin.Context) {
	conn, err := s.connections.GetConnection(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toConnectionJSON(conn))
}
