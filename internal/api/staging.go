package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/garland/internal/ports/primary"
)

type createToteRequest struct {
	DeploymentID string   `json:"deployment_id" binding:"required"`
	Label        string   `json:"label"`
	ItemIDs      []string `json:"item_ids" binding:"required"`
}

func (s *Server) createTote(c *gin.Context) {
	var req createToteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	tote, err := s.staging.CreateTote(c.Request.Context(), primary.CreateToteRequest{
		DeploymentID: req.DeploymentID,
		Label:        req.Label,
		ItemIDs:      req.ItemIDs,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toToteJSON(tote))
}

type stageToteRequest struct {
	ItemIDs []string `json:"item_ids"`
}

func (s *Server) stageTote(c *gin.Context) {
	var req stageToteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	tote, err := s.staging.StageTote(c.Request.Context(), primary.StageToteRequest{
		ToteID:  c.Param("id"),
		ItemIDs: req.ItemIDs,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toToteJSON(tote))
}

func (s *Server) stagingBoard(c *gin.Context) {
	board, err := s.staging.StagingBoard(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStagingBoardJSON(board))
}
