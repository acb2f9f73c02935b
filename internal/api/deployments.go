package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/garland/internal/ports/primary"
)

type createDeploymentRequest struct {
	Season string `json:"season" binding:"required"`
	Year   int    `json:"year" binding:"required"`
}

func (s *Server) createDeployment(c *gin.Context) {
	var req createDeploymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	dep, err := s.deployments.CreateDeployment(c.Request.Context(), primary.CreateDeploymentRequest{
		Season: req.Season,
		Year:   req.Year,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDeploymentJSON(dep))
}

func (s *Server) listDeployments(c *gin.Context) {
	deployments, err := s.deployments.ListDeployments(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := []deploymentJSON{}
	for _, d := range deployments {
		out = append(out, toDeploymentJSON(d))
	}
	c.JSON(http.StatusOK, gin.H{"deployments": out})
}

func (s *Server) getDeployment(c *gin.Context) {
	dep, err := s.deployments.GetDeployment(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeploymentJSON(dep))
}

func (s *Server) startSetup(c *gin.Context) {
	dep, err := s.deployments.StartSetup(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeploymentJSON(dep))
}

func (s *Server) completeDeployment(c *gin.Context) {
	resp, err := s.deployments.CompleteDeployment(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, completeDeploymentJSON{
		Deployment:   toDeploymentJSON(resp.Deployment),
		ItemsUpdated: resp.ItemsUpdated,
		ItemsFailed:  resp.ItemsFailed,
		FailedItems:  resp.FailedItems,
	})
}

func (s *Server) startTeardown(c *gin.Context) {
	dep, err := s.deployments.StartTeardown(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeploymentJSON(dep))
}

func (s *Server) completeTeardown(c *gin.Context) {
	dep, err := s.deployments.CompleteTeardown(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeploymentJSON(dep))
}

func (s *Server) getBoard(c *gin.Context) {
	board, err := s.deployments.GetBoard(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBoardJSON(board))
}
