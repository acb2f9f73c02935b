package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/garland/internal/ports/primary"
)

type teardownItemRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

func (s *Server) teardownItem(c *gin.Context) {
	var req teardownItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	resp, err := s.teardown.TeardownItem(c.Request.Context(), primary.TeardownItemRequest{
		DeploymentID: c.Param("id"),
		ZoneCode:     c.Param("zone"),
		ItemID:       req.ItemID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, teardownItemJSON{
		ItemID:        resp.ItemID,
		ZoneCode:      resp.ZoneCode,
		AlreadyDone:   resp.AlreadyDone,
		ZoneCompleted: resp.ZoneCompleted,
	})
}

func (s *Server) zoneTeardownStatus(c *gin.Context) {
	done, err := s.teardown.ZoneFullyTornDown(c.Request.Context(), c.Param("id"), c.Param("zone"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"zone_code":       c.Param("zone"),
		"fully_torn_down": done,
	})
}
