package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/garland/internal/core/fault"
)

// errorBody is the uniform error payload.
type errorBody struct {
	Kind      string   `json:"kind,omitempty"`
	EntityID  string   `json:"entity_id,omitempty"`
	Error     string   `json:"error"`
	Offending []string `json:"offending,omitempty"`
}

// writeError maps a service error onto an HTTP status. Domain faults keep
// their kind in the payload so API clients can branch the same way CLI
// callers do on fault.KindOf.
func writeError(c *gin.Context, err error) {
	var fe *fault.Error
	if !errors.As(err, &fe) {
		c.JSON(http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}

	rejectionsTotal.WithLabelValues(string(fe.Kind)).Inc()

	status := http.StatusConflict
	switch fe.Kind {
	case fault.KindNotFound:
		status = http.StatusNotFound
	case fault.KindBusy:
		status = http.StatusServiceUnavailable
		c.Header("Retry-After", "3")
	case fault.KindPhotosIncomplete:
		status = http.StatusUnprocessableEntity
	}

	c.JSON(status, errorBody{
		Kind:      string(fe.Kind),
		EntityID:  fe.EntityID,
		Error:     fe.Reason,
		Offending: fe.Offending,
	})
}

// writeBadRequest reports a malformed request body or parameter.
func writeBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
}
