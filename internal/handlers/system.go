package handlers

import (
	"context"
	"errors"
	"net/http"

	"plant_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const statusOK = "ok"

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		if httpCode >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondServiceError maps service sentinels to status codes. Validation
// sentinels get operator wording, other client errors carry the error text and
// anything else is reported as fallback.
func (h *Handler) respondServiceError(c *gin.Context, err error, fallback, logKey string, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrNoAlarmsSelected),
		errors.Is(err, service.ErrMissingMaintenanceFields):
		h.logAndJSONError(c, http.StatusBadRequest, userWarning(err), logKey, err, kv...)
	case errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, service.ErrUnknownFormat),
		errors.Is(err, service.ErrInvalidMaintenanceType),
		errors.Is(err, service.ErrInvalidLogWindow),
		errors.Is(err, service.ErrUnknownEventType):
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), logKey, err, kv...)
	case errors.Is(err, service.ErrAlarmNotFound),
		errors.Is(err, service.ErrMachineNotFound),
		errors.Is(err, service.ErrUnknownReport):
		h.logAndJSONError(c, http.StatusNotFound, err.Error(), logKey, err, kv...)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logAndJSONError(c, http.StatusRequestTimeout, "request canceled", logKey, err, kv...)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, fallback, logKey, err, kv...)
	}
}

// userWarnings holds the wording shown to operators for validation sentinels.
var userWarnings = []struct {
	err error
	msg string
}{
	{service.ErrNoAlarmsSelected, "Please select alarms to acknowledge."},
	{service.ErrMissingMaintenanceFields, "Please fill in all required fields."},
}

func userWarning(err error) string {
	for _, w := range userWarnings {
		if errors.Is(err, w.err) {
			return w.msg
		}
	}
	return err.Error()
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
