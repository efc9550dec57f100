package handlers

import (
	"net/http"

	"plant_monitor/internal/models"

	"github.com/gin-gonic/gin"
)

// BulkAckRequest lists the alarm ids selected on the alarms page.
type BulkAckRequest struct {
	IDs []string `json:"ids" example:"ALM-001,ALM-003"`
}

func alarmFilterFromQuery(c *gin.Context) models.AlarmFilter {
	return models.AlarmFilter{
		Search:   c.Query("search"),
		Severity: c.Query("severity"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}
}

// @Summary      List alarms
// @Description  Filtered alarms plus stats over the whole alarm set. Empty or "all" disables a filter.
// @Tags         alarms
// @Produce      json
// @Param        search    query     string  false  "Case-insensitive title, machine or location substring"
// @Param        severity  query     string  false  "Critical, High, Medium, Low or all"
// @Param        status    query     string  false  "Active, Acknowledged, Resolved or all"
// @Param        category  query     string  false  "Mechanical, Electrical, Temperature, Pressure, Vibration, Safety or all"
// @Success      200       {object}  models.AlarmList
// @Failure      401       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/v1/alarms [get]
// @Security     BearerAuth
func (h *Handler) listAlarms(c *gin.Context) {
	list, err := h.services.Alarms.List(c.Request.Context(), alarmFilterFromQuery(c))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load alarms", "alarms_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary      Alarm stats
// @Tags         alarms
// @Produce      json
// @Success      200  {object}  models.AlarmStats
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/alarms/stats [get]
// @Security     BearerAuth
func (h *Handler) alarmStats(c *gin.Context) {
	st, err := h.services.Alarms.Stats(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load alarm stats", "alarms_stats_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Get alarm
// @Tags         alarms
// @Produce      json
// @Param        id   path      string  true  "Alarm id"
// @Success      200  {object}  models.Alarm
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/alarms/{id} [get]
// @Security     BearerAuth
func (h *Handler) getAlarm(c *gin.Context) {
	a, err := h.services.Alarms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err, "failed to load alarm", "alarm_get_failed", "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, a)
}

// @Summary      Acknowledge alarm
// @Description  Only an Active alarm changes; acknowledged is 0 otherwise.
// @Tags         alarms
// @Produce      json
// @Param        id   path      string  true  "Alarm id"
// @Success      200  {object}  models.AckResult
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/alarms/{id}/acknowledge [post]
// @Security     BearerAuth
func (h *Handler) acknowledgeAlarm(c *gin.Context) {
	res, err := h.services.Alarms.Acknowledge(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		h.respondServiceError(c, err, "failed to acknowledge alarm", "alarm_ack_failed", "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Acknowledge selected alarms
// @Tags         alarms
// @Accept       json
// @Produce      json
// @Param        body  body      BulkAckRequest  true  "Selected alarm ids"
// @Success      200   {object}  models.AckResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/alarms/acknowledge [post]
// @Security     BearerAuth
func (h *Handler) bulkAcknowledge(c *gin.Context) {
	var req BulkAckRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	res, err := h.services.Alarms.BulkAcknowledge(c.Request.Context(), req.IDs, currentUser(c))
	if err != nil {
		h.respondServiceError(c, err, "failed to acknowledge alarms", "alarms_bulk_ack_failed", "count", len(req.IDs))
		return
	}
	c.JSON(http.StatusOK, res)
}
