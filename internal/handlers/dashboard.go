package handlers

import (
	"net/http"
	"strings"

	"plant_monitor/internal/models"

	"github.com/gin-gonic/gin"
)

// SetRangeRequest is the dashboard range selector payload.
type SetRangeRequest struct {
	// Allowed: today, 7d, 30d
	Range string `json:"range" binding:"required" example:"7d"`
}

// @Summary      Dashboard KPIs
// @Description  KPI set of the selected time range. live is true while the today set is being updated.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.KPISnapshot
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/dashboard/kpis [get]
// @Security     BearerAuth
func (h *Handler) getKPIs(c *gin.Context) {
	snap, err := h.services.Dashboard.KPIs(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load kpis", "kpis_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Select time range
// @Description  Re-seeds the KPI set from the range snapshot. Only today is updated live.
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        body  body      SetRangeRequest  true  "Range payload"
// @Success      200   {object}  models.KPISnapshot
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/dashboard/range [put]
// @Security     BearerAuth
func (h *Handler) setRange(c *gin.Context) {
	var req SetRangeRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	r := models.TimeRange(strings.ToLower(strings.TrimSpace(req.Range)))
	snap, err := h.services.Dashboard.SetRange(c.Request.Context(), r)
	if err != nil {
		h.respondServiceError(c, err, "failed to change range", "range_change_failed", "range", req.Range)
		return
	}
	c.JSON(http.StatusOK, snap)
}
