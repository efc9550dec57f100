package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      List reports
// @Tags         reports
// @Produce      json
// @Success      200  {array}   models.Report
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/reports [get]
// @Security     BearerAuth
func (h *Handler) listReports(c *gin.Context) {
	reports, err := h.services.Reports.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load reports", "reports_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// @Summary      Get report
// @Tags         reports
// @Produce      json
// @Param        name  path      string  true  "performance, maintenance, alarm-trend or downtime"
// @Success      200   {object}  models.Report
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/reports/{name} [get]
// @Security     BearerAuth
func (h *Handler) getReport(c *gin.Context) {
	r, err := h.services.Reports.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.respondServiceError(c, err, "failed to load report", "report_get_failed", "name", c.Param("name"))
		return
	}
	c.JSON(http.StatusOK, r)
}

// @Summary      Anomaly feed
// @Description  Randomized placeholder findings, newest first. Not derived from machine readings.
// @Tags         anomalies
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, anomalies"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/anomalies [get]
// @Security     BearerAuth
func (h *Handler) listAnomalies(c *gin.Context) {
	items, err := h.services.Anomalies.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load anomalies", "anomalies_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(items),
		"anomalies": items,
	})
}
