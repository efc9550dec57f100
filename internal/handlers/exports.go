package handlers

import (
	"fmt"
	"net/http"

	"plant_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const defaultExportFormat = "csv"

func exportFormat(c *gin.Context) string {
	return c.DefaultQuery("format", defaultExportFormat)
}

// sendFile writes a rendered export as an attachment.
func sendFile(c *gin.Context, f service.File) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", f.Name))
	c.Data(http.StatusOK, f.ContentType, f.Data)
}

// @Summary      Export alarms
// @Description  Exports the alarms matching the list filters. The pptx summary slide counts all alarms.
// @Tags         alarms
// @Produce      octet-stream
// @Param        format    query     string  false  "csv, xlsx or pptx"  Enums(csv,xlsx,pptx)  default(csv)
// @Param        search    query     string  false  "Substring filter"
// @Param        severity  query     string  false  "Severity filter"
// @Param        status    query     string  false  "Status filter"
// @Param        category  query     string  false  "Category filter"
// @Success      200       {file}    file
// @Failure      400       {object}  map[string]string
// @Failure      401       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/v1/alarms/export [get]
// @Security     BearerAuth
func (h *Handler) exportAlarms(c *gin.Context) {
	format := exportFormat(c)
	f, err := h.services.Exports.ExportAlarms(c.Request.Context(), alarmFilterFromQuery(c), format)
	if err != nil {
		h.respondServiceError(c, err, "failed to export alarms", "alarms_export_failed", "format", format)
		return
	}
	sendFile(c, f)
}

// @Summary      Export report
// @Tags         reports
// @Produce      octet-stream
// @Param        name    path      string  true   "Report name"
// @Param        format  query     string  false  "csv or xlsx"  Enums(csv,xlsx)  default(csv)
// @Success      200     {file}    file
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /api/v1/reports/{name}/export [get]
// @Security     BearerAuth
func (h *Handler) exportReport(c *gin.Context) {
	format := exportFormat(c)
	f, err := h.services.Exports.ExportReport(c.Request.Context(), c.Param("name"), format)
	if err != nil {
		h.respondServiceError(c, err, "failed to export report", "report_export_failed", "name", c.Param("name"), "format", format)
		return
	}
	sendFile(c, f)
}
