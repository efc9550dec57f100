package handlers

import (
	"net/http"
	"strings"

	"plant_monitor/internal/models"
	"plant_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

// MaintenanceRequestBody is the maintenance dialog payload.
type MaintenanceRequestBody struct {
	// Allowed: Preventive, Corrective, Inspection, Emergency
	Type        string `json:"type" example:"Preventive"`
	Description string `json:"description" example:"Replace worn drive belt"`
}

// queryList collects a repeated and/or comma-separated query parameter.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// @Summary      List machines
// @Description  Dimensions are ANDed, values inside one dimension are ORed. The summary always covers the whole catalog.
// @Tags         machines
// @Produce      json
// @Param        search    query     string  false  "Case-insensitive name or location substring"
// @Param        status    query     string  false  "normal, warning, fault (repeated or comma-separated)"
// @Param        type      query     string  false  "compressor, conveyor, robot, press, welding"
// @Param        location  query     string  false  "line-1, line-2, line-3, packaging, quality"
// @Success      200       {object}  models.MachineList
// @Failure      401       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/v1/machines [get]
// @Security     BearerAuth
func (h *Handler) listMachines(c *gin.Context) {
	f := models.MachineFilter{
		Search:   c.Query("search"),
		Status:   queryList(c, "status"),
		Type:     queryList(c, "type"),
		Location: queryList(c, "location"),
	}
	list, err := h.services.Machines.List(c.Request.Context(), f)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load machines", "machines_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary      Machine summary
// @Tags         machines
// @Produce      json
// @Success      200  {object}  models.MachineSummary
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/machines/summary [get]
// @Security     BearerAuth
func (h *Handler) machineSummary(c *gin.Context) {
	sum, err := h.services.Machines.Summary(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load summary", "machines_summary_failed", err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// @Summary      Get machine
// @Tags         machines
// @Produce      json
// @Param        id   path      string  true  "Machine id"
// @Success      200  {object}  models.Machine
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/machines/{id} [get]
// @Security     BearerAuth
func (h *Handler) getMachine(c *gin.Context) {
	m, err := h.services.Machines.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err, "failed to load machine", "machine_get_failed", "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, m)
}

// @Summary      Acknowledge machine alarms
// @Description  Waits the configured delay, then acknowledges every active alarm of the machine.
// @Tags         machines
// @Produce      json
// @Param        id   path      string  true  "Machine id"
// @Success      200  {object}  models.AckResult
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/machines/{id}/acknowledge [post]
// @Security     BearerAuth
func (h *Handler) acknowledgeMachine(c *gin.Context) {
	res, err := h.services.Alarms.AcknowledgeMachine(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		h.respondServiceError(c, err, "failed to acknowledge alarms", "machine_ack_failed", "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      List maintenance requests
// @Tags         machines
// @Produce      json
// @Param        id   path      string  true  "Machine id"
// @Success      200  {object}  map[string]interface{}  "count, requests"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/machines/{id}/maintenance [get]
// @Security     BearerAuth
func (h *Handler) listMaintenance(c *gin.Context) {
	reqs, err := h.services.Maintenance.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err, "failed to load maintenance requests", "maintenance_list_failed", "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(reqs),
		"requests": reqs,
	})
}

// @Summary      Request maintenance
// @Tags         machines
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Machine id"
// @Param        body  body      MaintenanceRequestBody  true  "Request payload"
// @Success      201   {object}  models.MaintenanceRequest
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/machines/{id}/maintenance [post]
// @Security     BearerAuth
func (h *Handler) submitMaintenance(c *gin.Context) {
	var body MaintenanceRequestBody
	if ok := h.bindJSONOrBadRequest(c, &body); !ok {
		return
	}
	req, err := h.services.Maintenance.Submit(c.Request.Context(), c.Param("id"), service.MaintenanceInput{
		Type:        body.Type,
		Description: body.Description,
	}, currentUser(c))
	if err != nil {
		h.respondServiceError(c, err, "failed to submit maintenance request", "maintenance_submit_failed", "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusCreated, req)
}
