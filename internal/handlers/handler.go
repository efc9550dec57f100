package handlers

import (
	"plant_monitor/internal/logger"
	"plant_monitor/internal/metrics"
	"plant_monitor/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, m *metrics.Metrics) *Handler {
	return &Handler{services: services, log: log, metrics: m}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// KPI stream on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdentity)
	{
		h.registerDashboardRoutes(api)
		h.registerMachineRoutes(api)
		h.registerAlarmRoutes(api)
		h.registerReportRoutes(api)
		api.GET("/anomalies", h.listAnomalies)
		api.GET("/events", h.getEvents)
	}
}

func (h *Handler) registerDashboardRoutes(api *gin.RouterGroup) {
	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/kpis", h.getKPIs)
		// Body example: {"range":"7d"}
		dashboard.PUT("/range", h.setRange)
	}
}

func (h *Handler) registerMachineRoutes(api *gin.RouterGroup) {
	machines := api.Group("/machines")
	{
		machines.GET("", h.listMachines)
		machines.GET("/summary", h.machineSummary)
		machines.GET("/:id", h.getMachine)
		machines.POST("/:id/acknowledge", h.acknowledgeMachine)
		machines.GET("/:id/maintenance", h.listMaintenance)
		machines.POST("/:id/maintenance", h.submitMaintenance)
	}
}

func (h *Handler) registerAlarmRoutes(api *gin.RouterGroup) {
	alarms := api.Group("/alarms")
	{
		alarms.GET("", h.listAlarms)
		alarms.GET("/stats", h.alarmStats)
		alarms.GET("/export", h.exportAlarms)
		alarms.POST("/acknowledge", h.bulkAcknowledge)
		alarms.GET("/:id", h.getAlarm)
		alarms.POST("/:id/acknowledge", h.acknowledgeAlarm)
	}
}

func (h *Handler) registerReportRoutes(api *gin.RouterGroup) {
	reports := api.Group("/reports")
	{
		reports.GET("", h.listReports)
		reports.GET("/:name", h.getReport)
		reports.GET("/:name/export", h.exportReport)
	}
}
