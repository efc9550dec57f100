package service

import (
	"context"
	"time"

	"plant_monitor/internal/logger"
	"plant_monitor/internal/metrics"
	"plant_monitor/internal/models"
	"plant_monitor/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (Identity, error)
}

// Dashboard serves the KPI set of the selected time range.
type Dashboard interface {
	KPIs(ctx context.Context) (models.KPISnapshot, error)
	SetRange(ctx context.Context, r models.TimeRange) (models.KPISnapshot, error)
}

type Machines interface {
	List(ctx context.Context, f models.MachineFilter) (models.MachineList, error)
	Summary(ctx context.Context) (models.MachineSummary, error)
	Get(ctx context.Context, id string) (models.Machine, error)
}

type Alarms interface {
	List(ctx context.Context, f models.AlarmFilter) (models.AlarmList, error)
	Stats(ctx context.Context) (models.AlarmStats, error)
	Get(ctx context.Context, id string) (models.Alarm, error)
	Acknowledge(ctx context.Context, id, user string) (models.AckResult, error)
	BulkAcknowledge(ctx context.Context, ids []string, user string) (models.AckResult, error)
	AcknowledgeMachine(ctx context.Context, machineID, user string) (models.AckResult, error)
}

type Exports interface {
	ExportAlarms(ctx context.Context, f models.AlarmFilter, format string) (File, error)
	ExportReport(ctx context.Context, name, format string) (File, error)
}

type Reports interface {
	List(ctx context.Context) ([]models.Report, error)
	Get(ctx context.Context, name string) (models.Report, error)
}

type Anomalies interface {
	List(ctx context.Context) ([]models.Anomaly, error)
	Run(ctx context.Context, tick time.Duration)
}

type Maintenance interface {
	Submit(ctx context.Context, machineID string, in MaintenanceInput, user string) (models.MaintenanceRequest, error)
	List(ctx context.Context, machineID string) ([]models.MaintenanceRequest, error)
}

// EventLog exposes the append-only activity log with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ActivityEvent, error)
}

// Telemetry is the background updater handle owned by main.
type Telemetry interface {
	Start(ctx context.Context)
	Stop()
	Live() bool
}

// Service aggregates all sub-services. Embedded interfaces with clashing
// method names (List, Get) are reached through their field name.
type Service struct {
	Authorization
	Dashboard
	Machines    Machines
	Alarms      Alarms
	Exports     Exports
	Reports     Reports
	Anomalies   Anomalies
	Maintenance Maintenance
	EventLog    EventLog
	Telemetry   Telemetry
}

// Options carries the tunables NewService needs from config.
type Options struct {
	SigningKey      string
	TokenTTL        time.Duration
	KPIInterval     time.Duration
	MachineInterval time.Duration
	AckDelay        time.Duration
	DefaultUser     string
	AnomalyKeep     int
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, m *metrics.Metrics, log *logger.Logger, opts Options) *Service {
	updater := NewTelemetryUpdater(repos.KPIs, repos.Machines, m, log, opts.KPIInterval, opts.MachineInterval)
	alarms := NewAlarmService(repos.Alarms, repos.Machines, repos.EventRepo, m, log, AlarmConfig{
		AckDelay:    opts.AckDelay,
		DefaultUser: opts.DefaultUser,
	})
	return &Service{
		Authorization: NewAuthService(repos.Auth, opts.SigningKey, opts.TokenTTL),
		Dashboard:     NewDashboardService(repos.KPIs, repos.EventRepo, updater, log),
		Machines:      NewMachineService(repos.Machines),
		Alarms:        alarms,
		Exports:       NewExportService(repos.Alarms, repos.Reports, repos.EventRepo, m, log),
		Reports:       NewReportService(repos.Reports),
		Anomalies:     NewAnomalyService(repos.Machines, log, opts.AnomalyKeep),
		Maintenance:   NewMaintenanceService(repos.Maintenance, repos.Machines, repos.EventRepo, log, opts.DefaultUser),
		EventLog:      NewEventLogService(repos.EventRepo),
		Telemetry:     updater,
	}
}
