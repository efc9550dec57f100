package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"plant_monitor/internal/models"
	"plant_monitor/internal/repository/seed"
)

// ErrNotFound is returned by lookups on the in-memory stores.
var ErrNotFound = errors.New("not found")

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// MachineRepo is the shared machine catalog.
type MachineRepo interface {
	List(ctx context.Context) ([]models.Machine, error)
	Get(ctx context.Context, id string) (models.Machine, error)
	// Mutate applies fn to every machine under the write lock.
	Mutate(ctx context.Context, fn func(m *models.Machine)) error
}

type AlarmRepo interface {
	List(ctx context.Context) ([]models.Alarm, error)
	Get(ctx context.Context, id string) (models.Alarm, error)
	// Update applies fn to every alarm under the write lock and returns the
	// ids of the alarms for which fn reported a change.
	Update(ctx context.Context, fn func(a *models.Alarm) bool) ([]string, error)
}

// KPIRepo holds the KPI set of the selected time range.
type KPIRepo interface {
	Current(ctx context.Context) (models.TimeRange, []models.KPI, error)
	// SetRange swaps in a fresh copy of the seeded set for r.
	SetRange(ctx context.Context, r models.TimeRange) ([]models.KPI, error)
	// Mutate applies fn to each KPI only while r is still the selected range.
	Mutate(ctx context.Context, r models.TimeRange, fn func(k *models.KPI)) (bool, error)
}

type ReportRepo interface {
	List(ctx context.Context) ([]models.Report, error)
	Get(ctx context.Context, name string) (models.Report, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.ActivityEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.ActivityEvent, error)
}

type MaintenanceRepo interface {
	Create(ctx context.Context, r models.MaintenanceRequest) error
	ListByMachine(ctx context.Context, machineID string) ([]models.MaintenanceRequest, error)
}

type Repository struct {
	Machines    MachineRepo
	Alarms      AlarmRepo
	KPIs        KPIRepo
	Reports     ReportRepo
	EventRepo   EventRepo
	Maintenance MaintenanceRepo
	Auth        Authorization
}

// NewRepository builds the in-memory plant state from data and the SQLite
// backed stores from db.
func NewRepository(db *sql.DB, data *seed.Data) *Repository {
	return &Repository{
		Machines:    NewMachineMemory(data.Machines),
		Alarms:      NewAlarmMemory(data.Alarms),
		KPIs:        NewKPIMemory(data.KPIs),
		Reports:     NewReportMemory(data.Reports),
		EventRepo:   NewEventSQLite(db),
		Maintenance: NewMaintenanceSQLite(db),
		Auth:        NewUserRepository(db),
	}
}
