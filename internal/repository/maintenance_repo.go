package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"plant_monitor/internal/models"
)

const (
	insertMaintenanceSQL = `INSERT INTO maintenance_requests (id, machine_id, machine_name, type, description, requested_by, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectMaintenanceSQL = `SELECT id, machine_id, machine_name, type, description, requested_by, created_at FROM maintenance_requests WHERE machine_id = ? ORDER BY created_at DESC`
)

type MaintenanceSQLite struct {
	db *sql.DB
}

func NewMaintenanceSQLite(db *sql.DB) *MaintenanceSQLite { return &MaintenanceSQLite{db: db} }

func (r *MaintenanceSQLite) Create(ctx context.Context, m models.MaintenanceRequest) error {
	_, err := r.db.ExecContext(ctx, insertMaintenanceSQL,
		m.ID,
		m.MachineID,
		m.MachineName,
		string(m.Type),
		m.Description,
		m.RequestedBy,
		m.CreatedAt.UTC().Format(sqliteTimestampLayout),
	)
	if err != nil {
		return fmt.Errorf("insert maintenance request for machine %q: %w", m.MachineID, err)
	}
	return nil
}

// ListByMachine returns the requests of one machine, newest first.
func (r *MaintenanceSQLite) ListByMachine(ctx context.Context, machineID string) ([]models.MaintenanceRequest, error) {
	rows, err := r.db.QueryContext(ctx, selectMaintenanceSQL, machineID)
	if err != nil {
		return nil, fmt.Errorf("select maintenance requests for machine %q: %w", machineID, err)
	}
	defer rows.Close()

	var out []models.MaintenanceRequest
	for rows.Next() {
		var (
			m       models.MaintenanceRequest
			typ     string
			created string
		)
		if err := rows.Scan(&m.ID, &m.MachineID, &m.MachineName, &typ, &m.Description, &m.RequestedBy, &created); err != nil {
			return nil, err
		}
		m.Type = models.MaintenanceType(typ)
		if m.CreatedAt, err = time.ParseInLocation(sqliteTimestampLayout, created, time.UTC); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
