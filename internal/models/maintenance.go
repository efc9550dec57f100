package models

import "time"

type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "Preventive"
	MaintenanceCorrective MaintenanceType = "Corrective"
	MaintenanceInspection MaintenanceType = "Inspection"
	MaintenanceEmergency  MaintenanceType = "Emergency"
)

func (t MaintenanceType) Valid() bool {
	switch t {
	case MaintenancePreventive, MaintenanceCorrective, MaintenanceInspection, MaintenanceEmergency:
		return true
	}
	return false
}

type MaintenanceRequest struct {
	ID          string          `json:"id"`
	MachineID   string          `json:"machine_id"`
	MachineName string          `json:"machine_name"`
	Type        MaintenanceType `json:"type"`
	Description string          `json:"description"`
	RequestedBy string          `json:"requested_by"`
	CreatedAt   time.Time       `json:"created_at"`
}
