package models

import "strings"

type MachineType string

const (
	TypeCompressor MachineType = "compressor"
	TypeConveyor   MachineType = "conveyor"
	TypeRobot      MachineType = "robot"
	TypePress      MachineType = "press"
	TypeWelding    MachineType = "welding"
)

// Valid reports whether t is one of the known machine types.
func (t MachineType) Valid() bool {
	switch t {
	case TypeCompressor, TypeConveyor, TypeRobot, TypePress, TypeWelding:
		return true
	}
	return false
}

type MachineStatus string

const (
	StatusNormal  MachineStatus = "normal"
	StatusWarning MachineStatus = "warning"
	StatusFault   MachineStatus = "fault"
)

func (s MachineStatus) Valid() bool {
	switch s {
	case StatusNormal, StatusWarning, StatusFault:
		return true
	}
	return false
}

// Machine is one entry of the plant catalog. Status is asserted by the seed
// and is not derived from the numeric readings.
type Machine struct {
	ID           string        `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	Location     string        `json:"location" yaml:"location"`
	Type         MachineType   `json:"type" yaml:"type"`
	Status       MachineStatus `json:"status" yaml:"status"`
	CurrentState string        `json:"current_state" yaml:"current_state"` // Running | Stopped
	CycleTime    float64       `json:"cycle_time" yaml:"cycle_time"`       // s
	Throughput   float64       `json:"throughput" yaml:"throughput"`       // units/hr
	PowerUsage   float64       `json:"power_usage" yaml:"power_usage"`     // kW
	Temperature  float64       `json:"temperature" yaml:"temperature"`     // °C
	OEE          float64       `json:"oee" yaml:"oee"`                     // %
	Vibration    float64       `json:"vibration" yaml:"vibration"`         // mm/s
	Pressure     float64       `json:"pressure" yaml:"pressure"`           // bar
	FlowRate     float64       `json:"flow_rate" yaml:"flow_rate"`         // L/min
	RPM          float64       `json:"rpm" yaml:"rpm"`
	Efficiency   float64       `json:"efficiency" yaml:"efficiency"` // %
}

// MachineFilter narrows the catalog. Dimensions are ANDed, values inside a
// dimension are ORed, and an empty dimension matches everything.
type MachineFilter struct {
	Search   string   `json:"search"`
	Status   []string `json:"status"`
	Type     []string `json:"type"`
	Location []string `json:"location"` // location keys, see LocationKeys
}

// LocationKeys maps stable filter keys to the human-readable location label.
var LocationKeys = map[string]string{
	"line-1":    "Assembly Line 1",
	"line-2":    "Assembly Line 2",
	"line-3":    "Assembly Line 3",
	"packaging": "Packaging",
	"quality":   "Quality Control",
}

// LocationKey returns the filter key for a location label.
func LocationKey(location string) (string, bool) {
	for k, v := range LocationKeys {
		if v == location {
			return k, true
		}
	}
	return "", false
}

// MachineSummary is the aggregate shown above the machines grid.
type MachineSummary struct {
	Total             int     `json:"total"`
	Healthy           int     `json:"healthy"`
	Warning           int     `json:"warning"`
	Fault             int     `json:"fault"`
	HealthyPercentage int     `json:"healthy_percentage"`
	AverageOEE        float64 `json:"average_oee"`
}

// IsEmpty reports whether no dimension of the filter is set.
func (f MachineFilter) IsEmpty() bool {
	return strings.TrimSpace(f.Search) == "" && len(f.Status) == 0 && len(f.Type) == 0 && len(f.Location) == 0
}

// MachineList is the machines page payload: the filtered rows plus the
// summary of the whole catalog.
type MachineList struct {
	Machines []Machine      `json:"machines"`
	Summary  MachineSummary `json:"summary"`
}
