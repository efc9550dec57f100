package models

type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

type AlarmStatus string

const (
	AlarmActive       AlarmStatus = "Active"
	AlarmAcknowledged AlarmStatus = "Acknowledged"
	AlarmResolved     AlarmStatus = "Resolved"
)

func (s AlarmStatus) Valid() bool {
	switch s {
	case AlarmActive, AlarmAcknowledged, AlarmResolved:
		return true
	}
	return false
}

type AlarmCategory string

const (
	CategoryMechanical  AlarmCategory = "Mechanical"
	CategoryElectrical  AlarmCategory = "Electrical"
	CategoryTemperature AlarmCategory = "Temperature"
	CategoryPressure    AlarmCategory = "Pressure"
	CategoryVibration   AlarmCategory = "Vibration"
	CategorySafety      AlarmCategory = "Safety"
)

func (c AlarmCategory) Valid() bool {
	switch c {
	case CategoryMechanical, CategoryElectrical, CategoryTemperature,
		CategoryPressure, CategoryVibration, CategorySafety:
		return true
	}
	return false
}

// AlarmTimeLayout is the display layout of alarm and acknowledgment timestamps.
const AlarmTimeLayout = "2006-01-02 15:04:05"

// Alarm is a single alarm record. AcknowledgedBy/AcknowledgedAt are set iff
// Status is Acknowledged or Resolved.
type Alarm struct {
	ID             string        `json:"id" yaml:"id"`
	Title          string        `json:"title" yaml:"title"`
	Description    string        `json:"description" yaml:"description"`
	Severity       Severity      `json:"severity" yaml:"severity"`
	Status         AlarmStatus   `json:"status" yaml:"status"`
	Machine        string        `json:"machine" yaml:"machine"`
	Location       string        `json:"location" yaml:"location"`
	Category       AlarmCategory `json:"category" yaml:"category"`
	Timestamp      string        `json:"timestamp" yaml:"timestamp"`
	AcknowledgedBy string        `json:"acknowledged_by,omitempty" yaml:"acknowledged_by,omitempty"`
	AcknowledgedAt string        `json:"acknowledged_at,omitempty" yaml:"acknowledged_at,omitempty"`
}

// AlarmFilter mirrors the alarm page controls. Empty or "all" disables a field.
type AlarmFilter struct {
	Search   string `json:"search"`
	Severity string `json:"severity"`
	Status   string `json:"status"`
	Category string `json:"category"`
}

type AlarmStats struct {
	Active       int `json:"active"`
	Acknowledged int `json:"acknowledged"`
	Resolved     int `json:"resolved"`
	Critical     int `json:"critical"`
	Total        int `json:"total"`
}

// AckResult reports the outcome of an acknowledgment request.
type AckResult struct {
	Requested    int      `json:"requested"`
	Acknowledged int      `json:"acknowledged"`
	IDs          []string `json:"ids"` // alarms actually transitioned
	Message      string   `json:"message"`
}

type AlarmList struct {
	Alarms []Alarm    `json:"alarms"`
	Stats  AlarmStats `json:"stats"`
}
