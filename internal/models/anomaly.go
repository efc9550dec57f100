package models

import "time"

// Anomaly is a randomized placeholder finding; nothing computes it from
// machine readings.
type Anomaly struct {
	ID              string    `json:"id"`
	MachineID       string    `json:"machine_id"`
	MachineName     string    `json:"machine_name"`
	Type            string    `json:"type"`     // temperature | vibration | pressure | power | performance
	Severity        string    `json:"severity"` // low | medium | high | critical
	Description     string    `json:"description"`
	Confidence      int       `json:"confidence"` // 70-99
	Timestamp       time.Time `json:"timestamp"`
	PredictedImpact string    `json:"predicted_impact"`
	Recommendation  string    `json:"recommendation"`
}
