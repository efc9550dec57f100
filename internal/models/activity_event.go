package models

import "time"

const (
	EventAcknowledge        = "ACKNOWLEDGE"
	EventBulkAcknowledge    = "BULK_ACKNOWLEDGE"
	EventExport             = "EXPORT"
	EventRangeChange        = "RANGE_CHANGE"
	EventMaintenanceRequest = "MAINTENANCE_REQUEST"
)

// ActivityEvent is a single audit log entry of a user intent.
type ActivityEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // ACKNOWLEDGE | BULK_ACKNOWLEDGE | EXPORT | RANGE_CHANGE | MAINTENANCE_REQUEST
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
