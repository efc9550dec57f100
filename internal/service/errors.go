package service

import "errors"

var (
	ErrNoAlarmsSelected         = errors.New("no alarms selected")
	ErrAlarmNotFound            = errors.New("alarm not found")
	ErrMachineNotFound          = errors.New("machine not found")
	ErrInvalidRange             = errors.New("invalid time range: must be today, 7d or 30d")
	ErrUnknownFormat            = errors.New("unknown export format")
	ErrUnknownReport            = errors.New("unknown report")
	ErrMissingMaintenanceFields = errors.New("maintenance type and description are required")
	ErrInvalidMaintenanceType   = errors.New("unknown maintenance type")
	ErrInvalidLogWindow         = errors.New("invalid time range: from must be <= to")
	ErrUnknownEventType         = errors.New("unknown event type")
)
