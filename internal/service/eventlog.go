package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"plant_monitor/internal/models"
	"plant_monitor/internal/repository"
)

// LogFilter narrows the activity log. Zero bounds are open; an empty Type
// matches every event.
type LogFilter struct {
	From time.Time
	To   time.Time
	Type string
}

var knownEventTypes = map[string]struct{}{
	models.EventAcknowledge:        {},
	models.EventBulkAcknowledge:    {},
	models.EventExport:             {},
	models.EventRangeChange:        {},
	models.EventMaintenanceRequest: {},
}

// normalize returns the filter with UTC bounds and an upper-case type.
func (f LogFilter) normalize() (LogFilter, error) {
	out := LogFilter{
		From: utcOrZero(f.From),
		To:   utcOrZero(f.To),
		Type: strings.ToUpper(strings.TrimSpace(f.Type)),
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return LogFilter{}, ErrInvalidLogWindow
	}
	if out.Type != "" {
		if _, ok := knownEventTypes[out.Type]; !ok {
			return LogFilter{}, fmt.Errorf("%w: %q", ErrUnknownEventType, f.Type)
		}
	}
	return out, nil
}

func utcOrZero(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// EventLogService reads the activity log. Writers append through the
// repository directly.
type EventLogService struct {
	events repository.EventRepo
}

func NewEventLogService(events repository.EventRepo) *EventLogService {
	return &EventLogService{events: events}
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.ActivityEvent, error) {
	nf, err := f.normalize()
	if err != nil {
		return nil, err
	}
	events, err := s.events.List(ctx, nf.From, nf.To, nf.Type)
	if err != nil {
		return nil, fmt.Errorf("list activity events: %w", err)
	}
	return events, nil
}
