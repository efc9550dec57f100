package service

import (
	"context"
	"fmt"
	"sync"

	"plant_monitor/internal/logger"
	"plant_monitor/internal/models"
	"plant_monitor/internal/repository"
)

// rangeFollower is the part of the updater the dashboard drives.
type rangeFollower interface {
	SetRange(r models.TimeRange)
	Live() bool
}

type DashboardService struct {
	// rangeMu keeps the store and the updater on the same range.
	rangeMu sync.Mutex
	kpis    repository.KPIRepo
	events  repository.EventRepo
	updater rangeFollower
	log     *logger.Logger
}

func NewDashboardService(kpis repository.KPIRepo, events repository.EventRepo, updater rangeFollower, log *logger.Logger) *DashboardService {
	return &DashboardService{kpis: kpis, events: events, updater: updater, log: log}
}

// KPIs returns the KPI set of the selected range.
func (s *DashboardService) KPIs(ctx context.Context) (models.KPISnapshot, error) {
	r, kpis, err := s.kpis.Current(ctx)
	if err != nil {
		return models.KPISnapshot{}, err
	}
	return s.snapshot(r, kpis), nil
}

// SetRange re-seeds the KPI set for r and starts or stops the live updater.
func (s *DashboardService) SetRange(ctx context.Context, r models.TimeRange) (models.KPISnapshot, error) {
	if !r.Valid() {
		return models.KPISnapshot{}, fmt.Errorf("%w: %q", ErrInvalidRange, r)
	}
	s.rangeMu.Lock()
	kpis, err := s.kpis.SetRange(ctx, r)
	if err != nil {
		s.rangeMu.Unlock()
		return models.KPISnapshot{}, fmt.Errorf("select range %s: %w", r, err)
	}
	s.updater.SetRange(r)
	s.rangeMu.Unlock()

	if err := s.events.Append(ctx, models.ActivityEvent{
		Type:        models.EventRangeChange,
		Description: "Time range changed to " + r.Label(),
		Metadata:    map[string]any{"range": r},
	}); err != nil {
		s.log.Warnw("activity_event_append_failed", "type", models.EventRangeChange, "err", err)
	}
	return s.snapshot(r, kpis), nil
}

func (s *DashboardService) snapshot(r models.TimeRange, kpis []models.KPI) models.KPISnapshot {
	for i := range kpis {
		kpis[i].TrendType = kpis[i].Polarity()
	}
	return models.KPISnapshot{
		Range: r,
		Label: r.Label(),
		Live:  s.updater.Live(),
		KPIs:  kpis,
	}
}
