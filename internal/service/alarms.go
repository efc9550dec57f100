package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"plant_monitor/internal/logger"
	"plant_monitor/internal/metrics"
	"plant_monitor/internal/models"
	"plant_monitor/internal/repository"
)

type AlarmConfig struct {
	AckDelay    time.Duration // artificial wait before a machine-level ack
	DefaultUser string        // acknowledger when the request carries no user
}

type AlarmService struct {
	alarms   repository.AlarmRepo
	machines repository.MachineRepo
	events   repository.EventRepo
	metrics  *metrics.Metrics
	log      *logger.Logger
	cfg      AlarmConfig
	now      func() time.Time
}

func NewAlarmService(alarms repository.AlarmRepo, machines repository.MachineRepo, events repository.EventRepo, m *metrics.Metrics, log *logger.Logger, cfg AlarmConfig) *AlarmService {
	return &AlarmService{
		alarms:   alarms,
		machines: machines,
		events:   events,
		metrics:  m,
		log:      log,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *AlarmService) List(ctx context.Context, f models.AlarmFilter) (models.AlarmList, error) {
	all, err := s.alarms.List(ctx)
	if err != nil {
		return models.AlarmList{}, err
	}
	return models.AlarmList{
		Alarms: FilterAlarms(all, f),
		Stats:  SummarizeAlarms(all),
	}, nil
}

func (s *AlarmService) Stats(ctx context.Context) (models.AlarmStats, error) {
	all, err := s.alarms.List(ctx)
	if err != nil {
		return models.AlarmStats{}, err
	}
	return SummarizeAlarms(all), nil
}

func (s *AlarmService) Get(ctx context.Context, id string) (models.Alarm, error) {
	a, err := s.alarms.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Alarm{}, fmt.Errorf("%w: %s", ErrAlarmNotFound, id)
	}
	return a, err
}

// Acknowledge moves one Active alarm to Acknowledged. Any other alarm, or an
// unknown id, is left alone and reported with zero affected.
func (s *AlarmService) Acknowledge(ctx context.Context, id, user string) (models.AckResult, error) {
	ids, err := s.acknowledgeWhere(ctx, user, func(a *models.Alarm) bool { return a.ID == id })
	if err != nil {
		return models.AckResult{}, err
	}
	res := models.AckResult{Requested: 1, Acknowledged: len(ids), IDs: ids}
	if res.Acknowledged == 0 {
		res.Message = fmt.Sprintf("Alarm %s is not active.", id)
		return res, nil
	}
	res.Message = fmt.Sprintf("Alarm %s has been acknowledged.", id)
	s.record(ctx, models.EventAcknowledge, res.Message, ids, user)
	return res, nil
}

// BulkAcknowledge acknowledges the Active alarms among ids. The message uses
// the number of alarms actually transitioned.
func (s *AlarmService) BulkAcknowledge(ctx context.Context, ids []string, user string) (models.AckResult, error) {
	selected := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			selected[id] = struct{}{}
		}
	}
	if len(selected) == 0 {
		return models.AckResult{}, ErrNoAlarmsSelected
	}

	changed, err := s.acknowledgeWhere(ctx, user, func(a *models.Alarm) bool {
		_, ok := selected[a.ID]
		return ok
	})
	if err != nil {
		return models.AckResult{}, err
	}
	res := models.AckResult{
		Requested:    len(selected),
		Acknowledged: len(changed),
		IDs:          changed,
		Message:      fmt.Sprintf("%d alarm(s) have been acknowledged.", len(changed)),
	}
	if res.Acknowledged > 0 {
		s.record(ctx, models.EventBulkAcknowledge, res.Message, changed, user)
	}
	return res, nil
}

// AcknowledgeMachine waits the configured delay, then acknowledges every
// Active alarm raised by the machine. If ctx ends during the wait nothing is
// changed and ctx's error is returned.
func (s *AlarmService) AcknowledgeMachine(ctx context.Context, machineID, user string) (models.AckResult, error) {
	m, err := s.machines.Get(ctx, machineID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.AckResult{}, fmt.Errorf("%w: %s", ErrMachineNotFound, machineID)
	}
	if err != nil {
		return models.AckResult{}, err
	}

	if s.cfg.AckDelay > 0 {
		t := time.NewTimer(s.cfg.AckDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			s.log.Infow("machine_ack_dropped", "machine", m.Name, "err", ctx.Err())
			return models.AckResult{}, ctx.Err()
		case <-t.C:
		}
	}

	changed, err := s.acknowledgeWhere(ctx, user, func(a *models.Alarm) bool { return a.Machine == m.Name })
	if err != nil {
		return models.AckResult{}, err
	}
	res := models.AckResult{
		Requested:    len(changed),
		Acknowledged: len(changed),
		IDs:          changed,
		Message:      fmt.Sprintf("All active alarms for %s have been acknowledged.", m.Name),
	}
	if res.Acknowledged > 0 {
		s.record(ctx, models.EventAcknowledge, res.Message, changed, user)
	}
	return res, nil
}

// acknowledgeWhere transitions every Active alarm matching pred under one
// write lock and returns the ids it changed.
func (s *AlarmService) acknowledgeWhere(ctx context.Context, user string, pred func(a *models.Alarm) bool) ([]string, error) {
	user = s.userOrDefault(user)
	at := s.now().Format(models.AlarmTimeLayout)

	changed, err := s.alarms.Update(ctx, func(a *models.Alarm) bool {
		if a.Status != models.AlarmActive || !pred(a) {
			return false
		}
		a.Status = models.AlarmAcknowledged
		a.AcknowledgedBy = user
		a.AcknowledgedAt = at
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("acknowledge alarms: %w", err)
	}
	if len(changed) > 0 {
		s.metrics.AlarmsAcknowledged(len(changed))
		s.refreshActiveGauge(ctx)
	}
	if changed == nil {
		changed = []string{}
	}
	return changed, nil
}

func (s *AlarmService) userOrDefault(user string) string {
	if u := strings.TrimSpace(user); u != "" {
		return u
	}
	return s.cfg.DefaultUser
}

func (s *AlarmService) refreshActiveGauge(ctx context.Context) {
	st, err := s.Stats(ctx)
	if err != nil {
		return
	}
	s.metrics.SetActiveAlarms(st.Active)
}

func (s *AlarmService) record(ctx context.Context, typ, desc string, ids []string, user string) {
	err := s.events.Append(ctx, models.ActivityEvent{
		Type:        typ,
		Description: desc,
		Metadata: map[string]any{
			"alarm_ids": ids,
			"user":      s.userOrDefault(user),
		},
	})
	if err != nil {
		s.log.Warnw("activity_event_append_failed", "type", typ, "err", err)
	}
}
