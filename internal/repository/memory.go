package repository

import (
	"context"
	"fmt"
	"sync"

	"plant_monitor/internal/models"
)

// MachineMemory keeps the catalog in process memory. Readers get copies.
type MachineMemory struct {
	mu       sync.RWMutex
	machines []models.Machine
}

func NewMachineMemory(seed []models.Machine) *MachineMemory {
	return &MachineMemory{machines: append([]models.Machine(nil), seed...)}
}

func (r *MachineMemory) List(ctx context.Context) ([]models.Machine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Machine, len(r.machines))
	copy(out, r.machines)
	return out, nil
}

func (r *MachineMemory) Get(ctx context.Context, id string) (models.Machine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.machines {
		if m.ID == id {
			return m, nil
		}
	}
	return models.Machine{}, fmt.Errorf("machine %q: %w", id, ErrNotFound)
}

func (r *MachineMemory) Mutate(ctx context.Context, fn func(m *models.Machine)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.machines {
		fn(&r.machines[i])
	}
	return nil
}

type AlarmMemory struct {
	mu     sync.RWMutex
	alarms []models.Alarm
}

func NewAlarmMemory(seed []models.Alarm) *AlarmMemory {
	return &AlarmMemory{alarms: append([]models.Alarm(nil), seed...)}
}

func (r *AlarmMemory) List(ctx context.Context) ([]models.Alarm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Alarm, len(r.alarms))
	copy(out, r.alarms)
	return out, nil
}

func (r *AlarmMemory) Get(ctx context.Context, id string) (models.Alarm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.alarms {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Alarm{}, fmt.Errorf("alarm %q: %w", id, ErrNotFound)
}

func (r *AlarmMemory) Update(ctx context.Context, fn func(a *models.Alarm) bool) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var changed []string
	for i := range r.alarms {
		if fn(&r.alarms[i]) {
			changed = append(changed, r.alarms[i].ID)
		}
	}
	return changed, nil
}

// KPIMemory holds the seeded snapshots per range and the live copy of the
// selected one.
type KPIMemory struct {
	mu        sync.RWMutex
	snapshots map[models.TimeRange][]models.KPI
	current   models.TimeRange
	kpis      []models.KPI
}

func NewKPIMemory(snapshots map[models.TimeRange][]models.KPI) *KPIMemory {
	r := &KPIMemory{snapshots: snapshots, current: models.DefaultRange}
	r.kpis = cloneKPIs(snapshots[models.DefaultRange])
	return r
}

func (r *KPIMemory) Current(ctx context.Context) (models.TimeRange, []models.KPI, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, cloneKPIs(r.kpis), nil
}

func (r *KPIMemory) SetRange(ctx context.Context, tr models.TimeRange) ([]models.KPI, error) {
	set, ok := r.snapshots[tr]
	if !ok {
		return nil, fmt.Errorf("kpi set %q: %w", tr, ErrNotFound)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = tr
	r.kpis = cloneKPIs(set)
	return cloneKPIs(r.kpis), nil
}

func (r *KPIMemory) Mutate(ctx context.Context, tr models.TimeRange, fn func(k *models.KPI)) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current != tr {
		return false, nil
	}
	for i := range r.kpis {
		fn(&r.kpis[i])
	}
	return true, nil
}

func cloneKPIs(in []models.KPI) []models.KPI {
	if in == nil {
		return nil
	}
	out := make([]models.KPI, len(in))
	copy(out, in)
	return out
}

// ReportMemory serves the static report series.
type ReportMemory struct {
	reports []models.Report
}

func NewReportMemory(reports []models.Report) *ReportMemory {
	return &ReportMemory{reports: reports}
}

func (r *ReportMemory) List(ctx context.Context) ([]models.Report, error) {
	return append([]models.Report(nil), r.reports...), nil
}

func (r *ReportMemory) Get(ctx context.Context, name string) (models.Report, error) {
	for _, rep := range r.reports {
		if rep.Name == name {
			return rep, nil
		}
	}
	return models.Report{}, fmt.Errorf("report %q: %w", name, ErrNotFound)
}
