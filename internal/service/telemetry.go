package service

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"plant_monitor/internal/logger"
	"plant_monitor/internal/metrics"
	"plant_monitor/internal/models"
	"plant_monitor/internal/repository"
)

// maxVariation is the half-width of the uniform relative change per tick.
const maxVariation = 0.05

// TelemetryUpdater perturbs the live KPI set and the machine readings on
// fixed intervals. The KPI loop runs only while the selected range is
// today; the machine loop runs from Start until Stop.
type TelemetryUpdater struct {
	kpis     repository.KPIRepo
	machines repository.MachineRepo
	metrics  *metrics.Metrics
	log      *logger.Logger

	kpiEvery     time.Duration
	machineEvery time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand

	mu      sync.Mutex
	root    context.Context
	cancel  context.CancelFunc
	stopKPI context.CancelFunc
	wg      sync.WaitGroup
}

func NewTelemetryUpdater(kpis repository.KPIRepo, machines repository.MachineRepo, m *metrics.Metrics, log *logger.Logger, kpiEvery, machineEvery time.Duration) *TelemetryUpdater {
	return &TelemetryUpdater{
		kpis:         kpis,
		machines:     machines,
		metrics:      m,
		log:          log,
		kpiEvery:     kpiEvery,
		machineEvery: machineEvery,
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Start launches the background loops under ctx. Cancelling ctx has the
// same effect as Stop. Calling Start twice is a no-op.
func (u *TelemetryUpdater) Start(ctx context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.root != nil {
		return
	}
	u.root, u.cancel = context.WithCancel(ctx)

	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		u.loop(u.root, u.machineEvery, u.tickMachines)
	}()

	current, _, err := u.kpis.Current(ctx)
	if err != nil {
		u.log.Errorw("telemetry_current_range_failed", "err", err)
		return
	}
	if current == models.RangeToday {
		u.startKPIsLocked()
	}
}

// SetRange moves the KPI loop between running (today) and idle (any other
// range). Entering running always starts a fresh ticker.
func (u *TelemetryUpdater) SetRange(r models.TimeRange) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.root == nil || u.root.Err() != nil {
		return
	}
	if r == models.RangeToday {
		u.startKPIsLocked()
		return
	}
	u.stopKPIsLocked()
}

// Live reports whether the KPI loop is running.
func (u *TelemetryUpdater) Live() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.stopKPI != nil && u.root != nil && u.root.Err() == nil
}

// Stop cancels both loops and waits for an in-flight tick to finish, so no
// update lands after it returns.
func (u *TelemetryUpdater) Stop() {
	u.mu.Lock()
	if u.cancel != nil {
		u.cancel()
	}
	u.stopKPI = nil
	u.mu.Unlock()

	u.wg.Wait()
	u.metrics.SetTelemetryLive(false)
}

func (u *TelemetryUpdater) startKPIsLocked() {
	u.stopKPIsLocked()
	ctx, cancel := context.WithCancel(u.root)
	u.stopKPI = cancel

	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		u.loop(ctx, u.kpiEvery, func(ctx context.Context) {
			u.tickKPIs(ctx, models.RangeToday)
		})
	}()
	u.metrics.SetTelemetryLive(true)
}

func (u *TelemetryUpdater) stopKPIsLocked() {
	if u.stopKPI != nil {
		u.stopKPI()
		u.stopKPI = nil
	}
	u.metrics.SetTelemetryLive(false)
}

// loop calls fn every interval until ctx is canceled.
func (u *TelemetryUpdater) loop(ctx context.Context, every time.Duration, fn func(context.Context)) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if ctx.Err() != nil {
				return
			}
			fn(ctx)
		}
	}
}

func (u *TelemetryUpdater) tickKPIs(ctx context.Context, r models.TimeRange) {
	applied, err := u.kpis.Mutate(ctx, r, u.perturbKPI)
	if err != nil {
		u.log.Errorw("kpi_tick_failed", "err", err)
		return
	}
	if applied {
		u.metrics.TelemetryTick("kpis")
	}
}

func (u *TelemetryUpdater) tickMachines(ctx context.Context) {
	if err := u.machines.Mutate(ctx, u.perturbMachine); err != nil {
		u.log.Errorw("machine_tick_failed", "err", err)
		return
	}
	u.metrics.TelemetryTick("machines")
}

// perturbKPI leaves values it cannot parse untouched.
func (u *TelemetryUpdater) perturbKPI(k *models.KPI) {
	v, err := parseKPIValue(k.Value)
	if err != nil {
		u.log.Warnw("kpi_value_unparseable", "title", k.Title, "value", k.Value, "err", err)
		return
	}
	k.Value = formatKPIValue(u.vary(v), k.Format, k.Precision)
}

func (u *TelemetryUpdater) perturbMachine(m *models.Machine) {
	m.CycleTime = math.Round(u.vary(m.CycleTime))
	m.Throughput = math.Round(u.vary(m.Throughput))
	m.RPM = math.Round(u.vary(m.RPM))

	m.PowerUsage = round1(u.vary(m.PowerUsage))
	m.Temperature = round1(u.vary(m.Temperature))
	m.Vibration = round1(u.vary(m.Vibration))
	m.Pressure = round1(u.vary(m.Pressure))
	m.FlowRate = round1(u.vary(m.FlowRate))
	m.OEE = math.Min(100, round1(u.vary(m.OEE)))
	m.Efficiency = math.Min(100, round1(u.vary(m.Efficiency)))
}

// vary applies a uniform change in [-5%, +5%) of v and clamps at 0.
func (u *TelemetryUpdater) vary(v float64) float64 {
	u.rngMu.Lock()
	delta := (u.rng.Float64() - 0.5) * 2 * maxVariation
	u.rngMu.Unlock()
	return math.Max(0, v*(1+delta))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
