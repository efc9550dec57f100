package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"plant_monitor/internal/logger"
	"plant_monitor/internal/models"
	"plant_monitor/internal/repository"
)

// anomalyChance is the per-machine probability of a finding on each pass.
const anomalyChance = 0.3

var (
	anomalyTypes      = []string{"temperature", "vibration", "pressure", "power", "performance"}
	anomalySeverities = []string{"low", "medium", "high", "critical"}

	anomalyDescriptions = map[string]map[string]string{
		"temperature": {
			"low":      "Slight temperature increase detected",
			"medium":   "Temperature above normal operating range",
			"high":     "Significant temperature spike detected",
			"critical": "Critical temperature threshold exceeded",
		},
		"vibration": {
			"low":      "Minor vibration pattern change",
			"medium":   "Abnormal vibration frequency detected",
			"high":     "High vibration levels indicating potential issues",
			"critical": "Critical vibration anomaly - immediate attention required",
		},
		"pressure": {
			"low":      "Pressure fluctuation observed",
			"medium":   "Pressure outside normal parameters",
			"high":     "Significant pressure anomaly detected",
			"critical": "Critical pressure failure imminent",
		},
		"power": {
			"low":      "Power consumption variation",
			"medium":   "Unusual power usage pattern",
			"high":     "High power consumption anomaly",
			"critical": "Critical power system anomaly",
		},
		"performance": {
			"low":      "Minor performance deviation",
			"medium":   "Performance degradation detected",
			"high":     "Significant performance drop",
			"critical": "Critical performance failure predicted",
		},
	}

	anomalyImpacts = map[string]string{
		"low":      "Minimal impact on production",
		"medium":   "Potential 5-10% efficiency loss",
		"high":     "Expected 15-25% production impact",
		"critical": "Immediate shutdown may be required",
	}

	anomalyRecommendations = map[string]string{
		"temperature": "Check cooling system and ventilation",
		"vibration":   "Inspect mechanical components and alignment",
		"pressure":    "Verify pressure sensors and hydraulic systems",
		"power":       "Check electrical connections and power supply",
		"performance": "Schedule maintenance and component inspection",
	}
)

// GenerateAnomalies draws random placeholder findings. Nothing here looks
// at the machine readings.
func GenerateAnomalies(machines []models.Machine, rng *rand.Rand, now time.Time) []models.Anomaly {
	var out []models.Anomaly
	for _, m := range machines {
		if rng.Float64() >= anomalyChance {
			continue
		}
		typ := anomalyTypes[rng.IntN(len(anomalyTypes))]
		sev := anomalySeverities[rng.IntN(len(anomalySeverities))]
		out = append(out, models.Anomaly{
			ID:              fmt.Sprintf("anomaly-%s-%d", m.ID, now.UnixMilli()),
			MachineID:       m.ID,
			MachineName:     m.Name,
			Type:            typ,
			Severity:        sev,
			Description:     anomalyDescriptions[typ][sev],
			Confidence:      70 + rng.IntN(30),
			Timestamp:       now.UTC(),
			PredictedImpact: anomalyImpacts[sev],
			Recommendation:  anomalyRecommendations[typ],
		})
	}
	return out
}

// AnomalyService keeps the most recent generated anomalies, newest first.
type AnomalyService struct {
	machines repository.MachineRepo
	log      *logger.Logger
	keep     int

	mu     sync.RWMutex
	rng    *rand.Rand
	recent []models.Anomaly
}

func NewAnomalyService(machines repository.MachineRepo, log *logger.Logger, keep int) *AnomalyService {
	return &AnomalyService{
		machines: machines,
		log:      log,
		keep:     keep,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

func (s *AnomalyService) List(ctx context.Context) ([]models.Anomaly, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Anomaly{}, s.recent...), nil
}

// Generate runs one detection pass and returns the new findings.
func (s *AnomalyService) Generate(ctx context.Context, now time.Time) ([]models.Anomaly, error) {
	machines, err := s.machines.List(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fresh := GenerateAnomalies(machines, s.rng, now)
	s.recent = append(fresh, s.recent...)
	if len(s.recent) > s.keep {
		s.recent = s.recent[:s.keep]
	}
	return fresh, nil
}

// Run generates once immediately, then on every tick until ctx is canceled.
func (s *AnomalyService) Run(ctx context.Context, tick time.Duration) {
	if _, err := s.Generate(ctx, time.Now()); err != nil {
		s.log.Errorw("anomaly_generate_failed", "err", err)
	}
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if _, err := s.Generate(ctx, now); err != nil {
				s.log.Errorw("anomaly_generate_failed", "err", err)
			}
		}
	}
}
