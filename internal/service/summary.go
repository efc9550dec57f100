package service

import (
	"math"

	"plant_monitor/internal/models"
)

// SummarizeMachines counts machines per status. Percentages and averages are
// 0 for an empty catalog.
func SummarizeMachines(machines []models.Machine) models.MachineSummary {
	s := models.MachineSummary{Total: len(machines)}
	if s.Total == 0 {
		return s
	}
	var oee float64
	for _, m := range machines {
		switch m.Status {
		case models.StatusNormal:
			s.Healthy++
		case models.StatusWarning:
			s.Warning++
		case models.StatusFault:
			s.Fault++
		}
		oee += m.OEE
	}
	s.HealthyPercentage = int(math.Round(float64(s.Healthy) / float64(s.Total) * 100))
	s.AverageOEE = oee / float64(s.Total)
	return s
}

func SummarizeAlarms(alarms []models.Alarm) models.AlarmStats {
	st := models.AlarmStats{Total: len(alarms)}
	for _, a := range alarms {
		switch a.Status {
		case models.AlarmActive:
			st.Active++
		case models.AlarmAcknowledged:
			st.Acknowledged++
		case models.AlarmResolved:
			st.Resolved++
		}
		if a.Severity == models.SeverityCritical {
			st.Critical++
		}
	}
	return st
}
