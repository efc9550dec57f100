package service

import (
	"strings"

	"plant_monitor/internal/models"
)

// FilterMachines returns the machines matching every non-empty dimension of
// f, in catalog order. The search text is used as typed, spaces included.
// The input is not modified.
func FilterMachines(machines []models.Machine, f models.MachineFilter) []models.Machine {
	search := strings.ToLower(f.Search)
	out := make([]models.Machine, 0, len(machines))
	for _, m := range machines {
		if search != "" &&
			!strings.Contains(strings.ToLower(m.Name), search) &&
			!strings.Contains(strings.ToLower(m.Location), search) {
			continue
		}
		if len(f.Status) > 0 && !containsFold(f.Status, string(m.Status)) {
			continue
		}
		if len(f.Type) > 0 && !containsFold(f.Type, string(m.Type)) {
			continue
		}
		if len(f.Location) > 0 {
			key, ok := models.LocationKey(m.Location)
			if !ok || !containsFold(f.Location, key) {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// FilterAlarms applies the alarm page controls. Search matches title,
// machine or location; the other fields are exact and "all" disables them.
func FilterAlarms(alarms []models.Alarm, f models.AlarmFilter) []models.Alarm {
	search := strings.ToLower(f.Search)
	out := make([]models.Alarm, 0, len(alarms))
	for _, a := range alarms {
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Title), search) &&
			!strings.Contains(strings.ToLower(a.Machine), search) &&
			!strings.Contains(strings.ToLower(a.Location), search) {
			continue
		}
		if !matchOne(f.Severity, string(a.Severity)) ||
			!matchOne(f.Status, string(a.Status)) ||
			!matchOne(f.Category, string(a.Category)) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matchOne(want, got string) bool {
	want = strings.TrimSpace(want)
	if want == "" || strings.EqualFold(want, "all") {
		return true
	}
	return strings.EqualFold(want, got)
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}
