package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"plant_monitor/internal/models"

	"github.com/dustin/go-humanize"
)

const defaultKPIPrecision = 1

var kpiValueCleaner = strings.NewReplacer(",", "", "%", "", " ", "")

// parseKPIValue reads a displayed KPI value such as "1,250" or "94.2%".
func parseKPIValue(s string) (float64, error) {
	clean := kpiValueCleaner.Replace(s)
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("parse kpi value %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("parse kpi value %q: not finite", s)
	}
	return v, nil
}

// formatKPIValue renders v for display according to the KPI's format.
func formatKPIValue(v float64, format models.KPIFormat, precision int) string {
	if precision <= 0 {
		precision = defaultKPIPrecision
	}
	switch format {
	case models.FormatCount:
		return humanize.Comma(int64(math.Floor(v)))
	case models.FormatInteger:
		return strconv.FormatInt(int64(math.Floor(v)), 10)
	case models.FormatPercent:
		return strconv.FormatFloat(v, 'f', precision, 64) + "%"
	default:
		return commaFixed(v, precision)
	}
}

// commaFixed is a fixed-point rendering with a thousands separator on the
// integer part, so "1,962.4" keeps its shape after a tick.
func commaFixed(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	whole, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return s
	}
	out := humanize.Comma(n)
	if frac != "" {
		out += "." + frac
	}
	return out
}
