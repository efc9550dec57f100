package models

type TimeRange string

const (
	RangeToday  TimeRange = "today"
	RangeWeek   TimeRange = "7d"
	RangeMonth  TimeRange = "30d"
	DefaultRange          = RangeToday
)

func (r TimeRange) Valid() bool {
	switch r {
	case RangeToday, RangeWeek, RangeMonth:
		return true
	}
	return false
}

// Label is the text shown on the range selector.
func (r TimeRange) Label() string {
	switch r {
	case RangeToday:
		return "Today"
	case RangeWeek:
		return "Last 7 Days"
	case RangeMonth:
		return "Last 30 Days"
	}
	return string(r)
}

type TrendType string

const (
	TrendPositive TrendType = "positive"
	TrendNegative TrendType = "negative"
	TrendNeutral  TrendType = "neutral"
)

type TrendDirection string

const (
	DirectionUp   TrendDirection = "up"
	DirectionDown TrendDirection = "down"
)

// KPIFormat selects how a perturbed value is rendered back to text.
type KPIFormat string

const (
	FormatCount   KPIFormat = "count"   // 1,250
	FormatDecimal KPIFormat = "decimal" // 284.7
	FormatInteger KPIFormat = "integer" // 3
	FormatPercent KPIFormat = "percent" // 94.2%
)

func (f KPIFormat) Valid() bool {
	switch f {
	case FormatCount, FormatDecimal, FormatInteger, FormatPercent:
		return true
	}
	return false
}

type KPI struct {
	Title     string         `json:"title" yaml:"title"`
	Value     string         `json:"value" yaml:"value"` // pre-formatted
	Trend     string         `json:"trend" yaml:"trend"`
	TrendType TrendType      `json:"trend_type,omitempty" yaml:"trend_type,omitempty"`
	Direction TrendDirection `json:"direction,omitempty" yaml:"direction,omitempty"`
	Unit      string         `json:"unit,omitempty" yaml:"unit,omitempty"`
	Format    KPIFormat      `json:"format" yaml:"format"`
	Precision int            `json:"-" yaml:"precision,omitempty"`
}

// Polarity returns the explicit trend type, or derives it from Direction.
func (k KPI) Polarity() TrendType {
	if k.TrendType != "" {
		return k.TrendType
	}
	switch k.Direction {
	case DirectionUp:
		return TrendPositive
	case DirectionDown:
		return TrendNegative
	}
	return TrendNeutral
}

// KPISnapshot is what the dashboard reads for the selected range.
type KPISnapshot struct {
	Range TimeRange `json:"range"`
	Label string    `json:"label"`
	Live  bool      `json:"live"`
	KPIs  []KPI     `json:"kpis"`
}
