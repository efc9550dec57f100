package export

import (
	"fmt"
	"strconv"
	"time"

	"plant_monitor/internal/models"
)

const (
	alarmsPerSlide = 8
	maxTitleRunes  = 30

	colorHeading = "363636"
	colorMuted   = "666666"
)

// AlarmDeck lays out the alarm report: a title slide, a status summary and
// one detail slide per eight alarms. stats covers the full alarm set while
// alarms is the exported (filtered) selection.
func AlarmDeck(alarms []models.Alarm, stats models.AlarmStats, now time.Time) Deck {
	d := Deck{Title: "Alarm Management Report", Created: now}

	d.Slides = append(d.Slides, Slide{Texts: []TextBox{
		{Text: d.Title, X: 1, Y: 1, W: 8, H: 1.5, Size: 32, Bold: true, Color: colorHeading},
		{Text: "Generated on " + now.Format("1/2/2006"), X: 1, Y: 2.5, W: 8, H: 0.5, Size: 16, Color: colorMuted},
		{Text: fmt.Sprintf("Total Alarms: %d", len(alarms)), X: 1, Y: 3.5, W: 8, H: 0.5, Size: 14, Color: colorMuted},
	}})

	d.Slides = append(d.Slides, Slide{
		Texts: []TextBox{{Text: "Alarm Summary", X: 1, Y: 0.5, W: 8, H: 1, Size: 24, Bold: true, Color: colorHeading}},
		Table: &SlideTable{
			X: 1, Y: 2, W: 6, H: 3, FontSize: 14,
			Header: []string{"Status", "Count"},
			Rows: [][]string{
				{"Active", strconv.Itoa(stats.Active)},
				{"Critical", strconv.Itoa(stats.Critical)},
				{"Acknowledged", strconv.Itoa(stats.Acknowledged)},
				{"Resolved", strconv.Itoa(stats.Resolved)},
			},
		},
	})

	pages := (len(alarms) + alarmsPerSlide - 1) / alarmsPerSlide
	for p := 0; p < pages; p++ {
		end := min((p+1)*alarmsPerSlide, len(alarms))
		rows := make([][]string, 0, alarmsPerSlide)
		for _, a := range alarms[p*alarmsPerSlide : end] {
			rows = append(rows, []string{a.ID, truncate(a.Title, maxTitleRunes), string(a.Severity), string(a.Status), a.Machine})
		}
		d.Slides = append(d.Slides, Slide{
			Texts: []TextBox{{
				Text: fmt.Sprintf("Alarm Details (%d/%d)", p+1, pages),
				X:    1, Y: 0.5, W: 8, H: 0.8, Size: 20, Bold: true, Color: colorHeading,
			}},
			Table: &SlideTable{
				X: 0.5, Y: 1.5, W: 9, H: 5, FontSize: 10,
				Header: []string{"ID", "Title", "Severity", "Status", "Machine"},
				Rows:   rows,
			},
		})
	}
	return d
}

// truncate keeps the first n runes of s and marks the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
