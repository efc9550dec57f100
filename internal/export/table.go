// Package export renders tabular plant data as CSV, XLSX and PPTX files.
package export

import (
	"fmt"
	"strings"
	"time"

	"plant_monitor/internal/models"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPPTX Format = "pptx"
)

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPPTX:
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	}
	return "application/octet-stream"
}

// ParseFormat accepts csv, xlsx and pptx in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX, FormatPPTX:
		return f, nil
	}
	return "", fmt.Errorf("export format %q", s)
}

// Filename builds "<name>_export_YYYY-MM-DD.<ext>".
func Filename(name string, f Format, day time.Time) string {
	return fmt.Sprintf("%s_export_%s.%s", name, day.Format(time.DateOnly), f)
}

// Table is the format-neutral shape every writer consumes.
type Table struct {
	Sheet   string
	Columns []string
	Rows    [][]string
}

var alarmColumns = []string{
	"ID", "Title", "Description", "Severity", "Status", "Machine",
	"Location", "Category", "Timestamp", "Acknowledged By", "Acknowledged At",
}

// AlarmTable maps alarms to the export column set. Missing acknowledgment
// fields become empty cells.
func AlarmTable(alarms []models.Alarm) Table {
	rows := make([][]string, 0, len(alarms))
	for _, a := range alarms {
		rows = append(rows, []string{
			a.ID,
			a.Title,
			a.Description,
			string(a.Severity),
			string(a.Status),
			a.Machine,
			a.Location,
			string(a.Category),
			a.Timestamp,
			a.AcknowledgedBy,
			a.AcknowledgedAt,
		})
	}
	return Table{Sheet: "Alarms", Columns: alarmColumns, Rows: rows}
}

func ReportTable(r models.Report) Table {
	sheet := r.Title
	if sheet == "" {
		sheet = r.Name
	}
	return Table{Sheet: sheet, Columns: r.Columns, Rows: r.Rows}
}
