package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"plant_monitor/internal/export"
	"plant_monitor/internal/logger"
	"plant_monitor/internal/metrics"
	"plant_monitor/internal/models"
	"plant_monitor/internal/repository"
)

// File is a fully rendered download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type ExportService struct {
	alarms  repository.AlarmRepo
	reports repository.ReportRepo
	events  repository.EventRepo
	metrics *metrics.Metrics
	log     *logger.Logger
	now     func() time.Time
}

func NewExportService(alarms repository.AlarmRepo, reports repository.ReportRepo, events repository.EventRepo, m *metrics.Metrics, log *logger.Logger) *ExportService {
	return &ExportService{alarms: alarms, reports: reports, events: events, metrics: m, log: log, now: time.Now}
}

// ExportAlarms renders the alarms matching f. The PPTX summary slide counts
// the whole alarm set.
func (s *ExportService) ExportAlarms(ctx context.Context, f models.AlarmFilter, format string) (File, error) {
	fm, err := export.ParseFormat(format)
	if err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
	}
	all, err := s.alarms.List(ctx)
	if err != nil {
		return File{}, err
	}
	selected := FilterAlarms(all, f)
	now := s.now()

	var buf bytes.Buffer
	switch fm {
	case export.FormatCSV:
		err = export.WriteCSV(&buf, export.AlarmTable(selected))
	case export.FormatXLSX:
		err = export.WriteXLSX(&buf, export.AlarmTable(selected))
	case export.FormatPPTX:
		err = export.WritePPTX(&buf, export.AlarmDeck(selected, SummarizeAlarms(all), now))
	}
	if err != nil {
		return File{}, fmt.Errorf("write alarms %s: %w", fm, err)
	}

	file := File{Name: export.Filename("alarms", fm, now), ContentType: fm.ContentType(), Data: buf.Bytes()}
	s.recordExport(ctx, file, len(selected))
	s.metrics.Exported(string(fm))
	return file, nil
}

// ExportReport renders a static report series as CSV or XLSX.
func (s *ExportService) ExportReport(ctx context.Context, name, format string) (File, error) {
	fm, err := export.ParseFormat(format)
	if err != nil || fm == export.FormatPPTX {
		return File{}, fmt.Errorf("%w: %q for reports", ErrUnknownFormat, format)
	}
	rep, err := s.reports.Get(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return File{}, fmt.Errorf("%w: %s", ErrUnknownReport, name)
	}
	if err != nil {
		return File{}, err
	}

	var buf bytes.Buffer
	tbl := export.ReportTable(rep)
	if fm == export.FormatCSV {
		err = export.WriteCSV(&buf, tbl)
	} else {
		err = export.WriteXLSX(&buf, tbl)
	}
	if err != nil {
		return File{}, fmt.Errorf("write report %s as %s: %w", name, fm, err)
	}

	file := File{Name: export.Filename(name, fm, s.now()), ContentType: fm.ContentType(), Data: buf.Bytes()}
	s.recordExport(ctx, file, len(rep.Rows))
	s.metrics.Exported(string(fm))
	return file, nil
}

func (s *ExportService) recordExport(ctx context.Context, f File, rows int) {
	err := s.events.Append(ctx, models.ActivityEvent{
		Type:        models.EventExport,
		Description: "Exported " + f.Name,
		Metadata:    map[string]any{"file": f.Name, "rows": rows, "bytes": len(f.Data)},
	})
	if err != nil {
		s.log.Warnw("activity_event_append_failed", "type", models.EventExport, "err", err)
	}
}
