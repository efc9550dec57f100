package service

import (
	"context"
	"errors"
	"fmt"

	"plant_monitor/internal/models"
	"plant_monitor/internal/repository"
)

type ReportService struct {
	reports repository.ReportRepo
}

func NewReportService(reports repository.ReportRepo) *ReportService {
	return &ReportService{reports: reports}
}

func (s *ReportService) List(ctx context.Context) ([]models.Report, error) {
	return s.reports.List(ctx)
}

func (s *ReportService) Get(ctx context.Context, name string) (models.Report, error) {
	r, err := s.reports.Get(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Report{}, fmt.Errorf("%w: %s", ErrUnknownReport, name)
	}
	return r, err
}
