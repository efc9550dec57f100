package service

import (
	"context"
	"errors"
	"fmt"

	"plant_monitor/internal/models"
	"plant_monitor/internal/repository"
)

type MachineService struct {
	machines repository.MachineRepo
}

func NewMachineService(machines repository.MachineRepo) *MachineService {
	return &MachineService{machines: machines}
}

// List filters the catalog; the summary always covers the full catalog.
func (s *MachineService) List(ctx context.Context, f models.MachineFilter) (models.MachineList, error) {
	all, err := s.machines.List(ctx)
	if err != nil {
		return models.MachineList{}, err
	}
	return models.MachineList{
		Machines: FilterMachines(all, f),
		Summary:  SummarizeMachines(all),
	}, nil
}

func (s *MachineService) Summary(ctx context.Context) (models.MachineSummary, error) {
	all, err := s.machines.List(ctx)
	if err != nil {
		return models.MachineSummary{}, err
	}
	return SummarizeMachines(all), nil
}

func (s *MachineService) Get(ctx context.Context, id string) (models.Machine, error) {
	m, err := s.machines.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Machine{}, fmt.Errorf("%w: %s", ErrMachineNotFound, id)
	}
	return m, err
}
