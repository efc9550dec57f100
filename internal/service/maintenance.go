package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"plant_monitor/internal/logger"
	"plant_monitor/internal/models"
	"plant_monitor/internal/repository"

	"github.com/google/uuid"
)

// MaintenanceInput is the maintenance dialog form.
type MaintenanceInput struct {
	Type        string
	Description string
}

type MaintenanceService struct {
	requests    repository.MaintenanceRepo
	machines    repository.MachineRepo
	events      repository.EventRepo
	log         *logger.Logger
	defaultUser string
	now         func() time.Time
}

func NewMaintenanceService(requests repository.MaintenanceRepo, machines repository.MachineRepo, events repository.EventRepo, log *logger.Logger, defaultUser string) *MaintenanceService {
	return &MaintenanceService{
		requests:    requests,
		machines:    machines,
		events:      events,
		log:         log,
		defaultUser: defaultUser,
		now:         time.Now,
	}
}

// Submit validates and stores a maintenance request for a machine.
func (s *MaintenanceService) Submit(ctx context.Context, machineID string, in MaintenanceInput, user string) (models.MaintenanceRequest, error) {
	typ := strings.TrimSpace(in.Type)
	desc := strings.TrimSpace(in.Description)
	if typ == "" || desc == "" {
		return models.MaintenanceRequest{}, ErrMissingMaintenanceFields
	}
	mt := models.MaintenanceType(typ)
	if !mt.Valid() {
		return models.MaintenanceRequest{}, fmt.Errorf("%w: %q", ErrInvalidMaintenanceType, typ)
	}

	m, err := s.machines.Get(ctx, machineID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.MaintenanceRequest{}, fmt.Errorf("%w: %s", ErrMachineNotFound, machineID)
	}
	if err != nil {
		return models.MaintenanceRequest{}, err
	}

	if strings.TrimSpace(user) == "" {
		user = s.defaultUser
	}
	req := models.MaintenanceRequest{
		ID:          uuid.NewString(),
		MachineID:   m.ID,
		MachineName: m.Name,
		Type:        mt,
		Description: desc,
		RequestedBy: user,
		CreatedAt:   s.now().UTC().Truncate(time.Second),
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return models.MaintenanceRequest{}, err
	}

	if err := s.events.Append(ctx, models.ActivityEvent{
		OccurredAt:  req.CreatedAt,
		Type:        models.EventMaintenanceRequest,
		Description: fmt.Sprintf("%s maintenance request for %s has been submitted successfully.", mt, m.Name),
		Metadata:    map[string]any{"request_id": req.ID, "machine_id": m.ID, "user": user},
	}); err != nil {
		s.log.Warnw("activity_event_append_failed", "type", models.EventMaintenanceRequest, "err", err)
	}
	return req, nil
}

func (s *MaintenanceService) List(ctx context.Context, machineID string) ([]models.MaintenanceRequest, error) {
	if _, err := s.machines.Get(ctx, machineID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMachineNotFound, machineID)
		}
		return nil, err
	}
	out, err := s.requests.ListByMachine(ctx, machineID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.MaintenanceRequest{}
	}
	return out, nil
}
