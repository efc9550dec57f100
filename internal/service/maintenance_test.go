package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"plant_monitor/internal/models"
)

type fakeMaintenanceRepo struct {
	created   []models.MaintenanceRequest
	createErr error
}

func (f *fakeMaintenanceRepo) Create(ctx context.Context, r models.MaintenanceRequest) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, r)
	return nil
}

func (f *fakeMaintenanceRepo) ListByMachine(ctx context.Context, machineID string) ([]models.MaintenanceRequest, error) {
	var out []models.MaintenanceRequest
	for i := len(f.created) - 1; i >= 0; i-- {
		if f.created[i].MachineID == machineID {
			out = append(out, f.created[i])
		}
	}
	return out, nil
}

func newMaintenanceService(r seededRepos, repo *fakeMaintenanceRepo) *MaintenanceService {
	svc := NewMaintenanceService(repo, r.machines, r.events, testLog, "Current User")
	svc.now = func() time.Time { return time.Date(2024, 1, 15, 9, 0, 0, 500, time.UTC) }
	return svc
}

func TestMaintenanceService_Submit(t *testing.T) {
	r := newSeededRepos(t)
	repo := &fakeMaintenanceRepo{}
	svc := newMaintenanceService(r, repo)

	req, err := svc.Submit(context.Background(), "3", MaintenanceInput{Type: "Corrective", Description: " replace servo "}, "")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if req.ID == "" || req.MachineName != "Welding Robot 02" || req.Description != "replace servo" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.RequestedBy != "Current User" {
		t.Fatalf("requested_by = %q", req.RequestedBy)
	}
	if !req.CreatedAt.Equal(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("created_at = %v", req.CreatedAt)
	}
	if len(repo.created) != 1 {
		t.Fatalf("stored %d requests", len(repo.created))
	}
	if got := r.events.appendedTypes(); len(got) != 1 || got[0] != models.EventMaintenanceRequest {
		t.Fatalf("events = %v", got)
	}
	want := "Corrective maintenance request for Welding Robot 02 has been submitted successfully."
	if d := r.events.appended[0].Description; d != want {
		t.Fatalf("description = %q", d)
	}
}

func TestMaintenanceService_SubmitValidation(t *testing.T) {
	r := newSeededRepos(t)
	repo := &fakeMaintenanceRepo{}
	svc := newMaintenanceService(r, repo)

	tests := []struct {
		name    string
		machine string
		in      MaintenanceInput
		wantErr error
	}{
		{"missing type", "1", MaintenanceInput{Description: "x"}, ErrMissingMaintenanceFields},
		{"blank description", "1", MaintenanceInput{Type: "Preventive", Description: "   "}, ErrMissingMaintenanceFields},
		{"bad type", "1", MaintenanceInput{Type: "Cosmetic", Description: "x"}, ErrInvalidMaintenanceType},
		{"unknown machine", "42", MaintenanceInput{Type: "Preventive", Description: "x"}, ErrMachineNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Submit(context.Background(), tt.machine, tt.in, "alice"); !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
		})
	}
	if len(repo.created) != 0 || len(r.events.appendedTypes()) != 0 {
		t.Fatal("rejected requests must not be stored or logged")
	}
}

func TestMaintenanceService_SubmitStoreError(t *testing.T) {
	r := newSeededRepos(t)
	svc := newMaintenanceService(r, &fakeMaintenanceRepo{createErr: errors.New("locked")})

	if _, err := svc.Submit(context.Background(), "1", MaintenanceInput{Type: "Emergency", Description: "x"}, "alice"); err == nil {
		t.Fatal("expected store error")
	}
	if len(r.events.appendedTypes()) != 0 {
		t.Fatal("failed request must not be logged")
	}
}

func TestMaintenanceService_List(t *testing.T) {
	r := newSeededRepos(t)
	repo := &fakeMaintenanceRepo{}
	svc := newMaintenanceService(r, repo)

	got, err := svc.List(context.Background(), "1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}

	for _, typ := range []string{"Preventive", "Inspection"} {
		if _, err := svc.Submit(context.Background(), "1", MaintenanceInput{Type: typ, Description: "x"}, "alice"); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	got, _ = svc.List(context.Background(), "1")
	if len(got) != 2 || got[0].Type != models.MaintenanceInspection {
		t.Fatalf("unexpected list: %+v", got)
	}

	if _, err := svc.List(context.Background(), "42"); !errors.Is(err, ErrMachineNotFound) {
		t.Fatalf("want ErrMachineNotFound, got %v", err)
	}
}
