package service

import (
	"testing"

	"plant_monitor/internal/logger"
	"plant_monitor/internal/repository"
	"plant_monitor/internal/repository/seed"
)

type seededRepos struct {
	data     *seed.Data
	machines *repository.MachineMemory
	alarms   *repository.AlarmMemory
	kpis     *repository.KPIMemory
	reports  *repository.ReportMemory
	events   *fakeEventRepo
}

func newSeededRepos(t *testing.T) seededRepos {
	t.Helper()
	data, err := seed.Default()
	if err != nil {
		t.Fatalf("seed.Default: %v", err)
	}
	return seededRepos{
		data:     data,
		machines: repository.NewMachineMemory(data.Machines),
		alarms:   repository.NewAlarmMemory(data.Alarms),
		kpis:     repository.NewKPIMemory(data.KPIs),
		reports:  repository.NewReportMemory(data.Reports),
		events:   &fakeEventRepo{},
	}
}

var testLog = logger.Nop()
