package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"plant_monitor/internal/models"
	"plant_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseIdentity service.Identity
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (service.Identity, error) {
	m.lastParseToken = token
	return m.parseIdentity, m.parseErr
}

type mockDashboard struct {
	snap      models.KPISnapshot
	err       error
	lastRange models.TimeRange
}

func (m *mockDashboard) KPIs(ctx context.Context) (models.KPISnapshot, error) {
	return m.snap, m.err
}
func (m *mockDashboard) SetRange(ctx context.Context, r models.TimeRange) (models.KPISnapshot, error) {
	m.lastRange = r
	if m.err != nil {
		return models.KPISnapshot{}, m.err
	}
	snap := m.snap
	snap.Range = r
	return snap, nil
}

type mockMachines struct {
	list       models.MachineList
	summary    models.MachineSummary
	machine    models.Machine
	err        error
	lastFilter models.MachineFilter
	lastID     string
}

func (m *mockMachines) List(ctx context.Context, f models.MachineFilter) (models.MachineList, error) {
	m.lastFilter = f
	return m.list, m.err
}
func (m *mockMachines) Summary(ctx context.Context) (models.MachineSummary, error) {
	return m.summary, m.err
}
func (m *mockMachines) Get(ctx context.Context, id string) (models.Machine, error) {
	m.lastID = id
	return m.machine, m.err
}

type mockAlarms struct {
	list       models.AlarmList
	stats      models.AlarmStats
	alarm      models.Alarm
	ack        models.AckResult
	err        error
	lastFilter models.AlarmFilter
	lastID     string
	lastIDs    []string
	lastUser   string
}

func (m *mockAlarms) List(ctx context.Context, f models.AlarmFilter) (models.AlarmList, error) {
	m.lastFilter = f
	return m.list, m.err
}
func (m *mockAlarms) Stats(ctx context.Context) (models.AlarmStats, error) {
	return m.stats, m.err
}
func (m *mockAlarms) Get(ctx context.Context, id string) (models.Alarm, error) {
	m.lastID = id
	return m.alarm, m.err
}
func (m *mockAlarms) Acknowledge(ctx context.Context, id, user string) (models.AckResult, error) {
	m.lastID, m.lastUser = id, user
	return m.ack, m.err
}
func (m *mockAlarms) BulkAcknowledge(ctx context.Context, ids []string, user string) (models.AckResult, error) {
	m.lastIDs, m.lastUser = ids, user
	return m.ack, m.err
}
func (m *mockAlarms) AcknowledgeMachine(ctx context.Context, machineID, user string) (models.AckResult, error) {
	m.lastID, m.lastUser = machineID, user
	return m.ack, m.err
}

type mockExports struct {
	file       service.File
	err        error
	lastFilter models.AlarmFilter
	lastName   string
	lastFormat string
}

func (m *mockExports) ExportAlarms(ctx context.Context, f models.AlarmFilter, format string) (service.File, error) {
	m.lastFilter, m.lastFormat = f, format
	return m.file, m.err
}
func (m *mockExports) ExportReport(ctx context.Context, name, format string) (service.File, error) {
	m.lastName, m.lastFormat = name, format
	return m.file, m.err
}

type mockReports struct {
	reports []models.Report
	err     error
}

func (m *mockReports) List(ctx context.Context) ([]models.Report, error) {
	return m.reports, m.err
}
func (m *mockReports) Get(ctx context.Context, name string) (models.Report, error) {
	if m.err != nil {
		return models.Report{}, m.err
	}
	for _, r := range m.reports {
		if r.Name == name {
			return r, nil
		}
	}
	return models.Report{}, service.ErrUnknownReport
}

type mockAnomalies struct {
	items []models.Anomaly
}

func (m *mockAnomalies) List(ctx context.Context) ([]models.Anomaly, error) {
	return m.items, nil
}
func (m *mockAnomalies) Run(ctx context.Context, tick time.Duration) {}

type mockMaintenance struct {
	req       models.MaintenanceRequest
	reqs      []models.MaintenanceRequest
	err       error
	lastInput service.MaintenanceInput
	lastUser  string
}

func (m *mockMaintenance) Submit(ctx context.Context, machineID string, in service.MaintenanceInput, user string) (models.MaintenanceRequest, error) {
	m.lastInput, m.lastUser = in, user
	return m.req, m.err
}
func (m *mockMaintenance) List(ctx context.Context, machineID string) ([]models.MaintenanceRequest, error) {
	return m.reqs, m.err
}

type mockEventLog struct {
	resp     []models.ActivityEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.ActivityEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// doRequest sends an authorized request through r.
func doRequest(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validAuth() *mockAuth {
	return &mockAuth{parseIdentity: service.Identity{UserID: 99, Username: "alice"}}
}

// httptestGet sends an unauthenticated GET.
func httptestGet(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}
