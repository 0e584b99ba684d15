package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/config"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/worktime"
	"github.com/cmlabs-hris/inzone-backend-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/inzone-backend-go/internal/service/attendance"
	geofenceService "github.com/cmlabs-hris/inzone-backend-go/internal/service/geofence"
	reportService "github.com/cmlabs-hris/inzone-backend-go/internal/service/report"
	signupService "github.com/cmlabs-hris/inzone-backend-go/internal/service/signup"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret       = "test-secret-key-for-jwt"
	adminID           int64 = 100
	ashaID            int64 = 1
	raviID            int64 = 2
)

type testServer struct {
	router http.Handler
	jwt    jwt.Service
	clock  *clock.Fixed
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	policy := worktime.DefaultPolicy(loc)
	clk := clock.NewFixed(time.Date(2025, 7, 14, 9, 0, 0, 0, loc))

	attRepo := memory.NewAttendanceRepository()
	empRepo := memory.NewEmployeeRepository(
		employee.Employee{ID: adminID, FirstName: "Admin", Email: "admin@example.com", Role: employee.RoleAdmin, Approved: true},
		employee.Employee{ID: ashaID, FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Department: "Engineering", Role: employee.RoleUser, Approved: true},
		employee.Employee{ID: raviID, FirstName: "Ravi", Email: "ravi@example.com", Department: "Engineering", Role: employee.RoleUser},
	)

	geofences := geofenceService.NewGeofenceService(memory.NewGeofenceRepository(), nil)
	_, err = geofences.Save(context.Background(), geofence.SaveGeofenceRequest{
		Department: "Engineering",
		Coordinates: []geo.Point{
			{Latitude: 12.90, Longitude: 77.50},
			{Latitude: 12.90, Longitude: 77.70},
			{Latitude: 13.10, Longitude: 77.70},
			{Latitude: 13.10, Longitude: 77.50},
		},
	})
	require.NoError(t, err)

	mailer, err := email.NewEmailService(config.SMTPConfig{})
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")
	handlers := Handlers{
		Attendance: NewAttendanceHandler(
			attendanceService.NewAttendanceService(attRepo, empRepo, geofences, policy, clk),
			attendanceService.NewSweepService(attRepo, empRepo, policy, clk),
		),
		Report:   NewReportHandler(reportService.NewReportService(attRepo, empRepo, policy, clk)),
		Geofence: NewGeofenceHandler(geofences),
		Signup: NewSignupHandler(signupService.NewSignupService(
			memory.NewTransactor(), empRepo, memory.NewDeclineLogRepository(), attRepo, mailer, policy, clk,
		)),
	}

	return &testServer{
		router: NewRouter(jwtService, handlers, RouterOptions{Env: "test", Version: "test"}),
		jwt:    jwtService,
		clock:  clk,
	}
}

func (s *testServer) token(t *testing.T, id int64, role employee.Role) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(auth.Claims{EmployeeID: id, Email: "user@example.com", Role: role})
	require.NoError(t, err)
	return token
}

type apiResponse struct {
	Status  string          `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var resp apiResponse
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestRouter_Heartbeat(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Authentication(t *testing.T) {
	srv := newTestServer(t)
	body := map[string]any{"employeeId": ashaID}

	rec, _ := srv.do(t, http.MethodPost, "/api/v1/get-today-attendance", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = srv.do(t, http.MethodPost, "/api/v1/get-today-attendance", "not-a-jwt", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other := jwt.NewJWTService("another-secret", "1h")
	forged, _, err := other.GenerateAccessToken(auth.Claims{EmployeeID: ashaID, Role: employee.RoleUser})
	require.NoError(t, err)
	rec, _ = srv.do(t, http.MethodPost, "/api/v1/get-today-attendance", forged, body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Authorization(t *testing.T) {
	srv := newTestServer(t)
	asha := srv.token(t, ashaID, employee.RoleUser)
	admin := srv.token(t, adminID, employee.RoleAdmin)

	rec, resp := srv.do(t, http.MethodPost, "/api/v1/get-today-attendance", asha, map[string]any{"employeeId": raviID})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)

	rec, resp = srv.do(t, http.MethodGet, "/api/v1/pending-requests", asha, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ADMIN_REQUIRED", resp.Error.Code)

	// Admins may act for any employee.
	rec, _ = srv.do(t, http.MethodPost, "/api/v1/get-today-attendance", admin, map[string]any{"employeeId": raviID})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_MarkAttendanceFlow(t *testing.T) {
	srv := newTestServer(t)
	asha := srv.token(t, ashaID, employee.RoleUser)
	at := map[string]any{"employeeId": ashaID, "latitude": 12.97, "longitude": 77.59}

	rec, resp := srv.do(t, http.MethodPost, "/api/v1/get-today-attendance", asha, map[string]any{"employeeId": ashaID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "No attendance marked today", resp.Message)
	assert.True(t, resp.Data == nil || string(resp.Data) == "null")

	rec, resp = srv.do(t, http.MethodPost, "/api/v1/mark-attendance", asha, at)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Check-in marked", resp.Message)

	rec, resp = srv.do(t, http.MethodPost, "/api/v1/mark-attendance", asha, map[string]any{
		"employeeId": ashaID, "latitude": 13.5, "longitude": 77.59,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "OUTSIDE_GEOFENCE", resp.Error.Code)

	srv.clock.Advance(6*time.Hour + 15*time.Minute)
	rec, resp = srv.do(t, http.MethodPost, "/api/v1/mark-attendance", asha, at)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Check-out marked as Present", resp.Message)

	rec, resp = srv.do(t, http.MethodPost, "/api/v1/mark-attendance", asha, at)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ALREADY_MARKED_TODAY", resp.Error.Code)

	rec, resp = srv.do(t, http.MethodPost, "/api/v1/get-today-attendance", asha, map[string]any{"employeeId": ashaID})
	require.Equal(t, http.StatusOK, rec.Code)
	var today struct {
		TotalHours *string `json:"totalHours"`
		Status     string  `json:"status"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &today))
	require.NotNil(t, today.TotalHours)
	assert.Equal(t, "6 hrs 15 mins", *today.TotalHours)
	assert.Equal(t, "Present", today.Status)
}

func TestRouter_ValidationError(t *testing.T) {
	srv := newTestServer(t)
	asha := srv.token(t, ashaID, employee.RoleUser)

	rec, resp := srv.do(t, http.MethodPost, "/api/v1/mark-attendance", asha, map[string]any{"employeeId": ashaID})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Details, "latitude")
	assert.Contains(t, resp.Error.Details, "longitude")
}

func TestRouter_AbsenceSweepAndExport(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.token(t, adminID, employee.RoleAdmin)

	rec, resp := srv.do(t, http.MethodPost, "/api/v1/run-absence-sweep", admin, map[string]any{"date": "2025-07-14"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result struct {
		MarkedAbsent int `json:"markedAbsent"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, 1, result.MarkedAbsent)

	rec, _ = srv.do(t, http.MethodGet, "/api/v1/monthly-stats/export?month=July&year=2025&department=Engineering", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, export.XLSXContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "monthly-stats-2025-07-engineering.xlsx")
	assert.NotZero(t, rec.Body.Len())

	rec, _ = srv.do(t, http.MethodGet, "/api/v1/monthly-stats/export?month=July&year=abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_SignupApproval(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.token(t, adminID, employee.RoleAdmin)

	rec, resp := srv.do(t, http.MethodGet, "/api/v1/pending-requests", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []employee.EmployeeResponse
	require.NoError(t, json.Unmarshal(resp.Data, &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, raviID, pending[0].EmployeeID)

	rec, _ = srv.do(t, http.MethodPost, "/api/v1/handle-request", admin, map[string]any{
		"employeeId": raviID, "action": "approve",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, resp = srv.do(t, http.MethodPost, "/api/v1/handle-request", admin, map[string]any{
		"employeeId": raviID, "action": "approve", "adminId": 999,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, resp = srv.do(t, http.MethodPost, "/api/v1/get-admin-stats", admin, map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var stats struct {
		ApprovalsHandled int64 `json:"approvalsHandled"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &stats))
	assert.Equal(t, int64(1), stats.ApprovalsHandled)
}

func TestRouter_Routes(t *testing.T) {
	srv := newTestServer(t)
	mux, ok := srv.router.(*chi.Mux)
	require.True(t, ok)

	routes := map[string]bool{}
	require.NoError(t, chi.Walk(mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes[method+" "+route] = true
		return nil
	}))

	for _, want := range []string{
		"POST /api/v1/mark-attendance",
		"POST /api/v1/get-attendance-by-status",
		"POST /api/v1/update-attendance-time",
		"POST /api/v1/monthly-stats",
		"GET /api/v1/monthly-stats/export",
		"POST /api/v1/save-geofence",
	} {
		assert.True(t, routes[want], want)
	}
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.token(t, adminID, employee.RoleAdmin)

	rec, resp := srv.do(t, http.MethodGet, "/api/v1/no-such-route", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)

	rec, resp = srv.do(t, http.MethodGet, "/api/v1/mark-attendance", admin, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "METHOD_NOT_ALLOWED", resp.Error.Code)
}
