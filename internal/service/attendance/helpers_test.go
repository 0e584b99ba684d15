package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/worktime"
	"github.com/cmlabs-hris/inzone-backend-go/internal/repository/memory"
	geofenceService "github.com/cmlabs-hris/inzone-backend-go/internal/service/geofence"
	"github.com/stretchr/testify/require"
)

var (
	officePolygon = []geo.Point{
		{Latitude: 12.90, Longitude: 77.50},
		{Latitude: 12.90, Longitude: 77.70},
		{Latitude: 13.10, Longitude: 77.70},
		{Latitude: 13.10, Longitude: 77.50},
	}
	atOffice   = geo.Point{Latitude: 12.97, Longitude: 77.59}
	awayOffice = geo.Point{Latitude: 13.50, Longitude: 77.59}
)

const (
	asha  int64 = 1
	ravi  int64 = 2
	meera int64 = 3
)

type fixture struct {
	policy      worktime.Policy
	clock       *clock.Fixed
	attRepo     attendance.AttendanceRepository
	empRepo     employee.EmployeeRepository
	geoRepo     geofence.GeofenceRepository
	service     attendance.AttendanceService
	sweeper     attendance.SweepService
	geofenceSvc geofence.GeofenceService
}

func newFixture(t *testing.T, employees ...employee.Employee) *fixture {
	t.Helper()
	return newFixtureWithFallback(t, nil, employees...)
}

func newFixtureWithFallback(t *testing.T, fallback []geo.Point, employees ...employee.Employee) *fixture {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	policy := worktime.DefaultPolicy(loc)

	if len(employees) == 0 {
		employees = defaultEmployees()
	}

	f := &fixture{
		policy:  policy,
		clock:   clock.NewFixed(time.Date(2025, 7, 14, 9, 0, 0, 0, loc)),
		attRepo: memory.NewAttendanceRepository(),
		empRepo: memory.NewEmployeeRepository(employees...),
		geoRepo: memory.NewGeofenceRepository(),
	}
	f.geofenceSvc = geofenceService.NewGeofenceService(f.geoRepo, fallback)
	f.service = NewAttendanceService(f.attRepo, f.empRepo, f.geofenceSvc, policy, f.clock)
	f.sweeper = NewSweepService(f.attRepo, f.empRepo, policy, f.clock)
	return f
}

func defaultEmployees() []employee.Employee {
	return []employee.Employee{
		{ID: asha, FirstName: "Asha", LastName: "Rao", Department: "Engineering", Role: employee.RoleUser, Approved: true},
		{ID: ravi, FirstName: "Ravi", LastName: "Kumar", Department: "Engineering", Role: employee.RoleUser, Approved: true},
		{ID: meera, FirstName: "Meera", Department: "Sales", Role: employee.RoleUser, Approved: true},
	}
}

// at returns the local instant on date at hh:mm.
func (f *fixture) at(t *testing.T, date string, hour, minute int) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(worktime.DateLayout, date, f.policy.Location)
	require.NoError(t, err)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, f.policy.Location)
}

func (f *fixture) saveOffice(t *testing.T, department string) {
	t.Helper()
	_, err := f.geofenceSvc.Save(context.Background(), geofence.SaveGeofenceRequest{
		Department:  department,
		Color:       "#3388ff",
		Coordinates: officePolygon,
	})
	require.NoError(t, err)
}

func ptr[T any](v T) *T { return &v }

type attendanceTestPoint struct{ lat, lng float64 }

func toPoints(in []attendanceTestPoint) []geo.Point {
	out := make([]geo.Point, 0, len(in))
	for _, p := range in {
		out = append(out, geo.Point{Latitude: p.lat, Longitude: p.lng})
	}
	return out
}
