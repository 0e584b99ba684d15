package report

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/worktime"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	policy worktime.Policy
	clock  clock.Clock
}

var minutesPerHour = decimal.NewFromInt(60)

// MonthlyStats implements report.ReportService.
func (s *ReportServiceImpl) MonthlyStats(ctx context.Context, req report.MonthlyStatsRequest) (report.MonthlyStats, error) {
	if err := req.Validate(s.clock.Now().In(s.policy.Location)); err != nil {
		return report.MonthlyStats{}, err
	}
	month := int(req.ParsedMonth())

	var (
		employees []employee.Employee
		records   []attendance.Attendance
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Tracked employees of the department
	g.Go(func() error {
		list, err := s.EmployeeRepository.ListTracked(gCtx, req.DepartmentFilter())
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		employees = list
		return nil
	})

	// 2. Every record of the month, filtered to the employees below
	g.Go(func() error {
		list, err := s.AttendanceRepository.QueryByMonth(gCtx, req.Year, month, nil)
		if err != nil {
			return fmt.Errorf("failed to query month records: %w", err)
		}
		records = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return report.MonthlyStats{}, err
	}

	stats := aggregate(employees, records)
	stats.Period = fmt.Sprintf("%04d-%02d", req.Year, month)
	stats.Department = req.Department
	stats.GeneratedAt = s.clock.Now().In(s.policy.Location).Format(time.RFC3339)

	return stats, nil
}

// aggregate groups records by employee and by day of month. Records of
// employees outside the list are ignored.
func aggregate(employees []employee.Employee, records []attendance.Attendance) report.MonthlyStats {
	type tally struct {
		present, absent, minutes int
	}

	tallies := make(map[int64]*tally, len(employees))
	for _, e := range employees {
		tallies[e.ID] = &tally{}
	}

	perDay := make(map[int]int)
	for _, rec := range records {
		t, ok := tallies[rec.EmployeeID]
		if !ok {
			continue
		}

		day, err := strconv.Atoi(rec.Date[strings.LastIndex(rec.Date, "-")+1:])
		if err != nil {
			continue
		}
		if _, seen := perDay[day]; !seen {
			perDay[day] = 0
		}

		if rec.Status == attendance.StatusPresent {
			t.present++
			perDay[day]++
		} else {
			t.absent++
		}
		if rec.WorkedMinutes != nil {
			t.minutes += *rec.WorkedMinutes
		}
	}

	stats := report.MonthlyStats{
		PerEmployee: make([]report.EmployeeStats, 0, len(employees)),
		DailySeries: make([]report.DailyPresence, 0, len(perDay)),
		Chart:       report.Chart{Labels: []string{}, Data: []int{}},
	}

	for _, e := range employees {
		t := tallies[e.ID]
		stats.PerEmployee = append(stats.PerEmployee, report.EmployeeStats{
			EmployeeID:    e.ID,
			Name:          e.FullName(),
			Department:    e.Department,
			ProfilePic:    e.ProfilePic,
			DaysPresent:   t.present,
			DaysAbsent:    t.absent,
			WorkedMinutes: t.minutes,
			WorkedHours:   report.Hours{Decimal: decimal.NewFromInt(int64(t.minutes)).Div(minutesPerHour)},
		})
	}

	days := make([]int, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	slices.Sort(days)

	for _, day := range days {
		stats.DailySeries = append(stats.DailySeries, report.DailyPresence{Day: day, PresentCount: perDay[day]})
		stats.Chart.Labels = append(stats.Chart.Labels, fmt.Sprintf("%02d", day))
		stats.Chart.Data = append(stats.Chart.Data, perDay[day])
	}

	return stats
}

// ExportMonthlyStats implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthlyStats(ctx context.Context, req report.MonthlyStatsRequest) (report.ExportFile, error) {
	if err := req.Validate(s.clock.Now().In(s.policy.Location)); err != nil {
		return report.ExportFile{}, err
	}

	stats, err := s.MonthlyStats(ctx, req)
	if err != nil {
		return report.ExportFile{}, err
	}

	title := fmt.Sprintf("Monthly attendance %s %d (%s)", req.ParsedMonth(), req.Year, stats.Department)

	employeeRows := make([][]any, 0, len(stats.PerEmployee))
	for _, e := range stats.PerEmployee {
		employeeRows = append(employeeRows, []any{
			e.EmployeeID, e.Name, e.Department, e.DaysPresent, e.DaysAbsent, e.WorkedHours.Round(2).InexactFloat64(),
		})
	}

	dailyRows := make([][]any, 0, len(stats.DailySeries))
	for _, d := range stats.DailySeries {
		dailyRows = append(dailyRows, []any{
			d.Day, fmt.Sprintf("%s-%02d", stats.Period, d.Day), d.PresentCount,
		})
	}

	content, err := export.WriteXLSX([]export.Sheet{
		{
			Name:    "Employees",
			Title:   title,
			Headers: []string{"Employee ID", "Name", "Department", "Days Present", "Days Absent", "Worked Hours"},
			Rows:    employeeRows,
			Widths:  []float64{14, 28, 18, 14, 14, 14},
		},
		{
			Name:    "Daily",
			Title:   title,
			Headers: []string{"Day", "Date", "Present"},
			Rows:    dailyRows,
			Widths:  []float64{8, 14, 10},
		},
	})
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	department := strings.ReplaceAll(strings.ToLower(stats.Department), " ", "-")
	return report.ExportFile{
		Filename:    fmt.Sprintf("monthly-stats-%s-%s.xlsx", stats.Period, department),
		ContentType: export.XLSXContentType,
		Content:     content,
	}, nil
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	policy worktime.Policy,
	clk clock.Clock,
) report.ReportService {
	return &ReportServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		policy:               policy,
		clock:                clk,
	}
}
