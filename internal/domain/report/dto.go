package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// AllDepartments selects every department in monthly stats.
const AllDepartments = "All"

// ========================================
// MONTHLY STATS
// ========================================

type MonthlyStatsRequest struct {
	Month      string `json:"month"` // "July", "Jul", "7" or "07"
	Year       int    `json:"year"`
	Department string `json:"department"`

	parsedMonth time.Month
}

// Validate checks the request against now, which bounds the year to at most
// one ahead of the current one.
func (r *MonthlyStatsRequest) Validate(now time.Time) error {
	var errs validator.ValidationErrors

	month, err := validator.ParseMonth(r.Month)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be a month name or number",
		})
	}
	r.parsedMonth = month

	maxYear := now.Year() + 1
	if r.Year < 2000 || r.Year > maxYear {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2000 and %d", maxYear),
		})
	}

	r.Department = strings.TrimSpace(r.Department)
	if r.Department == "" {
		r.Department = AllDepartments
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsedMonth is only meaningful after Validate.
func (r *MonthlyStatsRequest) ParsedMonth() time.Month { return r.parsedMonth }

// DepartmentFilter returns the department to filter on, empty for all.
func (r *MonthlyStatsRequest) DepartmentFilter() string {
	if strings.EqualFold(r.Department, AllDepartments) {
		return ""
	}
	return r.Department
}

type MonthlyStats struct {
	Period      string          `json:"period"` // YYYY-MM
	Department  string          `json:"department"`
	GeneratedAt string          `json:"generatedAt"`
	PerEmployee []EmployeeStats `json:"employeeStats"`
	DailySeries []DailyPresence `json:"dailySeries"`
	Chart       Chart           `json:"chart"`
}

type EmployeeStats struct {
	EmployeeID    int64   `json:"employeeId"`
	Name          string  `json:"name"`
	Department    string  `json:"department"`
	ProfilePic    *string `json:"profilePic"`
	DaysPresent   int     `json:"daysPresent"`
	DaysAbsent    int     `json:"daysAbsent"`
	WorkedMinutes int     `json:"workedMinutes"`
	WorkedHours   Hours   `json:"workedHours"`
}

// Hours is a decimal hour count. It renders as a string with two places.
type Hours struct {
	decimal.Decimal
}

func (h Hours) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(h.StringFixed(2))), nil
}

// DailyPresence is one point of the per-day chart. A day is listed when any
// record exists for it, even if nobody was Present.
type DailyPresence struct {
	Day          int `json:"day"`
	PresentCount int `json:"presentCount"`
}

// Chart is the label/data pair the dashboard plots.
type Chart struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// ExportFile is a rendered report.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
