package worktime

import (
	"fmt"
	"strings"
	"time"
)

// Policy describes the organization calendar: the timezone every date is
// computed in, the daily check-in window and the weekly off-day.
type Policy struct {
	Location     *time.Location
	StartHour    int // inclusive
	EndHour      int // exclusive
	OffDay       time.Weekday
	PresentAfter time.Duration
}

// DefaultPolicy returns the stock calendar: check-in between 08:00 and 20:00,
// Sunday off, 5 hours for Present.
func DefaultPolicy(loc *time.Location) Policy {
	if loc == nil {
		loc = time.UTC
	}
	return Policy{
		Location:     loc,
		StartHour:    8,
		EndHour:      20,
		OffDay:       time.Sunday,
		PresentAfter: 5 * time.Hour,
	}
}

// Validate checks the policy is usable.
func (p Policy) Validate() error {
	if p.Location == nil {
		return fmt.Errorf("worktime: location is required")
	}
	if p.StartHour < 0 || p.StartHour > 23 {
		return fmt.Errorf("worktime: start hour %d out of range", p.StartHour)
	}
	if p.EndHour < 1 || p.EndHour > 24 || p.EndHour <= p.StartHour {
		return fmt.Errorf("worktime: end hour %d must be after start hour %d", p.EndHour, p.StartHour)
	}
	if p.OffDay < time.Sunday || p.OffDay > time.Saturday {
		return fmt.Errorf("worktime: invalid off day %d", p.OffDay)
	}
	if p.PresentAfter <= 0 {
		return fmt.Errorf("worktime: present threshold must be positive")
	}
	return nil
}

// Local converts t into the organization timezone.
func (p Policy) Local(t time.Time) time.Time {
	return t.In(p.Location)
}

// IsWithinCheckInWindow reports whether the local hour of now is inside
// [StartHour, EndHour).
func (p Policy) IsWithinCheckInWindow(now time.Time) bool {
	hour := p.Local(now).Hour()
	return hour >= p.StartHour && hour < p.EndHour
}

// IsNonWorkingDay reports whether now falls on the weekly off-day.
func (p Policy) IsNonWorkingDay(now time.Time) bool {
	return p.Local(now).Weekday() == p.OffDay
}

// Date returns the organizational calendar date of t as YYYY-MM-DD.
func (p Policy) Date(t time.Time) string {
	return p.Local(t).Format(DateLayout)
}

// WindowEnd returns the instant the check-in window closes on the given date.
func (p Policy) WindowEnd(date string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, p.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("worktime: invalid date %q: %w", date, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), p.EndHour, 0, 0, 0, p.Location), nil
}

// ParseWeekday accepts English weekday names ("Sunday", "sun") case-insensitively.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("worktime: unknown weekday %q", s)
}
