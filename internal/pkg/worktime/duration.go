package worktime

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"

	// ClockLayout is how time-of-day values are stored and displayed, e.g. "09:00:00 AM".
	ClockLayout = "03:04:05 PM"

	// DefaultThresholdMinutes is the minimum worked minutes for a Present day.
	DefaultThresholdMinutes = 300
)

var ErrInvalidTimeRange = errors.New("check-out time is before check-in time")

// clockLayouts are accepted when parsing a time of day.
var clockLayouts = []string{
	ClockLayout,
	"3:04:05 PM",
	"03:04 PM",
	"3:04 PM",
	"15:04:05",
	"15:04",
}

// Status is the daily attendance outcome.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// ParseStatus parses a status case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "present":
		return StatusPresent, nil
	case "absent":
		return StatusAbsent, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Duration is a worked span truncated to whole minutes.
type Duration struct {
	Minutes int
}

func (d Duration) Hours() int { return d.Minutes / 60 }

// Remainder returns the minutes past the last whole hour.
func (d Duration) Remainder() int { return d.Minutes % 60 }

// String renders the duration as "<H> hrs <M> mins".
func (d Duration) String() string {
	return fmt.Sprintf("%d hrs %d mins", d.Hours(), d.Remainder())
}

// ComputeDuration returns the time worked between checkIn and checkOut. A
// checkOut earlier than checkIn is taken to be on the following day. The result
// is floored to whole minutes.
func ComputeDuration(checkIn, checkOut time.Time) (Duration, error) {
	if checkOut.Before(checkIn) {
		checkOut = checkOut.Add(24 * time.Hour)
	}
	elapsed := checkOut.Sub(checkIn)
	if elapsed < 0 {
		return Duration{}, ErrInvalidTimeRange
	}
	return Duration{Minutes: int(elapsed / time.Minute)}, nil
}

// Classify returns Present when minutes reaches thresholdMinutes.
func Classify(minutes, thresholdMinutes int) Status {
	if minutes >= thresholdMinutes {
		return StatusPresent
	}
	return StatusAbsent
}

// Classify uses the policy's Present threshold.
func (p Policy) Classify(d Duration) Status {
	return Classify(d.Minutes, p.ThresholdMinutes())
}

// ThresholdMinutes returns the Present threshold in whole minutes.
func (p Policy) ThresholdMinutes() int {
	return int(p.PresentAfter / time.Minute)
}

// FormatClock renders the local time of day of t.
func (p Policy) FormatClock(t time.Time) string {
	return p.Local(t).Format(ClockLayout)
}

// ParseClock parses a time of day such as "09:00:00 AM", "1:30:00 PM" or "13:30".
func ParseClock(s string) (time.Time, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time of day %q", s)
}

// Combine joins a YYYY-MM-DD date and a time of day into an instant in the
// policy timezone.
func (p Policy) Combine(date, clock string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, p.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	c, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), c.Second(), 0, p.Location), nil
}
