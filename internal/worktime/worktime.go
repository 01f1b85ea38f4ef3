package worktime

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
	// ClockLayout is the wire format for wall-clock times of day.
	ClockLayout = "15:04"
)

// ErrEndBeforeStart indicates an explicit end time earlier than the start
// time on the same day. Shifts crossing midnight are not supported.
var ErrEndBeforeStart = errors.New("worktime: end time before start time")

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", value)
	}
	return d, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// ParseClock validates a HH:MM 24-hour time of day and returns the minutes
// elapsed since midnight.
func ParseClock(value string) (int, error) {
	t, err := time.Parse(ClockLayout, value)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: use HH:MM (24h)", value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders a time of day as HH:MM.
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// FormatMinutes renders a minute quantity as "6h 30m", "8h" or "45m".
func FormatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// WeekBounds returns the Monday and Friday of the business week containing
// the reference date, truncated to midnight in the reference location.
func WeekBounds(ref time.Time) (time.Time, time.Time) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	// Monday == 1 in Go, Sunday == 0.
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 4)
}

// ComputeNet derives live net worked minutes for a day that is still running.
//
// startTime is interpreted as a time of day on the same calendar date as now.
// When breakStart is set a break is open and the work clock is paused at the
// break's start. The result is clamped to zero and the call is pure; callers
// may re-invoke it at any cadence.
func ComputeNet(startTime string, breakMinutes int, breakStart *string, now time.Time) int {
	if startTime == "" {
		return 0
	}
	startMin, err := ParseClock(startTime)
	if err != nil {
		return 0
	}

	nowMin := now.Hour()*60 + now.Minute()
	if breakStart != nil && *breakStart != "" {
		if pausedAt, err := ParseClock(*breakStart); err == nil && pausedAt < nowMin {
			nowMin = pausedAt
		}
	}

	gross := nowMin - startMin
	if gross < 0 {
		gross = 0
	}
	net := gross - breakMinutes
	if net < 0 {
		net = 0
	}
	return net
}

// NetForInterval computes the finalized net minutes between an explicit start
// and end time of day. It returns ErrEndBeforeStart when the interval would
// be negative rather than silently clamping it.
func NetForInterval(startTime, endTime string, breakMinutes int) (int, error) {
	startMin, err := ParseClock(startTime)
	if err != nil {
		return 0, err
	}
	endMin, err := ParseClock(endTime)
	if err != nil {
		return 0, err
	}
	if endMin < startMin {
		return 0, ErrEndBeforeStart
	}
	net := endMin - startMin - breakMinutes
	if net < 0 {
		net = 0
	}
	return net, nil
}

// PacePerDay distributes the remaining minutes over the remaining weekdays,
// rounding up. The second return value is false when no weekdays remain.
func PacePerDay(remainingMinutes, remainingWeekdays int) (int, bool) {
	if remainingWeekdays <= 0 {
		return 0, false
	}
	if remainingMinutes <= 0 {
		return 0, true
	}
	return (remainingMinutes + remainingWeekdays - 1) / remainingWeekdays, true
}
