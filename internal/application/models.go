package application

import "github.com/marceloc10uy/TimeTracker/internal/worktime"

// Settings is the persisted configuration with derived weekly targets.
type Settings struct {
	DailySoftMinutes int
	DailyHardMinutes int
	WorkdaysPerWeek  int

	// Weekly values are derived as daily x workdays per week.
	WeeklySoftMinutes int
	WeeklyHardMinutes int
}

// SettingsPatch carries partial settings updates. Nil fields are left
// unchanged.
type SettingsPatch struct {
	DailySoftMinutes *int
	DailyHardMinutes *int
	WorkdaysPerWeek  *int
}

// Targets bundles the minute thresholds services compute progress against.
type Targets struct {
	DailySoft       int
	DailyHard       int
	WorkdaysPerWeek int
}

// DaySummary is the computed view of one work day, live or finalized.
type DaySummary struct {
	Date         string
	StartTime    *string
	EndTime      *string
	BreakMinutes int
	BreakRunning bool
	BreakStart   *string
	Notes        *string

	Running      bool
	GrossMinutes int
	NetMinutes   int

	DailySoft int
	DailyHard int
	Status    worktime.Progress
}

// DayPatch carries manual day edits. Nil fields are left unchanged; an empty
// StartTime or EndTime clears the stored value.
type DayPatch struct {
	StartTime    *string
	EndTime      *string
	BreakMinutes *int
	Notes        *string
}

// OffInfo describes why a date counts as off and which record produced it.
type OffInfo struct {
	Source string
	Kind   string
	Label  *string

	RecordID string
	// RangeStart and RangeEnd are set for personal time-off matches.
	RangeStart string
	RangeEnd   string
}

// DayOff carries every off-day match for a date. Both sources can cover the
// same day; callers decide how to render the overlap.
type DayOff struct {
	Recurring *OffInfo
	Personal  *OffInfo
}

// IsOff reports whether any source marks the day off.
func (d DayOff) IsOff() bool {
	return d.Recurring != nil || d.Personal != nil
}

// IsBoth reports whether a recurring holiday and a personal range overlap.
func (d DayOff) IsBoth() bool {
	return d.Recurring != nil && d.Personal != nil
}

// DayRow is one weekday row in a week view.
type DayRow struct {
	DaySummary
	IsOff bool
	Off   *DayOff
}

// WeekStatus summarizes weekly target progress and pacing. Pace fields are
// nil when no working weekdays remain in the window.
type WeekStatus struct {
	RemainingWorkdays int
	SoftRemaining     int
	HardRemaining     int
	PaceSoftPerDay    *int
	PaceHardPerDay    *int
}

// WeekView is the Monday to Friday aggregate around a reference date.
type WeekView struct {
	WeekStart string
	WeekEnd   string

	WorkingDays    int
	WeekNetMinutes int
	WeeklySoft     int
	WeeklyHard     int

	Days   []DayRow
	Status WeekStatus
}

// YearDay is one date in the year calendar aggregate.
type YearDay struct {
	Date       string
	NetMinutes int
	IsOff      bool
	Off        *DayOff
}

// YearView is the read-only calendar aggregate for one year.
type YearView struct {
	Year      int
	StartDate string
	EndDate   string
	Days      []YearDay
}

// RecurringHolidayView is the caller-facing shape of a recurring holiday.
type RecurringHolidayView struct {
	ID    string
	Month int
	Day   int
	Label *string
}

// TimeOffView is the caller-facing shape of a time-off range.
type TimeOffView struct {
	ID        string
	StartDate string
	EndDate   string
	Kind      string
	Label     *string
}

// ReconcileResult reports the mutations applied by a reconciliation submit.
type ReconcileResult struct {
	Deleted int
	Created int
}
