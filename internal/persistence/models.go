package persistence

// WorkDay is the persisted record for one calendar date. A record is created
// implicitly on first use and never deleted; absent optional fields mean the
// day has not started, is still running, or carries no note.
type WorkDay struct {
	Date         string
	StartTime    *string
	EndTime      *string
	BreakMinutes int
	// BreakStart holds the HH:MM at which an open break began. A non-nil
	// value means the work clock is paused; it is only ever set while
	// EndTime is absent.
	BreakStart *string
	// NetMinutes is the finalized net once EndTime is set.
	NetMinutes *int
	Notes      *string
}

// RecurringHoliday is a month-day pattern treated as a holiday every year in
// which the date is calendar-valid. Unique by (month, day).
type RecurringHoliday struct {
	ID    string
	Month int
	Day   int
	Label *string
}

// TimeOff is an inclusive personal time-off date range.
type TimeOff struct {
	ID        string
	StartDate string
	EndDate   string
	Kind      string
	Label     *string
}
