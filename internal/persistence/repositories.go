package persistence

import "context"

// DayRepository stores one WorkDay per calendar date.
type DayRepository interface {
	GetDay(ctx context.Context, date string) (WorkDay, error)
	CreateDay(ctx context.Context, day WorkDay) error
	UpdateDay(ctx context.Context, day WorkDay) error
	// ListDays returns stored days with from <= date <= to, ordered by date.
	ListDays(ctx context.Context, from, to string) ([]WorkDay, error)
}

// SettingsRepository stores configuration as string key/value pairs.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (map[string]string, error)
	UpsertSettings(ctx context.Context, updates map[string]string) error
}

// RecurringHolidayRepository stores yearly recurring holidays.
type RecurringHolidayRepository interface {
	ListRecurring(ctx context.Context) ([]RecurringHoliday, error)
	// UpsertRecurring inserts the holiday or, when the (month, day) key
	// already exists, updates its label in place.
	UpsertRecurring(ctx context.Context, holiday RecurringHoliday) error
	DeleteRecurring(ctx context.Context, id string) error
}

// TimeOffRepository stores personal time-off ranges.
type TimeOffRepository interface {
	// ListTimeOff returns ranges ordered by start date. When both bounds
	// are provided only ranges overlapping [from, to] are returned.
	ListTimeOff(ctx context.Context, from, to *string) ([]TimeOff, error)
	CreateTimeOff(ctx context.Context, timeOff TimeOff) error
	DeleteTimeOff(ctx context.Context, id string) error
}
