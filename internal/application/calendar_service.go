package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/marceloc10uy/TimeTracker/internal/persistence"
	"github.com/marceloc10uy/TimeTracker/internal/worktime"
)

const (
	minCalendarYear = 1900
	maxCalendarYear = 2100
)

// CalendarService produces the read-only per-year worked-hours aggregate.
type CalendarService struct {
	days     persistence.DayRepository
	settings persistence.SettingsRepository
	holidays persistence.RecurringHolidayRepository
	timeOff  persistence.TimeOffRepository
	now      func() time.Time
	logger   *slog.Logger
}

// NewCalendarService wires dependencies for the year calendar view.
func NewCalendarService(
	days persistence.DayRepository,
	settings persistence.SettingsRepository,
	holidays persistence.RecurringHolidayRepository,
	timeOff persistence.TimeOffRepository,
	now func() time.Time,
	logger *slog.Logger,
) *CalendarService {
	if now == nil {
		now = time.Now
	}
	return &CalendarService{
		days:     days,
		settings: settings,
		holidays: holidays,
		timeOff:  timeOff,
		now:      now,
		logger:   defaultLogger(logger),
	}
}

// Year builds the calendar aggregate for one year: every date with its net
// minutes and off-day status.
func (s *CalendarService) Year(ctx context.Context, year int) (YearView, error) {
	if s == nil || s.days == nil {
		return YearView{}, fmt.Errorf("day repository not configured")
	}
	if year < minCalendarYear || year > maxCalendarYear {
		return YearView{}, fieldError("year", fmt.Sprintf("must be between %d and %d", minCalendarYear, maxCalendarYear))
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local)
	from := worktime.FormatDate(start)
	to := worktime.FormatDate(end)

	targets, err := loadTargets(ctx, s.settings)
	if err != nil {
		return YearView{}, err
	}

	offByDate, err := resolveOffDays(ctx, s.holidays, s.timeOff, start, end)
	if err != nil {
		return YearView{}, err
	}

	stored, err := s.days.ListDays(ctx, from, to)
	if err != nil {
		return YearView{}, mapRepoError(err)
	}
	dayByDate := make(map[string]persistence.WorkDay, len(stored))
	for _, day := range stored {
		dayByDate[day.Date] = day
	}

	now := s.now()
	view := YearView{Year: year, StartDate: from, EndDate: to}
	view.Days = make([]YearDay, 0, 366)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := worktime.FormatDate(d)
		entry := YearDay{Date: date}

		if day, ok := dayByDate[date]; ok {
			summary, err := summarizeDay(day, targets, now)
			if err != nil {
				return YearView{}, err
			}
			entry.NetMinutes = summary.NetMinutes
		}
		if off, ok := offByDate[date]; ok {
			entry.IsOff = true
			entry.Off = off
		}

		view.Days = append(view.Days, entry)
	}

	return view, nil
}
