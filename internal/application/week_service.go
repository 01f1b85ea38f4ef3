package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/marceloc10uy/TimeTracker/internal/persistence"
	"github.com/marceloc10uy/TimeTracker/internal/worktime"
)

// WeekService aggregates per-day results over a Monday to Friday window.
type WeekService struct {
	days     persistence.DayRepository
	settings persistence.SettingsRepository
	holidays persistence.RecurringHolidayRepository
	timeOff  persistence.TimeOffRepository
	now      func() time.Time
	logger   *slog.Logger
}

// NewWeekService wires dependencies for week aggregation.
func NewWeekService(
	days persistence.DayRepository,
	settings persistence.SettingsRepository,
	holidays persistence.RecurringHolidayRepository,
	timeOff persistence.TimeOffRepository,
	now func() time.Time,
	logger *slog.Logger,
) *WeekService {
	if now == nil {
		now = time.Now
	}
	return &WeekService{
		days:     days,
		settings: settings,
		holidays: holidays,
		timeOff:  timeOff,
		now:      now,
		logger:   defaultLogger(logger),
	}
}

// BuildWeek computes the week view containing the reference date.
//
// Every weekday Monday through Friday gets a row whether or not a record is
// stored. Off days still contribute any logged net minutes to the week total
// but are excluded from working_days and from the pacing denominator. Weekly
// targets scale with working_days.
func (s *WeekService) BuildWeek(ctx context.Context, referenceDate string) (WeekView, error) {
	if s == nil || s.days == nil {
		return WeekView{}, fmt.Errorf("day repository not configured")
	}
	ref, err := worktime.ParseDate(referenceDate)
	if err != nil {
		return WeekView{}, fieldError("date", err.Error())
	}

	monday, friday := worktime.WeekBounds(ref)
	from := worktime.FormatDate(monday)
	to := worktime.FormatDate(friday)

	targets, err := loadTargets(ctx, s.settings)
	if err != nil {
		return WeekView{}, err
	}

	offByDate, err := resolveOffDays(ctx, s.holidays, s.timeOff, monday, friday)
	if err != nil {
		return WeekView{}, err
	}

	stored, err := s.days.ListDays(ctx, from, to)
	if err != nil {
		return WeekView{}, mapRepoError(err)
	}
	dayByDate := make(map[string]persistence.WorkDay, len(stored))
	for _, day := range stored {
		dayByDate[day.Date] = day
	}

	now := s.now()
	view := WeekView{WeekStart: from, WeekEnd: to}

	for d := monday; !d.After(friday); d = d.AddDate(0, 0, 1) {
		date := worktime.FormatDate(d)
		day, ok := dayByDate[date]
		if !ok {
			day = persistence.WorkDay{Date: date}
		}

		summary, err := summarizeDay(day, targets, now)
		if err != nil {
			return WeekView{}, err
		}

		row := DayRow{DaySummary: summary}
		if off, found := offByDate[date]; found {
			row.IsOff = true
			row.Off = off
		} else {
			view.WorkingDays++
		}
		view.WeekNetMinutes += summary.NetMinutes
		view.Days = append(view.Days, row)
	}

	view.WeeklySoft = targets.DailySoft * view.WorkingDays
	view.WeeklyHard = targets.DailyHard * view.WorkingDays

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	remaining := 0
	for d := monday; !d.After(friday); d = d.AddDate(0, 0, 1) {
		if d.Before(today) {
			continue
		}
		if _, off := offByDate[worktime.FormatDate(d)]; !off {
			remaining++
		}
	}

	status := WeekStatus{RemainingWorkdays: remaining}
	status.SoftRemaining = clampRemaining(view.WeeklySoft - view.WeekNetMinutes)
	status.HardRemaining = clampRemaining(view.WeeklyHard - view.WeekNetMinutes)
	if pace, ok := worktime.PacePerDay(status.SoftRemaining, remaining); ok {
		status.PaceSoftPerDay = &pace
	}
	if pace, ok := worktime.PacePerDay(status.HardRemaining, remaining); ok {
		status.PaceHardPerDay = &pace
	}
	view.Status = status

	return view, nil
}

// resolveOffDays builds a date to off-day map for an inclusive window, with
// recurring holiday and personal time-off matches kept distinct.
func resolveOffDays(
	ctx context.Context,
	holidays persistence.RecurringHolidayRepository,
	timeOff persistence.TimeOffRepository,
	from, to time.Time,
) (map[string]*DayOff, error) {
	out := make(map[string]*DayOff)

	recurring, err := holidays.ListRecurring(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	recurringByKey := make(map[[2]int]persistence.RecurringHoliday, len(recurring))
	for _, h := range recurring {
		recurringByKey[[2]int{h.Month, h.Day}] = h
	}

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if h, ok := recurringByKey[[2]int{int(d.Month()), d.Day()}]; ok {
			date := worktime.FormatDate(d)
			out[date] = &DayOff{Recurring: &OffInfo{
				Source:   "recurring",
				Kind:     "holiday",
				Label:    h.Label,
				RecordID: h.ID,
			}}
		}
	}

	fromStr := worktime.FormatDate(from)
	toStr := worktime.FormatDate(to)
	ranges, err := timeOff.ListTimeOff(ctx, &fromStr, &toStr)
	if err != nil {
		return nil, mapRepoError(err)
	}

	for _, rng := range ranges {
		start, err := worktime.ParseDate(rng.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := worktime.ParseDate(rng.EndDate)
		if err != nil {
			return nil, err
		}
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}

		info := &OffInfo{
			Source:     "personal",
			Kind:       rng.Kind,
			Label:      rng.Label,
			RecordID:   rng.ID,
			RangeStart: rng.StartDate,
			RangeEnd:   rng.EndDate,
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			date := worktime.FormatDate(d)
			if existing, ok := out[date]; ok {
				existing.Personal = info
			} else {
				out[date] = &DayOff{Personal: info}
			}
		}
	}

	return out, nil
}

func clampRemaining(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
