package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/marceloc10uy/TimeTracker/internal/persistence"
	"github.com/marceloc10uy/TimeTracker/internal/worktime"
)

// DayService orchestrates the lifecycle of a single work day: starting,
// ending, break accounting and manual edits. Every operation returns a fresh
// DaySummary so callers always render consistent state.
type DayService struct {
	days     persistence.DayRepository
	settings persistence.SettingsRepository
	now      func() time.Time
	logger   *slog.Logger
}

// NewDayService wires dependencies for day operations.
func NewDayService(days persistence.DayRepository, settings persistence.SettingsRepository, now func() time.Time, logger *slog.Logger) *DayService {
	if now == nil {
		now = time.Now
	}
	return &DayService{
		days:     days,
		settings: settings,
		now:      now,
		logger:   defaultLogger(logger),
	}
}

// GetDay returns the summary for a date, creating the record on first read.
func (s *DayService) GetDay(ctx context.Context, date string) (DaySummary, error) {
	day, targets, err := s.load(ctx, date)
	if err != nil {
		return DaySummary{}, err
	}
	return summarizeDay(day, targets, s.now())
}

// StartNow stamps the current wall-clock time as the day's start. A day that
// already has a start time is returned unchanged.
func (s *DayService) StartNow(ctx context.Context, date string) (DaySummary, error) {
	day, targets, err := s.load(ctx, date)
	if err != nil {
		return DaySummary{}, err
	}
	if day.StartTime != nil {
		return summarizeDay(day, targets, s.now())
	}

	start := worktime.FormatClock(s.now())
	day.StartTime = &start
	return s.store(ctx, day, targets, "start_now")
}

// StartAt sets an explicit start time, reopening the day: any stored end time
// and finalized net are cleared.
func (s *DayService) StartAt(ctx context.Context, date, startTime string) (DaySummary, error) {
	if _, err := worktime.ParseClock(startTime); err != nil {
		return DaySummary{}, fieldError("start_time", err.Error())
	}

	day, targets, err := s.load(ctx, date)
	if err != nil {
		return DaySummary{}, err
	}

	day.StartTime = &startTime
	day.EndTime = nil
	day.NetMinutes = nil
	return s.store(ctx, day, targets, "start_at")
}

// EndNow finalizes the day at the current wall-clock time. An open break is
// closed at the end time before the net is computed and stored.
func (s *DayService) EndNow(ctx context.Context, date string) (DaySummary, error) {
	return s.end(ctx, date, worktime.FormatClock(s.now()), "end_now")
}

// EndAt finalizes the day at an explicit end time.
func (s *DayService) EndAt(ctx context.Context, date, endTime string) (DaySummary, error) {
	if _, err := worktime.ParseClock(endTime); err != nil {
		return DaySummary{}, fieldError("end_time", err.Error())
	}
	return s.end(ctx, date, endTime, "end_at")
}

func (s *DayService) end(ctx context.Context, date, endTime, operation string) (DaySummary, error) {
	day, targets, err := s.load(ctx, date)
	if err != nil {
		return DaySummary{}, err
	}
	if day.StartTime == nil {
		return DaySummary{}, fieldError("start_time", "day has not been started")
	}

	closeOpenBreak(&day, endTime)

	net, err := worktime.NetForInterval(*day.StartTime, endTime, day.BreakMinutes)
	if err != nil {
		if errors.Is(err, worktime.ErrEndBeforeStart) {
			return DaySummary{}, fieldError("end_time", "end time cannot be earlier than the start time")
		}
		return DaySummary{}, fieldError("end_time", err.Error())
	}

	day.EndTime = &endTime
	day.NetMinutes = &net
	return s.store(ctx, day, targets, operation)
}

// ClearEnd reopens a finalized day by removing its end time and stored net.
func (s *DayService) ClearEnd(ctx context.Context, date string) (DaySummary, error) {
	day, targets, err := s.load(ctx, date)
	if err != nil {
		return DaySummary{}, err
	}

	day.EndTime = nil
	day.NetMinutes = nil
	return s.store(ctx, day, targets, "clear_end")
}

// AddBreak adds minutes to the day's cumulative break total.
func (s *DayService) AddBreak(ctx context.Context, date string, minutes int) (DaySummary, error) {
	return s.adjustBreak(ctx, date, minutes, +1, "break_add")
}

// SubtractBreak removes minutes from the break total, clamped at zero.
func (s *DayService) SubtractBreak(ctx context.Context, date string, minutes int) (DaySummary, error) {
	return s.adjustBreak(ctx, date, minutes, -1, "break_subtract")
}

func (s *DayService) adjustBreak(ctx context.Context, date string, minutes, sign int, operation string) (DaySummary, error) {
	if minutes <= 0 {
		return DaySummary{}, fieldError("minutes", "must be a positive number of minutes")
	}
	delta := minutes * sign

	day, targets, err := s.load(ctx, date)
	if err != nil {
		return DaySummary{}, err
	}

	day.BreakMinutes += delta
	if day.BreakMinutes < 0 {
		day.BreakMinutes = 0
	}
	if day.EndTime != nil && day.StartTime != nil {
		net, err := worktime.NetForInterval(*day.StartTime, *day.EndTime, day.BreakMinutes)
		if err == nil {
			day.NetMinutes = &net
		}
	}
	return s.store(ctx, day, targets, operation)
}

// StartBreak opens a break, pausing the work clock at the current time.
func (s *DayService) StartBreak(ctx context.Context, date string) (DaySummary, error) {
	day, targets, err := s.load(ctx, date)
	if err != nil {
		return DaySummary{}, err
	}
	if day.StartTime == nil {
		return DaySummary{}, fieldError("start_time", "day has not been started")
	}
	if day.EndTime != nil {
		return DaySummary{}, fieldError("end_time", "day is already finalized")
	}
	if day.BreakStart != nil {
		return DaySummary{}, fieldError("break_start", "a break is already running")
	}

	start := worktime.FormatClock(s.now())
	day.BreakStart = &start
	return s.store(ctx, day, targets, "break_start")
}

// EndBreak closes the open break, adding its elapsed minutes to the total.
func (s *DayService) EndBreak(ctx context.Context, date string) (DaySummary, error) {
	day, targets, err := s.load(ctx, date)
	if err != nil {
		return DaySummary{}, err
	}
	if day.BreakStart == nil {
		return DaySummary{}, fieldError("break_start", "no break is running")
	}

	closeOpenBreak(&day, worktime.FormatClock(s.now()))
	return s.store(ctx, day, targets, "break_end")
}

// Patch applies manual field edits. Empty start or end strings clear the
// stored value; the finalized net is recomputed or cleared accordingly.
func (s *DayService) Patch(ctx context.Context, date string, patch DayPatch) (DaySummary, error) {
	vErr := &ValidationError{}
	if patch.StartTime != nil && *patch.StartTime != "" {
		if _, err := worktime.ParseClock(*patch.StartTime); err != nil {
			vErr.add("start_time", err.Error())
		}
	}
	if patch.EndTime != nil && *patch.EndTime != "" {
		if _, err := worktime.ParseClock(*patch.EndTime); err != nil {
			vErr.add("end_time", err.Error())
		}
	}
	if patch.BreakMinutes != nil && *patch.BreakMinutes < 0 {
		vErr.add("break_minutes", "must not be negative")
	}
	if vErr.HasErrors() {
		return DaySummary{}, vErr
	}

	day, targets, err := s.load(ctx, date)
	if err != nil {
		return DaySummary{}, err
	}

	if patch.StartTime != nil {
		day.StartTime = clearable(*patch.StartTime)
	}
	if patch.EndTime != nil {
		day.EndTime = clearable(*patch.EndTime)
	}
	if patch.BreakMinutes != nil {
		day.BreakMinutes = *patch.BreakMinutes
	}
	if patch.Notes != nil {
		day.Notes = clearable(*patch.Notes)
	}

	// Manual edits override an open break rather than accumulating it.
	if day.EndTime != nil {
		day.BreakStart = nil
	}

	day.NetMinutes = nil
	if day.StartTime != nil && day.EndTime != nil {
		net, err := worktime.NetForInterval(*day.StartTime, *day.EndTime, day.BreakMinutes)
		if err != nil {
			if errors.Is(err, worktime.ErrEndBeforeStart) {
				return DaySummary{}, fieldError("end_time", "end time cannot be earlier than the start time")
			}
			return DaySummary{}, fieldError("end_time", err.Error())
		}
		day.NetMinutes = &net
	}

	return s.store(ctx, day, targets, "patch")
}

// load validates the date, reads or creates its record and loads targets.
func (s *DayService) load(ctx context.Context, date string) (persistence.WorkDay, Targets, error) {
	if s == nil || s.days == nil {
		return persistence.WorkDay{}, Targets{}, fmt.Errorf("day repository not configured")
	}
	if _, err := worktime.ParseDate(date); err != nil {
		return persistence.WorkDay{}, Targets{}, fieldError("date", err.Error())
	}

	targets, err := loadTargets(ctx, s.settings)
	if err != nil {
		return persistence.WorkDay{}, Targets{}, err
	}

	day, err := s.days.GetDay(ctx, date)
	if err == nil {
		return day, targets, nil
	}
	if !errors.Is(err, persistence.ErrNotFound) {
		return persistence.WorkDay{}, Targets{}, mapRepoError(err)
	}

	day = persistence.WorkDay{Date: date}
	if err := s.days.CreateDay(ctx, day); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			existing, getErr := s.days.GetDay(ctx, date)
			if getErr == nil {
				return existing, targets, nil
			}
			return persistence.WorkDay{}, Targets{}, mapRepoError(getErr)
		}
		return persistence.WorkDay{}, Targets{}, mapRepoError(err)
	}
	return day, targets, nil
}

func (s *DayService) store(ctx context.Context, day persistence.WorkDay, targets Targets, operation string) (DaySummary, error) {
	log := serviceLogger(ctx, s.logger, "day", operation, "date", day.Date)
	if err := s.days.UpdateDay(ctx, day); err != nil {
		log.Error("day update failed", "error", err, "error_kind", ErrorKind(err))
		return DaySummary{}, mapRepoError(err)
	}
	log.Info("day updated")
	return summarizeDay(day, targets, s.now())
}

// closeOpenBreak folds an open break into the cumulative total, using at as
// the break's end. Negative elapsed time is discarded.
func closeOpenBreak(day *persistence.WorkDay, at string) {
	if day.BreakStart == nil {
		return
	}
	startMin, err := worktime.ParseClock(*day.BreakStart)
	if err == nil {
		endMin, err := worktime.ParseClock(at)
		if err == nil && endMin > startMin {
			day.BreakMinutes += endMin - startMin
		}
	}
	day.BreakStart = nil
}

// summarizeDay derives the live or finalized view of one day record.
func summarizeDay(day persistence.WorkDay, targets Targets, now time.Time) (DaySummary, error) {
	summary := DaySummary{
		Date:         day.Date,
		StartTime:    day.StartTime,
		EndTime:      day.EndTime,
		BreakMinutes: day.BreakMinutes,
		BreakRunning: day.BreakStart != nil,
		BreakStart:   day.BreakStart,
		Notes:        day.Notes,
		DailySoft:    targets.DailySoft,
		DailyHard:    targets.DailyHard,
	}

	switch {
	case day.StartTime == nil:
		// Not started: everything stays at zero.
	case day.EndTime != nil:
		gross, err := worktime.NetForInterval(*day.StartTime, *day.EndTime, 0)
		if err != nil {
			if errors.Is(err, worktime.ErrEndBeforeStart) {
				return DaySummary{}, fieldError("end_time", fmt.Sprintf("end time earlier than start time on %s", day.Date))
			}
			return DaySummary{}, fieldError("end_time", err.Error())
		}
		summary.GrossMinutes = gross
		if day.NetMinutes != nil {
			summary.NetMinutes = *day.NetMinutes
		} else {
			net, _ := worktime.NetForInterval(*day.StartTime, *day.EndTime, day.BreakMinutes)
			summary.NetMinutes = net
		}
	default:
		summary.Running = true
		summary.GrossMinutes = worktime.ComputeNet(*day.StartTime, 0, day.BreakStart, now)
		summary.NetMinutes = worktime.ComputeNet(*day.StartTime, day.BreakMinutes, day.BreakStart, now)
	}

	summary.Status = worktime.TrackProgress(summary.NetMinutes, targets.DailySoft, targets.DailyHard)
	return summary, nil
}

func clearable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
