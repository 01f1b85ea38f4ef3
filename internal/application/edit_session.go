package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/marceloc10uy/TimeTracker/internal/offdays"
	"github.com/marceloc10uy/TimeTracker/internal/worktime"
)

// EditState is the caller-facing snapshot of the calendar edit session.
type EditState struct {
	Editing  bool
	Mode     string
	Year     int
	Selected []string
}

// BeginEdit opens a calendar edit session for the current year. The
// selection is seeded with persisted state: in-year time-off days for
// personal mode, month-day keys of materializing holidays for yearly mode.
func (s *HolidayService) BeginEdit(ctx context.Context, mode string, year int) (EditState, error) {
	parsedMode, err := parseEditMode(mode)
	if err != nil {
		return EditState{}, err
	}

	seed, err := s.editSeed(ctx, parsedMode, year)
	if err != nil {
		return EditState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Begin(parsedMode, year, s.now().Year(), seed); err != nil {
		return EditState{}, mapSessionError(err)
	}
	return s.editStateLocked(), nil
}

// ToggleEdit flips a selection key in the active session.
func (s *HolidayService) ToggleEdit(key string) (EditState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Editing() {
		return EditState{}, mapSessionError(offdays.ErrNotEditing)
	}

	switch s.session.Mode() {
	case offdays.ModePersonal:
		if _, err := worktime.ParseDate(key); err != nil {
			return EditState{}, fieldError("key", err.Error())
		}
	case offdays.ModeYearly:
		if _, err := ParseMonthDayKey(key); err != nil {
			return EditState{}, fieldError("key", err.Error())
		}
	}

	if err := s.session.Toggle(key); err != nil {
		return EditState{}, mapSessionError(err)
	}
	return s.editStateLocked(), nil
}

// EditSelection returns the current session snapshot.
func (s *HolidayService) EditSelection() EditState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editStateLocked()
}

// CancelEdit discards the session without touching the store.
func (s *HolidayService) CancelEdit() EditState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Cancel()
	return s.editStateLocked()
}

// SubmitEdit closes the session and reconciles persisted state against the
// final selection. Kind and label only apply to newly created personal
// ranges; yearly mode uses label for newly added holidays.
func (s *HolidayService) SubmitEdit(ctx context.Context, kind string, label *string) (ReconcileResult, error) {
	s.mu.Lock()
	mode := s.session.Mode()
	year := s.session.Year()
	selected, err := s.session.Submit()
	s.mu.Unlock()
	if err != nil {
		return ReconcileResult{}, mapSessionError(err)
	}

	switch mode {
	case offdays.ModePersonal:
		if kind == "" {
			kind = KindVacation
		}
		return s.ReconcilePersonal(ctx, year, selected, kind, label)
	case offdays.ModeYearly:
		keys := make([]offdays.MonthDay, 0, len(selected))
		for _, raw := range selected {
			key, err := ParseMonthDayKey(raw)
			if err != nil {
				return ReconcileResult{}, fieldError("key", err.Error())
			}
			keys = append(keys, key)
		}
		return s.ReconcileRecurring(ctx, year, keys, label)
	}
	return ReconcileResult{}, fmt.Errorf("unknown edit mode %q", mode)
}

// editSeed loads the persisted selection the session starts from.
func (s *HolidayService) editSeed(ctx context.Context, mode offdays.Mode, year int) ([]string, error) {
	switch mode {
	case offdays.ModeYearly:
		holidays, err := s.holidays.ListRecurring(ctx)
		if err != nil {
			return nil, mapRepoError(err)
		}
		var seed []string
		for _, h := range holidays {
			key := offdays.MonthDay{Month: h.Month, Day: h.Day}
			if !key.MaterializesIn(year) {
				continue
			}
			seed = append(seed, formatMonthDayKey(key))
		}
		return seed, nil

	case offdays.ModePersonal:
		from := fmt.Sprintf("%04d-01-01", year)
		to := fmt.Sprintf("%04d-12-31", year)
		ranges, err := s.timeOff.ListTimeOff(ctx, &from, &to)
		if err != nil {
			return nil, mapRepoError(err)
		}
		var seed []string
		for _, rng := range ranges {
			days, err := offdays.ExpandRange(rng.StartDate, rng.EndDate)
			if err != nil {
				return nil, err
			}
			for _, day := range days {
				if day >= from && day <= to {
					seed = append(seed, day)
				}
			}
		}
		return seed, nil
	}
	return nil, fmt.Errorf("unknown edit mode %q", mode)
}

func (s *HolidayService) editStateLocked() EditState {
	return EditState{
		Editing:  s.session.Editing(),
		Mode:     string(s.session.Mode()),
		Year:     s.session.Year(),
		Selected: s.session.Selected(),
	}
}

func parseEditMode(mode string) (offdays.Mode, error) {
	switch offdays.Mode(mode) {
	case offdays.ModePersonal:
		return offdays.ModePersonal, nil
	case offdays.ModeYearly:
		return offdays.ModeYearly, nil
	}
	return "", fieldError("mode", "must be personal or yearly")
}

// ParseMonthDayKey parses a MM-DD selection key.
func ParseMonthDayKey(raw string) (offdays.MonthDay, error) {
	var month, day int
	if _, err := fmt.Sscanf(raw, "%d-%d", &month, &day); err != nil || len(raw) != 5 {
		return offdays.MonthDay{}, fmt.Errorf("invalid month-day key %q: use MM-DD", raw)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return offdays.MonthDay{}, fmt.Errorf("invalid month-day key %q: out of range", raw)
	}
	return offdays.MonthDay{Month: month, Day: day}, nil
}

func formatMonthDayKey(key offdays.MonthDay) string {
	return fmt.Sprintf("%02d-%02d", key.Month, key.Day)
}

func mapSessionError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, offdays.ErrNotEditing):
		return fieldError("session", "no edit session in progress")
	case errors.Is(err, offdays.ErrEditInProgress):
		return fieldError("session", "an edit session is already in progress")
	case errors.Is(err, offdays.ErrYearNotEditable):
		return fieldError("year", "only the current year can be edited")
	}
	return err
}
