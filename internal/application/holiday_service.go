package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/marceloc10uy/TimeTracker/internal/offdays"
	"github.com/marceloc10uy/TimeTracker/internal/persistence"
	"github.com/marceloc10uy/TimeTracker/internal/worktime"
)

// Time-off kinds accepted by the store.
const (
	KindVacation = "vacation"
	KindPersonal = "personal"
)

// leapYear is used to check that a month-day pattern exists at all.
const leapYear = 2024

// HolidayService manages recurring holidays, personal time-off ranges and
// the calendar edit session that reconciles a toggled day selection back
// into persisted records.
type HolidayService struct {
	holidays    persistence.RecurringHolidayRepository
	timeOff     persistence.TimeOffRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger

	mu      sync.Mutex
	session offdays.Session
}

// NewHolidayService wires dependencies for holiday and time-off operations.
func NewHolidayService(
	holidays persistence.RecurringHolidayRepository,
	timeOff persistence.TimeOffRepository,
	idGenerator func() string,
	now func() time.Time,
	logger *slog.Logger,
) *HolidayService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &HolidayService{
		holidays:    holidays,
		timeOff:     timeOff,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// ListRecurring returns all recurring holidays.
func (s *HolidayService) ListRecurring(ctx context.Context) ([]RecurringHolidayView, error) {
	if s == nil || s.holidays == nil {
		return nil, fmt.Errorf("recurring holiday repository not configured")
	}

	holidays, err := s.holidays.ListRecurring(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	views := make([]RecurringHolidayView, 0, len(holidays))
	for _, h := range holidays {
		views = append(views, RecurringHolidayView{ID: h.ID, Month: h.Month, Day: h.Day, Label: h.Label})
	}
	return views, nil
}

// UpsertRecurring stores a recurring holiday pattern. An existing (month, day)
// key keeps its id and only picks up the new label.
func (s *HolidayService) UpsertRecurring(ctx context.Context, month, day int, label *string) (RecurringHolidayView, error) {
	if s == nil || s.holidays == nil {
		return RecurringHolidayView{}, fmt.Errorf("recurring holiday repository not configured")
	}

	vErr := &ValidationError{}
	if month < 1 || month > 12 {
		vErr.add("month", "must be between 1 and 12")
	}
	if day < 1 || day > 31 {
		vErr.add("day", "must be between 1 and 31")
	}
	if vErr.HasErrors() {
		return RecurringHolidayView{}, vErr
	}
	if !(offdays.MonthDay{Month: month, Day: day}).MaterializesIn(leapYear) {
		return RecurringHolidayView{}, fieldError("day", fmt.Sprintf("no such date: month %d has no day %d", month, day))
	}

	holiday := persistence.RecurringHoliday{
		ID:    s.idGenerator(),
		Month: month,
		Day:   day,
		Label: label,
	}
	log := serviceLogger(ctx, s.logger, "holiday", "upsert_recurring", "month", month, "day", day)
	if err := s.holidays.UpsertRecurring(ctx, holiday); err != nil {
		log.Error("recurring holiday upsert failed", "error", err, "error_kind", ErrorKind(err))
		return RecurringHolidayView{}, mapRepoError(err)
	}
	log.Info("recurring holiday stored")

	return RecurringHolidayView{ID: holiday.ID, Month: month, Day: day, Label: label}, nil
}

// DeleteRecurring removes a recurring holiday by id.
func (s *HolidayService) DeleteRecurring(ctx context.Context, id string) error {
	if s == nil || s.holidays == nil {
		return fmt.Errorf("recurring holiday repository not configured")
	}
	if id == "" {
		return fieldError("id", "is required")
	}
	if err := s.holidays.DeleteRecurring(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

// ListTimeOff returns time-off ranges, optionally filtered to those
// overlapping the inclusive [from, to] window.
func (s *HolidayService) ListTimeOff(ctx context.Context, from, to *string) ([]TimeOffView, error) {
	if s == nil || s.timeOff == nil {
		return nil, fmt.Errorf("time off repository not configured")
	}

	vErr := &ValidationError{}
	if from != nil {
		if _, err := worktime.ParseDate(*from); err != nil {
			vErr.add("from", err.Error())
		}
	}
	if to != nil {
		if _, err := worktime.ParseDate(*to); err != nil {
			vErr.add("to", err.Error())
		}
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	ranges, err := s.timeOff.ListTimeOff(ctx, from, to)
	if err != nil {
		return nil, mapRepoError(err)
	}

	views := make([]TimeOffView, 0, len(ranges))
	for _, rng := range ranges {
		views = append(views, TimeOffView{
			ID:        rng.ID,
			StartDate: rng.StartDate,
			EndDate:   rng.EndDate,
			Kind:      rng.Kind,
			Label:     rng.Label,
		})
	}
	return views, nil
}

// CreateTimeOff stores a new inclusive time-off range.
func (s *HolidayService) CreateTimeOff(ctx context.Context, startDate, endDate, kind string, label *string) (TimeOffView, error) {
	if s == nil || s.timeOff == nil {
		return TimeOffView{}, fmt.Errorf("time off repository not configured")
	}
	if err := validateTimeOffRange(startDate, endDate, kind); err != nil {
		return TimeOffView{}, err
	}

	timeOff := persistence.TimeOff{
		ID:        s.idGenerator(),
		StartDate: startDate,
		EndDate:   endDate,
		Kind:      kind,
		Label:     label,
	}
	log := serviceLogger(ctx, s.logger, "holiday", "create_time_off", "start_date", startDate, "end_date", endDate)
	if err := s.timeOff.CreateTimeOff(ctx, timeOff); err != nil {
		log.Error("time off create failed", "error", err, "error_kind", ErrorKind(err))
		return TimeOffView{}, mapRepoError(err)
	}
	log.Info("time off stored")

	return TimeOffView{ID: timeOff.ID, StartDate: startDate, EndDate: endDate, Kind: kind, Label: label}, nil
}

// DeleteTimeOff removes a time-off range by id.
func (s *HolidayService) DeleteTimeOff(ctx context.Context, id string) error {
	if s == nil || s.timeOff == nil {
		return fmt.Errorf("time off repository not configured")
	}
	if id == "" {
		return fieldError("id", "is required")
	}
	if err := s.timeOff.DeleteTimeOff(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

// ReconcilePersonal makes the persisted time-off ranges of a year match the
// selected ISO dates. Days the selection drops are cut out of their ranges
// as a delete plus re-created surviving segments; brand-new days are merged
// into minimal ranges of the given kind and label.
//
// Deletes are applied before creates so no date is covered twice during the
// transition. A store failure mid-apply is surfaced without rolling back
// operations already applied; re-submitting the same selection is safe
// because an already reconciled state produces an empty plan.
func (s *HolidayService) ReconcilePersonal(ctx context.Context, year int, selected []string, kind string, label *string) (ReconcileResult, error) {
	if s == nil || s.timeOff == nil {
		return ReconcileResult{}, fmt.Errorf("time off repository not configured")
	}
	if err := s.checkEditableYear(year); err != nil {
		return ReconcileResult{}, err
	}
	if kind != KindVacation && kind != KindPersonal {
		return ReconcileResult{}, fieldError("kind", "must be vacation or personal")
	}
	for _, day := range selected {
		d, err := worktime.ParseDate(day)
		if err != nil {
			return ReconcileResult{}, fieldError("days", err.Error())
		}
		if d.Year() != year {
			return ReconcileResult{}, fieldError("days", fmt.Sprintf("%s is outside year %d", day, year))
		}
	}

	from := fmt.Sprintf("%04d-01-01", year)
	to := fmt.Sprintf("%04d-12-31", year)
	stored, err := s.timeOff.ListTimeOff(ctx, &from, &to)
	if err != nil {
		return ReconcileResult{}, mapRepoError(err)
	}

	existing := make([]offdays.Range, 0, len(stored))
	// Days of overlapping ranges that fall outside the edited year were never
	// part of the selection, so they are pinned as implicitly selected. The
	// copy keeps the appends out of the caller's backing array.
	pinned := append([]string(nil), selected...)
	for _, rng := range stored {
		existing = append(existing, offdays.Range{
			ID:        rng.ID,
			StartDate: rng.StartDate,
			EndDate:   rng.EndDate,
			Kind:      rng.Kind,
			Label:     rng.Label,
		})
		days, err := offdays.ExpandRange(rng.StartDate, rng.EndDate)
		if err != nil {
			return ReconcileResult{}, err
		}
		for _, day := range days {
			if day < from || day > to {
				pinned = append(pinned, day)
			}
		}
	}

	plan, err := offdays.ReconcileTimeOff(existing, pinned, kind, label)
	if err != nil {
		return ReconcileResult{}, fieldError("days", err.Error())
	}

	log := serviceLogger(ctx, s.logger, "holiday", "reconcile_personal", "year", year,
		"deletes", len(plan.DeleteIDs), "creates", len(plan.Creates))
	if plan.Empty() {
		log.Info("selection already reconciled")
		return ReconcileResult{}, nil
	}

	var result ReconcileResult
	for _, id := range plan.DeleteIDs {
		if err := s.timeOff.DeleteTimeOff(ctx, id); err != nil {
			log.Error("reconcile delete failed", "time_off_id", id, "error", err)
			return result, mapRepoError(err)
		}
		result.Deleted++
	}
	for _, draft := range plan.Creates {
		timeOff := persistence.TimeOff{
			ID:        s.idGenerator(),
			StartDate: draft.StartDate,
			EndDate:   draft.EndDate,
			Kind:      draft.Kind,
			Label:     draft.Label,
		}
		if err := s.timeOff.CreateTimeOff(ctx, timeOff); err != nil {
			log.Error("reconcile create failed", "start_date", draft.StartDate, "error", err)
			return result, mapRepoError(err)
		}
		result.Created++
	}

	log.Info("time off reconciled")
	return result, nil
}

// ReconcileRecurring makes the persisted recurring holidays match the
// selected month-day keys for the target year. Keys that do not materialize
// in that year, such as Feb 29 outside a leap year, are never deleted.
func (s *HolidayService) ReconcileRecurring(ctx context.Context, year int, selected []offdays.MonthDay, label *string) (ReconcileResult, error) {
	if s == nil || s.holidays == nil {
		return ReconcileResult{}, fmt.Errorf("recurring holiday repository not configured")
	}
	if err := s.checkEditableYear(year); err != nil {
		return ReconcileResult{}, err
	}
	for _, key := range selected {
		if key.Month < 1 || key.Month > 12 || key.Day < 1 || key.Day > 31 {
			return ReconcileResult{}, fieldError("days", fmt.Sprintf("invalid month-day key %02d-%02d", key.Month, key.Day))
		}
	}

	stored, err := s.holidays.ListRecurring(ctx)
	if err != nil {
		return ReconcileResult{}, mapRepoError(err)
	}
	current := make([]offdays.RecurringKey, 0, len(stored))
	for _, h := range stored {
		current = append(current, offdays.RecurringKey{
			ID:       h.ID,
			MonthDay: offdays.MonthDay{Month: h.Month, Day: h.Day},
		})
	}

	plan := offdays.ReconcileRecurring(current, selected, year)

	log := serviceLogger(ctx, s.logger, "holiday", "reconcile_recurring", "year", year,
		"adds", len(plan.Add), "removes", len(plan.RemoveIDs))
	if plan.Empty() {
		log.Info("selection already reconciled")
		return ReconcileResult{}, nil
	}

	var result ReconcileResult
	for _, id := range plan.RemoveIDs {
		if err := s.holidays.DeleteRecurring(ctx, id); err != nil {
			log.Error("reconcile delete failed", "recurring_id", id, "error", err)
			return result, mapRepoError(err)
		}
		result.Deleted++
	}
	for _, key := range plan.Add {
		holiday := persistence.RecurringHoliday{
			ID:    s.idGenerator(),
			Month: key.Month,
			Day:   key.Day,
			Label: label,
		}
		if err := s.holidays.UpsertRecurring(ctx, holiday); err != nil {
			log.Error("reconcile create failed", "month", key.Month, "day", key.Day, "error", err)
			return result, mapRepoError(err)
		}
		result.Created++
	}

	log.Info("recurring holidays reconciled")
	return result, nil
}

func (s *HolidayService) checkEditableYear(year int) error {
	if year != s.now().Year() {
		return fieldError("year", "only the current year can be edited")
	}
	return nil
}

func validateTimeOffRange(startDate, endDate, kind string) error {
	vErr := &ValidationError{}
	start, err := worktime.ParseDate(startDate)
	if err != nil {
		vErr.add("start_date", err.Error())
	}
	end, err := worktime.ParseDate(endDate)
	if err != nil {
		vErr.add("end_date", err.Error())
	}
	if !vErr.HasErrors() && end.Before(start) {
		vErr.add("end_date", "cannot be earlier than start_date")
	}
	if kind != KindVacation && kind != KindPersonal {
		vErr.add("kind", "must be vacation or personal")
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}
