package application

import (
	"context"
	"sort"
	"strconv"

	"github.com/marceloc10uy/TimeTracker/internal/persistence"
)

type dayRepoStub struct {
	days map[string]persistence.WorkDay

	getErr    error
	createErr error
	updateErr error
	listErr   error
}

func newDayRepoStub() *dayRepoStub {
	return &dayRepoStub{days: make(map[string]persistence.WorkDay)}
}

func (r *dayRepoStub) GetDay(ctx context.Context, date string) (persistence.WorkDay, error) {
	if r.getErr != nil {
		return persistence.WorkDay{}, r.getErr
	}
	day, ok := r.days[date]
	if !ok {
		return persistence.WorkDay{}, persistence.ErrNotFound
	}
	return day, nil
}

func (r *dayRepoStub) CreateDay(ctx context.Context, day persistence.WorkDay) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.days[day.Date]; exists {
		return persistence.ErrDuplicate
	}
	r.days[day.Date] = day
	return nil
}

func (r *dayRepoStub) UpdateDay(ctx context.Context, day persistence.WorkDay) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, exists := r.days[day.Date]; !exists {
		return persistence.ErrNotFound
	}
	r.days[day.Date] = day
	return nil
}

func (r *dayRepoStub) ListDays(ctx context.Context, from, to string) ([]persistence.WorkDay, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []persistence.WorkDay
	for date, day := range r.days {
		if date >= from && date <= to {
			out = append(out, day)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

type settingsRepoStub struct {
	values    map[string]string
	getErr    error
	upsertErr error
}

func newSettingsRepoStub(dailySoft, dailyHard, workdays int) *settingsRepoStub {
	return &settingsRepoStub{values: map[string]string{
		"daily_soft_minutes": strconv.Itoa(dailySoft),
		"daily_hard_minutes": strconv.Itoa(dailyHard),
		"workdays_per_week":  strconv.Itoa(workdays),
	}}
}

func (r *settingsRepoStub) GetSettings(ctx context.Context) (map[string]string, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out, nil
}

func (r *settingsRepoStub) UpsertSettings(ctx context.Context, updates map[string]string) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	for k, v := range updates {
		r.values[k] = v
	}
	return nil
}

type recurringRepoStub struct {
	holidays []persistence.RecurringHoliday

	listErr   error
	upsertErr error
	deleteErr error
}

func (r *recurringRepoStub) ListRecurring(ctx context.Context) ([]persistence.RecurringHoliday, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]persistence.RecurringHoliday, len(r.holidays))
	copy(out, r.holidays)
	return out, nil
}

func (r *recurringRepoStub) UpsertRecurring(ctx context.Context, holiday persistence.RecurringHoliday) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	for i, existing := range r.holidays {
		if existing.Month == holiday.Month && existing.Day == holiday.Day {
			r.holidays[i].Label = holiday.Label
			return nil
		}
	}
	r.holidays = append(r.holidays, holiday)
	return nil
}

func (r *recurringRepoStub) DeleteRecurring(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i, existing := range r.holidays {
		if existing.ID == id {
			r.holidays = append(r.holidays[:i], r.holidays[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

type timeOffRepoStub struct {
	ranges []persistence.TimeOff

	listErr   error
	createErr error
	deleteErr error
}

func (r *timeOffRepoStub) ListTimeOff(ctx context.Context, from, to *string) ([]persistence.TimeOff, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []persistence.TimeOff
	for _, rng := range r.ranges {
		if from != nil && to != nil {
			if rng.EndDate < *from || rng.StartDate > *to {
				continue
			}
		}
		out = append(out, rng)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartDate != out[j].StartDate {
			return out[i].StartDate < out[j].StartDate
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *timeOffRepoStub) CreateTimeOff(ctx context.Context, timeOff persistence.TimeOff) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.ranges = append(r.ranges, timeOff)
	return nil
}

func (r *timeOffRepoStub) DeleteTimeOff(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i, existing := range r.ranges {
		if existing.ID == id {
			r.ranges = append(r.ranges[:i], r.ranges[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}
