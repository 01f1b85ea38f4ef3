package offdays

import "time"

// MonthDay identifies a yearly recurring holiday by its month-day pattern.
type MonthDay struct {
	Month int
	Day   int
}

// RecurringKey pairs a persisted recurring holiday id with its pattern.
type RecurringKey struct {
	ID string
	MonthDay
}

// RecurringPlan lists the mutations required to reconcile persisted
// recurring holidays with an edited key selection.
type RecurringPlan struct {
	Add       []MonthDay
	RemoveIDs []string
}

// Empty reports whether the plan carries no mutations.
func (p RecurringPlan) Empty() bool {
	return len(p.Add) == 0 && len(p.RemoveIDs) == 0
}

// MaterializesIn reports whether the pattern produces a calendar-valid date
// in the given year. Feb 29 only materializes in leap years; the stored key
// remains valid either way.
func (md MonthDay) MaterializesIn(year int) bool {
	d := time.Date(year, time.Month(md.Month), md.Day, 0, 0, 0, 0, time.UTC)
	return int(d.Month()) == md.Month && d.Day() == md.Day
}

// ReconcileRecurring diffs the selected month-day keys against the recurring
// holidays that materialize in the target year.
//
// Keys that do not materialize that year (Feb 29 outside a leap year) were
// never presented to the user and are excluded from the diff so an untouched
// selection never deletes them.
func ReconcileRecurring(current []RecurringKey, selected []MonthDay, year int) RecurringPlan {
	currentByKey := make(map[MonthDay]string, len(current))
	for _, key := range current {
		if !key.MaterializesIn(year) {
			continue
		}
		currentByKey[key.MonthDay] = key.ID
	}

	var plan RecurringPlan
	selectedSet := make(map[MonthDay]struct{}, len(selected))
	for _, key := range selected {
		if !key.MaterializesIn(year) {
			continue
		}
		if _, ok := selectedSet[key]; ok {
			continue
		}
		selectedSet[key] = struct{}{}
		if _, exists := currentByKey[key]; !exists {
			plan.Add = append(plan.Add, key)
		}
	}

	for _, key := range current {
		id, shown := currentByKey[key.MonthDay]
		if !shown || id != key.ID {
			continue
		}
		if _, keep := selectedSet[key.MonthDay]; !keep {
			plan.RemoveIDs = append(plan.RemoveIDs, key.ID)
		}
	}

	return plan
}
