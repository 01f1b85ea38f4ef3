// Package offdays converts edited calendar day selections into the minimal
// set of store mutations needed to make persisted holiday and time-off
// records match the selection.
package offdays

import (
	"fmt"
	"sort"
	"time"

	"github.com/marceloc10uy/TimeTracker/internal/worktime"
)

// Segment is a maximal run of calendar-adjacent dates.
type Segment struct {
	StartDate string
	EndDate   string
}

// Range is a persisted inclusive time-off date range.
type Range struct {
	ID        string
	StartDate string
	EndDate   string
	Kind      string
	Label     *string
}

// Draft describes a time-off range to be created.
type Draft struct {
	StartDate string
	EndDate   string
	Kind      string
	Label     *string
}

// TimeOffPlan lists the mutations required to reconcile persisted time-off
// ranges with a day selection. Deletes must be applied before creates so a
// date is never covered twice during the transition.
type TimeOffPlan struct {
	DeleteIDs []string
	Creates   []Draft
}

// Empty reports whether the plan carries no mutations.
func (p TimeOffPlan) Empty() bool {
	return len(p.DeleteIDs) == 0 && len(p.Creates) == 0
}

// Segments merges a set of ISO dates into maximal contiguous runs. Input
// order does not matter and duplicates are ignored.
func Segments(days []string) ([]Segment, error) {
	if len(days) == 0 {
		return nil, nil
	}

	parsed := make([]time.Time, 0, len(days))
	seen := make(map[string]struct{}, len(days))
	for _, day := range days {
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		d, err := worktime.ParseDate(day)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, d)
	}

	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Before(parsed[j]) })

	segments := make([]Segment, 0, 1)
	runStart := parsed[0]
	prev := parsed[0]
	for _, d := range parsed[1:] {
		if d.Equal(prev.AddDate(0, 0, 1)) {
			prev = d
			continue
		}
		segments = append(segments, Segment{StartDate: worktime.FormatDate(runStart), EndDate: worktime.FormatDate(prev)})
		runStart = d
		prev = d
	}
	segments = append(segments, Segment{StartDate: worktime.FormatDate(runStart), EndDate: worktime.FormatDate(prev)})

	return segments, nil
}

// ExpandRange lists every ISO date covered by an inclusive range.
func ExpandRange(startDate, endDate string) ([]string, error) {
	start, err := worktime.ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := worktime.ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("invalid range: %s ends before it starts", startDate)
	}

	days := make([]string, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, worktime.FormatDate(d))
	}
	return days, nil
}

// ReconcileTimeOff computes the mutations needed so the union of persisted
// ranges covers exactly the selected days.
//
// Ranges that lost at least one day are deleted and their surviving days are
// re-created as contiguous segments carrying the original kind and label.
// Ranges untouched by the selection are left alone, which makes repeated
// submission of the same selection a no-op. Days that are selected but not
// covered by any range are merged into minimal new ranges using newKind and
// newLabel.
func ReconcileTimeOff(existing []Range, selected []string, newKind string, newLabel *string) (TimeOffPlan, error) {
	selectedSet := make(map[string]struct{}, len(selected))
	for _, day := range selected {
		if _, err := worktime.ParseDate(day); err != nil {
			return TimeOffPlan{}, err
		}
		selectedSet[day] = struct{}{}
	}

	var plan TimeOffPlan
	covered := make(map[string]struct{})

	for _, rng := range existing {
		days, err := ExpandRange(rng.StartDate, rng.EndDate)
		if err != nil {
			return TimeOffPlan{}, err
		}

		remaining := make([]string, 0, len(days))
		removedAny := false
		for _, day := range days {
			covered[day] = struct{}{}
			if _, keep := selectedSet[day]; keep {
				remaining = append(remaining, day)
			} else {
				removedAny = true
			}
		}

		if !removedAny {
			continue
		}

		plan.DeleteIDs = append(plan.DeleteIDs, rng.ID)
		segments, err := Segments(remaining)
		if err != nil {
			return TimeOffPlan{}, err
		}
		for _, seg := range segments {
			plan.Creates = append(plan.Creates, Draft{
				StartDate: seg.StartDate,
				EndDate:   seg.EndDate,
				Kind:      rng.Kind,
				Label:     rng.Label,
			})
		}
	}

	added := make([]string, 0)
	for day := range selectedSet {
		if _, ok := covered[day]; !ok {
			added = append(added, day)
		}
	}
	segments, err := Segments(added)
	if err != nil {
		return TimeOffPlan{}, err
	}
	for _, seg := range segments {
		plan.Creates = append(plan.Creates, Draft{
			StartDate: seg.StartDate,
			EndDate:   seg.EndDate,
			Kind:      newKind,
			Label:     newLabel,
		})
	}

	return plan, nil
}
