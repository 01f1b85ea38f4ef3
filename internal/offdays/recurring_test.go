package offdays

import (
	"reflect"
	"testing"
)

func TestMonthDayMaterializesIn(t *testing.T) {
	feb29 := MonthDay{Month: 2, Day: 29}
	if !feb29.MaterializesIn(2024) {
		t.Fatal("Feb 29 should materialize in a leap year")
	}
	if feb29.MaterializesIn(2023) {
		t.Fatal("Feb 29 should not materialize in a non-leap year")
	}

	if (MonthDay{Month: 4, Day: 31}).MaterializesIn(2024) {
		t.Fatal("April 31 should never materialize")
	}
	if !(MonthDay{Month: 12, Day: 25}).MaterializesIn(2023) {
		t.Fatal("Dec 25 should materialize every year")
	}
}

func TestReconcileRecurring_AddAndRemove(t *testing.T) {
	current := []RecurringKey{
		{ID: "h1", MonthDay: MonthDay{Month: 1, Day: 1}},
		{ID: "h2", MonthDay: MonthDay{Month: 5, Day: 1}},
	}
	selected := []MonthDay{
		{Month: 1, Day: 1},
		{Month: 12, Day: 25},
	}

	plan := ReconcileRecurring(current, selected, 2024)

	if !reflect.DeepEqual(plan.Add, []MonthDay{{Month: 12, Day: 25}}) {
		t.Fatalf("expected Dec 25 added, got %v", plan.Add)
	}
	if !reflect.DeepEqual(plan.RemoveIDs, []string{"h2"}) {
		t.Fatalf("expected h2 removed, got %v", plan.RemoveIDs)
	}
}

func TestReconcileRecurring_Feb29SurvivesNonLeapYears(t *testing.T) {
	current := []RecurringKey{
		{ID: "h1", MonthDay: MonthDay{Month: 2, Day: 29}},
		{ID: "h2", MonthDay: MonthDay{Month: 1, Day: 1}},
	}
	// In 2023 the user only ever saw Jan 1 and left it checked.
	selected := []MonthDay{{Month: 1, Day: 1}}

	plan := ReconcileRecurring(current, selected, 2023)
	if !plan.Empty() {
		t.Fatalf("expected empty plan, got %+v", plan)
	}
}

func TestReconcileRecurring_Feb29AddInNonLeapYearIgnored(t *testing.T) {
	selected := []MonthDay{{Month: 2, Day: 29}}

	plan := ReconcileRecurring(nil, selected, 2023)
	if !plan.Empty() {
		t.Fatalf("expected Feb 29 not to materialize in 2023, got %+v", plan)
	}

	plan = ReconcileRecurring(nil, selected, 2024)
	if !reflect.DeepEqual(plan.Add, []MonthDay{{Month: 2, Day: 29}}) {
		t.Fatalf("expected Feb 29 added in a leap year, got %v", plan.Add)
	}
}

func TestReconcileRecurring_DuplicateSelectionsCollapse(t *testing.T) {
	selected := []MonthDay{
		{Month: 12, Day: 25},
		{Month: 12, Day: 25},
	}

	plan := ReconcileRecurring(nil, selected, 2024)
	if len(plan.Add) != 1 {
		t.Fatalf("expected one add, got %v", plan.Add)
	}
}
