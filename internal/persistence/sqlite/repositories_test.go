package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/marceloc10uy/TimeTracker/internal/persistence"
	"github.com/marceloc10uy/TimeTracker/internal/persistence/sqlite"
	"github.com/marceloc10uy/TimeTracker/internal/testfixtures"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestDayRepository(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	t.Run("get missing date", func(t *testing.T) {
		_, err := harness.Days.GetDay(ctx, "2024-03-13")
		if !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("create and read back", func(t *testing.T) {
		day := persistence.WorkDay{
			Date:         "2024-03-13",
			StartTime:    strPtr("09:00"),
			BreakMinutes: 30,
			Notes:        strPtr("remote"),
		}
		if err := harness.Days.CreateDay(ctx, day); err != nil {
			t.Fatalf("CreateDay failed: %v", err)
		}

		got, err := harness.Days.GetDay(ctx, "2024-03-13")
		if err != nil {
			t.Fatalf("GetDay failed: %v", err)
		}
		if got.StartTime == nil || *got.StartTime != "09:00" {
			t.Fatalf("unexpected start: %v", got.StartTime)
		}
		if got.EndTime != nil || got.NetMinutes != nil || got.BreakStart != nil {
			t.Fatalf("expected null columns back as nil, got %+v", got)
		}
		if got.BreakMinutes != 30 {
			t.Fatalf("expected 30 break minutes, got %d", got.BreakMinutes)
		}
	})

	t.Run("duplicate create", func(t *testing.T) {
		err := harness.Days.CreateDay(ctx, persistence.WorkDay{Date: "2024-03-13"})
		if !errors.Is(err, persistence.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("update", func(t *testing.T) {
		day := persistence.WorkDay{
			Date:         "2024-03-13",
			StartTime:    strPtr("09:00"),
			EndTime:      strPtr("17:30"),
			BreakMinutes: 45,
			NetMinutes:   intPtr(465),
		}
		if err := harness.Days.UpdateDay(ctx, day); err != nil {
			t.Fatalf("UpdateDay failed: %v", err)
		}

		got, err := harness.Days.GetDay(ctx, "2024-03-13")
		if err != nil {
			t.Fatalf("GetDay failed: %v", err)
		}
		if got.NetMinutes == nil || *got.NetMinutes != 465 {
			t.Fatalf("expected net 465, got %v", got.NetMinutes)
		}
		if got.Notes != nil {
			t.Fatal("expected notes overwritten to nil")
		}
	})

	t.Run("update missing date", func(t *testing.T) {
		err := harness.Days.UpdateDay(ctx, persistence.WorkDay{Date: "1999-01-01"})
		if !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list window", func(t *testing.T) {
		for _, date := range []string{"2024-03-11", "2024-03-15", "2024-03-18"} {
			if err := harness.Days.CreateDay(ctx, persistence.WorkDay{Date: date}); err != nil {
				t.Fatalf("CreateDay failed: %v", err)
			}
		}

		days, err := harness.Days.ListDays(ctx, "2024-03-11", "2024-03-15")
		if err != nil {
			t.Fatalf("ListDays failed: %v", err)
		}
		if len(days) != 3 {
			t.Fatalf("expected 3 days, got %d", len(days))
		}
		if days[0].Date != "2024-03-11" || days[2].Date != "2024-03-15" {
			t.Fatalf("expected ascending order, got %v", days)
		}
	})
}

func TestSettingsRepository(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	values, err := harness.Settings.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if len(values) != 0 {
		t.Fatalf("expected empty settings, got %v", values)
	}

	updates := map[string]string{
		"daily_soft_minutes": "360",
		"daily_hard_minutes": "480",
	}
	if err := harness.Settings.UpsertSettings(ctx, updates); err != nil {
		t.Fatalf("UpsertSettings failed: %v", err)
	}

	// Upserting again replaces the value in place.
	if err := harness.Settings.UpsertSettings(ctx, map[string]string{"daily_soft_minutes": "300"}); err != nil {
		t.Fatalf("UpsertSettings failed: %v", err)
	}

	values, err = harness.Settings.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if values["daily_soft_minutes"] != "300" || values["daily_hard_minutes"] != "480" {
		t.Fatalf("unexpected settings: %v", values)
	}
}

func TestRecurringHolidayRepository(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	first := persistence.RecurringHoliday{ID: "h1", Month: 12, Day: 25, Label: strPtr("christmas")}
	if err := harness.Holidays.UpsertRecurring(ctx, first); err != nil {
		t.Fatalf("UpsertRecurring failed: %v", err)
	}

	// Same (month, day) with a new id keeps the stored id and updates the label.
	second := persistence.RecurringHoliday{ID: "h2", Month: 12, Day: 25, Label: strPtr("xmas")}
	if err := harness.Holidays.UpsertRecurring(ctx, second); err != nil {
		t.Fatalf("UpsertRecurring failed: %v", err)
	}

	holidays, err := harness.Holidays.ListRecurring(ctx)
	if err != nil {
		t.Fatalf("ListRecurring failed: %v", err)
	}
	if len(holidays) != 1 {
		t.Fatalf("expected one holiday, got %d", len(holidays))
	}
	if holidays[0].ID != "h1" {
		t.Fatalf("expected stable id h1, got %q", holidays[0].ID)
	}
	if holidays[0].Label == nil || *holidays[0].Label != "xmas" {
		t.Fatalf("expected label updated, got %v", holidays[0].Label)
	}

	if err := harness.Holidays.UpsertRecurring(ctx, persistence.RecurringHoliday{ID: "h3", Month: 1, Day: 1}); err != nil {
		t.Fatalf("UpsertRecurring failed: %v", err)
	}
	holidays, err = harness.Holidays.ListRecurring(ctx)
	if err != nil {
		t.Fatalf("ListRecurring failed: %v", err)
	}
	if len(holidays) != 2 || holidays[0].Month != 1 {
		t.Fatalf("expected month-ordered listing, got %v", holidays)
	}

	if err := harness.Holidays.DeleteRecurring(ctx, "h1"); err != nil {
		t.Fatalf("DeleteRecurring failed: %v", err)
	}
	if err := harness.Holidays.DeleteRecurring(ctx, "h1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTimeOffRepository(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	ranges := []persistence.TimeOff{
		{ID: "r1", StartDate: "2024-01-10", EndDate: "2024-01-12", Kind: "vacation", Label: strPtr("skiing")},
		{ID: "r2", StartDate: "2024-06-01", EndDate: "2024-06-01", Kind: "personal"},
		{ID: "r3", StartDate: "2023-12-28", EndDate: "2024-01-02", Kind: "vacation"},
	}
	for _, rng := range ranges {
		if err := harness.TimeOff.CreateTimeOff(ctx, rng); err != nil {
			t.Fatalf("CreateTimeOff failed: %v", err)
		}
	}

	t.Run("list all", func(t *testing.T) {
		got, err := harness.TimeOff.ListTimeOff(ctx, nil, nil)
		if err != nil {
			t.Fatalf("ListTimeOff failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 ranges, got %d", len(got))
		}
		if got[0].ID != "r3" {
			t.Fatalf("expected start-date order, got %v", got)
		}
	})

	t.Run("overlap filter", func(t *testing.T) {
		from, to := "2024-01-01", "2024-01-31"
		got, err := harness.TimeOff.ListTimeOff(ctx, &from, &to)
		if err != nil {
			t.Fatalf("ListTimeOff failed: %v", err)
		}
		// r3 straddles the window start, r1 lies inside, r2 is out.
		if len(got) != 2 {
			t.Fatalf("expected 2 overlapping ranges, got %v", got)
		}
		if got[0].ID != "r3" || got[1].ID != "r1" {
			t.Fatalf("unexpected ranges: %v", got)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := harness.TimeOff.DeleteTimeOff(ctx, "r2"); err != nil {
			t.Fatalf("DeleteTimeOff failed: %v", err)
		}
		if err := harness.TimeOff.DeleteTimeOff(ctx, "r2"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "timetracker.db")

	store, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("first Migrate failed: %v", err)
	}
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
	if err := store.Days.CreateDay(ctx, persistence.WorkDay{Date: "2024-01-01"}); err != nil {
		t.Fatalf("CreateDay after migrate failed: %v", err)
	}
}

func TestSeedSettingsLeavesExistingValues(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "timetracker.db")

	store, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	if err := store.Settings.UpsertSettings(ctx, map[string]string{"daily_soft_minutes": "300"}); err != nil {
		t.Fatalf("UpsertSettings failed: %v", err)
	}
	if err := store.SeedSettings(ctx, map[string]string{
		"daily_soft_minutes": "360",
		"daily_hard_minutes": "480",
	}); err != nil {
		t.Fatalf("SeedSettings failed: %v", err)
	}

	values, err := store.Settings.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if values["daily_soft_minutes"] != "300" {
		t.Fatalf("expected stored value kept, got %q", values["daily_soft_minutes"])
	}
	if values["daily_hard_minutes"] != "480" {
		t.Fatalf("expected missing key seeded, got %q", values["daily_hard_minutes"])
	}
}
