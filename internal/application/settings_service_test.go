package application

import (
	"context"
	"errors"
	"testing"
)

func TestSettingsService_Get(t *testing.T) {
	t.Run("derives weekly targets", func(t *testing.T) {
		svc := NewSettingsService(newSettingsRepoStub(360, 480, 5), nil)

		settings, err := svc.Get(context.Background())
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if settings.WeeklySoftMinutes != 1800 || settings.WeeklyHardMinutes != 2400 {
			t.Fatalf("unexpected weekly targets: %+v", settings)
		}
	})

	t.Run("missing keys fall back to defaults", func(t *testing.T) {
		repo := &settingsRepoStub{values: map[string]string{}}
		svc := NewSettingsService(repo, nil)

		settings, err := svc.Get(context.Background())
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if settings.DailySoftMinutes != DefaultDailySoftMinutes ||
			settings.DailyHardMinutes != DefaultDailyHardMinutes ||
			settings.WorkdaysPerWeek != DefaultWorkdaysPerWeek {
			t.Fatalf("expected defaults, got %+v", settings)
		}
	})

	t.Run("unparsable values fall back to defaults", func(t *testing.T) {
		repo := &settingsRepoStub{values: map[string]string{
			"daily_soft_minutes": "six hours",
			"daily_hard_minutes": "420",
			"workdays_per_week":  "4",
		}}
		svc := NewSettingsService(repo, nil)

		settings, err := svc.Get(context.Background())
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if settings.DailySoftMinutes != DefaultDailySoftMinutes {
			t.Fatalf("expected default soft target, got %d", settings.DailySoftMinutes)
		}
		if settings.DailyHardMinutes != 420 || settings.WorkdaysPerWeek != 4 {
			t.Fatalf("expected stored values kept, got %+v", settings)
		}
	})
}

func TestSettingsService_Patch(t *testing.T) {
	t.Run("applies partial updates", func(t *testing.T) {
		repo := newSettingsRepoStub(360, 480, 5)
		svc := NewSettingsService(repo, nil)

		settings, err := svc.Patch(context.Background(), SettingsPatch{DailySoftMinutes: intPtr(300)})
		if err != nil {
			t.Fatalf("Patch failed: %v", err)
		}
		if settings.DailySoftMinutes != 300 || settings.DailyHardMinutes != 480 {
			t.Fatalf("unexpected settings: %+v", settings)
		}
		if repo.values["daily_soft_minutes"] != "300" {
			t.Fatalf("expected value persisted, got %q", repo.values["daily_soft_minutes"])
		}
	})

	t.Run("rejects a soft target above the hard target", func(t *testing.T) {
		svc := NewSettingsService(newSettingsRepoStub(360, 480, 5), nil)

		_, err := svc.Patch(context.Background(), SettingsPatch{DailySoftMinutes: intPtr(500)})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["daily_soft_minutes"]; !ok {
			t.Fatalf("expected daily_soft_minutes flagged, got %v", vErr.FieldErrors)
		}
	})

	t.Run("rejects out-of-range workdays", func(t *testing.T) {
		svc := NewSettingsService(newSettingsRepoStub(360, 480, 5), nil)

		var vErr *ValidationError
		if _, err := svc.Patch(context.Background(), SettingsPatch{WorkdaysPerWeek: intPtr(0)}); !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, err := svc.Patch(context.Background(), SettingsPatch{WorkdaysPerWeek: intPtr(8)}); !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("rejects negative targets", func(t *testing.T) {
		svc := NewSettingsService(newSettingsRepoStub(360, 480, 5), nil)

		_, err := svc.Patch(context.Background(), SettingsPatch{
			DailySoftMinutes: intPtr(-10),
			DailyHardMinutes: intPtr(-10),
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}
