package application

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/marceloc10uy/TimeTracker/internal/persistence"
)

// Settings keys as stored in the settings table.
const (
	keyDailySoftMinutes = "daily_soft_minutes"
	keyDailyHardMinutes = "daily_hard_minutes"
	keyWorkdaysPerWeek  = "workdays_per_week"
)

// Default settings seeded on first start.
const (
	DefaultDailySoftMinutes = 360
	DefaultDailyHardMinutes = 480
	DefaultWorkdaysPerWeek  = 5
)

// DefaultSettings returns the seed values for the settings store.
func DefaultSettings() map[string]string {
	return map[string]string{
		keyDailySoftMinutes: strconv.Itoa(DefaultDailySoftMinutes),
		keyDailyHardMinutes: strconv.Itoa(DefaultDailyHardMinutes),
		keyWorkdaysPerWeek:  strconv.Itoa(DefaultWorkdaysPerWeek),
	}
}

// SettingsService reads and updates the minute target configuration.
type SettingsService struct {
	settings persistence.SettingsRepository
	logger   *slog.Logger
}

// NewSettingsService wires dependencies for settings operations.
func NewSettingsService(settings persistence.SettingsRepository, logger *slog.Logger) *SettingsService {
	return &SettingsService{settings: settings, logger: defaultLogger(logger)}
}

// Get returns the stored settings with derived weekly targets.
func (s *SettingsService) Get(ctx context.Context) (Settings, error) {
	if s == nil || s.settings == nil {
		return Settings{}, fmt.Errorf("settings repository not configured")
	}

	targets, err := loadTargets(ctx, s.settings)
	if err != nil {
		return Settings{}, err
	}
	return settingsFromTargets(targets), nil
}

// Patch applies partial settings updates after validation.
func (s *SettingsService) Patch(ctx context.Context, patch SettingsPatch) (Settings, error) {
	if s == nil || s.settings == nil {
		return Settings{}, fmt.Errorf("settings repository not configured")
	}
	log := serviceLogger(ctx, s.logger, "settings", "patch")

	current, err := loadTargets(ctx, s.settings)
	if err != nil {
		return Settings{}, err
	}

	next := current
	if patch.DailySoftMinutes != nil {
		next.DailySoft = *patch.DailySoftMinutes
	}
	if patch.DailyHardMinutes != nil {
		next.DailyHard = *patch.DailyHardMinutes
	}
	if patch.WorkdaysPerWeek != nil {
		next.WorkdaysPerWeek = *patch.WorkdaysPerWeek
	}

	vErr := &ValidationError{}
	if next.DailySoft < 0 {
		vErr.add("daily_soft_minutes", "must not be negative")
	}
	if next.DailyHard < 0 {
		vErr.add("daily_hard_minutes", "must not be negative")
	}
	if next.DailySoft > next.DailyHard {
		vErr.add("daily_soft_minutes", "soft target must not exceed the hard target")
	}
	if next.WorkdaysPerWeek < 1 || next.WorkdaysPerWeek > 7 {
		vErr.add("workdays_per_week", "must be between 1 and 7")
	}
	if vErr.HasErrors() {
		return Settings{}, vErr
	}

	updates := map[string]string{
		keyDailySoftMinutes: strconv.Itoa(next.DailySoft),
		keyDailyHardMinutes: strconv.Itoa(next.DailyHard),
		keyWorkdaysPerWeek:  strconv.Itoa(next.WorkdaysPerWeek),
	}
	if err := s.settings.UpsertSettings(ctx, updates); err != nil {
		log.Error("settings update failed", "error", err, "error_kind", ErrorKind(err))
		return Settings{}, mapRepoError(err)
	}

	log.Info("settings updated",
		"daily_soft_minutes", next.DailySoft,
		"daily_hard_minutes", next.DailyHard,
		"workdays_per_week", next.WorkdaysPerWeek,
	)
	return settingsFromTargets(next), nil
}

func settingsFromTargets(t Targets) Settings {
	return Settings{
		DailySoftMinutes:  t.DailySoft,
		DailyHardMinutes:  t.DailyHard,
		WorkdaysPerWeek:   t.WorkdaysPerWeek,
		WeeklySoftMinutes: t.DailySoft * t.WorkdaysPerWeek,
		WeeklyHardMinutes: t.DailyHard * t.WorkdaysPerWeek,
	}
}

// loadTargets reads the minute targets, falling back to defaults for keys
// that are missing or unparsable.
func loadTargets(ctx context.Context, repo persistence.SettingsRepository) (Targets, error) {
	values, err := repo.GetSettings(ctx)
	if err != nil {
		return Targets{}, mapRepoError(err)
	}

	return Targets{
		DailySoft:       intSetting(values, keyDailySoftMinutes, DefaultDailySoftMinutes),
		DailyHard:       intSetting(values, keyDailyHardMinutes, DefaultDailyHardMinutes),
		WorkdaysPerWeek: intSetting(values, keyWorkdaysPerWeek, DefaultWorkdaysPerWeek),
	}, nil
}

func intSetting(values map[string]string, key string, fallback int) int {
	raw, ok := values[key]
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
