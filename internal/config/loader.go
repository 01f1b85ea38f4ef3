// Package config loads service configuration from defaults, an optional TOML
// file and TIMETRACKER_* environment overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config captures the runtime configuration of the time tracker service.
type Config struct {
	HTTPPort  int    `toml:"http_port"`
	SQLiteDSN string `toml:"sqlite_dsn"`

	DailySoftMinutes int `toml:"daily_soft_minutes"`
	DailyHardMinutes int `toml:"daily_hard_minutes"`
	WorkdaysPerWeek  int `toml:"workdays_per_week"`
}

// Load builds the configuration. Defaults are overlaid by the TOML file named
// in TIMETRACKER_CONFIG (when set), then by individual TIMETRACKER_*
// environment variables. Invalid values are reported by variable name.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:         8080,
		SQLiteDSN:        "file:timetracker.db",
		DailySoftMinutes: 360,
		DailyHardMinutes: 480,
		WorkdaysPerWeek:  5,
	}

	if path := strings.TrimSpace(os.Getenv("TIMETRACKER_CONFIG")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("TIMETRACKER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "TIMETRACKER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("TIMETRACKER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if value := strings.TrimSpace(os.Getenv("TIMETRACKER_DAILY_SOFT_MINUTES")); value != "" {
		minutes, err := strconv.Atoi(value)
		if err != nil || minutes < 0 {
			invalid = append(invalid, "TIMETRACKER_DAILY_SOFT_MINUTES")
		} else {
			cfg.DailySoftMinutes = minutes
		}
	}

	if value := strings.TrimSpace(os.Getenv("TIMETRACKER_DAILY_HARD_MINUTES")); value != "" {
		minutes, err := strconv.Atoi(value)
		if err != nil || minutes < 0 {
			invalid = append(invalid, "TIMETRACKER_DAILY_HARD_MINUTES")
		} else {
			cfg.DailyHardMinutes = minutes
		}
	}

	if value := strings.TrimSpace(os.Getenv("TIMETRACKER_WORKDAYS_PER_WEEK")); value != "" {
		workdays, err := strconv.Atoi(value)
		if err != nil || workdays < 1 || workdays > 7 {
			invalid = append(invalid, "TIMETRACKER_WORKDAYS_PER_WEEK")
		} else {
			cfg.WorkdaysPerWeek = workdays
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	if cfg.DailySoftMinutes > cfg.DailyHardMinutes {
		return Config{}, fmt.Errorf("daily soft target (%d) must not exceed the hard target (%d)",
			cfg.DailySoftMinutes, cfg.DailyHardMinutes)
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s does not exist", path)
		}
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}
