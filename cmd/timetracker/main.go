package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/marceloc10uy/TimeTracker/internal/application"
	"github.com/marceloc10uy/TimeTracker/internal/config"
	httptransport "github.com/marceloc10uy/TimeTracker/internal/http"
	"github.com/marceloc10uy/TimeTracker/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	root := &cobra.Command{
		Use:           "timetracker",
		Short:         "Personal work time tracker service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCommand(logger), migrateCommand(logger))

	if err := root.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func serveCommand(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, logger)
		},
	}
}

func migrateCommand(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			store, err := sqlite.Open(cfg.SQLiteDSN)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer store.Close()

			if err := store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("failed to apply migrations: %w", err)
			}
			logger.Info("migrations applied", "dsn", cfg.SQLiteDSN)
			return nil
		},
	}
}

func runServer(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close store", "error", cerr)
		}
	}()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	if err := store.SeedSettings(ctx, seedSettings(cfg)); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	idGenerator := uuid.NewString
	now := time.Now

	dayService := application.NewDayService(store.Days, store.Settings, now, logger)
	settingsService := application.NewSettingsService(store.Settings, logger)
	weekService := application.NewWeekService(store.Days, store.Settings, store.Holidays, store.TimeOff, now, logger)
	holidayService := application.NewHolidayService(store.Holidays, store.TimeOff, idGenerator, now, logger)
	calendarService := application.NewCalendarService(store.Days, store.Settings, store.Holidays, store.TimeOff, now, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Days:       httptransport.NewDayHandler(dayService, logger),
		Weeks:      httptransport.NewWeekHandler(weekService, logger),
		Settings:   httptransport.NewSettingsHandler(settingsService, logger),
		Holidays:   httptransport.NewHolidayHandler(holidayService, logger),
		Calendar:   httptransport.NewCalendarHandler(calendarService, logger),
		Middleware: []func(http.Handler) http.Handler{httptransport.RequestLogger(logger)},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("time tracker API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func seedSettings(cfg config.Config) map[string]string {
	defaults := application.DefaultSettings()
	defaults["daily_soft_minutes"] = strconv.Itoa(cfg.DailySoftMinutes)
	defaults["daily_hard_minutes"] = strconv.Itoa(cfg.DailyHardMinutes)
	defaults["workdays_per_week"] = strconv.Itoa(cfg.WorkdaysPerWeek)
	return defaults
}
