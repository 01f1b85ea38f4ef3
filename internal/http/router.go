// Package http wires the application services to their JSON endpoints.
package http

import "net/http"

// RouterConfig lists the handlers and middleware the router composes.
type RouterConfig struct {
	Days       *DayHandler
	Weeks      *WeekHandler
	Settings   *SettingsHandler
	Holidays   *HolidayHandler
	Calendar   *CalendarHandler
	Middleware []func(http.Handler) http.Handler
}

// NewRouter builds the API route table.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Days != nil {
		mux.HandleFunc("GET /api/day/{date}", cfg.Days.Get)
		mux.HandleFunc("POST /api/day/{date}/start-now", cfg.Days.StartNow)
		mux.HandleFunc("POST /api/day/{date}/start-at", cfg.Days.StartAt)
		mux.HandleFunc("POST /api/day/{date}/end-now", cfg.Days.EndNow)
		mux.HandleFunc("POST /api/day/{date}/end-at", cfg.Days.EndAt)
		mux.HandleFunc("POST /api/day/{date}/clear-end", cfg.Days.ClearEnd)
		mux.HandleFunc("POST /api/day/{date}/break/add", cfg.Days.BreakAdd)
		mux.HandleFunc("POST /api/day/{date}/break/subtract", cfg.Days.BreakSubtract)
		mux.HandleFunc("POST /api/day/{date}/break/start", cfg.Days.BreakStart)
		mux.HandleFunc("POST /api/day/{date}/break/end", cfg.Days.BreakEnd)
		mux.HandleFunc("PATCH /api/day/{date}", cfg.Days.Patch)
	}

	if cfg.Weeks != nil {
		mux.HandleFunc("GET /api/week/{date}", cfg.Weeks.Get)
	}

	if cfg.Settings != nil {
		mux.HandleFunc("GET /api/settings", cfg.Settings.Get)
		mux.HandleFunc("PATCH /api/settings", cfg.Settings.Patch)
	}

	if cfg.Holidays != nil {
		mux.HandleFunc("GET /api/recurring-holidays", cfg.Holidays.ListRecurring)
		mux.HandleFunc("POST /api/recurring-holidays", cfg.Holidays.CreateRecurring)
		mux.HandleFunc("DELETE /api/recurring-holidays/{id}", cfg.Holidays.DeleteRecurring)

		mux.HandleFunc("GET /api/time-off", cfg.Holidays.ListTimeOff)
		mux.HandleFunc("POST /api/time-off", cfg.Holidays.CreateTimeOff)
		mux.HandleFunc("DELETE /api/time-off/{id}", cfg.Holidays.DeleteTimeOff)

		mux.HandleFunc("POST /api/calendar/reconcile", cfg.Holidays.Reconcile)
		mux.HandleFunc("POST /api/calendar/edit/begin", cfg.Holidays.EditBegin)
		mux.HandleFunc("POST /api/calendar/edit/toggle", cfg.Holidays.EditToggle)
		mux.HandleFunc("GET /api/calendar/edit", cfg.Holidays.EditState)
		mux.HandleFunc("POST /api/calendar/edit/cancel", cfg.Holidays.EditCancel)
		mux.HandleFunc("POST /api/calendar/edit/submit", cfg.Holidays.EditSubmit)
	}

	if cfg.Calendar != nil {
		mux.HandleFunc("GET /api/calendar/year/{year}", cfg.Calendar.Year)
	}

	var handler http.Handler = mux
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		if cfg.Middleware[i] != nil {
			handler = cfg.Middleware[i](handler)
		}
	}

	return handler
}
