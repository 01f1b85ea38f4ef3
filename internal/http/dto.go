package http

import (
	"github.com/marceloc10uy/TimeTracker/internal/application"
	"github.com/marceloc10uy/TimeTracker/internal/worktime"
)

type targetsResponse struct {
	DailySoft int `json:"daily_soft"`
	DailyHard int `json:"daily_hard"`
}

type dayStatusResponse struct {
	Daily         string `json:"daily"`
	Pct           int    `json:"pct"`
	SoftPct       int    `json:"soft_pct"`
	OverSoftBy    int    `json:"over_soft_by"`
	OverHardBy    int    `json:"over_hard_by"`
	SoftRemaining int    `json:"soft_remaining"`
	HardRemaining int    `json:"hard_remaining"`
}

type daySummaryResponse struct {
	Date         string  `json:"date"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	BreakMinutes int     `json:"break_minutes"`
	BreakRunning bool    `json:"break_running"`
	BreakStart   *string `json:"break_start"`
	Notes        *string `json:"notes"`

	Running      bool   `json:"running"`
	GrossMinutes int    `json:"gross_minutes"`
	NetMinutes   int    `json:"net_minutes"`
	NetDisplay   string `json:"net_display"`

	Targets targetsResponse   `json:"targets"`
	Status  dayStatusResponse `json:"status"`
}

func toDaySummaryResponse(summary application.DaySummary) daySummaryResponse {
	return daySummaryResponse{
		Date:         summary.Date,
		StartTime:    summary.StartTime,
		EndTime:      summary.EndTime,
		BreakMinutes: summary.BreakMinutes,
		BreakRunning: summary.BreakRunning,
		BreakStart:   summary.BreakStart,
		Notes:        summary.Notes,
		Running:      summary.Running,
		GrossMinutes: summary.GrossMinutes,
		NetMinutes:   summary.NetMinutes,
		NetDisplay:   worktime.FormatMinutes(summary.NetMinutes),
		Targets: targetsResponse{
			DailySoft: summary.DailySoft,
			DailyHard: summary.DailyHard,
		},
		Status: dayStatusResponse{
			Daily:         string(summary.Status.State),
			Pct:           summary.Status.Pct,
			SoftPct:       summary.Status.SoftPct,
			OverSoftBy:    summary.Status.OverSoftBy,
			OverHardBy:    summary.Status.OverHardBy,
			SoftRemaining: summary.Status.SoftRemaining,
			HardRemaining: summary.Status.HardRemaining,
		},
	}
}

type offRangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type offInfoResponse struct {
	Source   string            `json:"source"`
	Kind     string            `json:"kind"`
	Label    *string           `json:"label"`
	RecordID string            `json:"record_id"`
	Range    *offRangeResponse `json:"range,omitempty"`
}

type dayOffResponse struct {
	Recurring *offInfoResponse `json:"recurring,omitempty"`
	Personal  *offInfoResponse `json:"personal,omitempty"`
	IsBoth    bool             `json:"is_both"`
}

func toDayOffResponse(off *application.DayOff) *dayOffResponse {
	if off == nil {
		return nil
	}
	resp := &dayOffResponse{IsBoth: off.IsBoth()}
	if off.Recurring != nil {
		resp.Recurring = toOffInfoResponse(off.Recurring)
	}
	if off.Personal != nil {
		resp.Personal = toOffInfoResponse(off.Personal)
	}
	return resp
}

func toOffInfoResponse(info *application.OffInfo) *offInfoResponse {
	resp := &offInfoResponse{
		Source:   info.Source,
		Kind:     info.Kind,
		Label:    info.Label,
		RecordID: info.RecordID,
	}
	if info.RangeStart != "" {
		resp.Range = &offRangeResponse{Start: info.RangeStart, End: info.RangeEnd}
	}
	return resp
}

type dayRowResponse struct {
	daySummaryResponse
	IsOff bool            `json:"is_off"`
	Off   *dayOffResponse `json:"off"`
}

type weekStatusResponse struct {
	RemainingWorkdays    int  `json:"remaining_workdays"`
	SoftRemainingMinutes int  `json:"soft_remaining_minutes"`
	HardRemainingMinutes int  `json:"hard_remaining_minutes"`
	PaceSoftPerDay       *int `json:"pace_soft_per_day"`
	PaceHardPerDay       *int `json:"pace_hard_per_day"`
}

type weekResponse struct {
	WeekStart      string             `json:"week_start"`
	WeekEnd        string             `json:"week_end"`
	WorkingDays    int                `json:"working_days"`
	WeeklySoft     int                `json:"weekly_soft"`
	WeeklyHard     int                `json:"weekly_hard"`
	WeekNetMinutes int                `json:"week_net_minutes"`
	WeekNetDisplay string             `json:"week_net_display"`
	Days           []dayRowResponse   `json:"days"`
	Status         weekStatusResponse `json:"status"`
}

func toWeekResponse(view application.WeekView) weekResponse {
	days := make([]dayRowResponse, 0, len(view.Days))
	for _, row := range view.Days {
		days = append(days, dayRowResponse{
			daySummaryResponse: toDaySummaryResponse(row.DaySummary),
			IsOff:              row.IsOff,
			Off:                toDayOffResponse(row.Off),
		})
	}
	return weekResponse{
		WeekStart:      view.WeekStart,
		WeekEnd:        view.WeekEnd,
		WorkingDays:    view.WorkingDays,
		WeeklySoft:     view.WeeklySoft,
		WeeklyHard:     view.WeeklyHard,
		WeekNetMinutes: view.WeekNetMinutes,
		WeekNetDisplay: worktime.FormatMinutes(view.WeekNetMinutes),
		Days:           days,
		Status: weekStatusResponse{
			RemainingWorkdays:    view.Status.RemainingWorkdays,
			SoftRemainingMinutes: view.Status.SoftRemaining,
			HardRemainingMinutes: view.Status.HardRemaining,
			PaceSoftPerDay:       view.Status.PaceSoftPerDay,
			PaceHardPerDay:       view.Status.PaceHardPerDay,
		},
	}
}

type settingsResponse struct {
	DailySoftMinutes  int `json:"daily_soft_minutes"`
	DailyHardMinutes  int `json:"daily_hard_minutes"`
	WorkdaysPerWeek   int `json:"workdays_per_week"`
	WeeklySoftMinutes int `json:"weekly_soft_minutes"`
	WeeklyHardMinutes int `json:"weekly_hard_minutes"`
}

func toSettingsResponse(settings application.Settings) settingsResponse {
	return settingsResponse{
		DailySoftMinutes:  settings.DailySoftMinutes,
		DailyHardMinutes:  settings.DailyHardMinutes,
		WorkdaysPerWeek:   settings.WorkdaysPerWeek,
		WeeklySoftMinutes: settings.WeeklySoftMinutes,
		WeeklyHardMinutes: settings.WeeklyHardMinutes,
	}
}

type recurringHolidayResponse struct {
	ID    string  `json:"id"`
	Month int     `json:"month"`
	Day   int     `json:"day"`
	Label *string `json:"label"`
}

func toRecurringHolidayResponse(view application.RecurringHolidayView) recurringHolidayResponse {
	return recurringHolidayResponse{ID: view.ID, Month: view.Month, Day: view.Day, Label: view.Label}
}

type timeOffResponse struct {
	ID        string  `json:"id"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Kind      string  `json:"kind"`
	Label     *string `json:"label"`
}

func toTimeOffResponse(view application.TimeOffView) timeOffResponse {
	return timeOffResponse{
		ID:        view.ID,
		StartDate: view.StartDate,
		EndDate:   view.EndDate,
		Kind:      view.Kind,
		Label:     view.Label,
	}
}

type reconcileResultResponse struct {
	Deleted int `json:"deleted"`
	Created int `json:"created"`
}

type yearDayResponse struct {
	Date       string          `json:"date"`
	NetMinutes int             `json:"net_minutes"`
	IsOff      bool            `json:"is_off"`
	Off        *dayOffResponse `json:"off,omitempty"`
}

type yearResponse struct {
	Year      int               `json:"year"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
	Days      []yearDayResponse `json:"days"`
}

func toYearResponse(view application.YearView) yearResponse {
	days := make([]yearDayResponse, 0, len(view.Days))
	for _, day := range view.Days {
		days = append(days, yearDayResponse{
			Date:       day.Date,
			NetMinutes: day.NetMinutes,
			IsOff:      day.IsOff,
			Off:        toDayOffResponse(day.Off),
		})
	}
	return yearResponse{
		Year:      view.Year,
		StartDate: view.StartDate,
		EndDate:   view.EndDate,
		Days:      days,
	}
}

type editStateResponse struct {
	Editing  bool     `json:"editing"`
	Mode     string   `json:"mode"`
	Year     int      `json:"year"`
	Selected []string `json:"selected"`
}

func toEditStateResponse(state application.EditState) editStateResponse {
	selected := state.Selected
	if selected == nil {
		selected = []string{}
	}
	return editStateResponse{
		Editing:  state.Editing,
		Mode:     state.Mode,
		Year:     state.Year,
		Selected: selected,
	}
}
