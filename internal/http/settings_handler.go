package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/marceloc10uy/TimeTracker/internal/application"
)

type settingsService interface {
	Get(ctx context.Context) (application.Settings, error)
	Patch(ctx context.Context, patch application.SettingsPatch) (application.Settings, error)
}

// SettingsHandler exposes target configuration over HTTP.
type SettingsHandler struct {
	service   settingsService
	responder responder
}

// NewSettingsHandler builds the settings handler.
func NewSettingsHandler(service settingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{service: service, responder: newResponder(logger)}
}

type settingsPatchRequest struct {
	DailySoftMinutes *int `json:"daily_soft_minutes"`
	DailyHardMinutes *int `json:"daily_hard_minutes"`
	WorkdaysPerWeek  *int `json:"workdays_per_week"`
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	settings, err := h.service.Get(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toSettingsResponse(settings))
}

func (h *SettingsHandler) Patch(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req settingsPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	settings, err := h.service.Patch(r.Context(), application.SettingsPatch{
		DailySoftMinutes: req.DailySoftMinutes,
		DailyHardMinutes: req.DailyHardMinutes,
		WorkdaysPerWeek:  req.WorkdaysPerWeek,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toSettingsResponse(settings))
}
