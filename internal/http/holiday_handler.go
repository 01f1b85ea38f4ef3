package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/marceloc10uy/TimeTracker/internal/application"
	"github.com/marceloc10uy/TimeTracker/internal/offdays"
)

type holidayService interface {
	ListRecurring(ctx context.Context) ([]application.RecurringHolidayView, error)
	UpsertRecurring(ctx context.Context, month, day int, label *string) (application.RecurringHolidayView, error)
	DeleteRecurring(ctx context.Context, id string) error

	ListTimeOff(ctx context.Context, from, to *string) ([]application.TimeOffView, error)
	CreateTimeOff(ctx context.Context, startDate, endDate, kind string, label *string) (application.TimeOffView, error)
	DeleteTimeOff(ctx context.Context, id string) error

	ReconcilePersonal(ctx context.Context, year int, selected []string, kind string, label *string) (application.ReconcileResult, error)
	ReconcileRecurring(ctx context.Context, year int, selected []offdays.MonthDay, label *string) (application.ReconcileResult, error)

	BeginEdit(ctx context.Context, mode string, year int) (application.EditState, error)
	ToggleEdit(key string) (application.EditState, error)
	EditSelection() application.EditState
	CancelEdit() application.EditState
	SubmitEdit(ctx context.Context, kind string, label *string) (application.ReconcileResult, error)
}

// HolidayHandler exposes recurring holidays, time-off ranges and the
// calendar edit session over HTTP.
type HolidayHandler struct {
	service   holidayService
	responder responder
}

// NewHolidayHandler builds the holiday handler.
func NewHolidayHandler(service holidayService, logger *slog.Logger) *HolidayHandler {
	return &HolidayHandler{service: service, responder: newResponder(logger)}
}

type recurringHolidayRequest struct {
	Month int     `json:"month"`
	Day   int     `json:"day"`
	Label *string `json:"label"`
}

type timeOffRequest struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Kind      string  `json:"kind"`
	Label     *string `json:"label"`
}

type reconcileRequest struct {
	Mode  string   `json:"mode"`
	Year  int      `json:"year"`
	Days  []string `json:"days"`
	Kind  string   `json:"kind"`
	Label *string  `json:"label"`
}

type editBeginRequest struct {
	Mode string `json:"mode"`
	Year int    `json:"year"`
}

type editToggleRequest struct {
	Key string `json:"key"`
}

type editSubmitRequest struct {
	Kind  string  `json:"kind"`
	Label *string `json:"label"`
}

func (h *HolidayHandler) ListRecurring(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}

	holidays, err := h.service.ListRecurring(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	views := make([]recurringHolidayResponse, 0, len(holidays))
	for _, holiday := range holidays {
		views = append(views, toRecurringHolidayResponse(holiday))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, views)
}

func (h *HolidayHandler) CreateRecurring(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}

	var req recurringHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	holiday, err := h.service.UpsertRecurring(r.Context(), req.Month, req.Day, req.Label)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toRecurringHolidayResponse(holiday))
}

func (h *HolidayHandler) DeleteRecurring(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	if err := h.service.DeleteRecurring(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *HolidayHandler) ListTimeOff(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}

	var from, to *string
	if value := strings.TrimSpace(r.URL.Query().Get("from")); value != "" {
		from = &value
	}
	if value := strings.TrimSpace(r.URL.Query().Get("to")); value != "" {
		to = &value
	}

	ranges, err := h.service.ListTimeOff(r.Context(), from, to)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	views := make([]timeOffResponse, 0, len(ranges))
	for _, rng := range ranges {
		views = append(views, toTimeOffResponse(rng))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, views)
}

func (h *HolidayHandler) CreateTimeOff(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}

	var req timeOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	timeOff, err := h.service.CreateTimeOff(r.Context(), req.StartDate, req.EndDate, req.Kind, req.Label)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toTimeOffResponse(timeOff))
}

func (h *HolidayHandler) DeleteTimeOff(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	if err := h.service.DeleteTimeOff(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// Reconcile applies a full day selection in one stateless call.
func (h *HolidayHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}

	var req reconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	var result application.ReconcileResult
	var err error
	switch req.Mode {
	case "personal":
		kind := req.Kind
		if kind == "" {
			kind = application.KindVacation
		}
		result, err = h.service.ReconcilePersonal(r.Context(), req.Year, req.Days, kind, req.Label)
	case "yearly":
		keys := make([]offdays.MonthDay, 0, len(req.Days))
		for _, raw := range req.Days {
			key, parseErr := application.ParseMonthDayKey(raw)
			if parseErr != nil {
				h.responder.writeError(r.Context(), w, http.StatusUnprocessableEntity, parseErr)
				return
			}
			keys = append(keys, key)
		}
		result, err = h.service.ReconcileRecurring(r.Context(), req.Year, keys, req.Label)
	default:
		h.responder.writeJSON(r.Context(), w, http.StatusUnprocessableEntity, errorResponse{
			Message: "the request contains invalid values",
			Errors:  map[string]string{"mode": "must be personal or yearly"},
		})
		return
	}
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, reconcileResultResponse{Deleted: result.Deleted, Created: result.Created})
}

func (h *HolidayHandler) EditBegin(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}

	var req editBeginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	state, err := h.service.BeginEdit(r.Context(), req.Mode, req.Year)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toEditStateResponse(state))
}

func (h *HolidayHandler) EditToggle(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}

	var req editToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	state, err := h.service.ToggleEdit(req.Key)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toEditStateResponse(state))
}

func (h *HolidayHandler) EditState(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toEditStateResponse(h.service.EditSelection()))
}

func (h *HolidayHandler) EditCancel(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toEditStateResponse(h.service.CancelEdit()))
}

func (h *HolidayHandler) EditSubmit(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}

	var req editSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	result, err := h.service.SubmitEdit(r.Context(), req.Kind, req.Label)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, reconcileResultResponse{Deleted: result.Deleted, Created: result.Created})
}

func (h *HolidayHandler) ready(w http.ResponseWriter) bool {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return false
	}
	return true
}
