package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/marceloc10uy/TimeTracker/internal/application"
)

type dayService interface {
	GetDay(ctx context.Context, date string) (application.DaySummary, error)
	StartNow(ctx context.Context, date string) (application.DaySummary, error)
	StartAt(ctx context.Context, date, startTime string) (application.DaySummary, error)
	EndNow(ctx context.Context, date string) (application.DaySummary, error)
	EndAt(ctx context.Context, date, endTime string) (application.DaySummary, error)
	ClearEnd(ctx context.Context, date string) (application.DaySummary, error)
	AddBreak(ctx context.Context, date string, minutes int) (application.DaySummary, error)
	SubtractBreak(ctx context.Context, date string, minutes int) (application.DaySummary, error)
	StartBreak(ctx context.Context, date string) (application.DaySummary, error)
	EndBreak(ctx context.Context, date string) (application.DaySummary, error)
	Patch(ctx context.Context, date string, patch application.DayPatch) (application.DaySummary, error)
}

// DayHandler exposes the per-day operations over HTTP.
type DayHandler struct {
	service   dayService
	responder responder
}

// NewDayHandler builds the day handler.
func NewDayHandler(service dayService, logger *slog.Logger) *DayHandler {
	return &DayHandler{service: service, responder: newResponder(logger)}
}

type startAtRequest struct {
	StartTime string `json:"start_time"`
}

type endAtRequest struct {
	EndTime string `json:"end_time"`
}

type minutesRequest struct {
	Minutes int `json:"minutes"`
}

type dayPatchRequest struct {
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	BreakMinutes *int    `json:"break_minutes"`
	Notes        *string `json:"notes"`
}

func (h *DayHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ctx context.Context, date string) (application.DaySummary, error) {
		return h.service.GetDay(ctx, date)
	})
}

func (h *DayHandler) StartNow(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ctx context.Context, date string) (application.DaySummary, error) {
		return h.service.StartNow(ctx, date)
	})
}

func (h *DayHandler) StartAt(w http.ResponseWriter, r *http.Request) {
	var req startAtRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.run(w, r, func(ctx context.Context, date string) (application.DaySummary, error) {
		return h.service.StartAt(ctx, date, req.StartTime)
	})
}

func (h *DayHandler) EndNow(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ctx context.Context, date string) (application.DaySummary, error) {
		return h.service.EndNow(ctx, date)
	})
}

func (h *DayHandler) EndAt(w http.ResponseWriter, r *http.Request) {
	var req endAtRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.run(w, r, func(ctx context.Context, date string) (application.DaySummary, error) {
		return h.service.EndAt(ctx, date, req.EndTime)
	})
}

func (h *DayHandler) ClearEnd(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ctx context.Context, date string) (application.DaySummary, error) {
		return h.service.ClearEnd(ctx, date)
	})
}

func (h *DayHandler) BreakAdd(w http.ResponseWriter, r *http.Request) {
	var req minutesRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.run(w, r, func(ctx context.Context, date string) (application.DaySummary, error) {
		return h.service.AddBreak(ctx, date, req.Minutes)
	})
}

func (h *DayHandler) BreakSubtract(w http.ResponseWriter, r *http.Request) {
	var req minutesRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.run(w, r, func(ctx context.Context, date string) (application.DaySummary, error) {
		return h.service.SubtractBreak(ctx, date, req.Minutes)
	})
}

func (h *DayHandler) BreakStart(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ctx context.Context, date string) (application.DaySummary, error) {
		return h.service.StartBreak(ctx, date)
	})
}

func (h *DayHandler) BreakEnd(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ctx context.Context, date string) (application.DaySummary, error) {
		return h.service.EndBreak(ctx, date)
	})
}

func (h *DayHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req dayPatchRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.run(w, r, func(ctx context.Context, date string) (application.DaySummary, error) {
		return h.service.Patch(ctx, date, application.DayPatch{
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			BreakMinutes: req.BreakMinutes,
			Notes:        req.Notes,
		})
	})
}

// run resolves the {date} path value, invokes the operation and renders the
// resulting day summary.
func (h *DayHandler) run(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, date string) (application.DaySummary, error)) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	date := strings.TrimSpace(r.PathValue("date"))
	if date == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return
	}

	summary, err := op(r.Context(), date)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toDaySummaryResponse(summary))
}

func (h *DayHandler) decode(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return false
	}
	return true
}
