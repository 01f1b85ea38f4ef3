package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/marceloc10uy/TimeTracker/internal/application"
)

type calendarService interface {
	Year(ctx context.Context, year int) (application.YearView, error)
}

// CalendarHandler exposes the read-only year aggregate over HTTP.
type CalendarHandler struct {
	service   calendarService
	responder responder
}

// NewCalendarHandler builds the calendar handler.
func NewCalendarHandler(service calendarService, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{service: service, responder: newResponder(logger)}
}

func (h *CalendarHandler) Year(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	year, err := strconv.Atoi(strings.TrimSpace(r.PathValue("year")))
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidYear)
		return
	}

	view, err := h.service.Year(r.Context(), year)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toYearResponse(view))
}
