package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/marceloc10uy/TimeTracker/internal/application"
)

type weekService interface {
	BuildWeek(ctx context.Context, referenceDate string) (application.WeekView, error)
}

// WeekHandler exposes the Monday to Friday aggregate over HTTP.
type WeekHandler struct {
	service   weekService
	responder responder
}

// NewWeekHandler builds the week handler.
func NewWeekHandler(service weekService, logger *slog.Logger) *WeekHandler {
	return &WeekHandler{service: service, responder: newResponder(logger)}
}

func (h *WeekHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	date := strings.TrimSpace(r.PathValue("date"))
	if date == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return
	}

	view, err := h.service.BuildWeek(r.Context(), date)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toWeekResponse(view))
}
