package create_blocked_time

import (
	"errors"
	"net/http"

	"github.com/lepotilnica/SalonBookingService/internal/api/handlers"
	"github.com/lepotilnica/SalonBookingService/internal/service/blockedtimes"
	"github.com/lepotilnica/SalonBookingService/internal/service/blockedtimes/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidTimeRange   = "start time must be before end time"
)

type Handler struct {
	service BlockedTimesService
	logger  Logger
}

func NewHandler(service BlockedTimesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/admin/blocked-times
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-times - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, blockedtimes.ErrInvalidTimeRange):
			h.logger.Warn("POST /admin/blocked-times - Invalid time range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, blockedtimes.ErrInvalidInput):
			h.logger.Warn("POST /admin/blocked-times - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /admin/blocked-times - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}
