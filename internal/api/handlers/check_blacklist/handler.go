package check_blacklist

import (
	"errors"
	"net/http"

	"github.com/lepotilnica/SalonBookingService/internal/api/handlers"
	"github.com/lepotilnica/SalonBookingService/internal/service/noshows"
)

const msgInvalidEmail = "email is required"

type Handler struct {
	service NoShowsService
	logger  Logger
}

func NewHandler(service NoShowsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/admin/blacklist?email=
// Без параметра email возвращает весь черный список.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		result, err := h.service.List(r.Context())
		if err != nil {
			h.logger.Error("GET /admin/blacklist - Failed to list: %v", err)
			handlers.RespondInternalError(w)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, result)
		return
	}

	result, err := h.service.Check(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, noshows.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidEmail)
		default:
			h.logger.Error("GET /admin/blacklist - Failed to check %s: %v", email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
