package delete_blocked_time

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lepotilnica/SalonBookingService/internal/api/handlers"
	"github.com/lepotilnica/SalonBookingService/internal/service/blockedtimes"
)

const (
	msgInvalidBlockID = "invalid blocked time ID"
	msgBlockNotFound  = "blocked time not found"
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

// Handle DELETE /api/admin/blocked-times/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, blockedtimes.ErrBlockNotFound):
			h.logger.Warn("DELETE /admin/blocked-times - Block id=%d not found", id)
			handlers.RespondNotFound(w, msgBlockNotFound)
		default:
			h.logger.Error("DELETE /admin/blocked-times - Failed for id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
