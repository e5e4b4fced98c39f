package delete_customer_note

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lepotilnica/SalonBookingService/internal/api/handlers"
	"github.com/lepotilnica/SalonBookingService/internal/service/customers"
)

const (
	msgInvalidNoteID = "invalid note ID"
	msgNoteNotFound  = "customer note not found"
)

type Handler struct {
	service CustomersService
	logger  Logger
}

func NewHandler(service CustomersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/admin/customers/notes/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidNoteID)
		return
	}

	if err := h.service.DeleteNote(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, customers.ErrNoteNotFound):
			h.logger.Warn("DELETE /admin/customers/notes - Note id=%d not found", id)
			handlers.RespondNotFound(w, msgNoteNotFound)
		default:
			h.logger.Error("DELETE /admin/customers/notes - Failed for id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
