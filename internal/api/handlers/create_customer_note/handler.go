package create_customer_note

import (
	"errors"
	"net/http"

	"github.com/lepotilnica/SalonBookingService/internal/api/handlers"
	"github.com/lepotilnica/SalonBookingService/internal/service/customers"
	"github.com/lepotilnica/SalonBookingService/internal/service/customers/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidNote        = "customerEmail and note are required"
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

// Handle POST /api/admin/customers/notes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.AddNoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/customers/notes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddNote(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrInvalidInput):
			h.logger.Warn("POST /admin/customers/notes - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidNote)
		default:
			h.logger.Error("POST /admin/customers/notes - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}
