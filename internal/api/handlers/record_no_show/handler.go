package record_no_show

import (
	"errors"
	"net/http"

	"github.com/lepotilnica/SalonBookingService/internal/api/handlers"
	recordNoShow "github.com/lepotilnica/SalonBookingService/internal/usecase/record_no_show"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBookingID   = "invalid booking ID"
	msgBookingNotFound    = "booking not found"
	msgAlreadyCancelled   = "booking is already cancelled"
)

type Handler struct {
	useCase RecordNoShowUseCase
	logger  Logger
}

func NewHandler(useCase RecordNoShowUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/admin/no-shows
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RecordNoShowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/no-shows - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &recordNoShow.Request{BookingID: req.BookingID})
	if err != nil {
		switch {
		case errors.Is(err, recordNoShow.ErrInvalidInput):
			h.logger.Warn("POST /admin/no-shows - Invalid booking ID: %d", req.BookingID)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		case errors.Is(err, recordNoShow.ErrBookingNotFound):
			h.logger.Warn("POST /admin/no-shows - Booking id=%d not found", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, recordNoShow.ErrAlreadyCancelled):
			h.logger.Warn("POST /admin/no-shows - Booking id=%d already cancelled", req.BookingID)
			handlers.RespondBadRequest(w, msgAlreadyCancelled)

		default:
			h.logger.Error("POST /admin/no-shows - Failed for booking id=%d: %v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/no-shows - %s", result.Message)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
