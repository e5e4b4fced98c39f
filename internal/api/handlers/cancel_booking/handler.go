package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lepotilnica/SalonBookingService/internal/api/handlers"
	cancelBooking "github.com/lepotilnica/SalonBookingService/internal/usecase/cancel_booking"
)

const (
	msgInvalidToken     = "invalid cancellation token"
	msgBookingNotFound  = "booking not found"
	msgAlreadyCancelled = "booking is already cancelled"
	msgTooLateToCancel  = "bookings can only be cancelled at least 24 hours in advance"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/cancel/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{Token: token})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrInvalidToken):
			h.logger.Warn("GET /cancel - Invalid token")
			handlers.RespondBadRequest(w, msgInvalidToken)

		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("GET /cancel - Booking not found")
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, cancelBooking.ErrAlreadyCancelled):
			h.logger.Warn("GET /cancel - Already cancelled: %v", err)
			handlers.RespondBadRequest(w, msgAlreadyCancelled)

		case errors.Is(err, cancelBooking.ErrTooLateToCancel):
			h.logger.Warn("GET /cancel - Too late to cancel: %v", err)
			handlers.RespondForbidden(w, msgTooLateToCancel)

		default:
			h.logger.Error("GET /cancel - Failed to cancel booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /cancel - Booking %d cancelled", result.BookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
