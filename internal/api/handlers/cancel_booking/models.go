package cancel_booking

import (
	"github.com/lepotilnica/SalonBookingService/internal/domain"
	cancelBooking "github.com/lepotilnica/SalonBookingService/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Cancelled    bool   `json:"cancelled"`
	BookingID    int64  `json:"bookingId"`
	CustomerName string `json:"customerName"`
	ServiceName  string `json:"serviceName"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		Cancelled:    true,
		BookingID:    resp.BookingID,
		CustomerName: resp.CustomerName,
		ServiceName:  resp.ServiceName,
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
	}
}
