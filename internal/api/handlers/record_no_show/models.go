package record_no_show

import (
	recordNoShow "github.com/lepotilnica/SalonBookingService/internal/usecase/record_no_show"
)

// RecordNoShowRequest HTTP request model
type RecordNoShowRequest struct {
	BookingID int64 `json:"bookingId"`
}

// RecordNoShowResponse HTTP response model
type RecordNoShowResponse struct {
	CustomerEmail string `json:"customerEmail"`
	NoShowCount   int    `json:"noShowCount"`
	Blacklisted   bool   `json:"blacklisted"`
	Message       string `json:"message"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *recordNoShow.Response) *RecordNoShowResponse {
	return &RecordNoShowResponse{
		CustomerEmail: resp.CustomerEmail,
		NoShowCount:   resp.NoShowCount,
		Blacklisted:   resp.Blacklisted,
		Message:       resp.Message,
	}
}
