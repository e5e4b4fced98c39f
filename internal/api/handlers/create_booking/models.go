package create_booking

import (
	"time"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	createBooking "github.com/lepotilnica/SalonBookingService/internal/usecase/create_booking"
	"github.com/lepotilnica/SalonBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model.
// ServiceID поддерживается для старых клиентов с одной услугой.
type CreateBookingRequest struct {
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	ServiceIDs    []int64 `json:"serviceIds"`
	ServiceID     *int64  `json:"serviceId,omitempty"`
	Date          string  `json:"date"`      // "2026-03-15"
	StartTime     string  `json:"startTime"` // "14:00"
	Notes         *string `json:"notes,omitempty"`
}

// BookedServiceResponse одно созданное бронирование в ответе
type BookedServiceResponse struct {
	ID                int64  `json:"id"`
	ServiceID         int64  `json:"serviceId"`
	ServiceName       string `json:"serviceName"`
	Date              string `json:"date"`
	StartTime         string `json:"startTime"`
	DurationMinutes   int    `json:"durationMinutes"`
	PriceCents        int64  `json:"priceCents"`
	Status            string `json:"status"`
	CancellationToken string `json:"cancellationToken"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Bookings             []BookedServiceResponse `json:"bookings"`
	TotalPriceCents      int64                   `json:"totalPriceCents"`
	TotalDurationMinutes int                     `json:"totalDurationMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	serviceIDs := r.ServiceIDs
	if len(serviceIDs) == 0 && r.ServiceID != nil {
		serviceIDs = []int64{*r.ServiceID}
	}

	return &createBooking.Request{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		ServiceIDs:    serviceIDs,
		Date:          date,
		StartTime:     startTime,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	bookings := make([]BookedServiceResponse, 0, len(resp.Bookings))
	for _, b := range resp.Bookings {
		bookings = append(bookings, BookedServiceResponse{
			ID:                b.ID,
			ServiceID:         b.ServiceID,
			ServiceName:       b.ServiceName,
			Date:              b.Date.Format(domain.DateFormat),
			StartTime:         b.StartTime.String(),
			DurationMinutes:   b.DurationMinutes,
			PriceCents:        b.PriceCents,
			Status:            b.Status,
			CancellationToken: b.CancellationToken,
		})
	}

	return &CreateBookingResponse{
		Bookings:             bookings,
		TotalPriceCents:      resp.TotalPriceCents,
		TotalDurationMinutes: resp.TotalDurationMinutes,
	}
}
