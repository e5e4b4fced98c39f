package create_booking

import (
	"time"

	"github.com/lepotilnica/SalonBookingService/pkg/types"
)

// Request модель запроса создания записи.
// ServiceIDs размещаются последовательно начиная со StartTime,
// в порядке перечисления.
type Request struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ServiceIDs    []int64
	Date          time.Time
	StartTime     types.TimeString
	Notes         *string
}

// BookedService созданное бронирование одной услуги
type BookedService struct {
	ID                int64
	ServiceID         int64
	ServiceName       string
	Date              time.Time
	StartTime         types.TimeString
	DurationMinutes   int
	PriceCents        int64
	Status            string
	CancellationToken string
}

// Response модель ответа создания записи
type Response struct {
	Bookings             []BookedService
	TotalPriceCents      int64
	TotalDurationMinutes int
}
