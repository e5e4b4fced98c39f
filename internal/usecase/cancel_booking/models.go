package cancel_booking

import (
	"time"

	"github.com/lepotilnica/SalonBookingService/pkg/types"
)

// Request модель запроса отмены по токену
type Request struct {
	Token string
}

// Response модель ответа отмены
type Response struct {
	BookingID    int64
	CustomerName string
	ServiceName  string
	Date         time.Time
	StartTime    types.TimeString
}
