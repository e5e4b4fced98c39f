package create_customer_note

import (
	"context"

	"github.com/lepotilnica/SalonBookingService/internal/service/customers/models"
)

type CustomersService interface {
	AddNote(ctx context.Context, req *models.AddNoteRequest) (*models.NoteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
