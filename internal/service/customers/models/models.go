package models

import (
	"time"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
)

// Request модели

// AddNoteRequest запрос на добавление админской заметки
type AddNoteRequest struct {
	CustomerEmail string `json:"customerEmail"`
	Note          string `json:"note"`
}

// Response модели

// BookingNote заметка, оставленная клиентом при создании записи
type BookingNote struct {
	Note        string `json:"note"`
	Date        string `json:"date"`
	ServiceName string `json:"serviceName"`
	BookingID   int64  `json:"bookingId"`
}

// AdminNote админская заметка о клиенте
type AdminNote struct {
	ID        int64  `json:"id"`
	Note      string `json:"note"`
	CreatedAt string `json:"createdAt"`
}

// CustomerResponse клиент со сводкой по истории и заметками.
// LastVisit пуст у клиентов без записей (только с админскими заметками).
type CustomerResponse struct {
	Email         string         `json:"email"`
	Name          string         `json:"name"`
	Phone         string         `json:"phone"`
	TotalBookings int            `json:"totalBookings"`
	LastVisit     string         `json:"lastVisit"`
	NoShowCount   int            `json:"noShowCount"`
	BookingNotes  []*BookingNote `json:"bookingNotes"`
	AdminNotes    []*AdminNote   `json:"adminNotes"`
}

// CustomerListResponse список клиентов
type CustomerListResponse struct {
	Customers []*CustomerResponse `json:"customers"`
	Total     int                 `json:"total"`
}

// NoteResponse созданная админская заметка
type NoteResponse struct {
	ID            int64  `json:"id"`
	CustomerEmail string `json:"customerEmail"`
	Note          string `json:"note"`
	Author        string `json:"author"`
	CreatedAt     string `json:"createdAt"`
}

// FromDomainNote конвертирует domain модель в response
func FromDomainNote(n *domain.CustomerNote) *NoteResponse {
	return &NoteResponse{
		ID:            n.ID,
		CustomerEmail: n.CustomerEmail,
		Note:          n.Note,
		Author:        n.Author,
		CreatedAt:     n.CreatedAt.Format(time.RFC3339),
	}
}
