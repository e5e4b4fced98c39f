package domain

import (
	"strings"
	"time"

	"github.com/lepotilnica/SalonBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a single service appointment in the system.
// A multi-service appointment is stored as several bookings sharing the
// same customer identity and date, each with its own cancellation token.
type Booking struct {
	ID              int64
	CustomerName    string
	CustomerEmail   string // stored lowercased
	CustomerPhone   string
	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized service data for history and availability math
	ServiceName  string
	ServicePrice int64 // integer currency units (cents)

	// CancellationToken is the sole credential for self-service
	// cancellation; present once the booking is confirmed.
	CancellationToken *string
	Notes             *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its time slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// StartMinutes returns the start time as minutes since midnight
func (b *Booking) StartMinutes() int {
	return b.StartTime.Minutes()
}

// EndMinutes returns the end of the occupied interval, exclusive
func (b *Booking) EndMinutes() int {
	return b.StartTime.Minutes() + b.DurationMinutes
}

// Overlaps reports whether the booking's [start, end) interval overlaps
// the given half-open interval. Abutting intervals do not overlap.
func (b *Booking) Overlaps(startMinutes, endMinutes int) bool {
	return b.StartMinutes() < endMinutes && startMinutes < b.EndMinutes()
}

// StartsAt returns the absolute appointment start for the 24-hour
// cancellation window check. Date and StartTime are wall-clock values
// in the salon's timezone, so the caller supplies that location; the
// DATE column scans as UTC midnight and must not be trusted here.
func (b *Booking) StartsAt(loc *time.Location) time.Time {
	d := b.Date
	m := b.StartMinutes()
	return time.Date(d.Year(), d.Month(), d.Day(), m/60, m%60, 0, 0, loc)
}

// NormalizeEmail lowercases and trims a customer email. Customer identity
// is case-insensitive everywhere (blacklist, no-show records).
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BookingsFilter фильтр для выборки бронирований (админ-список)
type BookingsFilter struct {
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные бронирования
}
