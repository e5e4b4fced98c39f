package cancel_booking

import "errors"

var (
	// ErrInvalidToken возвращается для токена не в формате UUID v4
	ErrInvalidToken = errors.New("cancel_booking: invalid cancellation token")

	// ErrBookingNotFound возвращается если токен никому не принадлежит
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("cancel_booking: booking is already cancelled")

	// ErrTooLateToCancel возвращается менее чем за 24 часа до начала
	ErrTooLateToCancel = errors.New("cancel_booking: less than 24 hours before start")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
