package record_no_show

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("record_no_show: invalid input data")

	// ErrBookingNotFound возвращается если бронирование не найдено
	ErrBookingNotFound = errors.New("record_no_show: booking not found")

	// ErrAlreadyCancelled возвращается для уже отмененного бронирования
	ErrAlreadyCancelled = errors.New("record_no_show: booking is already cancelled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("record_no_show: internal error")
)
