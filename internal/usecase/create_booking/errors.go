package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrServiceNotFound возвращается если услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrCustomerBlacklisted возвращается для клиентов из черного списка
	ErrCustomerBlacklisted = errors.New("create_booking: customer is blacklisted")

	// ErrSalonClosed возвращается для выходного дня
	ErrSalonClosed = errors.New("create_booking: salon is closed on this date")

	// ErrBeforeOpening возвращается если запись начинается до открытия
	ErrBeforeOpening = errors.New("create_booking: booking starts before opening")

	// ErrAfterClosing возвращается если запись не помещается до закрытия
	ErrAfterClosing = errors.New("create_booking: booking extends past closing")

	// ErrSlotConflict возвращается при пересечении с существующей записью
	ErrSlotConflict = errors.New("create_booking: time slot already booked")

	// ErrBlockedTimeConflict возвращается при пересечении с блокировкой
	ErrBlockedTimeConflict = errors.New("create_booking: time slot is blocked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
