package create_booking

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
)

var (
	// Имя: буквы (включая латиницу с диакритикой), пробелы, дефисы, апострофы, точки
	nameRegexp = regexp.MustCompile(`^[a-zA-Z\x{00C0}-\x{017E}\s\-'.]+$`)

	emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Телефон: опциональный +, далее цифры, пробелы, дефисы, скобки
	phoneRegexp = regexp.MustCompile(`^\+?[\d\s\-()]{8,20}$`)
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	// Длина имени считается в рунах: диакритика занимает несколько байт
	name := strings.TrimSpace(req.CustomerName)
	nameLen := utf8.RuneCountInString(name)
	if nameLen < domain.MinCustomerNameLength || nameLen > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name must be %d-%d characters",
			ErrInvalidInput, domain.MinCustomerNameLength, domain.MaxCustomerNameLength)
	}
	if !nameRegexp.MatchString(name) {
		return fmt.Errorf("%w: customer name contains invalid characters", ErrInvalidInput)
	}

	email := domain.NormalizeEmail(req.CustomerEmail)
	if email == "" || len(email) > domain.MaxCustomerEmailLength || !emailRegexp.MatchString(email) {
		return fmt.Errorf("%w: invalid customer email", ErrInvalidInput)
	}

	phone := strings.TrimSpace(req.CustomerPhone)
	if !phoneRegexp.MatchString(phone) {
		return fmt.Errorf("%w: invalid customer phone", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: invalid service ID %d", ErrInvalidInput, id)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := req.StartTime.AddMinutes(0); err != nil {
		return fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, req.StartTime)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
