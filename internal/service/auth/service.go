package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"

	"github.com/google/uuid"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
)

var (
	// ErrInvalidCredentials возвращается при неверных учетных данных
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Service проверяет учетные данные единственного администратора салона
type Service struct {
	adminEmail  [32]byte
	adminSecret [32]byte
	logger      Logger
}

// NewService создает новый сервис аутентификации
func NewService(adminEmail, adminPassword string, logger Logger) *Service {
	return &Service{
		adminEmail:  sha256.Sum256([]byte(domain.NormalizeEmail(adminEmail))),
		adminSecret: sha256.Sum256([]byte(adminPassword)),
		logger:      logger,
	}
}

// Verify сравнивает учетные данные за константное время и выдает
// токен сессии
func (s *Service) Verify(ctx context.Context, email, password string) (string, error) {
	emailHash := sha256.Sum256([]byte(domain.NormalizeEmail(email)))
	secretHash := sha256.Sum256([]byte(password))

	emailOK := subtle.ConstantTimeCompare(emailHash[:], s.adminEmail[:])
	secretOK := subtle.ConstantTimeCompare(secretHash[:], s.adminSecret[:])

	if emailOK&secretOK != 1 {
		return "", ErrInvalidCredentials
	}

	return uuid.NewString(), nil
}
