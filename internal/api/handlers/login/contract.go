package login

import "context"

// CredentialVerifier проверяет учетные данные администратора и выдает
// токен сессии
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
