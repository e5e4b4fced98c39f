package delete_customer_note

import "context"

type CustomersService interface {
	DeleteNote(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
