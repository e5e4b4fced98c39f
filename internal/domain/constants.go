package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinCustomerNameLength  = 2
	MaxCustomerNameLength  = 100
	MaxCustomerEmailLength = 255
	MinCustomerPhoneLength = 8
	MaxCustomerPhoneLength = 20
	MaxNotesLength         = 500
	MaxBlockReasonLength   = 500

	// MinCancellationNoticeHours за сколько часов до начала визита
	// разрешена самостоятельная отмена
	MinCancellationNoticeHours = 24
)
