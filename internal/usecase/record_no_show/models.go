package record_no_show

// Request модель запроса фиксации неявки
type Request struct {
	BookingID int64
}

// Response модель ответа фиксации неявки
type Response struct {
	CustomerEmail string
	NoShowCount   int
	Blacklisted   bool
	Message       string
}
