package get_availability

import (
	"time"

	"github.com/lepotilnica/SalonBookingService/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	Date            time.Time // Дата (без времени)
	DurationMinutes int       // Суммарная длительность запрашиваемой записи
}

// BlockedRange заблокированный интервал для отображения в UI
type BlockedRange struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Response модель ответа с доступными слотами.
// BookedTimes и BlockedSlots возвращаются как есть для отображения,
// дальнейшей валидации на них нет.
type Response struct {
	Date         time.Time
	Slots        []types.TimeString // Доступные времена начала, по возрастанию
	BookedTimes  []types.TimeString // Времена начала активных бронирований
	BlockedSlots []BlockedRange     // Заблокированные интервалы
}
