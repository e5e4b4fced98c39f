package domain

// Realtime event names pushed to the broadcast hub
const (
	EventBookingCreated = "booking_created"
	EventBookingUpdated = "booking_updated"
	EventBookingDeleted = "booking_deleted"

	EventBlockedTimeCreated = "blocked_time_created"
	EventBlockedTimeDeleted = "blocked_time_deleted"
)
