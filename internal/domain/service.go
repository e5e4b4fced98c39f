package domain

import "time"

// Service represents a bookable salon service from the catalog
type Service struct {
	ID              int64
	CategoryID      int64
	Name            string
	Description     *string
	Price           int64 // integer currency units (cents)
	DurationMinutes int
	IsPopular       bool
	CreatedAt       time.Time
}

// Category groups services in the catalog
type Category struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
}
