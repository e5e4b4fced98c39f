package domain

import "time"

// CustomerNote is a free-form note an administrator attaches to a
// customer. Notes are keyed by normalized email, not by booking, so
// they survive booking deletion.
type CustomerNote struct {
	ID            int64
	CustomerEmail string
	Note          string
	Author        string
	CreatedAt     time.Time
}
