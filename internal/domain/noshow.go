package domain

import "time"

// BlacklistThreshold is the no-show count at which a customer is
// blocked from creating new bookings.
const BlacklistThreshold = 2

// NoShowRecord is the per-customer no-show counter keyed by normalized
// email. Created on the first no-show, incremented thereafter.
type NoShowRecord struct {
	CustomerEmail  string
	Count          int
	LastNoShowDate time.Time
}

// IsBlacklisted returns true once the customer has crossed the threshold
func (r *NoShowRecord) IsBlacklisted() bool {
	return r.Count >= BlacklistThreshold
}
