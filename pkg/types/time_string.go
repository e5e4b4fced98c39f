package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeString represents a time of day in "HH:MM" format.
// Used for booking start times and schedule boundaries where only
// minute precision within a single day is meaningful.
type TimeString string

const minutesPerDay = 24 * 60

// NewTimeString creates a TimeString from a time.Time (truncated to minutes).
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString validates and creates a TimeString from "HH:MM".
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := time.Parse("15:04", s); err != nil {
		return "", fmt.Errorf("invalid time string format: %q", s)
	}
	return TimeString(s), nil
}

// NewTimeStringFromMinutes creates a TimeString from minutes since midnight.
func NewTimeStringFromMinutes(m int) (TimeString, error) {
	if m < 0 || m >= minutesPerDay {
		return "", fmt.Errorf("minutes out of range: %d", m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Minutes returns minutes since midnight. Malformed values yield 0.
func (t TimeString) Minutes() int {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return 0
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// AddMinutes returns a new TimeString shifted forward by m minutes.
// Returns an error if the result leaves the current day.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	return NewTimeStringFromMinutes(t.Minutes() + m)
}

// IsBefore reports whether t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

func (t TimeString) String() string {
	return string(t)
}

// Value implements driver.Valuer for database writes.
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan implements sql.Scanner. Accepts TEXT and TIME column values,
// trimming seconds when the driver returns "HH:MM:SS".
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		*t = TimeString(trimSeconds(v))
		return nil
	case []byte:
		*t = TimeString(trimSeconds(string(v)))
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
}

func trimSeconds(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
