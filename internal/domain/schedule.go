package domain

import "time"

// DueAt returns the absolute UTC due time of a reminder set at now.
// Stores keep second precision, so the result is truncated to the second.
func DueAt(now time.Time, minutes int) time.Time {
	return now.UTC().Add(time.Duration(minutes) * time.Minute).Truncate(time.Second)
}
