package store

import (
	"time"

	"github.com/google/uuid"
)

func toUnix(t time.Time) int64 {
	return t.UTC().Unix()
}

func fromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// newReminderID generates the store-side reminder identity.
func newReminderID() string {
	return uuid.NewString()
}
