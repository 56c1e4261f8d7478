package domain

import "time"

// DefaultDisplayName is used when the transport does not expose a first name.
const DefaultDisplayName = "Friend"

// UserProfile is the durable per-user state.
type UserProfile struct {
	UserID          int64
	DisplayName     string
	Language        string            // one of the allow-listed codes
	CustomResponses map[string]string // lowercased trigger -> reply
	CreatedAt       time.Time         // UTC
	UpdatedAt       time.Time         // UTC
}

// CustomResponse looks up a reply for text, comparing triggers case-insensitively.
func (p *UserProfile) CustomResponse(text string) (string, bool) {
	if p == nil || len(p.CustomResponses) == 0 {
		return "", false
	}
	reply, ok := p.CustomResponses[NormalizeTrigger(text)]
	return reply, ok
}

// Reminder is a one-shot message delivered back to its owner at DueAt.
type Reminder struct {
	ID        string    // store-generated
	UserID    int64
	DueAt     time.Time // UTC
	Payload   string
	CreatedAt time.Time // UTC
}

// IsDue reports whether the reminder should be delivered at now.
func (r Reminder) IsDue(now time.Time) bool {
	return !r.DueAt.After(now)
}

// FeedbackEntry is a free-text note left by a user.
type FeedbackEntry struct {
	UserID    int64
	Body      string
	CreatedAt time.Time // UTC
}
