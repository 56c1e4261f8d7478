package store

import (
	"context"
	"errors"
	"time"

	"github.com/ykvlv/assistant-bot/internal/domain"
)

// ErrNotFound is returned when a keyed lookup has no row.
var ErrNotFound = errors.New("not found")

// ProfileStore keeps user profiles and their custom responses.
type ProfileStore interface {
	// UpsertProfile creates the profile with the default language or refreshes its display name.
	UpsertProfile(ctx context.Context, userID int64, displayName string) error
	// SetLanguage upserts the preferred language.
	SetLanguage(ctx context.Context, userID int64, lang string) error
	GetProfile(ctx context.Context, userID int64) (*domain.UserProfile, error)
	SetCustomResponse(ctx context.Context, userID int64, trigger, reply string) error
}

// FeedbackStore is an append-only feedback log.
type FeedbackStore interface {
	AddFeedback(ctx context.Context, e domain.FeedbackEntry) error
	ListFeedback(ctx context.Context, limit int) ([]domain.FeedbackEntry, error)
}

// ReminderStore keeps pending reminders.
type ReminderStore interface {
	// AddReminder assigns r.ID and inserts it.
	AddReminder(ctx context.Context, r *domain.Reminder) error
	// ListDue returns up to limit reminders with due_at <= now, oldest first.
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Reminder, error)
	DeleteReminder(ctx context.Context, id string) error
}

// Repo is the full storage surface.
type Repo interface {
	ProfileStore
	FeedbackStore
	ReminderStore
	Close() error
}
