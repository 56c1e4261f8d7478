package store

import (
	"context"
	"errors"
	"maps"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/ykvlv/assistant-bot/internal/domain"
)

// Memory is a process-local Repo. Nothing survives a restart; it backs tests
// and the "memory" driver for local runs.
type Memory struct {
	mu        sync.Mutex
	now       func() time.Time
	profiles  map[int64]*domain.UserProfile
	feedback  []domain.FeedbackEntry
	reminders map[string]domain.Reminder
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		now:       time.Now,
		profiles:  make(map[int64]*domain.UserProfile),
		reminders: make(map[string]domain.Reminder),
	}
}

func (m *Memory) Close() error { return nil }

func (m *Memory) profile(userID int64) *domain.UserProfile {
	p, ok := m.profiles[userID]
	if !ok {
		now := m.now().UTC()
		p = &domain.UserProfile{
			UserID:    userID,
			Language:  domain.DefaultLanguage,
			CreatedAt: now,
			UpdatedAt: now,
		}
		m.profiles[userID] = p
	}
	return p
}

func (m *Memory) UpsertProfile(_ context.Context, userID int64, displayName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profile(userID)
	p.DisplayName = displayName
	p.UpdatedAt = m.now().UTC()
	return nil
}

func (m *Memory) SetLanguage(_ context.Context, userID int64, lang string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profile(userID)
	p.Language = lang
	p.UpdatedAt = m.now().UTC()
	return nil
}

// GetProfile returns a copy; callers never share state with the store.
func (m *Memory) GetProfile(_ context.Context, userID int64) (*domain.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	cp.CustomResponses = maps.Clone(p.CustomResponses)
	return &cp, nil
}

func (m *Memory) SetCustomResponse(_ context.Context, userID int64, trigger, reply string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profile(userID)
	if p.CustomResponses == nil {
		p.CustomResponses = make(map[string]string)
	}
	p.CustomResponses[domain.NormalizeTrigger(trigger)] = reply
	return nil
}

func (m *Memory) AddFeedback(_ context.Context, e domain.FeedbackEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = m.now().UTC()
	}
	m.feedback = append(m.feedback, e)
	return nil
}

func (m *Memory) ListFeedback(_ context.Context, limit int) ([]domain.FeedbackEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []domain.FeedbackEntry
	for i := len(m.feedback) - 1; i >= 0 && len(res) < limit; i-- {
		res = append(res, m.feedback[i])
	}
	return res, nil
}

func (m *Memory) AddReminder(_ context.Context, r *domain.Reminder) error {
	if r == nil {
		return errors.New("nil reminder")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = newReminderID()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = m.now().UTC()
	}
	m.reminders[r.ID] = *r
	return nil
}

func (m *Memory) ListDue(_ context.Context, now time.Time, limit int) ([]domain.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []domain.Reminder
	for _, r := range m.reminders {
		if r.IsDue(now) {
			res = append(res, r)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].DueAt.Equal(res[j].DueAt) {
			return res[i].ID < res[j].ID
		}
		return res[i].DueAt.Before(res[j].DueAt)
	})
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (m *Memory) DeleteReminder(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reminders, id)
	return nil
}

// Reminders returns every stored reminder, due or not, ordered by due time.
func (m *Memory) Reminders() []domain.Reminder {
	res, _ := m.ListDue(context.Background(), time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC), math.MaxInt)
	return res
}
