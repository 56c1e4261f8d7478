// Package toggle holds the process-wide switch for backend completions.
package toggle

import (
	"fmt"
	"sync"

	"github.com/ykvlv/assistant-bot/internal/domain"
)

// Toggle is a boolean that only the owner may change.
// The zero value is not usable; construct with New.
type Toggle struct {
	mu      sync.RWMutex
	owner   int64
	enabled bool
}

// New returns a toggle with the given owner and initial value.
func New(owner int64, enabled bool) *Toggle {
	return &Toggle{owner: owner, enabled: enabled}
}

// Enabled reports the current value.
func (t *Toggle) Enabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

// IsOwner reports whether requester may change the toggle.
func (t *Toggle) IsOwner(requester int64) bool {
	return requester == t.owner
}

// Set stores value if requester is the owner.
func (t *Toggle) Set(requester int64, value bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if requester != t.owner {
		return fmt.Errorf("set toggle by %d: %w", requester, domain.ErrUnauthorized)
	}
	t.enabled = value
	return nil
}

// Flip inverts the value if requester is the owner and returns the new value.
// The authorization check and the write happen under one lock.
func (t *Toggle) Flip(requester int64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if requester != t.owner {
		return t.enabled, fmt.Errorf("flip toggle by %d: %w", requester, domain.ErrUnauthorized)
	}
	t.enabled = !t.enabled
	return t.enabled, nil
}
