// Package backend talks to the text-completion service.
package backend

import "context"

// Completer returns a completion for text. Every failure wraps domain.ErrBackend.
// Implementations do not retry.
type Completer interface {
	Complete(ctx context.Context, text string) (string, error)
}
