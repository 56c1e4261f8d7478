// Package langgate decides whether a message is in a language the bot answers in.
package langgate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ykvlv/assistant-bot/internal/domain"
)

// Detector guesses the ISO 639-1 code of text. ok is false when it cannot decide.
type Detector interface {
	Detect(text string) (code string, ok bool)
}

// Gate classifies text and checks the result against an allow-list.
type Gate struct {
	detector Detector
	allowed  domain.Languages
}

// New returns a gate over detector and the allowed codes.
func New(detector Detector, allowed domain.Languages) *Gate {
	return &Gate{detector: detector, allowed: allowed}
}

// Allowed returns the allow-list.
func (g *Gate) Allowed() domain.Languages { return g.allowed }

// Classify returns the detected tag and whether it is allowed.
// Text without letters, or text the detector cannot decide on, yields
// domain.ErrUnclassifiable.
func (g *Gate) Classify(text string) (tag string, accepted bool, err error) {
	if !hasLetter(text) {
		return "", false, fmt.Errorf("no letters: %w", domain.ErrUnclassifiable)
	}
	code, ok := g.detector.Detect(text)
	if !ok || code == "" {
		return "", false, domain.ErrUnclassifiable
	}
	code = strings.ToLower(code)
	return code, g.allowed.Allows(code), nil
}

// Check is Classify folded into a single error: nil when accepted,
// domain.ErrUnsupportedLanguage or domain.ErrUnclassifiable otherwise.
func (g *Gate) Check(text string) (string, error) {
	tag, accepted, err := g.Classify(text)
	if err != nil {
		return "", err
	}
	if !accepted {
		return tag, fmt.Errorf("%q: %w", tag, domain.ErrUnsupportedLanguage)
	}
	return tag, nil
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
