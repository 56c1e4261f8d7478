package langgate

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// minRelativeDistance makes lingua give up on ambiguous input instead of guessing.
const minRelativeDistance = 0.1

// LinguaDetector is the production Detector.
type LinguaDetector struct {
	detector lingua.LanguageDetector
}

// NewLinguaDetector builds a detector over all languages lingua knows, so that
// unsupported languages are reported as such rather than forced onto the allow-list.
func NewLinguaDetector() *LinguaDetector {
	d := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		WithMinimumRelativeDistance(minRelativeDistance).
		Build()
	return &LinguaDetector{detector: d}
}

func (l *LinguaDetector) Detect(text string) (string, bool) {
	lang, ok := l.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
