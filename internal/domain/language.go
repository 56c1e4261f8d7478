package domain

import (
	"slices"
	"strings"
)

// DefaultLanguage is assigned to new profiles.
const DefaultLanguage = "en"

// DefaultLanguages is the allow-list used when configuration does not override it.
var DefaultLanguages = []string{"en", "hi", "bn", "gu", "ta"}

// LanguageNames maps allow-listed codes to human-readable names.
var LanguageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"bn": "Bengali",
	"gu": "Gujarati",
	"ta": "Tamil",
}

// Languages is an allow-list of lowercase ISO 639-1 codes.
type Languages []string

// NewLanguages normalizes codes, drops blanks and duplicates.
// An empty input yields DefaultLanguages.
func NewLanguages(codes []string) Languages {
	out := make(Languages, 0, len(codes))
	for _, c := range codes {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return slices.Clone(DefaultLanguages)
	}
	return out
}

// Allows reports whether code is on the list.
func (l Languages) Allows(code string) bool {
	return slices.Contains(l, strings.ToLower(strings.TrimSpace(code)))
}

// String renders the list as "`en`, `hi`, or `ta`".
func (l Languages) String() string {
	quoted := make([]string, len(l))
	for i, c := range l {
		quoted[i] = "`" + c + "`"
	}
	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return quoted[0]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
