package langgate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykvlv/assistant-bot/internal/domain"
)

type fixedDetector struct {
	code  string
	ok    bool
	calls int
}

func (f *fixedDetector) Detect(string) (string, bool) {
	f.calls++
	return f.code, f.ok
}

func TestClassify(t *testing.T) {
	allowed := domain.NewLanguages(nil)

	cases := []struct {
		name     string
		det      *fixedDetector
		text     string
		tag      string
		accepted bool
		err      error
	}{
		{"allowed", &fixedDetector{code: "EN", ok: true}, "hello there", "en", true, nil},
		{"hindi", &fixedDetector{code: "hi", ok: true}, "aap kaise ho", "hi", true, nil},
		{"rejected", &fixedDetector{code: "fr", ok: true}, "bonjour", "fr", false, nil},
		{"undecided", &fixedDetector{ok: false}, "hm", "", false, domain.ErrUnclassifiable},
		{"empty", &fixedDetector{code: "en", ok: true}, "   ", "", false, domain.ErrUnclassifiable},
		{"emoji", &fixedDetector{code: "en", ok: true}, "😂🔥 123", "", false, domain.ErrUnclassifiable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := New(c.det, allowed)
			tag, accepted, err := g.Classify(c.text)
			if c.err != nil {
				require.ErrorIs(t, err, c.err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, c.tag, tag)
			assert.Equal(t, c.accepted, accepted)
		})
	}
}

func TestClassify_SkipsDetectorWithoutLetters(t *testing.T) {
	det := &fixedDetector{code: "en", ok: true}
	_, _, err := New(det, domain.NewLanguages(nil)).Classify("👍")
	require.ErrorIs(t, err, domain.ErrUnclassifiable)
	assert.Zero(t, det.calls)
}

func TestCheck(t *testing.T) {
	g := New(&fixedDetector{code: "fr", ok: true}, domain.NewLanguages(nil))
	tag, err := g.Check("bonjour tout le monde")
	require.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
	assert.Equal(t, "fr", tag)

	g = New(&fixedDetector{code: "gu", ok: true}, domain.NewLanguages(nil))
	tag, err = g.Check("કેમ છો")
	require.NoError(t, err)
	assert.Equal(t, "gu", tag)
}
