// Package intent maps message text to the bot's intents. Routing is pure:
// it parses and validates, and leaves store mutations to the caller.
package intent

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"unicode"

	"github.com/ykvlv/assistant-bot/internal/domain"
)

// Tag identifies an intent.
type Tag int

const (
	None Tag = iota
	Greeting
	Start
	Help
	About
	FeedbackPrompt
	Joke
	Quote
	SetLanguage
	Remind
	Feedback
	Menu
	SetResponse
	ToggleChatGPT
	Restart
)

var tagNames = [...]string{
	None:           "none",
	Greeting:       "greeting",
	Start:          "start",
	Help:           "help",
	About:          "about",
	FeedbackPrompt: "feedback_prompt",
	Joke:           "joke",
	Quote:          "quote",
	SetLanguage:    "set_language",
	Remind:         "remind",
	Feedback:       "feedback",
	Menu:           "menu",
	SetResponse:    "set_response",
	ToggleChatGPT:  "toggle_chatgpt",
	Restart:        "restart",
}

func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return fmt.Sprintf("tag(%d)", int(t))
	}
	return tagNames[t]
}

// Intent is the routing result. Reply holds the canned text for static
// intents and the usage text when Err is set.
type Intent struct {
	Tag   Tag
	Reply string
	Err   error // wraps domain.ErrValidation

	Language string // SetLanguage
	Minutes  int    // Remind
	Payload  string // Remind text, Feedback body, SetResponse reply
	Trigger  string // SetResponse
}

// Handled reports whether the text matched anything.
func (i Intent) Handled() bool { return i.Tag != None }

// Router matches text against intents in priority order.
type Router struct {
	allowed domain.Languages

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRouter returns a router. rnd drives the joke and quote picks; nil seeds
// from the runtime.
func NewRouter(allowed domain.Languages, rnd *rand.Rand) *Router {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Router{allowed: allowed, rnd: rnd}
}

// Route returns the first matching intent for text:
// greeting phrases in natural text, fixed commands, random picks,
// commands with arguments, and finally None.
func (r *Router) Route(text, username string) Intent {
	cmd, args := domain.SplitCommand(text)
	if cmd == "" {
		if matchesGreeting(text) {
			return Intent{Tag: Greeting, Reply: fmt.Sprintf(greetingFmt, username)}
		}
		return Intent{Tag: None}
	}

	if args == "" {
		switch cmd {
		case "/start":
			return Intent{Tag: Start, Reply: startText}
		case "/help", "/madad":
			return Intent{Tag: Help, Reply: helpText}
		case "/about", "/baareme":
			return Intent{Tag: About, Reply: aboutText}
		case "/feedback":
			return Intent{Tag: FeedbackPrompt, Reply: feedbackPromptText}
		case "/joke":
			return Intent{Tag: Joke, Reply: jokePrefix + r.pick(jokes)}
		case "/quote":
			return Intent{Tag: Quote, Reply: fmt.Sprintf(quoteFmt, r.pick(quotes))}
		}
	}

	switch cmd {
	case "/set_language":
		code, err := domain.ParseLanguageCode(args, r.allowed)
		if err != nil {
			return Intent{Tag: SetLanguage, Err: err, Reply: fmt.Sprintf(setLanguageUsageFmt, r.allowed)}
		}
		return Intent{Tag: SetLanguage, Language: code}

	case "/remind_me":
		minutes, payload, err := domain.ParseReminder(args)
		if err != nil {
			return Intent{Tag: Remind, Err: err, Reply: remindErrorText(err)}
		}
		return Intent{Tag: Remind, Minutes: minutes, Payload: payload}

	case "/feedback":
		body, err := domain.ParseFeedback(args)
		if err != nil {
			return Intent{Tag: Feedback, Err: err, Reply: feedbackUsageText}
		}
		return Intent{Tag: Feedback, Payload: body}

	case "/menu":
		return Intent{Tag: Menu, Reply: menuText}

	case "/set_response":
		trigger, reply, err := domain.ParseCustomResponse(args)
		if err != nil {
			return Intent{Tag: SetResponse, Err: err, Reply: setResponseUsage}
		}
		return Intent{Tag: SetResponse, Trigger: trigger, Payload: reply}

	case "/toggle_chatgpt":
		return Intent{Tag: ToggleChatGPT}

	case "/restart":
		return Intent{Tag: Restart}
	}
	return Intent{Tag: None}
}

func (r *Router) pick(list []string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return list[r.rnd.IntN(len(list))]
}

func remindErrorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidMinutes):
		return remindInvalidText
	case errors.Is(err, domain.ErrMinutesTooSmall), errors.Is(err, domain.ErrMinutesTooLarge):
		return fmt.Sprintf(remindRangeFmt, domain.MaxReminderMinutes)
	default:
		return remindUsageText
	}
}

// matchesGreeting looks for a greeting phrase on word boundaries, so "this"
// does not count as "hi".
func matchesGreeting(text string) bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	if len(words) == 0 {
		return false
	}
	padded := " " + strings.Join(words, " ") + " "
	for _, g := range greetings {
		if strings.Contains(padded, " "+g+" ") {
			return true
		}
	}
	return false
}
