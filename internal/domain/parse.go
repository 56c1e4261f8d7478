package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrReminderUsage    = fmt.Errorf("%w: expected /remind_me <minutes> <text>", ErrValidation)
	ErrInvalidMinutes   = fmt.Errorf("%w: minutes is not a number", ErrValidation)
	ErrMinutesTooSmall  = fmt.Errorf("%w: minutes must be positive", ErrValidation)
	ErrMinutesTooLarge  = fmt.Errorf("%w: minutes too large", ErrValidation)
	ErrInvalidLanguage  = fmt.Errorf("%w: language code not allowed", ErrValidation)
	ErrEmptyFeedback    = fmt.Errorf("%w: empty feedback", ErrValidation)
	ErrCustomReplyUsage = fmt.Errorf("%w: expected /set_response <trigger> | <reply>", ErrValidation)
)

// MaxReminderMinutes caps reminders at one year.
const MaxReminderMinutes = 365 * 24 * 60

// SplitCommand splits "/cmd@bot args" into the lowercased command without the
// bot suffix and the trimmed argument string. Non-command text yields "".
func SplitCommand(text string) (cmd, args string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	cmd, args = cutToken(text)
	if at := strings.IndexByte(cmd, '@'); at > 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd), strings.TrimSpace(args)
}

// IsCommand reports whether text starts with a slash command.
func IsCommand(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "/")
}

// ParseReminder parses the arguments of /remind_me: "<minutes> <text>".
// The payload is everything after the minutes token, trimmed.
func ParseReminder(args string) (minutes int, payload string, err error) {
	first, rest := cutToken(strings.TrimSpace(args))
	payload = strings.TrimSpace(rest)
	if first == "" || payload == "" {
		return 0, "", ErrReminderUsage
	}
	minutes, err = strconv.Atoi(first)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidMinutes, first)
	}
	if minutes <= 0 {
		return 0, "", ErrMinutesTooSmall
	}
	if minutes > MaxReminderMinutes {
		return 0, "", ErrMinutesTooLarge
	}
	return minutes, payload, nil
}

// ParseLanguageCode validates the single argument of /set_language.
func ParseLanguageCode(args string, allowed Languages) (string, error) {
	fields := strings.Fields(args)
	if len(fields) != 1 || !allowed.Allows(fields[0]) {
		return "", ErrInvalidLanguage
	}
	return strings.ToLower(fields[0]), nil
}

// ParseFeedback returns the trimmed feedback body.
func ParseFeedback(args string) (string, error) {
	body := strings.TrimSpace(args)
	if body == "" {
		return "", ErrEmptyFeedback
	}
	return body, nil
}

// ParseCustomResponse parses "<trigger> | <reply>".
func ParseCustomResponse(args string) (trigger, reply string, err error) {
	trigger, reply, ok := strings.Cut(args, "|")
	trigger = NormalizeTrigger(trigger)
	reply = strings.TrimSpace(reply)
	if !ok || trigger == "" || reply == "" {
		return "", "", ErrCustomReplyUsage
	}
	return trigger, reply, nil
}

// NormalizeTrigger is the key form of a custom-response trigger.
func NormalizeTrigger(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// cutToken splits s at the first run of whitespace.
func cutToken(s string) (token, rest string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}
