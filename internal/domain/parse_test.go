package domain

import (
	"errors"
	"testing"
	"time"
)

func TestSplitCommand(t *testing.T) {
	cases := []struct {
		in, cmd, args string
	}{
		{"/help", "/help", ""},
		{"  /HELP  ", "/help", ""},
		{"/remind_me 5 drink water", "/remind_me", "5 drink water"},
		{"/set_language@assistant_bot hi", "/set_language", "hi"},
		{"hello there", "", "hello there"},
	}
	for _, c := range cases {
		cmd, args := SplitCommand(c.in)
		if cmd != c.cmd || args != c.args {
			t.Fatalf("SplitCommand(%q) = %q, %q; want %q, %q", c.in, cmd, args, c.cmd, c.args)
		}
	}
}

func TestParseReminder(t *testing.T) {
	minutes, payload, err := ParseReminder("5 drink   water ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minutes != 5 || payload != "drink   water" {
		t.Fatalf("got %d %q", minutes, payload)
	}

	bad := []struct {
		in   string
		want error
	}{
		{"", ErrReminderUsage},
		{"5", ErrReminderUsage},
		{"5    ", ErrReminderUsage},
		{"five drink water", ErrInvalidMinutes},
		{"0 drink water", ErrMinutesTooSmall},
		{"-3 drink water", ErrMinutesTooSmall},
		{"999999999 drink water", ErrMinutesTooLarge},
	}
	for _, c := range bad {
		_, _, err := ParseReminder(c.in)
		if !errors.Is(err, c.want) {
			t.Fatalf("ParseReminder(%q) err = %v; want %v", c.in, err, c.want)
		}
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("ParseReminder(%q) err = %v; want validation kind", c.in, err)
		}
	}
}

func TestParseLanguageCode(t *testing.T) {
	allowed := NewLanguages(nil)
	for _, code := range DefaultLanguages {
		got, err := ParseLanguageCode(code, allowed)
		if err != nil || got != code {
			t.Fatalf("ParseLanguageCode(%q) = %q, %v", code, got, err)
		}
	}
	if got, err := ParseLanguageCode("HI", allowed); err != nil || got != "hi" {
		t.Fatalf("uppercase code: %q, %v", got, err)
	}
	for _, in := range []string{"", "fr", "en hi", "english"} {
		if _, err := ParseLanguageCode(in, allowed); !errors.Is(err, ErrInvalidLanguage) {
			t.Fatalf("ParseLanguageCode(%q) err = %v", in, err)
		}
	}
}

func TestParseCustomResponse(t *testing.T) {
	trigger, reply, err := ParseCustomResponse("  Assistant   Good Morning | Rise and shine! ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trigger != "assistant good morning" || reply != "Rise and shine!" {
		t.Fatalf("got %q %q", trigger, reply)
	}
	for _, in := range []string{"", "no separator", "| reply", "trigger |"} {
		if _, _, err := ParseCustomResponse(in); !errors.Is(err, ErrCustomReplyUsage) {
			t.Fatalf("ParseCustomResponse(%q) err = %v", in, err)
		}
	}
}

func TestLanguagesString(t *testing.T) {
	got := NewLanguages([]string{"en", " HI ", "en", ""}).String()
	if got != "`en`, or `hi`" {
		t.Fatalf("got %q", got)
	}
}

func TestDueAt(t *testing.T) {
	now := time.Date(2025, time.May, 5, 19, 46, 30, 900, time.UTC)
	got := DueAt(now, 5)
	want := time.Date(2025, time.May, 5, 19, 51, 30, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("want %s, got %s", want, got)
	}
	r := Reminder{DueAt: got}
	if r.IsDue(now) || !r.IsDue(want) {
		t.Fatalf("IsDue boundaries wrong")
	}
}
