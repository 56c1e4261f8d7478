// Package dispatch turns one inbound chat event into replies.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ykvlv/assistant-bot/internal/backend"
	"github.com/ykvlv/assistant-bot/internal/domain"
	"github.com/ykvlv/assistant-bot/internal/intent"
	"github.com/ykvlv/assistant-bot/internal/langgate"
	"github.com/ykvlv/assistant-bot/internal/store"
	"github.com/ykvlv/assistant-bot/internal/toggle"
)

// ChatType tells private chats from groups.
type ChatType int

const (
	Private ChatType = iota
	Group
)

// Event is an inbound text message as seen by the core.
type Event struct {
	SenderID    int64
	SenderName  string
	ChatID      int64
	MessageID   int
	Text        string
	Chat        ChatType
	BotID       int64
	BotUsername string
}

// Reply is one outbound message to the originating chat.
type Reply struct {
	Text string
	Menu bool // attach the command keyboard
}

// Store is the storage the dispatcher writes to.
type Store interface {
	store.ProfileStore
	store.FeedbackStore
	store.ReminderStore
}

// Restarter re-establishes the transport session.
type Restarter interface {
	Restart(ctx context.Context) error
}

// Deps are the collaborators of a Dispatcher. Restarter and Now are optional.
type Deps struct {
	Store     Store
	Gate      *langgate.Gate
	Router    *intent.Router
	Toggle    *toggle.Toggle
	Backend   backend.Completer
	Restarter Restarter
	Now       func() time.Time
}

// Dispatcher routes events. It is safe for concurrent use.
type Dispatcher struct {
	store     Store
	gate      *langgate.Gate
	router    *intent.Router
	toggle    *toggle.Toggle
	backend   backend.Completer
	restarter Restarter
	now       func() time.Time
	log       *zap.Logger
}

// New creates a Dispatcher.
func New(deps Deps, log *zap.Logger) *Dispatcher {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{
		store:     deps.Store,
		gate:      deps.Gate,
		router:    deps.Router,
		toggle:    deps.Toggle,
		backend:   deps.Backend,
		restarter: deps.Restarter,
		now:       now,
		log:       log,
	}
}

// SetRestarter wires the restarter after construction; the app and the
// dispatcher reference each other.
func (d *Dispatcher) SetRestarter(r Restarter) { d.restarter = r }

// Dispatch handles one event and returns the replies to send, possibly none.
// It never panics and never returns an error: failures become replies or logs.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) (replies []Reply) {
	if ev.SenderID == ev.BotID {
		return nil
	}
	if strings.TrimSpace(ev.Text) == "" {
		return nil
	}
	defer func() {
		if p := recover(); p != nil {
			d.log.Error("dispatch panicked", zap.Any("panic", p), zap.Int64("userID", ev.SenderID))
			replies = one(apologyText)
		}
	}()

	switch ev.Chat {
	case Private:
		return d.private(ctx, ev)
	case Group:
		return d.group(ctx, ev)
	}
	return nil
}

func (d *Dispatcher) private(ctx context.Context, ev Event) []Reply {
	text := strings.TrimSpace(ev.Text)
	name := displayName(ev.SenderName)
	log := d.log.With(zap.Int64("userID", ev.SenderID))

	d.upsertProfile(ctx, ev.SenderID, name)

	// Known commands operate on tokens, not natural text. Everything else,
	// unknown commands included, passes the gate before it can reach the backend.
	in := d.router.Route(text, name)
	if !(domain.IsCommand(text) && in.Handled()) {
		if _, err := d.gate.Check(text); err != nil {
			if errors.Is(err, domain.ErrUnsupportedLanguage) {
				log.Info("language rejected", zap.Error(err))
				return one(unsupportedLanguageText)
			}
			log.Debug("language unclassifiable", zap.Error(err))
			return one(unclassifiableText)
		}
	}

	if in.Handled() {
		return d.execute(ctx, ev, in)
	}

	if !d.toggle.Enabled() {
		return one(disabledText)
	}
	answer, err := d.backend.Complete(ctx, text)
	if err != nil {
		log.Error("backend failed", zap.Error(err))
		return one(apologyText)
	}
	return one(fmt.Sprintf(privateReplyFmt, name, answer))
}

func (d *Dispatcher) group(ctx context.Context, ev Event) []Reply {
	text := strings.TrimSpace(ev.Text)
	if !mentionsBot(text, ev.BotUsername) {
		return nil
	}
	log := d.log.With(zap.Int64("userID", ev.SenderID), zap.Int64("chatID", ev.ChatID))
	log.Info("group message addressed to bot")

	if _, err := d.gate.Check(text); err != nil {
		if errors.Is(err, domain.ErrUnsupportedLanguage) {
			log.Info("language rejected", zap.Error(err))
			return one(unsupportedLanguageText)
		}
		log.Debug("language unclassifiable", zap.Error(err))
		return nil
	}

	d.upsertProfile(ctx, ev.SenderID, displayName(ev.SenderName))

	profile, err := d.store.GetProfile(ctx, ev.SenderID)
	switch {
	case err == nil:
		if reply, ok := profile.CustomResponse(text); ok {
			return one(reply)
		}
	case errors.Is(err, store.ErrNotFound):
	default:
		log.Error("GetProfile failed", zap.Error(err))
	}

	if !d.toggle.Enabled() {
		return nil
	}
	answer, err := d.backend.Complete(ctx, text)
	if err != nil {
		log.Error("backend failed", zap.Error(err))
		return one(apologyText)
	}
	return one(fmt.Sprintf(groupReplyFmt, answer))
}

// execute performs the side effects of a matched intent.
func (d *Dispatcher) execute(ctx context.Context, ev Event, in intent.Intent) []Reply {
	log := d.log.With(zap.Int64("userID", ev.SenderID), zap.Stringer("intent", in.Tag))
	if in.Err != nil {
		log.Debug("invalid command", zap.Error(in.Err))
		return one(in.Reply)
	}

	switch in.Tag {
	case intent.Menu:
		return []Reply{{Text: in.Reply, Menu: true}}

	case intent.SetLanguage:
		if err := d.store.SetLanguage(ctx, ev.SenderID, in.Language); err != nil {
			log.Error("SetLanguage failed", zap.Error(err))
			return one(storeErrorText)
		}
		return one(fmt.Sprintf(languageSetFmt, in.Language))

	case intent.Remind:
		r := &domain.Reminder{
			UserID:  ev.SenderID,
			DueAt:   domain.DueAt(d.now(), in.Minutes),
			Payload: in.Payload,
		}
		if err := d.store.AddReminder(ctx, r); err != nil {
			log.Error("AddReminder failed", zap.Error(err))
			return one(storeErrorText)
		}
		log.Info("reminder scheduled", zap.String("id", r.ID), zap.Time("due", r.DueAt))
		return one(fmt.Sprintf(reminderSetFmt, in.Minutes))

	case intent.Feedback:
		e := domain.FeedbackEntry{UserID: ev.SenderID, Body: in.Payload, CreatedAt: d.now().UTC()}
		if err := d.store.AddFeedback(ctx, e); err != nil {
			log.Error("AddFeedback failed", zap.Error(err))
			return one(storeErrorText)
		}
		return one(feedbackThanks)

	case intent.SetResponse:
		if err := d.store.SetCustomResponse(ctx, ev.SenderID, in.Trigger, in.Payload); err != nil {
			log.Error("SetCustomResponse failed", zap.Error(err))
			return one(storeErrorText)
		}
		return one(fmt.Sprintf(responseSetFmt, in.Trigger))

	case intent.ToggleChatGPT:
		enabled, err := d.toggle.Flip(ev.SenderID)
		if err != nil {
			log.Warn("toggle refused", zap.Error(err))
			return one(ownerOnlyText)
		}
		status := "disabled"
		if enabled {
			status = "enabled"
		}
		log.Info("chatgpt toggled", zap.Bool("enabled", enabled))
		return one(fmt.Sprintf(toggledFmt, status))

	case intent.Restart:
		return d.restart(ctx, ev.SenderID, log)
	}
	return one(in.Reply)
}

func (d *Dispatcher) restart(ctx context.Context, requester int64, log *zap.Logger) []Reply {
	if !d.toggle.IsOwner(requester) {
		log.Warn("restart refused", zap.Error(domain.ErrUnauthorized))
		return one(ownerOnlyText)
	}
	replies := one(restartingText)
	if d.restarter == nil {
		return append(replies, Reply{Text: restartFailText})
	}
	if err := d.restarter.Restart(ctx); err != nil {
		log.Error("restart failed", zap.Error(err))
		return append(replies, Reply{Text: restartFailText})
	}
	return append(replies, Reply{Text: restartedText})
}

// upsertProfile refreshes the profile; a store failure must not block the reply.
func (d *Dispatcher) upsertProfile(ctx context.Context, userID int64, name string) {
	if err := d.store.UpsertProfile(ctx, userID, name); err != nil {
		d.log.Error("UpsertProfile failed", zap.Error(err), zap.Int64("userID", userID))
	}
}

// mentionsBot reports whether a group message addresses the bot.
func mentionsBot(text, botUsername string) bool {
	lower := strings.ToLower(text)
	if botUsername != "" && strings.Contains(lower, strings.ToLower(strings.TrimPrefix(botUsername, "@"))) {
		return true
	}
	return strings.Contains(lower, assistantKeyword)
}

func displayName(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return domain.DefaultDisplayName
	}
	return name
}

func one(text string) []Reply {
	return []Reply{{Text: text}}
}
