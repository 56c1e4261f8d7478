package telegram

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ykvlv/assistant-bot/internal/dispatch"
)

// Dispatcher handles one inbound event.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev dispatch.Event) []dispatch.Reply
}

// Router wires Telegram updates to the dispatcher and sends its replies.
type Router struct {
	mu   sync.RWMutex
	bot  *tgbotapi.BotAPI
	log  *zap.Logger
	disp Dispatcher
}

// NewRouter creates a new Telegram router.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, disp Dispatcher) *Router {
	return &Router{bot: bot, log: log, disp: disp}
}

// SetBot swaps the API client after a session restart.
func (r *Router) SetBot(bot *tgbotapi.BotAPI) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bot = bot
}

func (r *Router) api() *tgbotapi.BotAPI {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bot
}

// HandleUpdate routes a single update and sends the replies back to its chat.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	bot := r.api()
	ev, ok := eventFromMessage(upd.Message, bot.Self)
	if !ok {
		return
	}
	for _, reply := range r.disp.Dispatch(ctx, ev) {
		msg := tgbotapi.NewMessage(ev.ChatID, reply.Text)
		msg.ReplyToMessageID = ev.MessageID
		if reply.Menu {
			msg.ReplyMarkup = menuKeyboard()
		}
		if _, err := bot.Send(msg); err != nil {
			r.log.Error("send reply failed", zap.Error(err), zap.Int64("chatID", ev.ChatID))
		}
	}
}

// SendReminder delivers a reminder to the user's private chat.
// This makes Router satisfy scheduler.Sender. tgbotapi takes no context;
// the send is bounded by the client from NewHTTPClient.
func (r *Router) SendReminder(ctx context.Context, userID int64, payload string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.api().Send(tgbotapi.NewMessage(userID, reminderText(payload)))
	return err
}

// eventFromMessage converts a text message from a private chat or a group.
// Channel posts, service messages and non-text messages are skipped.
func eventFromMessage(msg *tgbotapi.Message, self tgbotapi.User) (dispatch.Event, bool) {
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return dispatch.Event{}, false
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return dispatch.Event{}, false
	}

	var chat dispatch.ChatType
	switch {
	case msg.Chat.IsPrivate():
		chat = dispatch.Private
	case msg.Chat.IsGroup(), msg.Chat.IsSuperGroup():
		chat = dispatch.Group
	default:
		return dispatch.Event{}, false
	}

	return dispatch.Event{
		SenderID:    msg.From.ID,
		SenderName:  msg.From.FirstName,
		ChatID:      msg.Chat.ID,
		MessageID:   msg.MessageID,
		Text:        text,
		Chat:        chat,
		BotID:       self.ID,
		BotUsername: self.UserName,
	}, true
}
