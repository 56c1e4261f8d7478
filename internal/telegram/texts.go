package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const reminderPrefix = "⏰ Reminder: "

func reminderText(payload string) string {
	return reminderPrefix + payload
}

// menuKeyboard builds the reply keyboard shown with /menu.
func menuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/help"),
			tgbotapi.NewKeyboardButton("/about"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/joke"),
			tgbotapi.NewKeyboardButton("/quote"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/feedback"),
			tgbotapi.NewKeyboardButton("/menu"),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}
