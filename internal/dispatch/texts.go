package dispatch

// Reply texts.
const (
	unsupportedLanguageText = "I'm only available in English, Hindi, Bengali, Gujarati, and Tamil. Please use one of these languages. 😊\n" +
		"मैं केवल अंग्रेज़ी, हिंदी, बंगाली, गुजराती और तमिल समझता हूँ।"
	unclassifiableText = "Sorry, I couldn't understand that. Could you please rephrase? 🤔"
	disabledText       = "ChatGPT functionality is currently disabled. Please check back later! 🙁"
	apologyText        = "Oops! Something went wrong while processing your request. Please try again later. 🤖"
	storeErrorText     = "I couldn't save that right now. Please try again later. 🙏"
	ownerOnlyText      = "Sorry, this command is only accessible to the owner! 🙅‍♀️"

	privateReplyFmt = "Here's what I found for you, %s: \n\n%s\n\nLet me know if you need anything else! 😊"
	groupReplyFmt   = "Hey everyone! 💖 I just got asked something interesting:\n\n%s\n\nFeel free to ask me anything else, I'm here to help! 😊"

	languageSetFmt  = "Your preferred language has been set to %s! 🌐"
	reminderSetFmt  = "Reminder set for %d minutes from now! ⏰"
	feedbackThanks  = "Thank you for your feedback! We appreciate it. 💕"
	responseSetFmt  = "Got it! When you say \"%s\" in a group with me, I'll answer with your custom reply. ✨"
	toggledFmt      = "ChatGPT functionality has been %s."
	restartingText  = "Restarting the bot..."
	restartedText   = "The bot has been restarted successfully! 😊"
	restartFailText = "Restart failed. Please check the logs."
)

// assistantKeyword activates the bot in groups without an explicit mention.
const assistantKeyword = "assistant"
