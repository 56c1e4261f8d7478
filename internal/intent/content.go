package intent

// Static reply content.
const (
	greetingFmt = "Hi there, %s! 🌼 It's lovely to see you! How can I assist you today?"

	startText = "Hey there! I'm your friendly AssistantBot. Aap mujhse kisi bhi cheez ke liye baat kar sakte hain! " +
		"Send /menu to see what I can do."
	helpText           = "I'm here to assist you with anything you'd like to know! Just ask me a question. 😊"
	aboutText          = "I'm your friendly assistant powered by OpenAI! I can help with your questions and have a chat! 🤖"
	feedbackPromptText = "I'd love to hear your thoughts! Please let me know how I'm doing! 💬\n" +
		"Usage: /feedback <your feedback>"

	jokePrefix = "Here's a joke for you: "
	quoteFmt   = "Here's a quote for inspiration: \"%s\""

	menuText = "Here's what I can do for you! 🎉\n\n" +
		"/help - Ask for help\n" +
		"/about - Learn more about me\n" +
		"/joke - Get a random joke\n" +
		"/quote - Get an inspirational quote\n" +
		"/set_language <language> - Set your preferred language for interactions\n" +
		"/remind_me <time in minutes> <message> - Set a reminder\n" +
		"/feedback <your feedback> - Provide feedback\n" +
		"/set_response <trigger> | <reply> - Teach me a custom reply for group chats\n"

	setLanguageUsageFmt = "Please provide a valid language code: %s."
	remindUsageText     = "Please provide a time and reminder message. Usage: /remind_me <time in minutes> <message>"
	remindInvalidText   = "Please provide a valid number for time in minutes. 📅"
	remindRangeFmt      = "The time must be between 1 and %d minutes. ⏳"
	feedbackUsageText   = "Please provide your feedback. Usage: /feedback <your feedback>"
	setResponseUsage    = "Usage: /set_response <trigger> | <reply>"
)

var greetings = []string{
	"hi", "hello", "hey", "how are you", "what's up", "sup",
	"kya haal hai", "kaise ho", "hello dosto",
}

var jokes = []string{
	"Why don't scientists trust atoms? Because they make up everything! 😂",
	"I told my computer I needed a break, and now it won't stop sending me beach wallpapers! 🏖️",
	"I'm on a whiskey diet. I've lost three days already! 🥃",
}

var quotes = []string{
	"The best time to plant a tree was twenty years ago. The second best time is now. - Chinese Proverb",
	"Your time is limited, so don't waste it living someone else's life. - Steve Jobs",
	"Success is not how high you have climbed, but how you make a positive difference to the world. - Roy T. Bennett",
}
