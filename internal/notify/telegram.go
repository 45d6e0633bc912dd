package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram delivers reminders to a single chat. Used when
// TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are configured.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram creates a Telegram notifier.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %v", err)
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

// SendReminder sends the reminder message to the configured chat.
func (t *Telegram) SendReminder(dueCount int, hoursSinceLast float64) error {
	var text string
	if dueCount > 0 {
		text = fmt.Sprintf("📚 %d words are due for review! Last session was %.0f hours ago.",
			dueCount, hoursSinceLast)
	} else {
		text = fmt.Sprintf("📚 It has been %.0f hours since your last practice session.", hoursSinceLast)
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send Telegram reminder: %v", err)
	}
	return nil
}
