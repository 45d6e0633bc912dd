package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Default notification window for review reminders.
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
)

// Config holds all runtime settings, read from the environment.
type Config struct {
	// Path to the vocabulary CSV or Excel file
	VocabFile string
	// Notification window for the reminder scheduler
	NotificationStartHour int
	NotificationEndHour   int
	// Optional Telegram reminder delivery
	TelegramToken  string
	TelegramChatID int64
}

// Load reads configuration from the environment, loading a .env file
// first if one exists. Database settings (DB_TYPE, DATABASE_URL,
// DATABASE_PATH) are read by the database package directly.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		VocabFile:             getenvDefault("VOCAB_FILE", "english_spanish.csv"),
		NotificationStartHour: getenvHour("NOTIFICATION_START_HOUR", DefaultNotificationStartHour),
		NotificationEndHour:   getenvHour("NOTIFICATION_END_HOUR", DefaultNotificationEndHour),
		TelegramToken:         os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:        getenvInt64("TELEGRAM_CHAT_ID", 0),
	}
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvHour(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}

func getenvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
