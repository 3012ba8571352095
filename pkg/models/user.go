package models

// User represents a Telegram user learning with the bot
type User struct {
	ID               int64  `json:"id" db:"id"`
	TelegramID       int64  `json:"telegram_id" db:"telegram_id"`
	Username         string `json:"username" db:"username"`
	FirstName        string `json:"first_name" db:"first_name"`
	LastName         string `json:"last_name" db:"last_name"`
	IsAdmin          bool   `json:"is_admin" db:"is_admin"`
	RemindersEnabled bool   `json:"reminders_enabled" db:"reminders_enabled"`
	ReminderHour     int    `json:"reminder_hour" db:"reminder_hour"` // Hour of day for streak reminders (0-23)
	CreatedAt        string `json:"created_at" db:"created_at"`
	UpdatedAt        string `json:"updated_at" db:"updated_at"`
}
