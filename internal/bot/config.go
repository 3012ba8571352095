package bot

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Number of answer choices offered per question
	ChoicesPerQuestion int
	// Long-poll timeout for Telegram updates, in seconds
	UpdateTimeout int
	// Default hour of day for streak reminders
	DefaultReminderHour int
	// Hours offered in the reminder time settings menu
	ReminderHourOptions []int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		ChoicesPerQuestion:  4,
		UpdateTimeout:       60,
		DefaultReminderHour: 18,
		ReminderHourOptions: []int{7, 9, 12, 15, 18, 21},
	}
}
