// Package bot is the Telegram presentation layer. It renders the lesson
// catalog as inline-keyboard menus, runs exercise sessions over chat, and
// reports completion results computed by the progress tracker.
package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/shonabot/internal/database"
	"github.com/example/shonabot/internal/exercise"
	"github.com/example/shonabot/internal/progress"
	"github.com/example/shonabot/internal/scheduler"
	"github.com/example/shonabot/pkg/models"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// quizSession is a learner's in-flight exercise run for one lesson. The
// options slice holds the answers currently on screen, so callback buttons
// can carry a short index instead of the answer text.
type quizSession struct {
	quiz    *exercise.Quiz
	lesson  models.Lesson
	options []string
}

// Bot represents the Telegram bot application
type Bot struct {
	api              *tgbotapi.BotAPI
	token            string
	catalog          []models.Lesson
	users            *database.UserRepository
	progressRepo     *database.ProgressRepository
	completions      *database.CompletionRepository
	schedulerEnabled bool
	scheduler        *scheduler.Scheduler
	adminUserIDs     map[int64]bool
	config           *BotConfig

	mu       sync.Mutex
	trackers map[int64]*progress.Tracker
	sessions map[int64]*quizSession
}

// New creates a new bot instance over the given lesson catalog.
func New(catalog []models.Lesson) (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	if database.DB == nil {
		return nil, fmt.Errorf("database connection is not established")
	}

	bot := &Bot{
		token:            token,
		catalog:          catalog,
		users:            database.NewUserRepository(),
		progressRepo:     database.NewProgressRepository(),
		completions:      database.NewCompletionRepository(),
		schedulerEnabled: os.Getenv("ENABLE_SCHEDULER") != "false",
		adminUserIDs:     make(map[int64]bool),
		config:           DefaultConfig(),
		trackers:         make(map[int64]*progress.Tracker),
		sessions:         make(map[int64]*quizSession),
	}

	adminIDs := os.Getenv("ADMIN_USER_IDS")
	if adminIDs != "" {
		for _, idStr := range strings.Split(adminIDs, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
			if err != nil {
				log.Printf("Warning: Invalid admin user ID: %s", idStr)
				continue
			}
			bot.adminUserIDs[id] = true
		}
	}

	return bot, nil
}

// trackerFor returns the learner's progress tracker, creating it over their
// persistence slot on first contact. Trackers live for the process lifetime
// so a learner's streak checks and completions share one state.
func (b *Bot) trackerFor(ctx context.Context, userID int64) *progress.Tracker {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.trackers[userID]
	if !ok {
		t = progress.New(ctx, b.catalog, b.progressRepo.ForUser(userID))
		b.trackers[userID] = t
	}
	return t
}

// session returns the learner's active quiz session, if any.
func (b *Bot) session(userID int64) (*quizSession, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.sessions[userID]
	return s, ok
}

func (b *Bot) setSession(userID int64, s *quizSession) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions[userID] = s
}

func (b *Bot) clearSession(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessions, userID)
}

// Start initializes and starts the bot
func (b *Bot) Start() error {
	botAPI, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %w", err)
	}

	b.api = botAPI
	log.Printf("Authorized on account %s", botAPI.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.config.UpdateTimeout
	updates := b.api.GetUpdatesChan(updateConfig)

	if b.schedulerEnabled {
		b.scheduler = scheduler.New(b, b.users, b)
		b.scheduler.Start()
		log.Println("Streak reminder scheduler started")
	}

	for update := range updates {
		go b.handleUpdate(update)
	}

	return nil
}

// Stop gracefully stops the bot
func (b *Bot) Stop() {
	if b.scheduler != nil {
		b.scheduler.Stop()
	}
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
	log.Println("Bot stopped")
}

// SendStreakReminder implements the scheduler.Notifier interface. For private
// chats the chat ID equals the user ID.
func (b *Bot) SendStreakReminder(userID int64, streak int) error {
	text := "🌍 Time to practice your Shona! Complete a lesson today to keep learning."
	if streak > 0 {
		text = fmt.Sprintf("🔥 Your %d-day streak is waiting! Complete a lesson today to keep it alive.", streak)
	}

	msg := tgbotapi.NewMessage(userID, text)
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{{Text: "📚 Start a Lesson", CallbackData: "show_lessons"}},
	})
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder to user %d: %w", userID, err)
	}
	return nil
}

// StudiedToday implements the scheduler.ProgressSource interface.
func (b *Bot) StudiedToday(userID int64) bool {
	return b.trackerFor(context.Background(), userID).StudiedToday()
}

// CurrentStreak implements the scheduler.ProgressSource interface.
func (b *Bot) CurrentStreak(userID int64) int {
	return b.trackerFor(context.Background(), userID).Progress().CurrentStreak
}

// isAdmin checks if a user is an admin
func (b *Bot) isAdmin(userID int64) bool {
	return b.adminUserIDs[userID]
}

// MainMenuButtons returns the buttons for the main menu
func (b *Bot) MainMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{
			{Text: "📚 Lessons", CallbackData: "show_lessons"},
			{Text: "📊 My Progress", CallbackData: "show_stats"},
		},
		{
			{Text: "🏆 Achievements", CallbackData: "show_achievements"},
			{Text: "⚙️ Settings", CallbackData: "settings"},
		},
	}
}

// showMainMenu shows the main menu
func (b *Bot) showMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Main Menu - choose an option:")
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	b.api.Send(msg)
}
