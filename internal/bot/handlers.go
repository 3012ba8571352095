package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/shonabot/internal/exercise"
	"github.com/example/shonabot/pkg/models"
)

// handleUpdate handles incoming updates from Telegram
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		if update.Message.IsCommand() {
			switch update.Message.Command() {
			case "start":
				b.handleStartCommand(update.Message)
			case "help":
				b.handleHelpCommand(update.Message)
			case "menu":
				b.showMainMenu(update.Message.Chat.ID)
			case "lessons":
				b.showUnits(update.Message.Chat.ID, update.Message.From.ID)
			case "stats":
				b.handleStatsCommand(update.Message.Chat.ID, update.Message.From.ID)
			case "achievements":
				b.handleAchievementsCommand(update.Message.Chat.ID, update.Message.From.ID)
			case "settings":
				b.handleSettingsCommand(update.Message.Chat.ID, update.Message.From.ID)
			case "admin_stats":
				if b.isAdmin(update.Message.From.ID) {
					b.handleAdminStatsCommand(update.Message.Chat.ID)
				} else {
					msg := tgbotapi.NewMessage(update.Message.Chat.ID, "This command is only available for administrators.")
					msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
					b.api.Send(msg)
				}
			default:
				msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Unknown command. Use /menu to show the main menu.")
				msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
				b.api.Send(msg)
			}
			return
		}

		// A plain text message answers the current exercise when a lesson is
		// running, so learners can type translations instead of tapping.
		userID := update.Message.From.ID
		if _, ok := b.session(userID); ok {
			b.handleAnswer(update.Message.Chat.ID, userID, update.Message.Text)
			return
		}

		msg := tgbotapi.NewMessage(update.Message.Chat.ID, "I don't understand. Use /menu to show the main menu.")
		msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
		b.api.Send(msg)
		return
	}

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
	}
}

// handleStartCommand registers the user and shows the welcome screen.
func (b *Bot) handleStartCommand(message *tgbotapi.Message) {
	user := &models.User{
		TelegramID:       message.From.ID,
		Username:         message.From.UserName,
		FirstName:        message.From.FirstName,
		LastName:         message.From.LastName,
		RemindersEnabled: true,
		ReminderHour:     b.config.DefaultReminderHour,
	}
	if err := b.users.Create(context.Background(), user); err != nil {
		log.Printf("Error registering user %d: %v", message.From.ID, err)
	}

	welcomeText := `Mhoro! Welcome to Shona Learning Bot! 🇿🇼

Learn Shona step by step: complete lessons to earn XP, build a daily
streak and unlock new lessons.

Available commands:
/lessons - Browse lessons
/stats - Show your progress
/achievements - Your achievements
/settings - Reminder settings`

	msg := tgbotapi.NewMessage(message.Chat.ID, welcomeText)
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	b.api.Send(msg)
}

func (b *Bot) handleHelpCommand(message *tgbotapi.Message) {
	helpText := `How it works:

📚 Lessons are grouped into units. Finish a lesson to unlock the next
one; finishing a unit unlocks the next unit.
⚡ Every completed lesson earns XP, even when you repeat it.
🔥 Complete at least one lesson a day to grow your streak.
🏆 Milestones earn you achievements.

Wrong answers never block you: you always see the correct answer and
move on.`

	msg := tgbotapi.NewMessage(message.Chat.ID, helpText)
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	b.api.Send(msg)
}

// showUnits lists the course units with completion counts.
func (b *Bot) showUnits(chatID int64, userID int64) {
	tracker := b.trackerFor(context.Background(), userID)

	var rows [][]MenuButton
	for _, unit := range tracker.Units() {
		lessons := tracker.LessonsForUnit(unit)
		completed := 0
		for _, lesson := range lessons {
			if lesson.IsCompleted {
				completed++
			}
		}
		label := fmt.Sprintf("Unit %d (%d/%d)", unit, completed, len(lessons))
		rows = append(rows, []MenuButton{{Text: label, CallbackData: fmt.Sprintf("unit_%d", unit)}})
	}
	rows = append(rows, []MenuButton{{Text: "« Back to Menu", CallbackData: "main_menu"}})

	msg := tgbotapi.NewMessage(chatID, "📚 Choose a unit:")
	msg.ReplyMarkup = createKeyboard(rows)
	b.api.Send(msg)
}

// showUnitLessons lists a unit's lessons with their state markers.
func (b *Bot) showUnitLessons(chatID int64, userID int64, unit int) {
	tracker := b.trackerFor(context.Background(), userID)
	lessons := tracker.LessonsForUnit(unit)
	if len(lessons) == 0 {
		b.showUnits(chatID, userID)
		return
	}

	var rows [][]MenuButton
	for _, lesson := range lessons {
		marker := "🔒"
		if lesson.IsCompleted {
			marker = "✅"
		} else if lesson.IsUnlocked {
			marker = "▶️"
		}
		rows = append(rows, []MenuButton{{
			Text:         fmt.Sprintf("%s %s (+%d XP)", marker, lesson.Title, lesson.XPReward),
			CallbackData: "lesson_" + lesson.ID,
		}})
	}
	rows = append(rows, []MenuButton{{Text: "« Back to Units", CallbackData: "show_lessons"}})

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Unit %d - choose a lesson:", unit))
	msg.ReplyMarkup = createKeyboard(rows)
	b.api.Send(msg)
}

// startLesson begins an exercise session, refusing locked lessons.
func (b *Bot) startLesson(chatID int64, userID int64, lessonID string) {
	tracker := b.trackerFor(context.Background(), userID)

	lesson, ok := tracker.Lesson(lessonID)
	if !ok {
		log.Printf("User %d requested unknown lesson %q", userID, lessonID)
		b.showUnits(chatID, userID)
		return
	}
	if !tracker.IsLessonAvailable(lessonID) {
		msg := tgbotapi.NewMessage(chatID, "🔒 This lesson is still locked. Complete the previous lesson first!")
		b.api.Send(msg)
		b.showUnitLessons(chatID, userID, lesson.Unit)
		return
	}

	b.setSession(userID, &quizSession{
		quiz:   exercise.NewQuiz(lesson),
		lesson: lesson,
	})

	intro := fmt.Sprintf("📖 *%s*\n%s", lesson.Title, lesson.Description)
	if len(lesson.Words) > 0 {
		var vocab strings.Builder
		vocab.WriteString("\n\nNew words:\n")
		for _, w := range lesson.Words {
			vocab.WriteString(fmt.Sprintf("• *%s* — %s", w.Shona, w.English))
			if w.Pronunciation != "" {
				vocab.WriteString(fmt.Sprintf(" [%s]", w.Pronunciation))
			}
			vocab.WriteString("\n")
		}
		intro += vocab.String()
	}

	msg := tgbotapi.NewMessage(chatID, intro)
	msg.ParseMode = "Markdown"
	b.api.Send(msg)

	b.askCurrentExercise(chatID, userID)
}

// askCurrentExercise presents the next question, or finishes the lesson when
// every exercise has been answered.
func (b *Bot) askCurrentExercise(chatID int64, userID int64) {
	session, ok := b.session(userID)
	if !ok {
		return
	}

	ex, ok := session.quiz.Current()
	if !ok {
		b.finishLesson(chatID, userID)
		return
	}

	n, total := session.quiz.Position()
	text := fmt.Sprintf("Question %d/%d\n\n%s", n, total, ex.Question)

	options := exercise.OptionsFor(ex, session.lesson, b.config.ChoicesPerQuestion)
	b.mu.Lock()
	session.options = options
	b.mu.Unlock()

	msg := tgbotapi.NewMessage(chatID, text)
	if len(options) > 1 {
		var rows [][]MenuButton
		for i, option := range options {
			rows = append(rows, []MenuButton{{Text: option, CallbackData: fmt.Sprintf("ans_%d", i)}})
		}
		msg.ReplyMarkup = createKeyboard(rows)
	}
	b.api.Send(msg)
}

// handleAnswer grades one answer and moves on. Wrong answers show the correct
// one; they never block lesson completion.
func (b *Bot) handleAnswer(chatID int64, userID int64, answer string) {
	session, ok := b.session(userID)
	if !ok {
		return
	}
	ex, ok := session.quiz.Current()
	if !ok {
		b.finishLesson(chatID, userID)
		return
	}

	if session.quiz.Submit(answer) {
		b.api.Send(tgbotapi.NewMessage(chatID, "✅ Correct!"))
	} else {
		b.api.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Not quite. The answer is: %s", ex.CorrectAnswer)))
	}

	b.askCurrentExercise(chatID, userID)
}

// finishLesson runs the completion cascade and reports what changed.
func (b *Bot) finishLesson(chatID int64, userID int64) {
	session, ok := b.session(userID)
	if !ok {
		return
	}
	b.clearSession(userID)

	ctx := context.Background()
	tracker := b.trackerFor(ctx, userID)
	result, err := tracker.CompleteLesson(ctx, session.lesson.ID)
	if err != nil {
		log.Printf("Error completing lesson %q for user %d: %v", session.lesson.ID, userID, err)
		msg := tgbotapi.NewMessage(chatID, "Something went wrong finishing this lesson. Please try again.")
		msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
		b.api.Send(msg)
		return
	}

	// The statistics log is best-effort; the progress blob already holds the
	// learner's state.
	go func() {
		if err := b.completions.Record(context.Background(), userID, result.Lesson.ID, result.XPEarned); err != nil {
			log.Printf("Error recording completion for user %d: %v", userID, err)
		}
	}()

	correct, total := session.quiz.Score()

	var text strings.Builder
	text.WriteString(fmt.Sprintf("🎉 *Lesson complete: %s*\n\n", result.Lesson.Title))
	text.WriteString(fmt.Sprintf("Score: %d/%d\n", correct, total))
	text.WriteString(fmt.Sprintf("⚡ +%d XP (total: %d)\n", result.XPEarned, result.TotalXP))
	text.WriteString(fmt.Sprintf("🔥 Streak: %d day(s)\n", result.CurrentStreak))

	for _, a := range result.NewAchievements {
		text.WriteString(fmt.Sprintf("\n%s *Achievement unlocked: %s*\n%s\n", a.Icon, a.Title, a.Description))
	}
	for _, id := range result.UnlockedLessons {
		if lesson, ok := tracker.Lesson(id); ok {
			text.WriteString(fmt.Sprintf("\n🔓 New lesson unlocked: *%s*\n", lesson.Title))
		}
	}

	msg := tgbotapi.NewMessage(chatID, text.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{{Text: "📚 More Lessons", CallbackData: "show_lessons"}},
		{{Text: "« Back to Menu", CallbackData: "main_menu"}},
	})
	b.api.Send(msg)
}

// handleStatsCommand renders the learner's progress snapshot.
func (b *Bot) handleStatsCommand(chatID int64, userID int64) {
	tracker := b.trackerFor(context.Background(), userID)
	p := tracker.Progress()

	totalLessons := 0
	for _, unit := range tracker.Units() {
		totalLessons += len(tracker.LessonsForUnit(unit))
	}

	statsText := "📊 *Your Progress*\n\n" +
		fmt.Sprintf("⚡ Total XP: %d\n", p.TotalXP) +
		fmt.Sprintf("🔥 Current streak: %d day(s)\n", p.CurrentStreak) +
		fmt.Sprintf("🏅 Longest streak: %d day(s)\n", p.LongestStreak) +
		fmt.Sprintf("📚 Lessons completed: %d/%d\n", len(p.CompletedLessons), totalLessons) +
		fmt.Sprintf("🏆 Achievements: %d\n", len(p.Achievements))

	if p.LastStudyDate != nil {
		statsText += fmt.Sprintf("🗓 Last studied: %s\n", p.LastStudyDate.Format("2006-01-02"))
	}

	msg := tgbotapi.NewMessage(chatID, statsText)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{{Text: "📚 Lessons", CallbackData: "show_lessons"}},
		{{Text: "« Back to Menu", CallbackData: "main_menu"}},
	})
	b.api.Send(msg)
}

// handleAchievementsCommand lists earned achievements.
func (b *Bot) handleAchievementsCommand(chatID int64, userID int64) {
	tracker := b.trackerFor(context.Background(), userID)
	p := tracker.Progress()

	var text strings.Builder
	text.WriteString("🏆 *Your Achievements*\n\n")
	if len(p.Achievements) == 0 {
		text.WriteString("Nothing earned yet. Keep a 7-day streak or reach 1000 XP!\n")
	}
	for _, a := range p.Achievements {
		text.WriteString(fmt.Sprintf("%s *%s* — %s", a.Icon, a.Title, a.Description))
		if a.EarnedAt != nil {
			text.WriteString(fmt.Sprintf(" (earned %s)", a.EarnedAt.Format("2006-01-02")))
		}
		text.WriteString("\n")
	}

	msg := tgbotapi.NewMessage(chatID, text.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{{Text: "« Back to Menu", CallbackData: "main_menu"}},
	})
	b.api.Send(msg)
}

// handleSettingsCommand shows the reminder settings menu.
func (b *Bot) handleSettingsCommand(chatID int64, userID int64) {
	ctx := context.Background()
	user, err := b.users.GetByTelegramID(ctx, userID)
	if err != nil {
		log.Printf("Error loading settings for user %d: %v", userID, err)
	}

	enabled := true
	hour := b.config.DefaultReminderHour
	if user != nil {
		enabled = user.RemindersEnabled
		hour = user.ReminderHour
	}

	toggle := MenuButton{Text: "🔕 Disable reminders", CallbackData: "reminders_off"}
	if !enabled {
		toggle = MenuButton{Text: "🔔 Enable reminders", CallbackData: "reminders_on"}
	}

	var hourRow []MenuButton
	var rows [][]MenuButton
	for _, h := range b.config.ReminderHourOptions {
		label := fmt.Sprintf("%d:00", h)
		if h == hour {
			label = "✓ " + label
		}
		hourRow = append(hourRow, MenuButton{Text: label, CallbackData: fmt.Sprintf("remind_hour_%d", h)})
		if len(hourRow) == 3 {
			rows = append(rows, hourRow)
			hourRow = nil
		}
	}
	if len(hourRow) > 0 {
		rows = append(rows, hourRow)
	}
	rows = append(rows, []MenuButton{toggle})
	rows = append(rows, []MenuButton{{Text: "« Back to Menu", CallbackData: "main_menu"}})

	msg := tgbotapi.NewMessage(chatID, "⚙️ Settings\n\nChoose when to receive your daily streak reminder:")
	msg.ReplyMarkup = createKeyboard(rows)
	b.api.Send(msg)
}

func (b *Bot) handleAdminStatsCommand(chatID int64) {
	ctx := context.Background()

	users, err := b.users.GetAll(ctx)
	if err != nil {
		log.Printf("Error getting users: %v", err)
	}
	stats, err := b.completions.Stats(ctx, time.Local)
	if err != nil {
		log.Printf("Error getting completion stats: %v", err)
		b.api.Send(tgbotapi.NewMessage(chatID, "Statistics are unavailable right now."))
		return
	}

	statsText := "System Statistics\n\n" +
		fmt.Sprintf("Registered users: %d\n", len(users)) +
		fmt.Sprintf("Active learners: %d\n", stats.Learners) +
		fmt.Sprintf("Lessons completed: %d (today: %d)\n", stats.Completions, stats.CompletionsToday) +
		fmt.Sprintf("Total XP awarded: %d\n", stats.TotalXP) +
		fmt.Sprintf("Server time: %s\n", time.Now().Format("2006-01-02 15:04:05"))

	b.api.Send(tgbotapi.NewMessage(chatID, statsText))
}

// handleCallbackQuery handles callback queries from buttons
func (b *Bot) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	userID := callback.From.ID
	chatID := callback.Message.Chat.ID

	// Acknowledge so the client stops showing the spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		log.Printf("Error answering callback query: %v", err)
	}

	switch {
	case callback.Data == "main_menu":
		b.showMainMenu(chatID)
	case callback.Data == "show_lessons":
		b.showUnits(chatID, userID)
	case callback.Data == "show_stats":
		b.handleStatsCommand(chatID, userID)
	case callback.Data == "show_achievements":
		b.handleAchievementsCommand(chatID, userID)
	case callback.Data == "settings":
		b.handleSettingsCommand(chatID, userID)
	case callback.Data == "reminders_on", callback.Data == "reminders_off":
		enabled := callback.Data == "reminders_on"
		if err := b.users.SetRemindersEnabled(context.Background(), userID, enabled); err != nil {
			log.Printf("Error toggling reminders for user %d: %v", userID, err)
		}
		b.handleSettingsCommand(chatID, userID)
	case strings.HasPrefix(callback.Data, "remind_hour_"):
		hour, err := strconv.Atoi(strings.TrimPrefix(callback.Data, "remind_hour_"))
		if err != nil {
			log.Printf("Error parsing reminder hour: %v", err)
			return
		}
		if err := b.users.SetReminderHour(context.Background(), userID, hour); err != nil {
			log.Printf("Error setting reminder hour for user %d: %v", userID, err)
		}
		b.handleSettingsCommand(chatID, userID)
	case strings.HasPrefix(callback.Data, "unit_"):
		unit, err := strconv.Atoi(strings.TrimPrefix(callback.Data, "unit_"))
		if err != nil {
			log.Printf("Error parsing unit number: %v", err)
			return
		}
		b.showUnitLessons(chatID, userID, unit)
	case strings.HasPrefix(callback.Data, "lesson_"):
		b.startLesson(chatID, userID, strings.TrimPrefix(callback.Data, "lesson_"))
	case strings.HasPrefix(callback.Data, "ans_"):
		idx, err := strconv.Atoi(strings.TrimPrefix(callback.Data, "ans_"))
		if err != nil {
			log.Printf("Error parsing answer index: %v", err)
			return
		}
		session, ok := b.session(userID)
		if !ok {
			return
		}
		b.mu.Lock()
		options := session.options
		b.mu.Unlock()
		if idx < 0 || idx >= len(options) {
			return
		}
		b.handleAnswer(chatID, userID, options[idx])
	}
}
