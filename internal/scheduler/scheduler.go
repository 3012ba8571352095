package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/shonabot/pkg/models"
)

// Default window during which streak reminders may be sent
const (
	DefaultReminderStartHour = 8
	DefaultReminderEndHour   = 21
)

// Notifier sends a streak reminder to a learner.
type Notifier interface {
	SendStreakReminder(userID int64, streak int) error
}

// UserSource lists the users who asked to be reminded at a given hour.
type UserSource interface {
	GetUsersForReminder(ctx context.Context, hour int) ([]models.User, error)
}

// ProgressSource answers whether a learner has already studied today and what
// their current streak is.
type ProgressSource interface {
	StudiedToday(userID int64) bool
	CurrentStreak(userID int64) int
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	users     UserSource
	progress  ProgressSource
	now       func() time.Time
}

// New creates a new scheduler instance
func New(notifier Notifier, users UserSource, progress ProgressSource) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		notifier:  notifier,
		users:     users,
		progress:  progress,
		now:       time.Now,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Hourly check for users whose reminder hour has arrived
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders nudges users who haven't studied yet today.
func (s *Scheduler) checkAndSendReminders() {
	currentHour := s.now().Hour()

	startHour := DefaultReminderStartHour
	endHour := DefaultReminderEndHour
	if v := os.Getenv("NOTIFICATION_START_HOUR"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			startHour = h
		}
	}
	if v := os.Getenv("NOTIFICATION_END_HOUR"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			endHour = h
		}
	}

	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminders",
			currentHour, startHour, endHour)
		return
	}

	if err := s.RemindDueUsers(context.Background(), currentHour); err != nil {
		log.Printf("Error sending streak reminders: %v", err)
	}
}

// RemindDueUsers sends a reminder to every user whose preferred hour matches
// and who hasn't completed a lesson today. Users who already studied are left
// alone: their streak is safe.
func (s *Scheduler) RemindDueUsers(ctx context.Context, hour int) error {
	users, err := s.users.GetUsersForReminder(ctx, hour)
	if err != nil {
		return err
	}

	for _, user := range users {
		if s.progress.StudiedToday(user.TelegramID) {
			continue
		}
		streak := s.progress.CurrentStreak(user.TelegramID)
		if err := s.notifier.SendStreakReminder(user.TelegramID, streak); err != nil {
			log.Printf("Error sending reminder to user %d: %v", user.TelegramID, err)
		}
	}
	return nil
}
