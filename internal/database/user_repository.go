package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/shonabot/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const userColumns = "id, telegram_id, username, first_name, last_name, is_admin, reminders_enabled, reminder_hour, created_at, updated_at"

// GetByTelegramID returns the user with the given Telegram ID, or nil when
// the user has never talked to the bot.
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	var user models.User
	query := DB.Rebind("SELECT " + userColumns + " FROM users WHERE telegram_id = ?")
	err := DB.GetContext(ctx, &user, query, telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by telegram ID: %w", err)
	}
	return &user, nil
}

// Create inserts a new user, or refreshes the profile fields if the Telegram
// ID is already known.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := DB.Rebind(`
		INSERT INTO users (telegram_id, username, first_name, last_name, is_admin, reminders_enabled, reminder_hour)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (telegram_id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			updated_at = CURRENT_TIMESTAMP
	`)
	_, err := DB.ExecContext(ctx, query,
		user.TelegramID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.IsAdmin,
		user.RemindersEnabled,
		user.ReminderHour,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetAll returns all users
func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := DB.SelectContext(ctx, &users, "SELECT "+userColumns+" FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

// GetUsersForReminder returns users whose reminders are enabled and whose
// preferred reminder hour matches the given hour.
func (r *UserRepository) GetUsersForReminder(ctx context.Context, hour int) ([]models.User, error) {
	var users []models.User
	query := DB.Rebind("SELECT " + userColumns + " FROM users WHERE reminders_enabled = true AND reminder_hour = ?")
	err := DB.SelectContext(ctx, &users, query, hour)
	if err != nil {
		return nil, fmt.Errorf("failed to get users for reminder: %w", err)
	}
	return users, nil
}

// SetRemindersEnabled toggles streak reminders for a user.
func (r *UserRepository) SetRemindersEnabled(ctx context.Context, telegramID int64, enabled bool) error {
	query := DB.Rebind("UPDATE users SET reminders_enabled = ?, updated_at = CURRENT_TIMESTAMP WHERE telegram_id = ?")
	_, err := DB.ExecContext(ctx, query, enabled, telegramID)
	if err != nil {
		return fmt.Errorf("failed to update reminder setting: %w", err)
	}
	return nil
}

// SetReminderHour changes the hour of day a user receives streak reminders.
func (r *UserRepository) SetReminderHour(ctx context.Context, telegramID int64, hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("reminder hour %d out of range", hour)
	}
	query := DB.Rebind("UPDATE users SET reminder_hour = ?, updated_at = CURRENT_TIMESTAMP WHERE telegram_id = ?")
	_, err := DB.ExecContext(ctx, query, hour, telegramID)
	if err != nil {
		return fmt.Errorf("failed to update reminder hour: %w", err)
	}
	return nil
}
