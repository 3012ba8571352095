package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ProgressRepository stores one opaque serialized progress blob per learner.
// The repository never inspects the payload; the progress tracker owns the
// format.
type ProgressRepository struct{}

// NewProgressRepository creates a new repository instance
func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{}
}

// Load returns the saved blob for a learner, or (nil, nil) when nothing has
// been saved yet.
func (r *ProgressRepository) Load(ctx context.Context, telegramID int64) ([]byte, error) {
	var data []byte
	query := DB.Rebind("SELECT data FROM user_progress WHERE telegram_id = ?")
	err := DB.GetContext(ctx, &data, query, telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user progress: %w", err)
	}
	return data, nil
}

// Save overwrites the learner's blob. There is no merge: the caller always
// writes the complete record.
func (r *ProgressRepository) Save(ctx context.Context, telegramID int64, data []byte) error {
	query := DB.Rebind(`
		INSERT INTO user_progress (telegram_id, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (telegram_id) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = CURRENT_TIMESTAMP
	`)
	if _, err := DB.ExecContext(ctx, query, telegramID, data); err != nil {
		return fmt.Errorf("failed to save user progress: %w", err)
	}
	return nil
}

// ForUser binds the repository to a single learner. The returned store
// satisfies the progress tracker's Store interface.
func (r *ProgressRepository) ForUser(telegramID int64) *UserStore {
	return &UserStore{repo: r, telegramID: telegramID}
}

// UserStore is a ProgressRepository scoped to one learner's slot.
type UserStore struct {
	repo       *ProgressRepository
	telegramID int64
}

// Load fetches the learner's blob.
func (s *UserStore) Load(ctx context.Context) ([]byte, error) {
	return s.repo.Load(ctx, s.telegramID)
}

// Save overwrites the learner's blob.
func (s *UserStore) Save(ctx context.Context, data []byte) error {
	return s.repo.Save(ctx, s.telegramID, data)
}
