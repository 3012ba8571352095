package database

import (
	"context"
	"fmt"
	"time"
)

// CompletionRepository records every lesson completion as an append-only
// event, used for admin statistics. The serialized progress blob remains the
// source of truth for a learner's state; losing an event here loses nothing
// but a statistics row.
type CompletionRepository struct{}

// NewCompletionRepository creates a new repository instance
func NewCompletionRepository() *CompletionRepository {
	return &CompletionRepository{}
}

// Record appends one completion event.
func (r *CompletionRepository) Record(ctx context.Context, telegramID int64, lessonID string, xp int) error {
	query := DB.Rebind("INSERT INTO lesson_completions (telegram_id, lesson_id, xp) VALUES (?, ?, ?)")
	if _, err := DB.ExecContext(ctx, query, telegramID, lessonID, xp); err != nil {
		return fmt.Errorf("failed to record lesson completion: %w", err)
	}
	return nil
}

// CompletionStats summarizes activity across all learners.
type CompletionStats struct {
	Learners         int `db:"learners"`
	Completions      int `db:"completions"`
	CompletionsToday int `db:"completions_today"`
	TotalXP          int `db:"total_xp"`
}

// Stats aggregates the completion log. The day boundary for "today" is
// computed in the given location so it matches the tracker's streak days.
func (r *CompletionRepository) Stats(ctx context.Context, loc *time.Location) (*CompletionStats, error) {
	now := time.Now().In(loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	var stats CompletionStats
	query := DB.Rebind(`
		SELECT
			COUNT(DISTINCT telegram_id) AS learners,
			COUNT(*) AS completions,
			COALESCE(SUM(CASE WHEN completed_at >= ? THEN 1 ELSE 0 END), 0) AS completions_today,
			COALESCE(SUM(xp), 0) AS total_xp
		FROM lesson_completions
	`)
	if err := DB.GetContext(ctx, &stats, query, midnight.UTC()); err != nil {
		return nil, fmt.Errorf("failed to aggregate completion stats: %w", err)
	}
	return &stats, nil
}
