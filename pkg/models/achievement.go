package models

import "time"

// Achievement represents a badge earned by the learner. The title doubles as
// the uniqueness key: the earned list never holds two entries with the same
// title.
type Achievement struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Icon           string     `json:"icon"` // Emoji or icon reference shown next to the title
	XPRequired     *int       `json:"xp_required,omitempty"`
	StreakRequired *int       `json:"streak_required,omitempty"`
	Earned         bool       `json:"earned"`
	EarnedAt       *time.Time `json:"earned_at,omitempty"`
}
