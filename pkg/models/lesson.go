package models

// Lesson represents one teachable unit of content: vocabulary, phrases and
// the exercise set the learner must finish to complete it.
//
// The ID is a stable, content-defined string so that completed/unlocked sets
// persisted across runs keep referring to the same lesson. IsCompleted and
// IsUnlocked are derived from the user's progress on read; they are never the
// source of truth.
type Lesson struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Unit         int           `json:"unit"`
	LessonNumber int           `json:"lesson_number"` // Ordering within the unit, 1-based
	Words        []ShonaWord   `json:"words"`
	Phrases      []ShonaPhrase `json:"phrases"`
	Exercises    []Exercise    `json:"exercises"`
	XPReward     int           `json:"xp_reward"`
	IsCompleted  bool          `json:"is_completed"`
	IsUnlocked   bool          `json:"is_unlocked"`
}
