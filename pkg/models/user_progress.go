package models

import "time"

// UserProgress is the single persisted record of a learner's progress through
// the course. Completed and unlocked lessons are sets of lesson IDs stored as
// arrays so the record serializes to plain JSON. LastStudyDate is nil until
// the first lesson is completed.
type UserProgress struct {
	TotalXP          int           `json:"total_xp"`
	CurrentStreak    int           `json:"current_streak"`
	LongestStreak    int           `json:"longest_streak"`
	CompletedLessons []string      `json:"completed_lessons"`
	UnlockedLessons  []string      `json:"unlocked_lessons"`
	LastStudyDate    *time.Time    `json:"last_study_date,omitempty"`
	Achievements     []Achievement `json:"achievements"`
}

// HasCompleted reports whether the lesson is in the completed set.
func (p *UserProgress) HasCompleted(lessonID string) bool {
	return contains(p.CompletedLessons, lessonID)
}

// HasUnlocked reports whether the lesson is in the unlocked set.
func (p *UserProgress) HasUnlocked(lessonID string) bool {
	return contains(p.UnlockedLessons, lessonID)
}

// AddCompleted inserts the lesson into the completed set. Adding an ID that
// is already present is a no-op.
func (p *UserProgress) AddCompleted(lessonID string) {
	if !contains(p.CompletedLessons, lessonID) {
		p.CompletedLessons = append(p.CompletedLessons, lessonID)
	}
}

// AddUnlocked inserts the lesson into the unlocked set. Adding an ID that is
// already present is a no-op.
func (p *UserProgress) AddUnlocked(lessonID string) {
	if !contains(p.UnlockedLessons, lessonID) {
		p.UnlockedLessons = append(p.UnlockedLessons, lessonID)
	}
}

// HasAchievement reports whether an achievement with the given title has
// already been earned.
func (p *UserProgress) HasAchievement(title string) bool {
	for _, a := range p.Achievements {
		if a.Title == title {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the progress record, safe to hand out to
// callers that render it while the original keeps changing.
func (p *UserProgress) Clone() UserProgress {
	out := *p
	out.CompletedLessons = append([]string(nil), p.CompletedLessons...)
	out.UnlockedLessons = append([]string(nil), p.UnlockedLessons...)
	out.Achievements = append([]Achievement(nil), p.Achievements...)
	if p.LastStudyDate != nil {
		d := *p.LastStudyDate
		out.LastStudyDate = &d
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
