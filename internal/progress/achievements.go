package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/shonabot/pkg/models"
)

// achievementRule describes one badge and the threshold that earns it. Rules
// are independent: each checks only its own threshold, and the tracker guards
// uniqueness by title before appending.
type achievementRule struct {
	Title          string
	Description    string
	Icon           string
	XPRequired     int // 0 when the rule is not XP-based
	StreakRequired int // 0 when the rule is not streak-based
}

// Met reports whether the progress satisfies the rule's threshold.
func (r achievementRule) Met(p *models.UserProgress) bool {
	if r.XPRequired > 0 && p.TotalXP < r.XPRequired {
		return false
	}
	if r.StreakRequired > 0 && p.CurrentStreak < r.StreakRequired {
		return false
	}
	return true
}

// Earn builds the earned achievement record, stamped with the given time.
func (r achievementRule) Earn(now time.Time) models.Achievement {
	a := models.Achievement{
		ID:          uuid.NewString(),
		Title:       r.Title,
		Description: r.Description,
		Icon:        r.Icon,
		Earned:      true,
		EarnedAt:    &now,
	}
	if r.XPRequired > 0 {
		xp := r.XPRequired
		a.XPRequired = &xp
	}
	if r.StreakRequired > 0 {
		streak := r.StreakRequired
		a.StreakRequired = &streak
	}
	return a
}

// defaultRules returns the built-in achievement set.
func defaultRules() []achievementRule {
	return []achievementRule{
		{
			Title:          "Week Warrior",
			Description:    "Study for 7 days in a row",
			Icon:           "🔥",
			StreakRequired: 7,
		},
		{
			Title:       "XP Master",
			Description: "Earn 1000 XP",
			Icon:        "⭐",
			XPRequired:  1000,
		},
	}
}
