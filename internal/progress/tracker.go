package progress

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/example/shonabot/pkg/models"
)

// ErrUnknownLesson is returned when a lesson ID is not part of the catalog.
var ErrUnknownLesson = errors.New("lesson is not part of the catalog")

// Tracker owns the lesson catalog's derived availability state and the single
// mutable UserProgress record behind it. Completing a lesson runs the full
// cascade: completed set, XP, streak, unlock propagation, achievements,
// persistence.
//
// A tracker is built with New and passed explicitly to its consumers; there is
// no package-level instance. One tracker manages the progress of one learner.
type Tracker struct {
	mu      sync.Mutex
	catalog []models.Lesson
	byID    map[string]int
	store   Store
	current models.UserProgress
	rules   []achievementRule

	nowFn       func() time.Time
	loc         *time.Location
	version     uint64
	subscribers []func()
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithNow overrides the clock, used by tests to pin the calendar day.
func WithNow(fn func() time.Time) Option {
	return func(t *Tracker) { t.nowFn = fn }
}

// WithLocation sets the time zone used for day-boundary arithmetic. All
// streak computations use this single location; the default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) { t.loc = loc }
}

// CompletionResult summarizes what a single lesson completion changed, for
// the presentation layer to render.
type CompletionResult struct {
	Lesson          models.Lesson
	XPEarned        int
	TotalXP         int
	CurrentStreak   int
	NewAchievements []models.Achievement
	UnlockedLessons []string // IDs newly added to the unlocked set
}

// New builds a tracker over the given catalog and persistence slot. It loads
// any previously saved progress; a missing or unreadable blob falls back to a
// fresh zero-valued record, which is the normal first-run state.
func New(ctx context.Context, catalog []models.Lesson, store Store, opts ...Option) *Tracker {
	t := &Tracker{
		catalog: append([]models.Lesson(nil), catalog...),
		byID:    make(map[string]int, len(catalog)),
		store:   store,
		rules:   defaultRules(),
		nowFn:   time.Now,
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(t)
	}

	sort.SliceStable(t.catalog, func(i, j int) bool {
		if t.catalog[i].Unit != t.catalog[j].Unit {
			return t.catalog[i].Unit < t.catalog[j].Unit
		}
		return t.catalog[i].LessonNumber < t.catalog[j].LessonNumber
	})
	for i, lesson := range t.catalog {
		t.byID[lesson.ID] = i
	}

	t.current = t.load(ctx)
	return t
}

// load pulls the saved progress blob from the store. Absence and decode
// failures both yield a fresh record; neither is surfaced as an error.
func (t *Tracker) load(ctx context.Context) models.UserProgress {
	data, err := t.store.Load(ctx)
	if err != nil {
		log.Printf("Error loading user progress, starting fresh: %v", err)
		return zeroProgress()
	}
	if data == nil {
		return zeroProgress()
	}

	var p models.UserProgress
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("Error decoding saved user progress, starting fresh: %v", err)
		return zeroProgress()
	}
	if p.CompletedLessons == nil {
		p.CompletedLessons = []string{}
	}
	if p.UnlockedLessons == nil {
		p.UnlockedLessons = []string{}
	}
	if p.Achievements == nil {
		p.Achievements = []models.Achievement{}
	}
	return p
}

func zeroProgress() models.UserProgress {
	return models.UserProgress{
		CompletedLessons: []string{},
		UnlockedLessons:  []string{},
		Achievements:     []models.Achievement{},
	}
}

// Units returns the distinct unit numbers present in the catalog, ascending.
func (t *Tracker) Units() []int {
	seen := make(map[int]bool)
	var units []int
	for _, lesson := range t.catalog {
		if !seen[lesson.Unit] {
			seen[lesson.Unit] = true
			units = append(units, lesson.Unit)
		}
	}
	sort.Ints(units)
	return units
}

// LessonsForUnit returns the unit's lessons ordered by lesson number, with
// IsCompleted and IsUnlocked computed from the current progress sets.
func (t *Tracker) LessonsForUnit(unit int) []models.Lesson {
	t.mu.Lock()
	defer t.mu.Unlock()

	var lessons []models.Lesson
	for _, lesson := range t.catalog {
		if lesson.Unit == unit {
			lessons = append(lessons, t.withFlags(lesson))
		}
	}
	return lessons
}

// Lesson returns the catalog lesson with the given ID, flags computed from
// the current progress.
func (t *Tracker) Lesson(id string) (models.Lesson, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.byID[id]
	if !ok {
		return models.Lesson{}, false
	}
	return t.withFlags(t.catalog[i]), true
}

// IsLessonAvailable reports whether the lesson can be started: either it has
// been unlocked, or it is the fixed entry point of the course (unit 1,
// lesson 1), which is always available.
func (t *Tracker) IsLessonAvailable(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.byID[id]
	if !ok {
		return false
	}
	return t.isUnlocked(t.catalog[i])
}

// Progress returns a snapshot copy of the current progress record.
func (t *Tracker) Progress() models.UserProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current.Clone()
}

// StudiedToday reports whether at least one lesson was completed on the
// current calendar day.
func (t *Tracker) StudiedToday() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current.LastStudyDate == nil {
		return false
	}
	today := startOfDay(t.nowFn().In(t.loc))
	return startOfDay(t.current.LastStudyDate.In(t.loc)).Equal(today)
}

// Version returns a counter that increases after every mutation. Consumers
// that poll can compare versions instead of diffing state.
func (t *Tracker) Version() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.version
}

// Subscribe registers a callback invoked after every completed mutation. The
// callback runs on the mutating goroutine, outside the tracker's lock.
func (t *Tracker) Subscribe(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscribers = append(t.subscribers, fn)
}

// CompleteLesson applies the state transition for a finished exercise set.
// Re-completing an already-completed lesson is allowed and runs the full
// cascade again, so "practice again" keeps awarding XP.
//
// A persistence failure is logged and swallowed: the in-memory state stays
// correct for the session and only the latest write can be lost.
func (t *Tracker) CompleteLesson(ctx context.Context, lessonID string) (CompletionResult, error) {
	t.mu.Lock()

	i, ok := t.byID[lessonID]
	if !ok {
		t.mu.Unlock()
		return CompletionResult{}, ErrUnknownLesson
	}
	lesson := t.catalog[i]

	t.current.AddCompleted(lesson.ID)
	t.current.TotalXP += lesson.XPReward

	t.updateStreak()
	unlocked := t.unlockAfter(lesson)
	earned := t.checkAchievements()
	t.persist(ctx)

	result := CompletionResult{
		Lesson:          t.withFlags(lesson),
		XPEarned:        lesson.XPReward,
		TotalXP:         t.current.TotalXP,
		CurrentStreak:   t.current.CurrentStreak,
		NewAchievements: earned,
		UnlockedLessons: unlocked,
	}

	t.version++
	subscribers := append(([]func())(nil), t.subscribers...)
	t.mu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
	return result, nil
}

// updateStreak advances the consecutive-day counter. Multiple completions on
// the same calendar day neither inflate nor reset the streak; a gap of more
// than one day resets it to 1.
func (t *Tracker) updateStreak() {
	now := t.nowFn().In(t.loc)
	today := startOfDay(now)

	if t.current.LastStudyDate == nil {
		t.current.CurrentStreak = 1
	} else {
		lastDay := startOfDay(t.current.LastStudyDate.In(t.loc))
		days := daysBetween(lastDay, today)
		if days == 1 {
			t.current.CurrentStreak++
		} else if days > 1 {
			t.current.CurrentStreak = 1
		}
	}

	if t.current.CurrentStreak > t.current.LongestStreak {
		t.current.LongestStreak = t.current.CurrentStreak
	}
	t.current.LastStudyDate = &now
}

// unlockAfter adds the next lesson in the same unit to the unlocked set, or
// the first lesson of the next unit when the unit is finished. At the end of
// the course there is nothing to unlock, which is fine. Returns the IDs that
// were newly added.
func (t *Tracker) unlockAfter(lesson models.Lesson) []string {
	next, ok := t.find(lesson.Unit, lesson.LessonNumber+1)
	if !ok {
		next, ok = t.find(lesson.Unit+1, 1)
	}
	if !ok {
		return nil
	}

	if t.current.HasUnlocked(next.ID) {
		return nil
	}
	t.current.AddUnlocked(next.ID)
	return []string{next.ID}
}

// checkAchievements evaluates every rule against the updated progress and
// appends the ones that newly hold. Each title is earned at most once.
func (t *Tracker) checkAchievements() []models.Achievement {
	var earned []models.Achievement
	now := t.nowFn()
	for _, rule := range t.rules {
		if t.current.HasAchievement(rule.Title) {
			continue
		}
		if rule.Met(&t.current) {
			a := rule.Earn(now)
			t.current.Achievements = append(t.current.Achievements, a)
			earned = append(earned, a)
		}
	}
	return earned
}

// persist serializes the progress record and overwrites the stored blob.
func (t *Tracker) persist(ctx context.Context) {
	data, err := json.Marshal(t.current)
	if err != nil {
		log.Printf("Error encoding user progress: %v", err)
		return
	}
	if err := t.store.Save(ctx, data); err != nil {
		log.Printf("Error saving user progress: %v", err)
	}
}

// withFlags returns a copy of the lesson with IsCompleted and IsUnlocked
// derived from the progress sets. Unit 1 lesson 1 is always unlocked.
func (t *Tracker) withFlags(lesson models.Lesson) models.Lesson {
	lesson.IsCompleted = t.current.HasCompleted(lesson.ID)
	lesson.IsUnlocked = t.isUnlocked(lesson)
	return lesson
}

func (t *Tracker) isUnlocked(lesson models.Lesson) bool {
	return t.current.HasUnlocked(lesson.ID) || (lesson.Unit == 1 && lesson.LessonNumber == 1)
}

func (t *Tracker) find(unit, number int) (models.Lesson, bool) {
	for _, lesson := range t.catalog {
		if lesson.Unit == unit && lesson.LessonNumber == number {
			return lesson, true
		}
	}
	return models.Lesson{}, false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole calendar days from a to b. Both arguments are
// day-truncated in the same location; rounding absorbs DST-shortened days.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
