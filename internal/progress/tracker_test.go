package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/shonabot/pkg/models"
)

// mockStore implements Store in memory for testing.
type mockStore struct {
	data    []byte
	loadErr error
	saveErr error
	saves   int
}

func (m *mockStore) Load(_ context.Context) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.data, nil
}

func (m *mockStore) Save(_ context.Context, data []byte) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = append([]byte(nil), data...)
	return nil
}

// fakeClock is an adjustable clock pinned to a known calendar day.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)}
}

func testCatalog() []models.Lesson {
	return []models.Lesson{
		{ID: "greetings", Title: "Basic Greetings", Unit: 1, LessonNumber: 1, XPReward: 50},
		{ID: "family", Title: "Family Members", Unit: 1, LessonNumber: 2, XPReward: 50},
		{ID: "colors", Title: "Colors", Unit: 2, LessonNumber: 1, XPReward: 50},
	}
}

func newTestTracker(t *testing.T, catalog []models.Lesson, store *mockStore, clock *fakeClock) *Tracker {
	t.Helper()
	return New(context.Background(), catalog, store, WithNow(clock.Now), WithLocation(time.UTC))
}

func TestFreshStartWithEmptyStore(t *testing.T) {
	tr := newTestTracker(t, testCatalog(), &mockStore{}, newClock())

	p := tr.Progress()
	if p.TotalXP != 0 || p.CurrentStreak != 0 || p.LongestStreak != 0 {
		t.Errorf("fresh progress not zero-valued: %+v", p)
	}
	if p.LastStudyDate != nil {
		t.Errorf("fresh progress has a last study date: %v", p.LastStudyDate)
	}
	if len(p.CompletedLessons) != 0 || len(p.UnlockedLessons) != 0 || len(p.Achievements) != 0 {
		t.Errorf("fresh progress has non-empty sets: %+v", p)
	}
}

func TestLoadFailureFallsBackToFresh(t *testing.T) {
	store := &mockStore{loadErr: errors.New("store unavailable")}
	tr := newTestTracker(t, testCatalog(), store, newClock())

	if p := tr.Progress(); p.TotalXP != 0 {
		t.Errorf("expected zero progress after load failure, got %+v", p)
	}
}

func TestCorruptBlobFallsBackToFresh(t *testing.T) {
	store := &mockStore{data: []byte("{not json")}
	tr := newTestTracker(t, testCatalog(), store, newClock())

	if p := tr.Progress(); p.TotalXP != 0 || len(p.CompletedLessons) != 0 {
		t.Errorf("expected zero progress after corrupt blob, got %+v", p)
	}
}

func TestUnits(t *testing.T) {
	tr := newTestTracker(t, testCatalog(), &mockStore{}, newClock())

	units := tr.Units()
	if len(units) != 2 || units[0] != 1 || units[1] != 2 {
		t.Errorf("units = %v, want [1 2]", units)
	}
}

func TestLessonsForUnitOrderedByNumber(t *testing.T) {
	// Catalog deliberately out of order.
	catalog := []models.Lesson{
		{ID: "family", Unit: 1, LessonNumber: 2, XPReward: 50},
		{ID: "greetings", Unit: 1, LessonNumber: 1, XPReward: 50},
	}
	tr := newTestTracker(t, catalog, &mockStore{}, newClock())

	lessons := tr.LessonsForUnit(1)
	if len(lessons) != 2 {
		t.Fatalf("expected 2 lessons, got %d", len(lessons))
	}
	if lessons[0].ID != "greetings" || lessons[1].ID != "family" {
		t.Errorf("lessons out of order: %s, %s", lessons[0].ID, lessons[1].ID)
	}
}

func TestEntryPointAlwaysAvailable(t *testing.T) {
	tr := newTestTracker(t, testCatalog(), &mockStore{}, newClock())

	if !tr.IsLessonAvailable("greetings") {
		t.Error("unit 1 lesson 1 must be available with no prior progress")
	}
	if tr.IsLessonAvailable("family") {
		t.Error("unit 1 lesson 2 must start locked")
	}
	if tr.IsLessonAvailable("colors") {
		t.Error("unit 2 lesson 1 must start locked")
	}
}

func TestCompleteUnknownLesson(t *testing.T) {
	tr := newTestTracker(t, testCatalog(), &mockStore{}, newClock())

	if _, err := tr.CompleteLesson(context.Background(), "no-such-lesson"); !errors.Is(err, ErrUnknownLesson) {
		t.Errorf("err = %v, want ErrUnknownLesson", err)
	}
}

func TestRecompletionCountsXPAgain(t *testing.T) {
	tr := newTestTracker(t, testCatalog(), &mockStore{}, newClock())
	ctx := context.Background()

	if _, err := tr.CompleteLesson(ctx, "greetings"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := tr.CompleteLesson(ctx, "greetings")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalXP != 100 {
		t.Errorf("total XP = %d, want 100", result.TotalXP)
	}
	p := tr.Progress()
	if len(p.CompletedLessons) != 1 {
		t.Errorf("completed set = %v, want one entry", p.CompletedLessons)
	}
}

func TestFirstCompletionStartsStreak(t *testing.T) {
	tr := newTestTracker(t, testCatalog(), &mockStore{}, newClock())

	result, err := tr.CompleteLesson(context.Background(), "greetings")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CurrentStreak != 1 {
		t.Errorf("current streak = %d, want 1", result.CurrentStreak)
	}
	if p := tr.Progress(); p.LongestStreak != 1 {
		t.Errorf("longest streak = %d, want 1", p.LongestStreak)
	}
}

func TestSameDayCompletionsKeepStreak(t *testing.T) {
	clock := newClock()
	tr := newTestTracker(t, testCatalog(), &mockStore{}, clock)
	ctx := context.Background()

	tr.CompleteLesson(ctx, "greetings")
	clock.Advance(3 * time.Hour) // later the same day
	result, _ := tr.CompleteLesson(ctx, "family")

	if result.CurrentStreak != 1 {
		t.Errorf("same-day streak = %d, want 1", result.CurrentStreak)
	}
}

func TestConsecutiveDaysIncrementStreak(t *testing.T) {
	clock := newClock()
	tr := newTestTracker(t, testCatalog(), &mockStore{}, clock)
	ctx := context.Background()

	tr.CompleteLesson(ctx, "greetings")
	clock.Advance(24 * time.Hour)
	tr.CompleteLesson(ctx, "family")
	clock.Advance(24 * time.Hour)
	result, _ := tr.CompleteLesson(ctx, "colors")

	if result.CurrentStreak != 3 {
		t.Errorf("streak after three consecutive days = %d, want 3", result.CurrentStreak)
	}
}

func TestSkippedDayResetsStreak(t *testing.T) {
	clock := newClock()
	tr := newTestTracker(t, testCatalog(), &mockStore{}, clock)
	ctx := context.Background()

	tr.CompleteLesson(ctx, "greetings")
	clock.Advance(24 * time.Hour)
	tr.CompleteLesson(ctx, "family")
	clock.Advance(48 * time.Hour) // skip a day
	result, _ := tr.CompleteLesson(ctx, "colors")

	if result.CurrentStreak != 1 {
		t.Errorf("streak after a gap = %d, want 1", result.CurrentStreak)
	}
	if p := tr.Progress(); p.LongestStreak != 2 {
		t.Errorf("longest streak = %d, want 2", p.LongestStreak)
	}
}

func TestLongestStreakNeverBelowCurrent(t *testing.T) {
	clock := newClock()
	tr := newTestTracker(t, testCatalog(), &mockStore{}, clock)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		tr.CompleteLesson(ctx, "greetings")
		p := tr.Progress()
		if p.LongestStreak < p.CurrentStreak {
			t.Fatalf("longest streak %d below current %d", p.LongestStreak, p.CurrentStreak)
		}
		clock.Advance(24 * time.Hour)
	}
}

func TestUnlockPropagation(t *testing.T) {
	tr := newTestTracker(t, testCatalog(), &mockStore{}, newClock())
	ctx := context.Background()

	result, _ := tr.CompleteLesson(ctx, "greetings")
	if len(result.UnlockedLessons) != 1 || result.UnlockedLessons[0] != "family" {
		t.Errorf("unlocked = %v, want [family]", result.UnlockedLessons)
	}
	if !tr.IsLessonAvailable("family") {
		t.Error("family should be available after completing greetings")
	}
	if tr.IsLessonAvailable("colors") {
		t.Error("colors must stay locked until unit 1 is finished")
	}

	// Last lesson of unit 1 unlocks the first lesson of unit 2.
	result, _ = tr.CompleteLesson(ctx, "family")
	if len(result.UnlockedLessons) != 1 || result.UnlockedLessons[0] != "colors" {
		t.Errorf("unlocked = %v, want [colors]", result.UnlockedLessons)
	}

	// End of course: nothing left to unlock, not an error.
	result, err := tr.CompleteLesson(ctx, "colors")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.UnlockedLessons) != 0 {
		t.Errorf("unlocked = %v, want none at end of course", result.UnlockedLessons)
	}
}

func TestXPMasterEarnedOnce(t *testing.T) {
	catalog := []models.Lesson{
		{ID: "marathon", Unit: 1, LessonNumber: 1, XPReward: 600},
	}
	tr := newTestTracker(t, catalog, &mockStore{}, newClock())
	ctx := context.Background()

	result, _ := tr.CompleteLesson(ctx, "marathon")
	if len(result.NewAchievements) != 0 {
		t.Errorf("no achievement expected at 600 XP, got %v", result.NewAchievements)
	}

	result, _ = tr.CompleteLesson(ctx, "marathon")
	if len(result.NewAchievements) != 1 || result.NewAchievements[0].Title != "XP Master" {
		t.Fatalf("expected XP Master at 1200 XP, got %v", result.NewAchievements)
	}

	// Crossing the threshold again must not duplicate the badge.
	tr.CompleteLesson(ctx, "marathon")
	count := 0
	for _, a := range tr.Progress().Achievements {
		if a.Title == "XP Master" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("XP Master earned %d times, want 1", count)
	}
}

func TestWeekWarriorAfterSevenDays(t *testing.T) {
	clock := newClock()
	tr := newTestTracker(t, testCatalog(), &mockStore{}, clock)
	ctx := context.Background()

	var earned []models.Achievement
	for i := 0; i < 7; i++ {
		result, _ := tr.CompleteLesson(ctx, "greetings")
		earned = append(earned, result.NewAchievements...)
		clock.Advance(24 * time.Hour)
	}

	if len(earned) != 1 || earned[0].Title != "Week Warrior" {
		t.Fatalf("expected exactly Week Warrior after 7 days, got %v", earned)
	}
	if earned[0].StreakRequired == nil || *earned[0].StreakRequired != 7 {
		t.Errorf("streak threshold not recorded: %+v", earned[0])
	}
	if earned[0].EarnedAt == nil {
		t.Error("earned achievement missing timestamp")
	}
}

func TestSaveFailureIsSwallowed(t *testing.T) {
	store := &mockStore{saveErr: errors.New("disk full")}
	tr := newTestTracker(t, testCatalog(), store, newClock())

	result, err := tr.CompleteLesson(context.Background(), "greetings")
	if err != nil {
		t.Fatalf("save failure must not surface: %v", err)
	}
	if result.TotalXP != 50 {
		t.Errorf("in-memory state wrong after save failure: %+v", result)
	}
	if store.saves != 1 {
		t.Errorf("save attempts = %d, want 1", store.saves)
	}
}

func TestProgressSurvivesRestart(t *testing.T) {
	clock := newClock()
	store := &mockStore{}
	tr := newTestTracker(t, testCatalog(), store, clock)
	tr.CompleteLesson(context.Background(), "greetings")

	// A second tracker over the same store sees the saved progress.
	tr2 := newTestTracker(t, testCatalog(), store, clock)
	p := tr2.Progress()
	if p.TotalXP != 50 || !p.HasCompleted("greetings") || !p.HasUnlocked("family") {
		t.Errorf("restarted tracker lost progress: %+v", p)
	}
	if p.CurrentStreak != 1 {
		t.Errorf("restarted streak = %d, want 1", p.CurrentStreak)
	}
	if !tr2.IsLessonAvailable("family") {
		t.Error("family should be available after restart")
	}
}

func TestVersionAndSubscribe(t *testing.T) {
	tr := newTestTracker(t, testCatalog(), &mockStore{}, newClock())

	notified := 0
	tr.Subscribe(func() { notified++ })

	before := tr.Version()
	tr.CompleteLesson(context.Background(), "greetings")
	if tr.Version() != before+1 {
		t.Errorf("version did not advance: %d -> %d", before, tr.Version())
	}
	if notified != 1 {
		t.Errorf("subscriber called %d times, want 1", notified)
	}
}

func TestStudiedToday(t *testing.T) {
	clock := newClock()
	tr := newTestTracker(t, testCatalog(), &mockStore{}, clock)

	if tr.StudiedToday() {
		t.Error("fresh tracker reports studied today")
	}
	tr.CompleteLesson(context.Background(), "greetings")
	if !tr.StudiedToday() {
		t.Error("expected studied today after completion")
	}
	clock.Advance(24 * time.Hour)
	if tr.StudiedToday() {
		t.Error("yesterday's completion counts as today")
	}
}

// TestTwoUnitScenario walks the reference scenario end to end: unit 1 with
// two 50 XP lessons, unit 2 with one, completed across two days.
func TestTwoUnitScenario(t *testing.T) {
	clock := newClock()
	tr := newTestTracker(t, testCatalog(), &mockStore{}, clock)
	ctx := context.Background()

	result, err := tr.CompleteLesson(ctx, "greetings")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalXP != 50 || result.CurrentStreak != 1 {
		t.Errorf("after (1,1): XP=%d streak=%d, want 50/1", result.TotalXP, result.CurrentStreak)
	}
	if !tr.IsLessonAvailable("family") || tr.IsLessonAvailable("colors") {
		t.Error("after (1,1): family must be available, colors locked")
	}

	clock.Advance(24 * time.Hour)
	result, err = tr.CompleteLesson(ctx, "family")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalXP != 100 || result.CurrentStreak != 2 {
		t.Errorf("after (1,2): XP=%d streak=%d, want 100/2", result.TotalXP, result.CurrentStreak)
	}
	if !tr.IsLessonAvailable("colors") {
		t.Error("after (1,2): colors must be available")
	}
}
