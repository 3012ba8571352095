package content

import (
	"testing"

	"github.com/example/shonabot/pkg/models"
)

func TestLessonIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, lesson := range DefaultLessons() {
		if lesson.ID == "" {
			t.Errorf("lesson %q has an empty ID", lesson.Title)
		}
		if seen[lesson.ID] {
			t.Errorf("duplicate lesson ID %q", lesson.ID)
		}
		seen[lesson.ID] = true
	}
}

func TestUnitNumberingIsContiguous(t *testing.T) {
	// Lesson numbers within each unit must run 1..n with no gaps, otherwise
	// unlock propagation dead-ends in the middle of a unit.
	byUnit := make(map[int][]int)
	for _, lesson := range DefaultLessons() {
		byUnit[lesson.Unit] = append(byUnit[lesson.Unit], lesson.LessonNumber)
	}
	for unit, numbers := range byUnit {
		present := make(map[int]bool, len(numbers))
		for _, n := range numbers {
			if present[n] {
				t.Errorf("unit %d: duplicate lesson number %d", unit, n)
			}
			present[n] = true
		}
		for n := 1; n <= len(numbers); n++ {
			if !present[n] {
				t.Errorf("unit %d: missing lesson number %d", unit, n)
			}
		}
	}
	if len(byUnit[1]) == 0 {
		t.Fatal("unit 1 must exist: lesson (1,1) is the course entry point")
	}
}

func TestChoiceExercisesContainCorrectAnswer(t *testing.T) {
	// Content-authoring invariant: whenever options are given, the correct
	// answer must be among them.
	for _, lesson := range DefaultLessons() {
		for i, ex := range lesson.Exercises {
			if len(ex.Options) == 0 {
				continue
			}
			found := false
			for _, opt := range ex.Options {
				if opt == ex.CorrectAnswer {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("lesson %q exercise %d: options %v missing correct answer %q",
					lesson.ID, i, ex.Options, ex.CorrectAnswer)
			}
		}
	}
}

func TestEveryLessonIsExercisable(t *testing.T) {
	for _, lesson := range DefaultLessons() {
		if len(lesson.Exercises) == 0 {
			t.Errorf("lesson %q has no exercises and can never be completed", lesson.ID)
		}
		if lesson.XPReward <= 0 {
			t.Errorf("lesson %q has non-positive XP reward %d", lesson.ID, lesson.XPReward)
		}
		for i, ex := range lesson.Exercises {
			if ex.Question == "" || ex.CorrectAnswer == "" {
				t.Errorf("lesson %q exercise %d is missing question or answer", lesson.ID, i)
			}
			switch ex.Type {
			case models.ExerciseTranslation, models.ExerciseMultipleChoice,
				models.ExerciseFillInBlank, models.ExerciseMatchPairs, models.ExerciseListenRepeat:
			default:
				t.Errorf("lesson %q exercise %d has unknown type %q", lesson.ID, i, ex.Type)
			}
		}
	}
}
