// Package exercise runs a lesson's exercise set as a linear quiz session.
// Answers are checked case-insensitively and a wrong answer never blocks
// completion; the score is reported at the end and the lesson counts as
// finished once every exercise has been seen.
package exercise

import (
	"math/rand"
	"strings"
	"time"

	"github.com/example/shonabot/pkg/models"
)

// Quiz holds the state of one learner working through one lesson.
type Quiz struct {
	LessonID  string
	questions []models.Exercise
	current   int
	correct   int
}

// NewQuiz starts a session over the lesson's exercises in catalog order.
func NewQuiz(lesson models.Lesson) *Quiz {
	return &Quiz{
		LessonID:  lesson.ID,
		questions: append([]models.Exercise(nil), lesson.Exercises...),
	}
}

// Current returns the exercise awaiting an answer, or false when the set is
// finished.
func (q *Quiz) Current() (models.Exercise, bool) {
	if q.current >= len(q.questions) {
		return models.Exercise{}, false
	}
	return q.questions[q.current], true
}

// Position returns the 1-based number of the current exercise and the total,
// for "3/7" style progress headers.
func (q *Quiz) Position() (int, int) {
	n := q.current + 1
	if n > len(q.questions) {
		n = len(q.questions)
	}
	return n, len(q.questions)
}

// Submit checks the answer against the current exercise and advances to the
// next one regardless of correctness.
func (q *Quiz) Submit(answer string) bool {
	ex, ok := q.Current()
	if !ok {
		return false
	}
	correct := CheckAnswer(ex, answer)
	if correct {
		q.correct++
	}
	q.current++
	return correct
}

// Done reports whether every exercise has been answered.
func (q *Quiz) Done() bool {
	return q.current >= len(q.questions)
}

// Score returns the number of correct answers and the total question count.
func (q *Quiz) Score() (int, int) {
	return q.correct, len(q.questions)
}

// CheckAnswer compares the answer with the exercise's correct answer,
// ignoring case and surrounding whitespace.
func CheckAnswer(ex models.Exercise, answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(ex.CorrectAnswer))
}

// OptionsFor returns the answer choices to present for an exercise. Authored
// options are shuffled as-is; exercises without options get distractors drawn
// from the lesson's own vocabulary, matching the language side of the correct
// answer.
func OptionsFor(ex models.Exercise, lesson models.Lesson, count int) []string {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	if len(ex.Options) > 0 {
		options := append([]string(nil), ex.Options...)
		rnd.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
		return options
	}

	options := []string{ex.CorrectAnswer}
	for _, candidate := range distractorPool(ex.CorrectAnswer, lesson.Words) {
		if len(options) >= count {
			break
		}
		options = append(options, candidate)
	}
	rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// distractorPool picks wrong answers from the lesson vocabulary: Shona words
// when the correct answer is Shona, English glosses otherwise. The pool comes
// back shuffled and never contains the correct answer.
func distractorPool(correctAnswer string, words []models.ShonaWord) []string {
	shonaSide := false
	for _, w := range words {
		if strings.EqualFold(w.Shona, correctAnswer) {
			shonaSide = true
			break
		}
	}

	var pool []string
	for _, w := range words {
		candidate := w.English
		if shonaSide {
			candidate = w.Shona
		}
		if !strings.EqualFold(candidate, correctAnswer) {
			pool = append(pool, candidate)
		}
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool
}

// BlankOut replaces the first occurrence of word in the sentence with a
// blank, ignoring case. Used to build fill-in-blank questions from phrases.
func BlankOut(sentence, word string) string {
	const blank = "_______"

	wordLen := len(word)
	for i := 0; i <= len(sentence)-wordLen; i++ {
		if lowerMatchAt(sentence, word, i) {
			return sentence[:i] + blank + sentence[i+wordLen:]
		}
	}
	// Word not found: append the blank so the question is still answerable.
	return sentence + " " + blank
}

// lowerMatchAt checks if strings match at position, ignoring ASCII case.
func lowerMatchAt(s, substr string, pos int) bool {
	if pos+len(substr) > len(s) {
		return false
	}
	for i := 0; i < len(substr); i++ {
		if toLowerCase(s[pos+i]) != toLowerCase(substr[i]) {
			return false
		}
	}
	return true
}

func toLowerCase(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
