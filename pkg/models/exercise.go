package models

// ExerciseType identifies the kind of exercise presented to the learner
type ExerciseType string

const (
	ExerciseTranslation    ExerciseType = "translation"
	ExerciseMultipleChoice ExerciseType = "multiple_choice"
	ExerciseFillInBlank    ExerciseType = "fill_in_blank"
	ExerciseMatchPairs     ExerciseType = "match_pairs"
	ExerciseListenRepeat   ExerciseType = "listen_and_repeat"
)

// Exercise represents a single question within a lesson.
// For choice-style types the content is expected to include the correct
// answer among the options; the progress tracker does not enforce this.
type Exercise struct {
	Type          ExerciseType `json:"type"`
	Question      string       `json:"question"`
	CorrectAnswer string       `json:"correct_answer"`
	Options       []string     `json:"options,omitempty"`
	ShonaText     string       `json:"shona_text,omitempty"`
	EnglishText   string       `json:"english_text,omitempty"`
	AudioFile     string       `json:"audio_file,omitempty"`
}
