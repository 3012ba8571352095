// Package excel loads additional lessons from an Excel workbook or CSV file
// at startup. Each sheet becomes one lesson: the sheet name is the lesson
// title and every row contributes a vocabulary entry. Exercises are generated
// from the vocabulary so imported lessons are playable without hand-authored
// questions. Import happens before the bot starts; the catalog never changes
// while the process is running.
package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/shonabot/internal/exercise"
	"github.com/example/shonabot/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath            string // Path to the Excel or CSV file
	ShonaColumn         string // Column with the Shona word
	EnglishColumn       string // Column with the English translation
	PronunciationColumn string // Column with the pronunciation guide
	CategoryColumn      string // Column with the word category
	DifficultyColumn    string // Column with the difficulty level
	ContextColumn       string // Column with an example sentence (optional)
	SkipHeader          bool   // Skip the header row
	XPReward            int    // XP granted per imported lesson
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		ShonaColumn:         "A",
		EnglishColumn:       "B",
		PronunciationColumn: "C",
		CategoryColumn:      "D",
		DifficultyColumn:    "E",
		ContextColumn:       "F",
		SkipHeader:          true,
		XPReward:            50,
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	Lessons       []models.Lesson
	RowsProcessed int
	WordsImported int
	Skipped       int
	Errors        []string
}

// ImportLessons reads lessons from an Excel or CSV file. Imported lessons are
// numbered consecutively inside baseUnit, which callers place after the
// built-in course's last unit.
func ImportLessons(config ImportConfig, baseUnit int) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config, baseUnit)
	}
	return importFromExcel(config, baseUnit)
}

// importFromExcel reads every sheet of a workbook as one lesson.
func importFromExcel(config ImportConfig, baseUnit int) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	result := &ImportResult{Errors: make([]string, 0)}

	for i, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("sheet %s: %v", sheet, err))
			continue
		}

		start := 0
		if config.SkipHeader && len(rows) > 0 {
			start = 1
		}

		var words []models.ShonaWord
		var contexts []string
		for rowIdx, row := range rows[start:] {
			result.RowsProcessed++
			word, rowContext, err := parseRow(config, row)
			if err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("sheet %s row %d: %v", sheet, start+rowIdx+1, err))
				continue
			}
			words = append(words, word)
			contexts = append(contexts, rowContext)
			result.WordsImported++
		}

		if len(words) == 0 {
			continue
		}
		result.Lessons = append(result.Lessons, buildLesson(sheet, baseUnit, i+1, words, contexts, config.XPReward))
	}

	return result, nil
}

// importFromCSV reads the whole file as a single lesson titled after the
// file name.
func importFromCSV(config ImportConfig, baseUnit int) (*ImportResult, error) {
	f, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	result := &ImportResult{Errors: make([]string, 0)}
	var words []models.ShonaWord
	var contexts []string

	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if first && config.SkipHeader {
			first = false
			continue
		}
		first = false

		result.RowsProcessed++
		word, rowContext, err := parseRow(config, row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", result.RowsProcessed, err))
			continue
		}
		words = append(words, word)
		contexts = append(contexts, rowContext)
		result.WordsImported++
	}

	if len(words) > 0 {
		title := strings.TrimSuffix(filepath.Base(config.FilePath), filepath.Ext(config.FilePath))
		result.Lessons = append(result.Lessons, buildLesson(title, baseUnit, 1, words, contexts, config.XPReward))
	}
	return result, nil
}

// parseRow converts one spreadsheet row into a vocabulary entry.
func parseRow(config ImportConfig, row []string) (models.ShonaWord, string, error) {
	shona := cellValue(row, config.ShonaColumn)
	english := cellValue(row, config.EnglishColumn)
	if shona == "" || english == "" {
		return models.ShonaWord{}, "", fmt.Errorf("missing shona word or translation")
	}

	word := models.ShonaWord{
		Shona:         shona,
		English:       english,
		Pronunciation: cellValue(row, config.PronunciationColumn),
		Category:      models.WordCategory(cellValue(row, config.CategoryColumn)),
		Difficulty:    models.DifficultyLevel(cellValue(row, config.DifficultyColumn)),
	}
	if word.Difficulty == "" {
		word.Difficulty = models.DifficultyBeginner
	}
	return word, cellValue(row, config.ContextColumn), nil
}

// cellValue returns the trimmed value of the lettered column, or "" when the
// row is too short.
func cellValue(row []string, column string) string {
	if column == "" {
		return ""
	}
	idx, err := excelize.ColumnNameToNumber(column)
	if err != nil || idx > len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx-1])
}

// buildLesson assembles an imported lesson with generated exercises.
func buildLesson(title string, unit, number int, words []models.ShonaWord, contexts []string, xpReward int) models.Lesson {
	return models.Lesson{
		ID:           lessonID(title),
		Title:        title,
		Description:  fmt.Sprintf("Imported vocabulary: %s", title),
		Unit:         unit,
		LessonNumber: number,
		Words:        words,
		Exercises:    generateExercises(words, contexts),
		XPReward:     xpReward,
	}
}

// lessonID slugs the title into a stable identifier.
func lessonID(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Join(strings.Fields(slug), "-")
	return "imported-" + slug
}

// generateExercises builds a small exercise set from the vocabulary:
// translations in both directions, and a fill-in-blank for every word that
// came with an example sentence.
func generateExercises(words []models.ShonaWord, contexts []string) []models.Exercise {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	picked := rnd.Perm(len(words))
	if len(picked) > 5 {
		picked = picked[:5]
	}

	var exercises []models.Exercise
	for n, idx := range picked {
		w := words[idx]
		if n%2 == 0 {
			exercises = append(exercises, models.Exercise{
				Type:          models.ExerciseTranslation,
				Question:      fmt.Sprintf("Translate: %s", w.English),
				CorrectAnswer: w.Shona,
				Options:       choiceOptions(w.Shona, words, true),
			})
		} else {
			exercises = append(exercises, models.Exercise{
				Type:          models.ExerciseMultipleChoice,
				Question:      fmt.Sprintf("What does '%s' mean?", w.Shona),
				CorrectAnswer: w.English,
				Options:       choiceOptions(w.English, words, false),
			})
		}
	}

	for i, w := range words {
		if i < len(contexts) && contexts[i] != "" {
			exercises = append(exercises, models.Exercise{
				Type:          models.ExerciseFillInBlank,
				Question:      fmt.Sprintf("Fill in the blank: %s", exercise.BlankOut(contexts[i], w.Shona)),
				CorrectAnswer: w.Shona,
				ShonaText:     contexts[i],
			})
		}
	}
	return exercises
}

// choiceOptions pairs the correct answer with up to three distractors drawn
// from the other imported words, shuffled.
func choiceOptions(correct string, words []models.ShonaWord, shonaSide bool) []string {
	options := []string{correct}
	for _, w := range words {
		if len(options) >= 4 {
			break
		}
		candidate := w.English
		if shonaSide {
			candidate = w.Shona
		}
		if !strings.EqualFold(candidate, correct) {
			options = append(options, candidate)
		}
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
