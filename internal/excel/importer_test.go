package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Animals")
	rows := [][]string{
		{"Shona", "English", "Pronunciation", "Category", "Difficulty", "Context"},
		{"imbwa", "dog", "ee-mbwa", "Animals", "beginner", "Imbwa yangu inodya nyama"},
		{"katsi", "cat", "ka-tsee", "Animals", "beginner", ""},
		{"shumba", "lion", "shoo-mba", "Animals", "intermediate", ""},
		{"", "missing shona", "", "", "", ""},
	}
	for i, row := range rows {
		for j, value := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := f.SetCellValue("Animals", cell, value); err != nil {
				t.Fatalf("failed to set cell: %v", err)
			}
		}
	}

	if _, err := f.NewSheet("Food"); err != nil {
		t.Fatalf("failed to add sheet: %v", err)
	}
	food := [][]string{
		{"Shona", "English"},
		{"sadza", "maize porridge"},
		{"nyama", "meat"},
	}
	for i, row := range food {
		for j, value := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := f.SetCellValue("Food", cell, value); err != nil {
				t.Fatalf("failed to set cell: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "lessons.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	return path
}

func TestImportLessonsFromWorkbook(t *testing.T) {
	config := DefaultImportConfig()
	config.FilePath = writeWorkbook(t)

	result, err := ImportLessons(config, 3)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if len(result.Lessons) != 2 {
		t.Fatalf("imported %d lessons, want 2 (one per sheet)", len(result.Lessons))
	}
	if result.WordsImported != 5 {
		t.Errorf("imported %d words, want 5", result.WordsImported)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped %d rows, want 1 (the row without a Shona word)", result.Skipped)
	}

	animals := result.Lessons[0]
	if animals.ID != "imported-animals" {
		t.Errorf("lesson ID = %q, want imported-animals", animals.ID)
	}
	if animals.Unit != 3 || animals.LessonNumber != 1 {
		t.Errorf("animals placed at unit %d lesson %d, want 3/1", animals.Unit, animals.LessonNumber)
	}
	if len(animals.Words) != 3 {
		t.Errorf("animals has %d words, want 3", len(animals.Words))
	}
	if len(animals.Exercises) == 0 {
		t.Error("imported lesson has no generated exercises")
	}

	food := result.Lessons[1]
	if food.Unit != 3 || food.LessonNumber != 2 {
		t.Errorf("food placed at unit %d lesson %d, want 3/2", food.Unit, food.LessonNumber)
	}
}

func TestImportLessonsGeneratesValidOptions(t *testing.T) {
	config := DefaultImportConfig()
	config.FilePath = writeWorkbook(t)

	result, err := ImportLessons(config, 3)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	for _, lesson := range result.Lessons {
		for _, ex := range lesson.Exercises {
			if ex.CorrectAnswer == "" {
				t.Errorf("lesson %s has an exercise without an answer", lesson.ID)
			}
			if len(ex.Options) == 0 {
				continue
			}
			found := false
			for _, opt := range ex.Options {
				if opt == ex.CorrectAnswer {
					found = true
				}
			}
			if !found {
				t.Errorf("lesson %s: options %v do not contain answer %q", lesson.ID, ex.Options, ex.CorrectAnswer)
			}
		}
	}
}

func TestImportLessonsFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phrases.csv")
	content := "Shona,English\nmvura,water\nmoto,fire\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write CSV: %v", err)
	}

	config := DefaultImportConfig()
	config.FilePath = path

	result, err := ImportLessons(config, 4)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(result.Lessons) != 1 {
		t.Fatalf("imported %d lessons, want 1", len(result.Lessons))
	}
	lesson := result.Lessons[0]
	if lesson.ID != "imported-phrases" {
		t.Errorf("lesson ID = %q, want imported-phrases", lesson.ID)
	}
	if len(lesson.Words) != 2 {
		t.Errorf("lesson has %d words, want 2", len(lesson.Words))
	}
}
