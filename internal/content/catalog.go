// Package content holds the built-in Shona course. The catalog is assembled
// once at startup and stays immutable for the process lifetime; user progress
// never writes back into it.
package content

import "github.com/example/shonabot/pkg/models"

// DefaultLessons returns the built-in course: unit 1 covers greetings, family
// and numbers, unit 2 starts with colors. Lesson IDs are stable strings so
// persisted progress keeps pointing at the same lessons across releases.
func DefaultLessons() []models.Lesson {
	return []models.Lesson{
		{
			ID:           "basic-greetings",
			Title:        "Basic Greetings",
			Description:  "Learn how to greet people in Shona",
			Unit:         1,
			LessonNumber: 1,
			Words:        greetingsWords(),
			Phrases:      greetingsPhrases(),
			Exercises:    greetingsExercises(),
			XPReward:     50,
		},
		{
			ID:           "family-members",
			Title:        "Family Members",
			Description:  "Learn words for family members",
			Unit:         1,
			LessonNumber: 2,
			Words:        familyWords(),
			Phrases:      familyPhrases(),
			Exercises:    familyExercises(),
			XPReward:     50,
		},
		{
			ID:           "numbers-1-10",
			Title:        "Numbers 1-10",
			Description:  "Learn to count from one to ten in Shona",
			Unit:         1,
			LessonNumber: 3,
			Words:        numbersWords(),
			Exercises:    numbersExercises(),
			XPReward:     60,
		},
		{
			ID:           "colors",
			Title:        "Colors",
			Description:  "Learn basic color names in Shona",
			Unit:         2,
			LessonNumber: 1,
			Words:        colorsWords(),
			Exercises:    colorsExercises(),
			XPReward:     50,
		},
	}
}

func greetingsWords() []models.ShonaWord {
	return []models.ShonaWord{
		{Shona: "Mhoro", English: "Hello", Pronunciation: "m-HO-ro", Category: models.CategoryGreetings, Difficulty: models.DifficultyBeginner},
		{Shona: "Mangwanani", English: "Good morning", Pronunciation: "man-gwa-NA-nee", Category: models.CategoryGreetings, Difficulty: models.DifficultyBeginner},
		{Shona: "Masikati", English: "Good afternoon", Pronunciation: "ma-see-KA-tee", Category: models.CategoryGreetings, Difficulty: models.DifficultyBeginner},
		{Shona: "Manheru", English: "Good evening", Pronunciation: "man-HE-ru", Category: models.CategoryGreetings, Difficulty: models.DifficultyBeginner},
		{Shona: "Chisarai", English: "Goodbye", Pronunciation: "chee-sa-RAI", Category: models.CategoryGreetings, Difficulty: models.DifficultyBeginner},
	}
}

func greetingsPhrases() []models.ShonaPhrase {
	return []models.ShonaPhrase{
		{Shona: "Makadii?", English: "How are you?", Pronunciation: "ma-ka-DEE", Context: "Formal greeting", Difficulty: models.DifficultyBeginner},
		{Shona: "Ndiri right", English: "I am fine", Pronunciation: "n-dee-ree right", Context: "Response to greeting", Difficulty: models.DifficultyBeginner},
		{Shona: "Ndinonzi...", English: "My name is...", Pronunciation: "n-dee-no-nzee", Context: "Introducing yourself", Difficulty: models.DifficultyBeginner},
	}
}

func greetingsExercises() []models.Exercise {
	return []models.Exercise{
		{Type: models.ExerciseTranslation, Question: "Translate: Hello", CorrectAnswer: "Mhoro", Options: []string{"Mhoro", "Mangwanani", "Masikati", "Manheru"}},
		{Type: models.ExerciseMultipleChoice, Question: "What does 'Mangwanani' mean?", CorrectAnswer: "Good morning", Options: []string{"Good morning", "Good afternoon", "Good evening", "Hello"}},
		{Type: models.ExerciseTranslation, Question: "Translate: How are you?", CorrectAnswer: "Makadii?", Options: []string{"Makadii?", "Mhoro", "Chisarai", "Ndiri right"}},
	}
}

func familyWords() []models.ShonaWord {
	return []models.ShonaWord{
		{Shona: "Baba", English: "Father", Pronunciation: "BA-ba", Category: models.CategoryFamily, Difficulty: models.DifficultyBeginner},
		{Shona: "Amai", English: "Mother", Pronunciation: "a-MAI", Category: models.CategoryFamily, Difficulty: models.DifficultyBeginner},
		{Shona: "Mwana", English: "Child", Pronunciation: "m-WA-na", Category: models.CategoryFamily, Difficulty: models.DifficultyBeginner},
		{Shona: "Mukoma", English: "Older brother", Pronunciation: "mu-KO-ma", Category: models.CategoryFamily, Difficulty: models.DifficultyBeginner},
		{Shona: "Hanzvadzi", English: "Sister", Pronunciation: "han-zva-dzee", Category: models.CategoryFamily, Difficulty: models.DifficultyBeginner},
		{Shona: "Sekuru", English: "Grandfather", Pronunciation: "se-KU-ru", Category: models.CategoryFamily, Difficulty: models.DifficultyBeginner},
		{Shona: "Mbuya", English: "Grandmother", Pronunciation: "m-BU-ya", Category: models.CategoryFamily, Difficulty: models.DifficultyBeginner},
	}
}

func familyPhrases() []models.ShonaPhrase {
	return []models.ShonaPhrase{
		{Shona: "Mhuri yangu", English: "My family", Pronunciation: "m-hu-ree ya-ngu", Context: "Talking about family", Difficulty: models.DifficultyBeginner},
		{Shona: "Baba vangu", English: "My father", Pronunciation: "BA-ba va-ngu", Context: "Referring to your father", Difficulty: models.DifficultyBeginner},
	}
}

func familyExercises() []models.Exercise {
	return []models.Exercise{
		{Type: models.ExerciseTranslation, Question: "Translate: Father", CorrectAnswer: "Baba", Options: []string{"Baba", "Amai", "Mwana", "Sekuru"}},
		{Type: models.ExerciseMultipleChoice, Question: "What does 'Mbuya' mean?", CorrectAnswer: "Grandmother", Options: []string{"Grandmother", "Grandfather", "Mother", "Sister"}},
		{Type: models.ExerciseTranslation, Question: "Translate: My family", CorrectAnswer: "Mhuri yangu", Options: []string{"Mhuri yangu", "Baba vangu", "Amai vangu", "Mwana wangu"}},
	}
}

func numbersWords() []models.ShonaWord {
	return []models.ShonaWord{
		{Shona: "Motsi", English: "One", Pronunciation: "MO-tsee", Category: models.CategoryNumbers, Difficulty: models.DifficultyBeginner},
		{Shona: "Piri", English: "Two", Pronunciation: "PEE-ree", Category: models.CategoryNumbers, Difficulty: models.DifficultyBeginner},
		{Shona: "Tatu", English: "Three", Pronunciation: "TA-tu", Category: models.CategoryNumbers, Difficulty: models.DifficultyBeginner},
		{Shona: "China", English: "Four", Pronunciation: "CHEE-na", Category: models.CategoryNumbers, Difficulty: models.DifficultyBeginner},
		{Shona: "Shanu", English: "Five", Pronunciation: "SHA-nu", Category: models.CategoryNumbers, Difficulty: models.DifficultyBeginner},
		{Shona: "Tanhatu", English: "Six", Pronunciation: "tan-HA-tu", Category: models.CategoryNumbers, Difficulty: models.DifficultyBeginner},
		{Shona: "Nomwe", English: "Seven", Pronunciation: "NO-mwe", Category: models.CategoryNumbers, Difficulty: models.DifficultyBeginner},
		{Shona: "Sere", English: "Eight", Pronunciation: "SE-re", Category: models.CategoryNumbers, Difficulty: models.DifficultyBeginner},
		{Shona: "Pfumbamwe", English: "Nine", Pronunciation: "pfum-ba-mwe", Category: models.CategoryNumbers, Difficulty: models.DifficultyBeginner},
		{Shona: "Gumi", English: "Ten", Pronunciation: "GU-mee", Category: models.CategoryNumbers, Difficulty: models.DifficultyBeginner},
	}
}

func numbersExercises() []models.Exercise {
	return []models.Exercise{
		{Type: models.ExerciseTranslation, Question: "Translate: Five", CorrectAnswer: "Shanu", Options: []string{"Shanu", "China", "Tatu", "Sere"}},
		{Type: models.ExerciseMultipleChoice, Question: "What does 'Gumi' mean?", CorrectAnswer: "Ten", Options: []string{"Ten", "Nine", "Eight", "Seven"}},
		{Type: models.ExerciseTranslation, Question: "Translate: Three", CorrectAnswer: "Tatu", Options: []string{"Tatu", "Piri", "China", "Motsi"}},
	}
}

func colorsWords() []models.ShonaWord {
	return []models.ShonaWord{
		{Shona: "Mutema", English: "Black", Pronunciation: "mu-TE-ma", Category: models.CategoryColors, Difficulty: models.DifficultyBeginner},
		{Shona: "Muchena", English: "White", Pronunciation: "mu-CHE-na", Category: models.CategoryColors, Difficulty: models.DifficultyBeginner},
		{Shona: "Mutsvuku", English: "Red", Pronunciation: "mu-tsvu-ku", Category: models.CategoryColors, Difficulty: models.DifficultyBeginner},
		{Shona: "Girini", English: "Green", Pronunciation: "gee-REE-nee", Category: models.CategoryColors, Difficulty: models.DifficultyBeginner},
		{Shona: "Bhuruu", English: "Blue", Pronunciation: "bhu-RUU", Category: models.CategoryColors, Difficulty: models.DifficultyBeginner},
		{Shona: "Yero", English: "Yellow", Pronunciation: "YE-ro", Category: models.CategoryColors, Difficulty: models.DifficultyBeginner},
	}
}

func colorsExercises() []models.Exercise {
	return []models.Exercise{
		{Type: models.ExerciseTranslation, Question: "Translate: Red", CorrectAnswer: "Mutsvuku", Options: []string{"Mutsvuku", "Mutema", "Muchena", "Girini"}},
		{Type: models.ExerciseMultipleChoice, Question: "What does 'Muchena' mean?", CorrectAnswer: "White", Options: []string{"White", "Black", "Blue", "Green"}},
	}
}
