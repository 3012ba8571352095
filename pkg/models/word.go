package models

// WordCategory groups vocabulary by theme
type WordCategory string

const (
	CategoryGreetings      WordCategory = "Greetings"
	CategoryFamily         WordCategory = "Family"
	CategoryFood           WordCategory = "Food"
	CategoryColors         WordCategory = "Colors"
	CategoryNumbers        WordCategory = "Numbers"
	CategoryAnimals        WordCategory = "Animals"
	CategoryClothing       WordCategory = "Clothing"
	CategoryTransportation WordCategory = "Transportation"
	CategoryTime           WordCategory = "Time"
	CategoryWeather        WordCategory = "Weather"
)

// DifficultyLevel rates how hard a word or phrase is for a learner
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "Beginner"
	DifficultyIntermediate DifficultyLevel = "Intermediate"
	DifficultyAdvanced     DifficultyLevel = "Advanced"
)

// ShonaWord represents a single Shona vocabulary entry
type ShonaWord struct {
	Shona         string          `json:"shona"`
	English       string          `json:"english"`
	Pronunciation string          `json:"pronunciation"` // Syllable-stress guide, e.g. "m-HO-ro"
	Category      WordCategory    `json:"category"`
	Difficulty    DifficultyLevel `json:"difficulty"`
}

// ShonaPhrase represents a short phrase with usage context
type ShonaPhrase struct {
	Shona         string          `json:"shona"`
	English       string          `json:"english"`
	Pronunciation string          `json:"pronunciation"`
	Context       string          `json:"context"` // When the phrase is used, e.g. "Formal greeting"
	Difficulty    DifficultyLevel `json:"difficulty"`
}
