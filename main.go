package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/example/shonabot/internal/bot"
	"github.com/example/shonabot/internal/content"
	"github.com/example/shonabot/internal/database"
	"github.com/example/shonabot/internal/excel"
	"github.com/example/shonabot/pkg/models"
)

func main() {
	// Environment from .env when present; real deployments set variables
	// directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	catalog := content.DefaultLessons()
	catalog = append(catalog, importedLessons(catalog)...)

	b, err := bot.New(catalog)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		b.Stop()
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	if err := b.Start(); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
}

// importedLessons loads extra lessons from the workbook named by CONTENT_FILE,
// placed after the built-in course's last unit. Import problems are logged but
// never stop the bot: the built-in catalog is always enough to run.
func importedLessons(catalog []models.Lesson) []models.Lesson {
	path := os.Getenv("CONTENT_FILE")
	if path == "" {
		return nil
	}

	lastUnit := 0
	for _, lesson := range catalog {
		if lesson.Unit > lastUnit {
			lastUnit = lesson.Unit
		}
	}

	config := excel.DefaultImportConfig()
	config.FilePath = path
	result, err := excel.ImportLessons(config, lastUnit+1)
	if err != nil {
		log.Printf("Error importing lessons from %s: %v", path, err)
		return nil
	}
	for _, msg := range result.Errors {
		log.Printf("Import warning: %s", msg)
	}
	log.Printf("Imported %d lesson(s) (%d words) from %s", len(result.Lessons), result.WordsImported, path)
	return result.Lessons
}
