package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Settings holds all runtime configuration. It is built once at startup and
// passed to constructors; nothing mutates it afterwards.
type Settings struct {
	Port         string
	DatabasePath string
	ImagesDir    string
	AuthUsername string
	AuthPassword string
	TMDBAPIKey   string
	LogFile      string
}

// Load reads configuration from the environment, optionally seeded from a
// .env file. Credentials and the TMDB key may be empty; their absence is
// reported at request time rather than at startup so read-only endpoints
// keep working on a fresh install.
func Load() Settings {
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file loaded: %v", err)
	}

	return Settings{
		Port:         getenv("PORT", "8000"),
		DatabasePath: getenv("DATABASE_PATH", "data/reeltrack.db"),
		ImagesDir:    getenv("IMAGES_DIR", "static/images"),
		AuthUsername: os.Getenv("BASIC_AUTH_USERNAME"),
		AuthPassword: os.Getenv("BASIC_AUTH_PASSWORD"),
		TMDBAPIKey:   os.Getenv("TMDB_API_KEY"),
		LogFile:      os.Getenv("LOG_FILE"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
