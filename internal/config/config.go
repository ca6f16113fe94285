package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendSupabase = "supabase"
)

type Config struct {
	WordsFile    string
	ScoresFile   string
	ScoreBackend string
	SupabaseURL  string
	SupabaseKey  string
	ScoresTable  string
	LogFile      string
	Seed         int64
}

// Load reads .env (if present) and the process environment. Any invalid
// setting is fatal.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment variables")
	}

	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		WordsFile:    getEnv(getenv, "HANGMAN_WORDS_FILE", "words.json"),
		ScoresFile:   getEnv(getenv, "HANGMAN_SCORES_FILE", "scores.json"),
		ScoreBackend: strings.ToLower(getEnv(getenv, "HANGMAN_SCORE_BACKEND", BackendFile)),
		SupabaseURL:  getenv("SUPABASE_URL"),
		SupabaseKey:  getenv("SUPABASE_KEY"),
		ScoresTable:  getEnv(getenv, "HANGMAN_SCORES_TABLE", "hangman_scores"),
		LogFile:      getEnv(getenv, "HANGMAN_LOG_FILE", "hangman.log"),
		Seed:         time.Now().UnixNano(),
	}

	if seedStr := getenv("HANGMAN_SEED"); seedStr != "" {
		seed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("HANGMAN_SEED must be a number, got %q", seedStr)
		}
		cfg.Seed = seed
	}

	switch cfg.ScoreBackend {
	case BackendFile:
	case BackendSupabase:
		if cfg.SupabaseURL == "" {
			return nil, fmt.Errorf("SUPABASE_URL is not set")
		}
		if cfg.SupabaseKey == "" {
			return nil, fmt.Errorf("SUPABASE_KEY is not set")
		}
	default:
		return nil, fmt.Errorf("unknown HANGMAN_SCORE_BACKEND %q", cfg.ScoreBackend)
	}

	return cfg, nil
}

func getEnv(getenv func(string) string, key, fallback string) string {
	if val := strings.TrimSpace(getenv(key)); val != "" {
		return val
	}
	return fallback
}
