package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"advanced-hangman/internal/config"
	"advanced-hangman/internal/db"
	"advanced-hangman/internal/game"
	"advanced-hangman/internal/i18n"
	"advanced-hangman/internal/render"
	"advanced-hangman/internal/session"
)

func main() {
	cfg := config.Load()

	logOut, err := openLog(cfg.LogFile)
	if err != nil {
		log.Fatalf("Could not open log file: %v", err)
	}
	defer logOut.Close()
	log.SetOutput(logOut)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)

	log.Println("Starting hangman...")

	localizer, err := i18n.New(i18n.Locales())
	if err != nil {
		fatal(err)
	}

	words, err := game.LoadWords(os.DirFS(filepath.Dir(cfg.WordsFile)), filepath.Base(cfg.WordsFile))
	if err != nil {
		fatal(err)
	}

	s := session.New(session.Options{
		In:       os.Stdin,
		Renderer: render.New(os.Stdout, localizer, i18n.DefaultLang),
		Words:    words,
		Store:    newScoreStore(cfg),
		Rand:     rand.New(rand.NewSource(cfg.Seed)),
	})

	if err := s.Run(); err != nil {
		if errors.Is(err, session.ErrInputClosed) {
			log.Println("Input closed, ending session")
			fmt.Println()
			return
		}
		fatal(err)
	}
	log.Println("Session finished")
}

func newScoreStore(cfg *config.Config) db.ScoreStore {
	if cfg.ScoreBackend == config.BackendSupabase {
		return db.NewSupabaseStore(db.NewClient(cfg.SupabaseURL, cfg.SupabaseKey), cfg.ScoresTable)
	}
	return db.NewFileStore(cfg.ScoresFile)
}

func openLog(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stderr}, nil
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func fatal(err error) {
	log.Printf("Fatal: %v", err)
	fmt.Fprintf(os.Stderr, "hangman: %v\n", err)
	os.Exit(1)
}
