package render

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"advanced-hangman/internal/db"
	"advanced-hangman/internal/game"
	"advanced-hangman/internal/i18n"
)

const LeaderboardSize = 10

// Stages holds the gallows art, indexed by tries used.
var Stages = [game.MaxTries + 1]string{
	`  +---+
      |
      |
      |
     ===`,
	`  +---+
  O   |
      |
      |
     ===`,
	`  +---+
  O   |
  |   |
      |
     ===`,
	`  +---+
  O   |
 /|   |
      |
     ===`,
	`  +---+
  O   |
 /|\  |
      |
     ===`,
	`  +---+
  O   |
 /|\  |
 /    |
     ===`,
	`  +---+
  O   |
 /|\  |
 / \  |
     ===`,
}

// Stage returns the art for triesUsed, clamped to the known stages.
func Stage(triesUsed int) string {
	return Stages[min(max(triesUsed, 0), game.MaxTries)]
}

// MaskedWord shows guessed letters in place and "_" for the rest, separated
// by spaces. Characters that are not letters are always shown.
func MaskedWord(word string, guessed map[rune]bool) string {
	parts := make([]string, 0, len(word))
	for _, c := range word {
		if guessed[c] || !unicode.IsLetter(c) {
			parts = append(parts, string(c))
		} else {
			parts = append(parts, "_")
		}
	}
	return strings.Join(parts, " ")
}

// SortedLetters lists the guessed letters alphabetically.
func SortedLetters(guessed map[rune]bool) []string {
	letters := make([]string, 0, len(guessed))
	for c := range guessed {
		letters = append(letters, string(c))
	}
	sort.Strings(letters)
	return letters
}

type Renderer struct {
	w         io.Writer
	localizer *i18n.Localizer
	lang      string
}

func New(w io.Writer, localizer *i18n.Localizer, lang string) *Renderer {
	return &Renderer{w: w, localizer: localizer, lang: lang}
}

// Text returns the catalog text for key.
func (r *Renderer) Text(key string, pairs ...string) string {
	return r.localizer.Text(r.lang, key, pairs...)
}

// Line writes the catalog text for key followed by a newline.
func (r *Renderer) Line(key string, pairs ...string) {
	fmt.Fprintln(r.w, r.Text(key, pairs...))
}

// Prompt writes the catalog text for key without a newline.
func (r *Renderer) Prompt(key string, pairs ...string) {
	fmt.Fprint(r.w, r.Text(key, pairs...))
}

func (r *Renderer) RoundStart() {
	fmt.Fprintln(r.w)
	r.Line("round_start", "tries", strconv.Itoa(game.MaxTries))
}

// Progress shows the masked word, the gallows and the guessed letters.
func (r *Renderer) Progress(s game.Snapshot) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, MaskedWord(s.Word, s.Guessed))
	fmt.Fprintln(r.w, Stage(s.TriesUsed()))
	r.Line("guessed_letters", "letters", strings.Join(SortedLetters(s.Guessed), " "))
}

func (r *Renderer) Hint(letter rune) {
	r.Line("hint", "letter", string(letter))
}

func (r *Renderer) GuessResult(res game.GuessResult) {
	switch res {
	case game.GuessCorrect:
		r.Line("guess_correct")
	case game.GuessWrong:
		r.Line("guess_wrong")
	case game.GuessRepeated:
		r.Line("guess_repeated")
	}
}

// Outcome announces the end of a round. A lost round shows the full gallows.
func (r *Renderer) Outcome(s game.Snapshot, username string) {
	switch s.Status {
	case game.StatusLost:
		fmt.Fprintln(r.w, Stage(game.MaxTries))
		r.Line("round_lost", "word", s.Word)
	case game.StatusWon:
		r.Line("round_won", "name", username, "word", s.Word)
	}
}

func (r *Renderer) Summary(score int, elapsed time.Duration) {
	r.Line("round_summary",
		"score", strconv.Itoa(score),
		"seconds", strconv.FormatFloat(elapsed.Seconds(), 'f', 2, 64),
	)
}

// Leaderboard shows up to LeaderboardSize entries ranked from 1.
func (r *Renderer) Leaderboard(board *db.ScoreBoard) {
	fmt.Fprintln(r.w)
	r.Line("leaderboard_title")

	top := board.Top(LeaderboardSize)
	if len(top) == 0 {
		r.Line("leaderboard_empty")
	}
	for i, e := range top {
		r.Line("leaderboard_entry",
			"rank", strconv.Itoa(i+1),
			"name", e.Username,
			"points", strconv.Itoa(e.Score),
		)
	}

	r.Line("leaderboard_footer")
	fmt.Fprintln(r.w)
}
