package game_test

import (
	"errors"
	"testing"
	"time"

	"advanced-hangman/internal/game"
)

// seqRand returns its values in order, modulo n.
type seqRand struct {
	vals []int
	i    int
}

func (s *seqRand) Intn(n int) int {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func guessAll(t *testing.T, r *game.Round, letters string) {
	t.Helper()
	for _, c := range letters {
		if _, err := r.Guess(c); err != nil {
			t.Fatalf("guess %q: %v", c, err)
		}
	}
}

// distinctLetters returns each letter of word once, in first-seen order.
func distinctLetters(word string) string {
	seen := map[rune]bool{}
	var out []rune
	for _, c := range word {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return string(out)
}

func TestNewRound(t *testing.T) {
	r := game.NewRound("cat", &seqRand{}, nil)

	if r.Word != "CAT" {
		t.Errorf("expected CAT, got %s", r.Word)
	}
	if r.Status() != game.StatusInProgress {
		t.Errorf("expected in progress, got %s", r.Status())
	}
	if r.TriesLeft() != game.MaxTries {
		t.Errorf("expected %d tries, got %d", game.MaxTries, r.TriesLeft())
	}
	if r.Score() != 0 {
		t.Errorf("expected score 0, got %d", r.Score())
	}
	if r.ID == "" {
		t.Error("expected round ID")
	}
}

func TestGuessAllLettersWins(t *testing.T) {
	words := []string{"CAT", "BANANA", "MISSISSIPPI", "A"}

	for _, word := range words {
		t.Run(word, func(t *testing.T) {
			r := game.NewRound(word, &seqRand{}, nil)
			letters := distinctLetters(word)
			guessAll(t, r, letters)

			if r.Status() != game.StatusWon {
				t.Fatalf("expected won, got %s", r.Status())
			}
			if r.TriesLeft() != game.MaxTries {
				t.Errorf("expected no tries spent, got %d left", r.TriesLeft())
			}
			if want := len(letters) * game.PointsPerLetter; r.Score() != want {
				t.Errorf("expected score %d, got %d", want, r.Score())
			}
		})
	}
}

func TestSixWrongGuessesLoses(t *testing.T) {
	r := game.NewRound("CAT", &seqRand{}, nil)
	guessAll(t, r, "QWERY")
	if r.Status() != game.StatusInProgress {
		t.Fatalf("expected in progress after 5 misses, got %s", r.Status())
	}
	r.DeclineHint()
	guessAll(t, r, "U")

	if r.Status() != game.StatusLost {
		t.Fatalf("expected lost, got %s", r.Status())
	}
	if r.Score() != 0 {
		t.Errorf("expected score 0, got %d", r.Score())
	}
	if r.TriesLeft() != 0 {
		t.Errorf("expected 0 tries, got %d", r.TriesLeft())
	}
}

func TestLossPenaltyIsFloored(t *testing.T) {
	r := game.NewRound("CAT", &seqRand{}, nil)
	guessAll(t, r, "CQWERYU")

	if r.Status() != game.StatusLost {
		t.Fatalf("expected lost, got %s", r.Status())
	}
	if r.Score() != game.PointsPerLetter-game.LossPenalty {
		t.Errorf("expected score 5, got %d", r.Score())
	}
}

func TestRepeatedGuessChangesNothing(t *testing.T) {
	r := game.NewRound("CAT", &seqRand{}, nil)
	guessAll(t, r, "CZ")

	tries, score := r.TriesLeft(), r.Score()
	for _, c := range "CZcz" {
		res, err := r.Guess(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res != game.GuessRepeated {
			t.Errorf("expected repeated for %q, got %v", c, res)
		}
	}

	if r.TriesLeft() != tries || r.Score() != score {
		t.Errorf("state changed: tries %d->%d, score %d->%d", tries, r.TriesLeft(), score, r.Score())
	}
}

func TestGuessRejectsNonLetters(t *testing.T) {
	r := game.NewRound("CAT", &seqRand{}, nil)
	if _, err := r.Guess('1'); !errors.Is(err, game.ErrNotALetter) {
		t.Errorf("expected ErrNotALetter, got %v", err)
	}
	if r.TriesLeft() != game.MaxTries {
		t.Errorf("expected no try consumed, got %d", r.TriesLeft())
	}
}

func TestGuessAfterRoundOver(t *testing.T) {
	r := game.NewRound("A", &seqRand{}, nil)
	guessAll(t, r, "A")
	if _, err := r.Guess('B'); !errors.Is(err, game.ErrRoundOver) {
		t.Errorf("expected ErrRoundOver, got %v", err)
	}
}

func TestNonLetterCharactersNeedNoGuess(t *testing.T) {
	r := game.NewRound("ICE-CREAM", &seqRand{}, nil)
	guessAll(t, r, "ICERAM")
	if r.Status() != game.StatusWon {
		t.Errorf("expected won, got %s", r.Status())
	}
}

func TestCatWalkthrough(t *testing.T) {
	r := game.NewRound("CAT", &seqRand{}, nil)

	steps := []struct {
		letter rune
		result game.GuessResult
		tries  int
		score  int
	}{
		{'G', game.GuessWrong, 5, 0},
		{'C', game.GuessCorrect, 5, 10},
		{'Z', game.GuessWrong, 4, 10},
		{'A', game.GuessCorrect, 4, 20},
		{'X', game.GuessWrong, 3, 20},
	}
	for _, s := range steps {
		if r.HintOffered() {
			t.Fatalf("hint offered too early before %q", s.letter)
		}
		res, err := r.Guess(s.letter)
		if err != nil {
			t.Fatalf("guess %q: %v", s.letter, err)
		}
		if res != s.result || r.TriesLeft() != s.tries || r.Score() != s.score {
			t.Fatalf("after %q: got result=%v tries=%d score=%d", s.letter, res, r.TriesLeft(), r.Score())
		}
	}

	if !r.HintOffered() {
		t.Fatal("expected hint checkpoint at 3 tries")
	}
	r.DeclineHint()
	if r.HintOffered() {
		t.Fatal("hint still offered after decline")
	}

	guessAll(t, r, "T")
	if r.Status() != game.StatusWon {
		t.Fatalf("expected won, got %s", r.Status())
	}
	if r.Score() != 30 {
		t.Errorf("expected final score 30, got %d", r.Score())
	}
}

func TestTakeHint(t *testing.T) {
	r := game.NewRound("CAT", &seqRand{vals: []int{1}}, nil)
	guessAll(t, r, "QWE")

	hint, err := r.TakeHint()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Unguessed letters sorted: A, C, T.
	if hint != 'C' {
		t.Errorf("expected hint C, got %q", hint)
	}
	if r.TriesLeft() != 2 {
		t.Errorf("expected 2 tries after hint, got %d", r.TriesLeft())
	}
	if r.Snapshot().Guessed['C'] {
		t.Error("hint letter must not be added to guessed set")
	}
	if _, err := r.TakeHint(); !errors.Is(err, game.ErrHintUnavailable) {
		t.Errorf("expected ErrHintUnavailable on second hint, got %v", err)
	}
}

func TestHintUnavailableOutsideCheckpoint(t *testing.T) {
	r := game.NewRound("CAT", &seqRand{}, nil)
	if _, err := r.TakeHint(); !errors.Is(err, game.ErrHintUnavailable) {
		t.Errorf("expected ErrHintUnavailable, got %v", err)
	}
}

func TestHintNeverRevealsGuessedLetter(t *testing.T) {
	for i := 0; i < 3; i++ {
		r := game.NewRound("CAT", &seqRand{vals: []int{i}}, nil)
		guessAll(t, r, "AQWE")

		hint, err := r.TakeHint()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hint == 'A' {
			t.Errorf("hint revealed already guessed letter")
		}
	}
}

func TestElapsed(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	r := game.NewRound("A", &seqRand{}, clock.Now)

	clock.t = clock.t.Add(1500 * time.Millisecond)
	if r.Elapsed() != 1500*time.Millisecond {
		t.Errorf("expected 1.5s while running, got %v", r.Elapsed())
	}

	guessAll(t, r, "A")
	clock.t = clock.t.Add(time.Hour)
	if r.Elapsed() != 1500*time.Millisecond {
		t.Errorf("expected elapsed frozen at 1.5s, got %v", r.Elapsed())
	}
}
