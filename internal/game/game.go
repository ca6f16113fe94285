package game

import (
	"errors"
	"log"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

const (
	MaxTries        = 6
	HintCheckpoint  = 3
	PointsPerLetter = 10
	LossPenalty     = 5
)

var (
	ErrRoundOver       = errors.New("round is over")
	ErrHintUnavailable = errors.New("hint is not available")
	ErrNotALetter      = errors.New("guess must be a single letter")
)

type GuessResult int

const (
	GuessCorrect GuessResult = iota
	GuessWrong
	GuessRepeated
)

// Round is one play-through of a single secret word.
type Round struct {
	ID   string
	Word string

	remaining   map[rune]bool
	guessed     map[rune]bool
	triesLeft   int
	score       int
	hintOffered bool
	status      Status

	rng       Rand
	now       func() time.Time
	startedAt time.Time
	endedAt   time.Time
}

// Snapshot is a read-only view of a round for rendering.
type Snapshot struct {
	Word      string
	Guessed   map[rune]bool
	TriesLeft int
	Score     int
	Status    Status
}

func (s Snapshot) TriesUsed() int {
	return MaxTries - s.TriesLeft
}

// NewRound starts a round for word. now may be nil, in which case
// time.Now is used. Only letters have to be guessed; any other characters
// in word are shown as-is.
func NewRound(word string, rng Rand, now func() time.Time) *Round {
	if now == nil {
		now = time.Now
	}
	word = strings.ToUpper(word)

	r := &Round{
		ID:        uuid.NewString(),
		Word:      word,
		remaining: make(map[rune]bool),
		guessed:   make(map[rune]bool),
		triesLeft: MaxTries,
		status:    StatusInProgress,
		rng:       rng,
		now:       now,
	}
	for _, c := range word {
		if unicode.IsLetter(c) {
			r.remaining[c] = true
		}
	}
	r.startedAt = now()

	if len(r.remaining) == 0 {
		r.finish(StatusWon)
	}
	return r
}

func (r *Round) Status() Status { return r.status }
func (r *Round) TriesLeft() int { return r.triesLeft }
func (r *Round) Score() int     { return r.score }

func (r *Round) Snapshot() Snapshot {
	guessed := make(map[rune]bool, len(r.guessed))
	for c := range r.guessed {
		guessed[c] = true
	}
	return Snapshot{
		Word:      r.Word,
		Guessed:   guessed,
		TriesLeft: r.triesLeft,
		Score:     r.score,
		Status:    r.status,
	}
}

// Elapsed is the wall-clock time from round start to resolution, or to now
// while the round is still running.
func (r *Round) Elapsed() time.Duration {
	if r.status == StatusInProgress {
		return r.now().Sub(r.startedAt)
	}
	return r.endedAt.Sub(r.startedAt)
}

// Guess applies a single letter. Letters are uppercased before use.
func (r *Round) Guess(letter rune) (GuessResult, error) {
	if r.status != StatusInProgress {
		return 0, ErrRoundOver
	}
	if !unicode.IsLetter(letter) {
		return 0, ErrNotALetter
	}
	letter = unicode.ToUpper(letter)

	if r.guessed[letter] {
		return GuessRepeated, nil
	}
	r.guessed[letter] = true

	if r.remaining[letter] {
		delete(r.remaining, letter)
		r.score += PointsPerLetter
		if len(r.remaining) == 0 {
			r.finish(StatusWon)
		}
		return GuessCorrect, nil
	}

	r.spendTry()
	return GuessWrong, nil
}

// HintOffered reports whether the hint checkpoint is due before the next guess.
func (r *Round) HintOffered() bool {
	return r.status == StatusInProgress && r.triesLeft == HintCheckpoint && !r.hintOffered
}

// DeclineHint closes the checkpoint for the rest of the round.
func (r *Round) DeclineHint() {
	if r.HintOffered() {
		r.hintOffered = true
	}
}

// TakeHint reveals a random unguessed letter of the word at the cost of
// one try. The letter is not added to the guessed set. The try cost can end
// the round.
func (r *Round) TakeHint() (rune, error) {
	if !r.HintOffered() {
		return 0, ErrHintUnavailable
	}
	r.hintOffered = true

	letters := make([]rune, 0, len(r.remaining))
	for c := range r.remaining {
		letters = append(letters, c)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	hint := letters[r.rng.Intn(len(letters))]

	r.spendTry()
	log.Printf("Round %s: hint %q issued, %d tries left", r.ID, hint, r.triesLeft)
	return hint, nil
}

func (r *Round) spendTry() {
	r.triesLeft--
	if r.triesLeft <= 0 {
		r.triesLeft = 0
		r.finish(StatusLost)
	}
}

func (r *Round) finish(status Status) {
	r.status = status
	r.endedAt = r.now()
	if status == StatusLost {
		r.score = max(r.score-LossPenalty, 0)
	}
	log.Printf("Round %s finished: status=%s score=%d", r.ID, r.status, r.score)
}
