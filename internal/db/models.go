package db

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

var ErrMalformedScores = errors.New("malformed score data")

type Entry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// ScoreBoard maps usernames to cumulative scores and remembers the order in
// which users were first seen.
type ScoreBoard struct {
	order  []string
	scores map[string]int
}

func NewScoreBoard() *ScoreBoard {
	return &ScoreBoard{scores: make(map[string]int)}
}

// Ensure adds username with a zero score if it is missing.
func (b *ScoreBoard) Ensure(username string) bool {
	if _, ok := b.scores[username]; ok {
		return false
	}
	b.order = append(b.order, username)
	b.scores[username] = 0
	return true
}

// Add increases username's score by points and returns the new total.
func (b *ScoreBoard) Add(username string, points int) int {
	b.Ensure(username)
	b.scores[username] += points
	return b.scores[username]
}

func (b *ScoreBoard) Get(username string) (int, bool) {
	score, ok := b.scores[username]
	return score, ok
}

func (b *ScoreBoard) Len() int {
	return len(b.order)
}

// Entries returns all scores in first-seen order.
func (b *ScoreBoard) Entries() []Entry {
	entries := make([]Entry, 0, len(b.order))
	for _, name := range b.order {
		entries = append(entries, Entry{Username: name, Score: b.scores[name]})
	}
	return entries
}

// Top returns at most limit entries sorted by score, highest first. Ties keep
// first-seen order.
func (b *ScoreBoard) Top(limit int) []Entry {
	entries := b.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// MarshalJSON writes a JSON object with keys in first-seen order.
func (b *ScoreBoard) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range b.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", b.scores[name])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of username -> score, keeping the key
// order of the document.
func (b *ScoreBoard) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedScores, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: expected object", ErrMalformedScores)
	}

	board := NewScoreBoard()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedScores, err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: expected username key", ErrMalformedScores)
		}

		var score *int
		if err := dec.Decode(&score); err != nil {
			return fmt.Errorf("%w: score for %q: %v", ErrMalformedScores, name, err)
		}
		if score == nil {
			return fmt.Errorf("%w: null score for %q", ErrMalformedScores, name)
		}
		if *score < 0 {
			return fmt.Errorf("%w: negative score for %q", ErrMalformedScores, name)
		}

		board.Ensure(name)
		board.scores[name] = *score
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedScores, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: unexpected data after scores", ErrMalformedScores)
	}

	*b = *board
	return nil
}
