package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strings"
	"unicode"
)

var (
	ErrDataUnavailable   = errors.New("word data unavailable")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// Rand is the random source used for word and hint selection.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// WordBank maps a lowercase difficulty name to its candidate words.
type WordBank map[string][]string

// LoadWords reads a JSON object of difficulty -> []word from fsys.
func LoadWords(fsys fs.FS, name string) (WordBank, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, name, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s has no difficulties", ErrDataUnavailable, name)
	}

	bank := make(WordBank, len(raw))
	for difficulty, words := range raw {
		if len(words) == 0 {
			return nil, fmt.Errorf("%w: difficulty %q has no words", ErrDataUnavailable, difficulty)
		}
		for _, word := range words {
			if strings.IndexFunc(word, unicode.IsLetter) < 0 {
				return nil, fmt.Errorf("%w: difficulty %q has a word with no letters: %q", ErrDataUnavailable, difficulty, word)
			}
		}
		key := strings.ToLower(strings.TrimSpace(difficulty))
		if _, dup := bank[key]; dup {
			return nil, fmt.Errorf("%w: difficulty %q is listed more than once", ErrDataUnavailable, key)
		}
		bank[key] = words
	}

	log.Printf("Loaded word file %s: %d difficulties", name, len(bank))
	return bank, nil
}

// Difficulties returns the known difficulty names in sorted order.
func (b WordBank) Difficulties() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether difficulty names a bucket, ignoring case.
func (b WordBank) Has(difficulty string) bool {
	_, ok := b[strings.ToLower(strings.TrimSpace(difficulty))]
	return ok
}

// ChooseWord picks a word for difficulty uniformly at random and uppercases it.
func ChooseWord(bank WordBank, difficulty string, rng Rand) (string, error) {
	words, ok := bank[strings.ToLower(strings.TrimSpace(difficulty))]
	if !ok || len(words) == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, difficulty)
	}
	return strings.ToUpper(strings.TrimSpace(words[rng.Intn(len(words))])), nil
}
