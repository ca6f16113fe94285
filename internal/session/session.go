package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"advanced-hangman/internal/db"
	"advanced-hangman/internal/game"
	"advanced-hangman/internal/render"
)

// ErrInputClosed is returned when input ends before the session does.
var ErrInputClosed = errors.New("input closed")

type Session struct {
	in    *bufio.Reader
	ui    *render.Renderer
	words game.WordBank
	store db.ScoreStore
	rng   game.Rand
	now   func() time.Time
}

type Options struct {
	In       io.Reader
	Renderer *render.Renderer
	Words    game.WordBank
	Store    db.ScoreStore
	Rand     game.Rand
	// Now defaults to time.Now.
	Now func() time.Time
}

func New(opts Options) *Session {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		in:    bufio.NewReader(opts.In),
		ui:    opts.Renderer,
		words: opts.Words,
		store: opts.Store,
		rng:   opts.Rand,
		now:   now,
	}
}

// Run plays rounds until the player declines a replay.
func (s *Session) Run() error {
	s.ui.Line("welcome")

	username, err := s.readUsername()
	if err != nil {
		return err
	}

	board, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load scores: %w", err)
	}
	if board.Ensure(username) {
		log.Printf("New player %q", username)
	}

	for {
		difficulty, err := s.readDifficulty()
		if err != nil {
			return err
		}

		word, err := game.ChooseWord(s.words, difficulty, s.rng)
		if err != nil {
			return err
		}

		round := game.NewRound(word, s.rng, s.now)
		log.Printf("Round %s started for %q: difficulty=%s", round.ID, username, difficulty)

		if err := s.playRound(round, username); err != nil {
			return err
		}

		total := board.Add(username, round.Score())
		log.Printf("Player %q awarded %d points. New total: %d", username, round.Score(), total)
		if err := s.store.Save(board); err != nil {
			return fmt.Errorf("save scores: %w", err)
		}
		s.ui.Leaderboard(board)

		again, err := s.confirm("prompt_replay")
		if err != nil {
			return err
		}
		if !again {
			s.ui.Line("goodbye")
			return nil
		}
	}
}

func (s *Session) playRound(round *game.Round, username string) error {
	s.ui.RoundStart()

	for round.Status() == game.StatusInProgress {
		s.ui.Progress(round.Snapshot())

		if round.HintOffered() {
			wantHint, err := s.confirm("prompt_hint")
			if err != nil {
				return err
			}
			if wantHint {
				hint, err := round.TakeHint()
				if err != nil {
					return err
				}
				s.ui.Hint(hint)
				if round.Status() != game.StatusInProgress {
					break
				}
			} else {
				round.DeclineHint()
			}
		}

		letter, err := s.readLetter()
		if err != nil {
			return err
		}
		res, err := round.Guess(letter)
		if err != nil {
			return err
		}
		s.ui.GuessResult(res)
	}

	s.ui.Outcome(round.Snapshot(), username)
	s.ui.Summary(round.Score(), round.Elapsed())
	return nil
}

func (s *Session) readUsername() (string, error) {
	for {
		s.ui.Prompt("prompt_name")
		name, err := s.readLine()
		if err != nil {
			return "", err
		}
		if name != "" {
			return name, nil
		}
		s.ui.Line("name_empty")
	}
}

func (s *Session) readDifficulty() (string, error) {
	options := strings.Join(s.words.Difficulties(), "/")
	for {
		s.ui.Prompt("prompt_difficulty", "difficulties", options)
		answer, err := s.readLine()
		if err != nil {
			return "", err
		}
		difficulty := strings.ToLower(answer)
		if s.words.Has(difficulty) {
			return difficulty, nil
		}
		s.ui.Line("difficulty_invalid")
	}
}

// readLetter re-prompts until the player enters exactly one letter.
func (s *Session) readLetter() (rune, error) {
	for {
		s.ui.Prompt("prompt_guess")
		answer, err := s.readLine()
		if err != nil {
			return 0, err
		}
		answer = strings.ToUpper(answer)
		if utf8.RuneCountInString(answer) == 1 {
			letter, _ := utf8.DecodeRuneInString(answer)
			if unicode.IsLetter(letter) {
				return letter, nil
			}
		}
		s.ui.Line("guess_invalid")
	}
}

// confirm reports whether the answer to the prompt is "y", ignoring case.
func (s *Session) confirm(key string) (bool, error) {
	s.ui.Prompt(key)
	answer, err := s.readLine()
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}

func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
