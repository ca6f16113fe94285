package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// ScoreStore loads and persists the whole ScoreBoard.
type ScoreStore interface {
	Load() (*ScoreBoard, error)
	Save(board *ScoreBoard) error
}

// FileStore keeps scores in a JSON object on disk.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the score file, creating it empty first if it does not exist.
func (s *FileStore) Load() (*ScoreBoard, error) {
	if _, err := os.Stat(s.Path); errors.Is(err, fs.ErrNotExist) {
		log.Printf("Score file %s not found. Creating empty score file.", s.Path)
		if err := s.Save(NewScoreBoard()); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}

	board := NewScoreBoard()
	if err := board.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}

	log.Printf("Loaded %d scores from %s", board.Len(), s.Path)
	return board, nil
}

// Save overwrites the score file with board. The new content is written to
// a temporary file and renamed into place.
func (s *FileStore) Save(board *ScoreBoard) error {
	data, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".scores-*.tmp")
	if err != nil {
		return fmt.Errorf("save scores: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save scores: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("save scores: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("save scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save scores: %w", err)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		return fmt.Errorf("save scores: %w", err)
	}

	log.Printf("Saved %d scores to %s", board.Len(), s.Path)
	return nil
}
