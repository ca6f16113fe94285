package db

import (
	"fmt"
	"log"

	"github.com/nedpals/supabase-go"
)

type Client struct {
	*supabase.Client
}

func NewClient(url, key string) *Client {
	sbClient := supabase.CreateClient(url, key)
	log.Println("Successfully connected to Supabase.")
	return &Client{sbClient}
}

// SupabaseStore keeps scores in a Supabase table with columns
// id (identity), username (unique) and score. Rows are read in id order so
// leaderboard ties follow the order players first appeared.
type SupabaseStore struct {
	client *Client
	table  string
	// saved holds the last score known to be stored for each user.
	saved map[string]int
}

func NewSupabaseStore(client *Client, table string) *SupabaseStore {
	return &SupabaseStore{client: client, table: table, saved: make(map[string]int)}
}

func (s *SupabaseStore) Load() (*ScoreBoard, error) {
	var rows []Entry
	err := s.client.DB.From(s.table).Select("username", "score").OrderBy("id", "asc").Execute(&rows)
	if err != nil {
		log.Printf("Error fetching scores from %s: %v", s.table, err)
		return nil, fmt.Errorf("load scores: %w", err)
	}

	board, err := boardFromRows(rows)
	if err != nil {
		return nil, err
	}
	s.saved = make(map[string]int, board.Len())
	for _, entry := range board.Entries() {
		s.saved[entry.Username] = entry.Score
	}
	log.Printf("Loaded %d scores from table %s", board.Len(), s.table)
	return board, nil
}

// Save writes the entries of board that differ from what the table holds.
func (s *SupabaseStore) Save(board *ScoreBoard) error {
	written := 0
	for _, entry := range board.Entries() {
		if score, ok := s.saved[entry.Username]; ok && score == entry.Score {
			continue
		}
		if err := s.saveEntry(entry); err != nil {
			return err
		}
		s.saved[entry.Username] = entry.Score
		written++
	}
	log.Printf("Saved %d changed scores to table %s", written, s.table)
	return nil
}

func (s *SupabaseStore) saveEntry(entry Entry) error {
	_, exists := s.saved[entry.Username]
	if !exists {
		var existing []Entry
		err := s.client.DB.From(s.table).Select("username").Eq("username", entry.Username).Execute(&existing)
		if err != nil {
			log.Printf("Error checking score row for %s: %v", entry.Username, err)
			return fmt.Errorf("save score for %q: %w", entry.Username, err)
		}
		exists = len(existing) > 0
	}

	var err error
	if exists {
		err = s.client.DB.From(s.table).Update(map[string]interface{}{"score": entry.Score}).Eq("username", entry.Username).Execute(nil)
	} else {
		var inserted []Entry
		err = s.client.DB.From(s.table).Insert(entry).Execute(&inserted)
	}
	if err != nil {
		log.Printf("Error writing score for %s: %v", entry.Username, err)
		return fmt.Errorf("save score for %q: %w", entry.Username, err)
	}
	return nil
}

func boardFromRows(rows []Entry) (*ScoreBoard, error) {
	board := NewScoreBoard()
	for _, row := range rows {
		if row.Score < 0 {
			return nil, fmt.Errorf("%w: negative score for %q", ErrMalformedScores, row.Username)
		}
		board.Add(row.Username, row.Score)
	}
	return board, nil
}
