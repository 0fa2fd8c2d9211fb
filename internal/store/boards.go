package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"mission-board/internal/board"
)

// Boards are persisted as one JSON payload row per user. The engine
// is the only writer and always writes the whole board, so a blob
// keeps the schema out of the engine's way while still surviving
// restarts.

// LoadBoard retrieves a user's board, or (nil, nil) if none exists yet
func (s *Store) LoadBoard(userID int64) (*board.Board, error) {
	var payload string
	err := s.DB.QueryRow(
		"SELECT payload FROM boards WHERE user_id = ?",
		userID,
	).Scan(&payload)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	b := &board.Board{}
	if err := json.Unmarshal([]byte(payload), b); err != nil {
		return nil, fmt.Errorf("failed to decode board for user %d: %w", userID, err)
	}
	return b, nil
}

// SaveBoard writes a user's board, inserting or replacing the row
func (s *Store) SaveBoard(b *board.Board) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode board for user %d: %w", b.UserID, err)
	}

	_, err = s.DB.Exec(
		`INSERT INTO boards (user_id, season_id, payload, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET season_id = excluded.season_id, payload = excluded.payload, updated_at = excluded.updated_at`,
		b.UserID, b.SeasonID, string(payload), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}

	return nil
}

// ListBoardUserIDs returns the ids of all users with a stored board
func (s *Store) ListBoardUserIDs() ([]int64, error) {
	rows, err := s.DB.Query("SELECT user_id FROM boards ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan board row: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
