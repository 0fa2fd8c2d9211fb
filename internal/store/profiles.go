package store

import (
	"database/sql"
	"fmt"
	"time"
)

// GameMode returns the user's game-mode code (LOW|CHILL|FLOW|EVOLVE),
// or an empty string when no profile or mode is set. Implements the
// engine's GameModeLookup.
func (s *Store) GameMode(userID int64) (string, error) {
	var mode string
	err := s.DB.QueryRow(
		"SELECT game_mode FROM profiles WHERE user_id = ?",
		userID,
	).Scan(&mode)

	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get game mode: %w", err)
	}

	return mode, nil
}

// SetGameMode creates or updates the user's game-mode profile
func (s *Store) SetGameMode(userID int64, mode string) error {
	_, err := s.DB.Exec(
		`INSERT INTO profiles (user_id, game_mode, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET game_mode = excluded.game_mode, updated_at = excluded.updated_at`,
		userID, mode, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to set game mode: %w", err)
	}

	return nil
}
