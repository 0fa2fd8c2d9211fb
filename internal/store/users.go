package store

import (
	"database/sql"
	"fmt"
	"time"
)

// User represents a user in the system
type User struct {
	ID         int64
	TelegramID *int64 // Nullable
	Username   string
	CreatedAt  time.Time
}

// CreateUser creates a new user
func (s *Store) CreateUser(username string, telegramID *int64) (*User, error) {
	result, err := s.DB.Exec(
		"INSERT INTO users (username, telegram_id) VALUES (?, ?)",
		username, telegramID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetUserByID(id)
}

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(id int64) (*User, error) {
	user := &User{}
	err := s.DB.QueryRow(
		"SELECT id, telegram_id, username, created_at FROM users WHERE id = ?",
		id,
	).Scan(&user.ID, &user.TelegramID, &user.Username, &user.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetUserByUsername retrieves a user by username
func (s *Store) GetUserByUsername(username string) (*User, error) {
	user := &User{}
	err := s.DB.QueryRow(
		"SELECT id, telegram_id, username, created_at FROM users WHERE username = ?",
		username,
	).Scan(&user.ID, &user.TelegramID, &user.Username, &user.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetUserByTelegramID retrieves a user by Telegram ID
func (s *Store) GetUserByTelegramID(telegramID int64) (*User, error) {
	user := &User{}
	err := s.DB.QueryRow(
		"SELECT id, telegram_id, username, created_at FROM users WHERE telegram_id = ?",
		telegramID,
	).Scan(&user.ID, &user.TelegramID, &user.Username, &user.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// SetUserTelegramID links a Telegram chat to an existing user
func (s *Store) SetUserTelegramID(userID, telegramID int64) error {
	_, err := s.DB.Exec(
		"UPDATE users SET telegram_id = ? WHERE id = ?",
		telegramID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set telegram id: %w", err)
	}
	return nil
}
