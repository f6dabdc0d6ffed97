// Package auth persists the backend session token in the local config store.
// At most one token exists at a time: overwritten on login, deleted on logout
// or when the backend rejects it.
package auth

import (
	"database/sql"
	"fmt"
	"strings"
)

const tokenKey = "auth_token"

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Token returns the stored session token, if any.
func (s *Store) Token() (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, tokenKey).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read auth token: %w", err)
	}
	return value, true, nil
}

func (s *Store) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("auth token is required")
	}
	_, err := s.db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, tokenKey, token)
	if err != nil {
		return fmt.Errorf("store auth token: %w", err)
	}
	return nil
}

func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM app_config WHERE key = ?`, tokenKey); err != nil {
		return fmt.Errorf("clear auth token: %w", err)
	}
	return nil
}

// SetConfig and GetConfig expose the same key/value table for non-token
// settings such as the API base URL override.
func (s *Store) SetConfig(key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	_, err := s.db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func (s *Store) GetConfig(key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := s.db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}
