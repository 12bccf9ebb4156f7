package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"taskoraClient/internal/models"
)

// Store is the single place the access token and cached user live.
// Every screen that needs identity goes through it, so storage access
// stays centralized and swappable in tests.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			id           INTEGER PRIMARY KEY CHECK (id = 1),
			access_token TEXT NOT NULL,
			user_json    TEXT NOT NULL,
			updated_at   TIMESTAMP NOT NULL
		)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init session schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored session wholesale.
func (s *Store) Save(token string, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO session (id, access_token, user_json, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			user_json    = excluded.user_json,
			updated_at   = excluded.updated_at`,
		token, string(userJSON), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Token reads the access token from storage at call time, so a
// sign-out/sign-in between calls is always picked up. Implements
// api.TokenSource.
func (s *Store) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var token string
	err := s.db.QueryRow(`SELECT access_token FROM session WHERE id = 1`).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return token, nil
}

func (s *Store) CurrentUser() (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var userJSON string
	err := s.db.QueryRow(`SELECT user_json FROM session WHERE id = 1`).Scan(&userJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrNoSession
	}
	if err != nil {
		return models.User{}, fmt.Errorf("read user: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return models.User{}, fmt.Errorf("unmarshal user: %w", err)
	}
	return user, nil
}

// Clear drops the stored session on sign-out.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
