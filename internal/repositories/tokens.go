package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// TokenRepository implements the auth.Store key-value port for token persistence.
type TokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new [TokenRepository] with the given database connection
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Get retrieves the value for a key. Returns an empty string for an absent key.
func (r *TokenRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM tokens WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query token entry: %w", err)
	}

	return value, nil
}

// Set inserts or replaces the value for a key.
func (r *TokenRepository) Set(key, value string) error {
	query := `
		INSERT INTO tokens (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to store token entry: %w", err)
	}

	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (r *TokenRepository) Delete(key string) error {
	if _, err := r.db.Exec("DELETE FROM tokens WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete token entry: %w", err)
	}

	return nil
}
