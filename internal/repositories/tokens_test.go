package repositories

import (
	"database/sql"
	"testing"

	"github.com/desertthunder/adx/internal/auth"
	"github.com/desertthunder/adx/internal/shared"
)

var _ auth.Store = (*TokenRepository)(nil)

func newTestRepo(t *testing.T) *TokenRepository {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewTokenRepository(db)
}

func TestTokenRepository(t *testing.T) {
	t.Run("Get Missing Key", func(t *testing.T) {
		repo := newTestRepo(t)

		value, err := repo.Get(auth.KeyAccessToken)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if value != "" {
			t.Errorf("expected empty value for missing key, got %s", value)
		}
	})

	t.Run("Set And Get", func(t *testing.T) {
		repo := newTestRepo(t)

		if err := repo.Set(auth.KeyAccessToken, "tt_access"); err != nil {
			t.Fatalf("failed to set: %v", err)
		}

		value, err := repo.Get(auth.KeyAccessToken)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if value != "tt_access" {
			t.Errorf("expected tt_access, got %s", value)
		}
	})

	t.Run("Set Overwrites", func(t *testing.T) {
		repo := newTestRepo(t)

		repo.Set(auth.KeyAccessToken, "first")
		if err := repo.Set(auth.KeyAccessToken, "second"); err != nil {
			t.Fatalf("failed to overwrite: %v", err)
		}

		value, _ := repo.Get(auth.KeyAccessToken)
		if value != "second" {
			t.Errorf("expected second, got %s", value)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newTestRepo(t)

		repo.Set(auth.KeyRefreshToken, "tt_refresh")
		if err := repo.Delete(auth.KeyRefreshToken); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}

		value, _ := repo.Get(auth.KeyRefreshToken)
		if value != "" {
			t.Errorf("expected empty value after delete, got %s", value)
		}

		// Deleting again is not an error
		if err := repo.Delete(auth.KeyRefreshToken); err != nil {
			t.Errorf("expected idempotent delete, got %v", err)
		}
	})

	t.Run("Closed Database Returns Error", func(t *testing.T) {
		db, err := sql.Open("sqlite3", ":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		db.Close()

		repo := NewTokenRepository(db)
		if _, err := repo.Get(auth.KeyAccessToken); err == nil {
			t.Error("expected error from closed database")
		}
		if err := repo.Set(auth.KeyAccessToken, "x"); err == nil {
			t.Error("expected error from closed database")
		}
	})
}
