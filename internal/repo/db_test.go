package repo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/preptrack/go-prep-backend/internal/domain"
)

func TestOpen_SQLite_CreatesFileAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	db, err := Open("sqlite", path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	// Schema is usable end to end.
	q := &domain.Question{Title: "Two Sum", Link: "https://x/two-sum", Difficulty: domain.DifficultyEasy, IsActive: true}
	if err := CreateQuestion(context.Background(), db, q); err != nil {
		t.Fatalf("CreateQuestion after migrate: %v", err)
	}
}

func TestOpen_DefaultDriverIsSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.db")
	db, err := Open("", path)
	if err != nil {
		t.Fatalf("Open with empty driver: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := Open("oracle", "dsn"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestOpen_SQLite_MissingParentDir(t *testing.T) {
	if _, err := Open("sqlite", filepath.Join(t.TempDir(), "nope", "catalog.db")); err == nil {
		t.Fatal("expected error for missing parent directory")
	}
}

func TestIsDuplicate(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm sentinel", gorm.ErrDuplicatedKey, true},
		{"sqlite text", errors.New("UNIQUE constraint failed: company_tags.question_id"), true},
		{"postgres text", errors.New("ERROR: duplicate key value violates unique constraint"), true},
		{"other", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		if got := isDuplicate(tc.err); got != tc.want {
			t.Errorf("%s: isDuplicate = %v, want %v", tc.name, got, tc.want)
		}
	}
}
