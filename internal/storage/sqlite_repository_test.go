package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sandeepkv93/habitd/internal/model"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitd-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func TestReplaceAndListHabits(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	store := sampleStore(t)

	if err := repo.ReplaceHabits(ctx, store.Habits); err != nil {
		t.Fatalf("replace habits: %v", err)
	}
	got, err := repo.ListHabits(ctx)
	if err != nil {
		t.Fatalf("list habits: %v", err)
	}
	if diff := cmp.Diff(store.Habits, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("exported habits mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceHabitsOverwritesPreviousSnapshot(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	store := sampleStore(t)

	if err := repo.ReplaceHabits(ctx, store.Habits); err != nil {
		t.Fatalf("first export: %v", err)
	}
	if err := repo.ReplaceHabits(ctx, store.Habits[:1]); err != nil {
		t.Fatalf("second export: %v", err)
	}
	got, err := repo.ListHabits(ctx)
	if err != nil {
		t.Fatalf("list habits: %v", err)
	}
	if len(got) != 1 || got[0].ID != store.Habits[0].ID {
		t.Fatalf("unexpected habits after overwrite: %#v", got)
	}

	_, err = repo.GetHabit(ctx, store.Habits[1].ID.String())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestOpenSQLiteAppliesMigrations(t *testing.T) {
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "export.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer repo.Close()

	h, _ := model.NewHabit("Walk", nil, nil, time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC))
	h.MarkComplete(time.Date(2026, 2, 10, 7, 0, 0, 0, time.UTC))
	if err := repo.ReplaceHabits(context.Background(), []model.Habit{h}); err != nil {
		t.Fatalf("replace habits: %v", err)
	}
	got, err := repo.GetHabit(context.Background(), h.ID.String())
	if err != nil {
		t.Fatalf("get habit: %v", err)
	}
	if len(got.Completions) != 1 || !got.Completions[0].Equal(h.Completions[0]) {
		t.Fatalf("unexpected completions: %v", got.Completions)
	}
}
