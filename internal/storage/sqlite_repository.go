package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/habitd/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens the database at path and applies the up migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// ReplaceHabits swaps the stored snapshot for habits in a single transaction.
func (r *SQLiteRepository) ReplaceHabits(ctx context.Context, habits []model.Habit) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM completions`); err != nil {
		return fmt.Errorf("clear completions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM habits`); err != nil {
		return fmt.Errorf("clear habits: %w", err)
	}

	for pos, h := range habits {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO habits (id, position, name, description, created_at, target_frequency, is_active)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			h.ID.String(), pos, h.Name, nullString(h.Description), mustTime(h.CreatedAt), nullUint(h.TargetFrequency), boolInt(h.IsActive),
		); err != nil {
			return fmt.Errorf("insert habit %s: %w", h.ID, err)
		}
		for _, c := range h.Completions {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO completions (habit_id, completed_at) VALUES (?, ?)`,
				h.ID.String(), mustTime(c),
			); err != nil {
				return fmt.Errorf("insert completion for %s: %w", h.ID, err)
			}
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) GetHabit(ctx context.Context, id string) (model.Habit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at, target_frequency, is_active
		FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Habit{}, ErrNotFound
		}
		return model.Habit{}, err
	}
	completions, err := r.listCompletions(ctx, h.ID.String())
	if err != nil {
		return model.Habit{}, err
	}
	h.Completions = completions
	return h, nil
}

func (r *SQLiteRepository) ListHabits(ctx context.Context) ([]model.Habit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, created_at, target_frequency, is_active
		FROM habits ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	out := make([]model.Habit, 0)
	for rows.Next() {
		h, scanErr := scanHabit(rows)
		if scanErr != nil {
			_ = rows.Close()
			return nil, scanErr
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	for i := range out {
		completions, err := r.listCompletions(ctx, out[i].ID.String())
		if err != nil {
			return nil, err
		}
		out[i].Completions = completions
	}
	return out, nil
}

func (r *SQLiteRepository) listCompletions(ctx context.Context, habitID string) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT completed_at FROM completions WHERE habit_id = ? ORDER BY completed_at ASC`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]time.Time, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		ts, err := parseRequiredTime(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullUint(v *uint32) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(s scanner) (model.Habit, error) {
	var out model.Habit
	var id string
	var description sql.NullString
	var created string
	var freq sql.NullInt64
	var active int
	if err := s.Scan(&id, &out.Name, &description, &created, &freq, &active); err != nil {
		return model.Habit{}, err
	}
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return model.Habit{}, fmt.Errorf("parse habit id %q: %w", id, err)
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return model.Habit{}, err
	}
	out.ID = parsedID
	out.CreatedAt = createdAt
	out.IsActive = active == 1
	if description.Valid {
		d := description.String
		out.Description = &d
	}
	if freq.Valid {
		f := uint32(freq.Int64)
		out.TargetFrequency = &f
	}
	return out, nil
}
