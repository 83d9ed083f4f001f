package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/habitd/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

// SnapshotRepository holds a point-in-time copy of the habit store outside the
// JSON backing file.
type SnapshotRepository interface {
	ReplaceHabits(ctx context.Context, habits []model.Habit) error
	GetHabit(ctx context.Context, id string) (model.Habit, error)
	ListHabits(ctx context.Context) ([]model.Habit, error)
}
