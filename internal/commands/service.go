package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/storage"
	"go.uber.org/zap"
)

// nullSentinel clears an optional field in edit.
const nullSentinel = "null"

// Service runs each command as one load, operate, save cycle against the
// habit file at path. Nothing is written unless the whole operation succeeds.
type Service struct {
	path   string
	now    func() time.Time
	logger *zap.Logger
}

func NewService(path string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		path:   path,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// WithClock replaces the time source used for creation and completion stamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Path() string {
	return s.path
}

func (s *Service) Handlers() Handlers {
	return Handlers{
		Add:      s.Add,
		List:     s.List,
		Complete: s.Complete,
		Remove:   s.Remove,
		Edit:     s.Edit,
		Show:     s.Show,
		Export:   s.Export,
	}
}

func (s *Service) Add(_ context.Context, a AddArgs) (Result, error) {
	habit, err := model.NewHabit(a.Name, a.Description, a.Frequency, s.now())
	if err != nil {
		return Result{}, err
	}
	store, err := s.load()
	if err != nil {
		return Result{}, err
	}
	store.Add(habit)
	if err := s.save(store); err != nil {
		return Result{}, err
	}
	s.logger.Info("habit added", zap.String("id", habit.ID.String()), zap.String("name", habit.Name))
	return Result{
		Message: fmt.Sprintf("Added habit: '%s' (ID: %s)", habit.Name, habit.ID),
		Habit:   &habit,
	}, nil
}

func (s *Service) List(_ context.Context, a ListArgs) (Result, error) {
	store, err := s.load()
	if err != nil {
		return Result{}, err
	}
	habits := store.Filter(a.ActiveOnly)
	msg := fmt.Sprintf("%d habit(s)", len(habits))
	if len(habits) == 0 {
		msg = fmt.Sprintf("No habits to display (active = %t)", a.ActiveOnly)
	}
	return Result{Message: msg, Habits: habits}, nil
}

func (s *Service) Complete(_ context.Context, a CompleteArgs) (Result, error) {
	store, err := s.load()
	if err != nil {
		return Result{}, err
	}
	habit, err := store.Resolve(a.Identifier)
	if err != nil {
		return Result{}, err
	}
	if !habit.MarkComplete(s.now()) {
		return Result{}, model.AlreadyCompleted(habit.Name)
	}
	out := *habit
	if err := s.save(store); err != nil {
		return Result{}, err
	}
	s.logger.Info("habit completed", zap.String("id", out.ID.String()), zap.Int("completions", len(out.Completions)))
	return Result{Message: fmt.Sprintf("Marked complete: '%s' (today)", out.Name), Habit: &out}, nil
}

func (s *Service) Remove(_ context.Context, a RemoveArgs) (Result, error) {
	store, err := s.load()
	if err != nil {
		return Result{}, err
	}
	removed, err := store.Remove(a.Identifier)
	if err != nil {
		return Result{}, err
	}
	if err := s.save(store); err != nil {
		return Result{}, err
	}
	s.logger.Info("habit removed", zap.String("identifier", a.Identifier), zap.Int("removed", removed))
	return Result{Message: fmt.Sprintf("Removed habit: %s", a.Identifier)}, nil
}

// Edit applies every requested change in memory and saves once; any
// validation failure leaves the file as it was.
func (s *Service) Edit(_ context.Context, a EditArgs) (Result, error) {
	store, err := s.load()
	if err != nil {
		return Result{}, err
	}
	habit, err := store.Resolve(a.Identifier)
	if err != nil {
		return Result{}, err
	}
	if a.Name != nil {
		if err := habit.Rename(*a.Name); err != nil {
			return Result{}, err
		}
	}
	if a.Description != nil {
		if strings.EqualFold(*a.Description, nullSentinel) {
			habit.SetDescription(nil)
		} else {
			desc := *a.Description
			habit.SetDescription(&desc)
		}
	}
	if a.Frequency != nil {
		if strings.EqualFold(*a.Frequency, nullSentinel) {
			habit.SetTargetFrequency(nil)
		} else {
			parsed, err := strconv.ParseUint(strings.TrimPrefix(*a.Frequency, "+"), 10, 32)
			if err != nil {
				return Result{}, model.InvalidName("frequency")
			}
			freq := uint32(parsed)
			habit.SetTargetFrequency(&freq)
		}
	}
	if a.Active != nil {
		habit.SetActive(*a.Active)
	}
	out := *habit
	if err := s.save(store); err != nil {
		return Result{}, err
	}
	s.logger.Info("habit updated", zap.String("id", out.ID.String()), zap.String("name", out.Name), zap.Bool("active", out.IsActive))
	return Result{Message: fmt.Sprintf("Updated habit: '%s'", out.Name), Habit: &out}, nil
}

func (s *Service) Show(_ context.Context, a ShowArgs) (Result, error) {
	store, err := s.load()
	if err != nil {
		return Result{}, err
	}
	habit, err := store.Resolve(a.Identifier)
	if err != nil {
		return Result{}, err
	}
	out := *habit
	return Result{Message: out.Name, Habit: &out}, nil
}

// Export copies the current store into a SQLite database at a.Path,
// replacing whatever snapshot it held before.
func (s *Service) Export(ctx context.Context, a ExportArgs) (Result, error) {
	if strings.TrimSpace(a.Path) == "" {
		return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "export requires a database path"}
	}
	store, err := s.load()
	if err != nil {
		return Result{}, err
	}
	repo, err := storage.OpenSQLite(a.Path)
	if err != nil {
		return Result{}, model.IOError(err)
	}
	defer func() { _ = repo.Close() }()

	if err := repo.ReplaceHabits(ctx, store.Habits); err != nil {
		return Result{}, model.IOError(err)
	}
	s.logger.Info("habits exported", zap.String("database", a.Path), zap.Int("habits", len(store.Habits)))
	return Result{Message: fmt.Sprintf("Exported %d habit(s) to %s", len(store.Habits), a.Path)}, nil
}

func (s *Service) load() (*storage.HabitStore, error) {
	store, err := storage.Load(s.path)
	if err != nil {
		s.logger.Debug("load habit store failed", zap.String("path", s.path), zap.Error(err))
		return nil, err
	}
	s.logger.Debug("habit store loaded", zap.String("path", s.path), zap.Int("habits", len(store.Habits)))
	return store, nil
}

func (s *Service) save(store *storage.HabitStore) error {
	if err := store.Save(s.path); err != nil {
		s.logger.Debug("save habit store failed", zap.String("path", s.path), zap.Error(err))
		return err
	}
	s.logger.Debug("habit store saved", zap.String("path", s.path), zap.Int("habits", len(store.Habits)))
	return nil
}
