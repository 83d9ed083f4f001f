package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sandeepkv93/habitd/internal/model"
)

const DefaultPath = "habits.json"

// HabitStore is the full habit collection and the unit of persistence.
// Habits are kept in insertion order.
type HabitStore struct {
	Habits []model.Habit `json:"habits"`
}

// Load reads the store at path. A missing file yields an empty store.
func Load(path string) (*HabitStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &HabitStore{Habits: []model.Habit{}}, nil
		}
		return nil, model.IOError(err)
	}

	var store HabitStore
	if err := json.Unmarshal(raw, &store); err != nil {
		return nil, model.Corrupt(err)
	}
	if store.Habits == nil {
		store.Habits = []model.Habit{}
	}
	seen := make(map[uuid.UUID]struct{}, len(store.Habits))
	for i, h := range store.Habits {
		if err := h.Validate(); err != nil {
			return nil, model.Corrupt(fmt.Errorf("habit %d: %w", i, err))
		}
		if _, dup := seen[h.ID]; dup {
			return nil, model.Corrupt(fmt.Errorf("habit %d: duplicate id %s", i, h.ID))
		}
		seen[h.ID] = struct{}{}
	}
	return &store, nil
}

// Save writes the whole store to path. The payload goes to path+".tmp" first,
// is synced, and then renamed over path, so readers only ever see the old or
// the new file.
func (s *HabitStore) Save(path string) error {
	payload, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return model.IOError(err)
	}
	payload = append(payload, '\n')

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return model.IOError(err)
		}
	}

	tmp := path + ".tmp"
	if err := writeSynced(tmp, payload); err != nil {
		_ = os.Remove(tmp)
		return model.IOError(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return model.IOError(err)
	}
	return nil
}

func writeSynced(path string, payload []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (s *HabitStore) Add(h model.Habit) {
	s.Habits = append(s.Habits, h)
}

// Resolve finds a habit by id when ident parses as a UUID, otherwise by
// name, ignoring ASCII case. Duplicate names resolve to the first inserted habit.
func (s *HabitStore) Resolve(ident string) (*model.Habit, error) {
	match := matcher(ident)
	for i := range s.Habits {
		if match(s.Habits[i]) {
			return &s.Habits[i], nil
		}
	}
	return nil, model.NotFound(ident)
}

// Remove deletes every habit matching ident and returns how many were removed.
func (s *HabitStore) Remove(ident string) (int, error) {
	match := matcher(ident)
	kept := s.Habits[:0]
	for _, h := range s.Habits {
		if !match(h) {
			kept = append(kept, h)
		}
	}
	removed := len(s.Habits) - len(kept)
	if removed == 0 {
		return 0, model.NotFound(ident)
	}
	clear(s.Habits[len(kept):])
	s.Habits = kept
	return removed, nil
}

// Filter returns the habits to list; activeOnly drops deactivated ones.
func (s *HabitStore) Filter(activeOnly bool) []model.Habit {
	out := make([]model.Habit, 0, len(s.Habits))
	for _, h := range s.Habits {
		if activeOnly && !h.IsActive {
			continue
		}
		out = append(out, h)
	}
	return out
}

func matcher(ident string) func(model.Habit) bool {
	if id, err := uuid.Parse(ident); err == nil {
		return func(h model.Habit) bool { return h.ID == id }
	}
	return func(h model.Habit) bool { return equalFoldASCII(h.Name, ident) }
}

// equalFoldASCII compares names ignoring ASCII case only; other runes must
// match exactly.
func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
