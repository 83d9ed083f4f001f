package model

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Habit struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	Description     *string     `json:"description"`
	CreatedAt       time.Time   `json:"created_at"`
	Completions     []time.Time `json:"completions"`
	TargetFrequency *uint32     `json:"target_frequency"`
	IsActive        bool        `json:"is_active"`
}

// NewHabit builds an active habit with a fresh id. The name is stored as given;
// only its trimmed form has to be non-empty.
func NewHabit(name string, description *string, targetFrequency *uint32, now time.Time) (Habit, error) {
	if strings.TrimSpace(name) == "" {
		return Habit{}, InvalidName(name)
	}
	return Habit{
		ID:              uuid.New(),
		Name:            name,
		Description:     description,
		CreatedAt:       now.UTC(),
		Completions:     []time.Time{},
		TargetFrequency: targetFrequency,
		IsActive:        true,
	}, nil
}

// MarkComplete records a completion unless one already exists on the same UTC
// calendar date. It reports whether the habit changed.
func (h *Habit) MarkComplete(ts time.Time) bool {
	if h.CompletedOn(ts) {
		return false
	}
	h.Completions = append(h.Completions, ts)
	sort.Slice(h.Completions, func(i, j int) bool {
		return h.Completions[i].Before(h.Completions[j])
	})
	return true
}

func (h Habit) CompletedOn(day time.Time) bool {
	for _, c := range h.Completions {
		if sameDay(c, day) {
			return true
		}
	}
	return false
}

// RecentCompletions returns up to n of the latest completions, oldest first.
// n <= 0 returns all of them.
func (h Habit) RecentCompletions(n int) []time.Time {
	if n <= 0 || n >= len(h.Completions) {
		return h.Completions
	}
	return h.Completions[len(h.Completions)-n:]
}

func (h *Habit) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return InvalidName(name)
	}
	h.Name = name
	return nil
}

func (h *Habit) SetDescription(description *string) {
	h.Description = description
}

func (h *Habit) SetTargetFrequency(freq *uint32) {
	h.TargetFrequency = freq
}

func (h *Habit) SetActive(active bool) {
	h.IsActive = active
}

func (h Habit) Validate() error {
	if h.ID == uuid.Nil {
		return errors.New("model: habit id is required")
	}
	if strings.TrimSpace(h.Name) == "" {
		return errors.New("model: habit name is required")
	}
	if h.CreatedAt.IsZero() {
		return errors.New("model: habit created_at is required")
	}
	for i := 1; i < len(h.Completions); i++ {
		if h.Completions[i].Before(h.Completions[i-1]) {
			return errors.New("model: habit completions must be sorted")
		}
		if sameDay(h.Completions[i], h.Completions[i-1]) {
			return errors.New("model: habit completions must be unique per day")
		}
	}
	return nil
}

// UnmarshalJSON accepts records written before is_active existed; those
// default to active.
func (h *Habit) UnmarshalJSON(data []byte) error {
	type rawHabit Habit
	raw := rawHabit{IsActive: true}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*h = Habit(raw)
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
