package model

import (
	"encoding/json"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewHabitDefaults(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	freq := uint32(7)
	h, err := NewHabit("Meditate", nil, &freq, now)
	if err != nil {
		t.Fatalf("new habit: %v", err)
	}
	if h.ID == uuid.Nil {
		t.Fatal("expected a generated id")
	}
	if h.Name != "Meditate" || !h.IsActive || len(h.Completions) != 0 {
		t.Fatalf("unexpected habit: %+v", h)
	}
	if h.CreatedAt.Location() != time.UTC || !h.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at in UTC equal to now, got %s", h.CreatedAt)
	}
	if h.TargetFrequency == nil || *h.TargetFrequency != 7 {
		t.Fatalf("unexpected target frequency: %v", h.TargetFrequency)
	}
	if err := h.Validate(); err != nil {
		t.Fatalf("expected valid habit, got: %v", err)
	}
}

func TestNewHabitFreshIDs(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	seen := make(map[uuid.UUID]bool)
	for i := 0; i < 50; i++ {
		h, err := NewHabit("Read", nil, nil, now)
		if err != nil {
			t.Fatalf("new habit: %v", err)
		}
		if seen[h.ID] {
			t.Fatalf("duplicate id %s", h.ID)
		}
		seen[h.ID] = true
	}
}

func TestNewHabitRejectsBlankName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := NewHabit(name, nil, nil, time.Now())
		if !errors.Is(err, ErrInvalidName) {
			t.Fatalf("name %q: expected ErrInvalidName, got %v", name, err)
		}
	}
}

func TestMarkCompleteSameDayIsRejected(t *testing.T) {
	h, _ := NewHabit("Run", nil, nil, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	morning := time.Date(2026, 2, 9, 6, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 2, 9, 22, 30, 0, 0, time.UTC)

	if !h.MarkComplete(morning) {
		t.Fatal("expected first completion to be recorded")
	}
	if h.MarkComplete(evening) {
		t.Fatal("expected second completion on the same day to be rejected")
	}
	if len(h.Completions) != 1 || !h.Completions[0].Equal(morning) {
		t.Fatalf("unexpected completions: %v", h.Completions)
	}
}

func TestMarkCompleteKeepsSortedAndUnique(t *testing.T) {
	h, _ := NewHabit("Stretch", nil, nil, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	inputs := []time.Time{
		time.Date(2026, 2, 12, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 12, 23, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 11, 1, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 10, 18, 0, 0, 0, time.UTC),
	}
	for _, ts := range inputs {
		h.MarkComplete(ts)
	}
	if len(h.Completions) != 3 {
		t.Fatalf("expected 3 unique days, got %d: %v", len(h.Completions), h.Completions)
	}
	if !sort.SliceIsSorted(h.Completions, func(i, j int) bool { return h.Completions[i].Before(h.Completions[j]) }) {
		t.Fatalf("completions not sorted: %v", h.Completions)
	}
	if err := h.Validate(); err != nil {
		t.Fatalf("expected valid habit after completions: %v", err)
	}
}

func TestMarkCompleteComparesUTCDates(t *testing.T) {
	h, _ := NewHabit("Journal", nil, nil, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	est := time.FixedZone("EST", -5*3600)
	// 2026-02-09 22:00 EST is 2026-02-10 03:00 UTC.
	if !h.MarkComplete(time.Date(2026, 2, 9, 22, 0, 0, 0, est)) {
		t.Fatal("expected completion to be recorded")
	}
	if h.MarkComplete(time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)) {
		t.Fatal("expected UTC same-day completion to be rejected")
	}
	if !h.MarkComplete(time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)) {
		t.Fatal("expected the previous UTC day to be accepted")
	}
}

func TestRenameRequiresName(t *testing.T) {
	h, _ := NewHabit("Walk", nil, nil, time.Now())
	if err := h.Rename("  "); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if h.Name != "Walk" {
		t.Fatalf("name changed on failed rename: %q", h.Name)
	}
	if err := h.Rename("Walk the dog"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if h.Name != "Walk the dog" {
		t.Fatalf("unexpected name: %q", h.Name)
	}
}

func TestRecentCompletions(t *testing.T) {
	h, _ := NewHabit("Floss", nil, nil, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	for d := 1; d <= 5; d++ {
		h.MarkComplete(time.Date(2026, 2, d, 8, 0, 0, 0, time.UTC))
	}
	recent := h.RecentCompletions(2)
	if len(recent) != 2 || recent[0].Day() != 4 || recent[1].Day() != 5 {
		t.Fatalf("unexpected recent completions: %v", recent)
	}
	if got := h.RecentCompletions(0); len(got) != 5 {
		t.Fatalf("expected all completions, got %d", len(got))
	}
}

func TestUnmarshalLegacyDefaultsActive(t *testing.T) {
	raw := `{"id":"0b6b3c5e-8f9c-4a55-9d43-5b1b0f3d2a10","name":"Legacy","description":null,"created_at":"2026-02-09T12:00:00Z","completions":[],"target_frequency":null}`
	var h Habit
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !h.IsActive {
		t.Fatal("expected legacy record to default to active")
	}

	var inactive Habit
	if err := json.Unmarshal([]byte(`{"id":"0b6b3c5e-8f9c-4a55-9d43-5b1b0f3d2a10","name":"Off","created_at":"2026-02-09T12:00:00Z","is_active":false}`), &inactive); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if inactive.IsActive {
		t.Fatal("expected explicit is_active=false to be kept")
	}
	if inactive.Description != nil || inactive.TargetFrequency != nil {
		t.Fatalf("expected omitted optionals to be nil: %+v", inactive)
	}
}

func TestValidateRejectsUnsortedCompletions(t *testing.T) {
	h := Habit{
		ID:        uuid.New(),
		Name:      "Broken",
		CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Completions: []time.Time{
			time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		},
		IsActive: true,
	}
	if err := h.Validate(); err == nil || err.Error() != "model: habit completions must be sorted" {
		t.Fatalf("unexpected error: %v", err)
	}
}
