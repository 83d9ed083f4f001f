package views

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/habitd/internal/model"
)

const dateLayout = "2006-01-02"

// RenderHabitBlock prints one habit the way the list command shows it.
func RenderHabitBlock(h model.Habit) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("ID: %s | %s", h.ID, h.Name)))
	b.WriteString("\n")
	if h.Description != nil {
		b.WriteString(fmt.Sprintf("  Description: %s\n", *h.Description))
	}
	b.WriteString(fmt.Sprintf("  Created: %s\n", h.CreatedAt.UTC().Format(dateLayout)))
	b.WriteString(fmt.Sprintf("  Completions: %d/%d days\n", len(h.Completions), target(h)))
	if h.TargetFrequency != nil {
		b.WriteString(fmt.Sprintf("  Target: %d days\n", *h.TargetFrequency))
	}
	b.WriteString(fmt.Sprintf("  Active: %t", h.IsActive))
	return b.String()
}

// RenderHabitList joins habit blocks; with no habits it prints emptyNotice.
func RenderHabitList(habits []model.Habit, emptyNotice string) string {
	if len(habits) == 0 {
		return mutedStyle.Render("  " + emptyNotice)
	}
	blocks := make([]string, 0, len(habits))
	for _, h := range habits {
		blocks = append(blocks, RenderHabitBlock(h))
	}
	return strings.Join(blocks, "\n")
}

// HabitMarkdown builds the detail document for show. recent caps how many
// completion dates are listed; zero lists all.
func HabitMarkdown(h model.Habit, recent int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# %s\n\n", h.Name))
	if h.Description != nil && strings.TrimSpace(*h.Description) != "" {
		b.WriteString(*h.Description + "\n\n")
	}
	status := "active"
	if !h.IsActive {
		status = "inactive"
	}
	b.WriteString(fmt.Sprintf("- **ID:** `%s`\n", h.ID))
	b.WriteString(fmt.Sprintf("- **Created:** %s\n", h.CreatedAt.UTC().Format(dateLayout)))
	b.WriteString(fmt.Sprintf("- **Status:** %s\n", status))
	b.WriteString(fmt.Sprintf("- **Completions:** %d/%d days\n", len(h.Completions), target(h)))

	b.WriteString("\n## Recent completions\n\n")
	dates := h.RecentCompletions(recent)
	if len(dates) == 0 {
		b.WriteString("_none yet_\n")
		return b.String()
	}
	for i := len(dates) - 1; i >= 0; i-- {
		b.WriteString(fmt.Sprintf("- %s\n", dates[i].UTC().Format(dateLayout)))
	}
	return b.String()
}

// HabitListItem is the one-line summary used by the interactive list.
func HabitListItem(h model.Habit) (title string, description string) {
	title = h.Name
	if !h.IsActive {
		title += " (inactive)"
	}
	description = fmt.Sprintf("%d/%d days", len(h.Completions), target(h))
	if h.Description != nil && *h.Description != "" {
		description += " · " + *h.Description
	}
	return title, description
}

func RenderCommandPrompt(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelp(bindings []string) string {
	return "keys: " + strings.Join(bindings, " ")
}

func target(h model.Habit) uint32 {
	if h.TargetFrequency == nil {
		return 0
	}
	return *h.TargetFrequency
}
