package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/habitd/internal/commands"
)

func (m Model) handlePromptKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Prompt = PromptState{}
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command prompt closed"}
	case "enter":
		m.Prompt.Input = m.commandInput.Value()
		m = m.executePromptCommand()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Prompt.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Prompt.Input = m.commandInput.Value()
	}
	return m
}

// executePromptCommand runs a typed command. list switches the view filter
// instead of printing; show reports a short summary in the status line.
func (m Model) executePromptCommand() Model {
	raw := strings.TrimSpace(m.Prompt.Input)
	m.Prompt = PromptState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	handlers := m.Service.Handlers()
	listHabits := handlers.List
	handlers.List = func(ctx context.Context, a commands.ListArgs) (commands.Result, error) {
		m.ShowAll = !a.ActiveOnly
		return listHabits(ctx, a)
	}

	res, err := commands.Execute(context.Background(), cmd, handlers)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.reload()
	m.Status = StatusBar{Text: res.Message}
	return m
}
