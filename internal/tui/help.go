package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) bindings() []KeyBinding {
	return []KeyBinding{
		{Key: "j/k", Action: "move selection"},
		{Key: m.Keys.Complete, Action: "complete selected habit today"},
		{Key: m.Keys.ToggleAll, Action: "toggle inactive habits"},
		{Key: m.Keys.Reload, Action: "reload habit file"},
		{Key: m.Keys.Prompt, Action: "run a command (add, edit, remove, ...)"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) renderHelpView() string {
	plain := m.bindings()
	bindings := make([]key.Binding, 0, len(plain))
	for _, kb := range plain {
		bindings = append(bindings, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return m.helpModel.View(helpKeyMap{
		short: bindings,
		full:  [][]key.Binding{bindings},
	})
}
