package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/habitd/internal/commands"
	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/views"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type PromptState struct {
	Active bool
	Input  string
}

type KeyMap struct {
	Complete  string
	ToggleAll string
	Reload    string
	Prompt    string
	Help      string
	Quit      string
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Complete:  "enter",
		ToggleAll: "a",
		Reload:    "r",
		Prompt:    "/",
		Help:      "?",
		Quit:      "q",
	}
}

// Model is the interactive habit browser. Every action goes through the
// command service, so each one is its own load and save of the habit file.
type Model struct {
	Service     *commands.Service
	ShowAll     bool
	Habits      []model.Habit
	Prompt      PromptState
	HelpVisible bool
	Status      StatusBar
	Keys        KeyMap
	Quitting    bool
	LastError   error

	habitList    list.Model
	commandInput textinput.Model
	helpModel    help.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type AppErrorMsg struct {
	Err error
}

type ReloadMsg struct{}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

func NewModel(svc *commands.Service) Model {
	m := Model{
		Service: svc,
		Keys:    DefaultKeyMap(),
	}
	m.initBubbleComponents()
	m.reload()
	return m
}

func (m *Model) initBubbleComponents() {
	m.habitList = list.New([]list.Item{}, list.NewDefaultDelegate(), 64, 16)
	m.habitList.Title = "Habits"
	m.habitList.SetShowHelp(false)
	m.habitList.SetFilteringEnabled(false)
	m.habitList.SetShowStatusBar(false)

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Prompt.Active {
			return m.handlePromptKey(typed), nil
		}
		switch typed.String() {
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		case m.Keys.Prompt:
			m.Prompt = PromptState{Active: true}
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command prompt active"}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case m.Keys.ToggleAll:
			m.ShowAll = !m.ShowAll
			m.reload()
			if m.ShowAll {
				m.Status = StatusBar{Text: "showing all habits"}
			} else {
				m.Status = StatusBar{Text: "showing active habits"}
			}
			return m, nil
		case m.Keys.Reload:
			m.reload()
			return m, nil
		case m.Keys.Complete, " ":
			m.completeSelected()
			return m, nil
		}
		var cmd tea.Cmd
		m.habitList, cmd = m.habitList.Update(typed)
		return m, cmd
	case tea.WindowSizeMsg:
		width, height := typed.Width-4, typed.Height-8
		if width > 0 && height > 0 {
			m.habitList.SetSize(width, height)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case ReloadMsg:
		m.reload()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	filter := "active"
	if m.ShowAll {
		filter = "all"
	}
	footer := views.RenderHelp([]string{"[enter]complete", "[a]all/active", "[r]reload", "[/]command", "[?]help", "[q]quit"})
	if m.HelpVisible {
		footer = m.renderHelpView()
	}
	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("habit | %s | %s", filter, m.Service.Path()),
		Body:       m.habitList.View(),
		Prompt:     views.RenderCommandPrompt(m.Prompt.Active, m.Prompt.Input),
		StatusLine: m.Status.Text,
		IsError:    m.Status.IsError,
		Footer:     footer,
	})
}

// Selected returns the highlighted habit, if any.
func (m Model) Selected() (model.Habit, bool) {
	idx := m.habitList.Index()
	if idx < 0 || idx >= len(m.Habits) {
		return model.Habit{}, false
	}
	return m.Habits[idx], true
}

func (m *Model) completeSelected() {
	h, ok := m.Selected()
	if !ok {
		m.Status = StatusBar{Text: "no habit selected", IsError: true}
		return
	}
	res, err := m.Service.Complete(context.Background(), commands.CompleteArgs{Identifier: h.ID.String()})
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: res.Message}
	m.reload()
}

func (m *Model) reload() {
	res, err := m.Service.List(context.Background(), commands.ListArgs{ActiveOnly: !m.ShowAll})
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Habits = res.Habits
	m.syncBubbleData()
	if len(m.Habits) == 0 {
		m.Status = StatusBar{Text: res.Message}
	}
}

func (m *Model) syncBubbleData() {
	cursor := m.habitList.Index()
	items := make([]list.Item, 0, len(m.Habits))
	for _, h := range m.Habits {
		title, desc := views.HabitListItem(h)
		items = append(items, listItem{title: title, description: desc})
	}
	m.habitList.SetItems(items)
	if cursor >= len(items) {
		cursor = len(items) - 1
	}
	if cursor >= 0 {
		m.habitList.Select(cursor)
	}
}
