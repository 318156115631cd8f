// Package tui is the interactive app: three tabs (tasks, notes, feedback)
// over the stores of one session.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/bloco/internal/app"
)

type tab int

const (
	tabTasks tab = iota
	tabNotes
	tabFeedback
	tabCount
)

var tabNames = [...]string{"Tarefas", "Anotações", "Feedback"}

// backMsg asks the shell to leave the feedback screen.
type backMsg struct{}

// sender lets timers outside the update loop post messages once the
// program exists.
type sender struct {
	send func(tea.Msg)
}

func (s *sender) post(msg tea.Msg) {
	if s.send != nil {
		s.send(msg)
	}
}

// Model is the root Bubble Tea model.
type Model struct {
	active   tab
	previous tab
	width    int
	height   int

	tasks    *tasksTab
	notes    *notesTab
	feedback *feedbackTab
	help     help.Model
	out      *sender
}

// New builds the root model for a.
func New(ctx context.Context, a *app.App) Model {
	out := &sender{}
	fb := newFeedbackTab(ctx, a.Feedback, func() { out.post(backMsg{}) })
	fb.screen.BackDelay = a.Config.BackDelay()
	return Model{
		tasks:    newTasksTab(a.Tasks),
		notes:    newNotesTab(a.Notes),
		feedback: fb,
		help:     help.New(),
		out:      out,
		width:    80,
		height:   24,
	}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctx context.Context, a *app.App) error {
	m := New(ctx, a)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.out.send = p.Send
	_, err := p.Run()
	a.Flush()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) capturing() bool {
	switch m.active {
	case tabTasks:
		return m.tasks.capturing()
	case tabNotes:
		return m.notes.capturing()
	}
	return m.feedback.capturing()
}

func (m Model) switchTo(t tab) Model {
	if t == m.active {
		return m
	}
	m.previous, m.active = m.active, t
	return m
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case backMsg:
		if m.active == tabFeedback {
			m = m.switchTo(m.previous)
		}
		return m, nil
	case submitDoneMsg:
		// results land on the feedback tab even if the user moved away
		return m, m.feedback.Update(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.capturing() {
			switch {
			case key.Matches(msg, global.Quit):
				return m, tea.Quit
			case key.Matches(msg, global.Next):
				return m.switchTo((m.active + 1) % tabCount), nil
			case key.Matches(msg, global.Prev):
				return m.switchTo((m.active + tabCount - 1) % tabCount), nil
			case key.Matches(msg, global.Tasks):
				return m.switchTo(tabTasks), nil
			case key.Matches(msg, global.Notes):
				return m.switchTo(tabNotes), nil
			case key.Matches(msg, global.Feedback):
				return m.switchTo(tabFeedback), m.feedback.setFocus(m.feedback.focus)
			}
		}
	}

	switch m.active {
	case tabTasks:
		return m, m.tasks.Update(msg)
	case tabNotes:
		return m, m.notes.Update(msg)
	}
	return m, m.feedback.Update(msg)
}

func (m Model) View() string {
	w, h := m.width-4, m.height-6
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}

	var body string
	switch m.active {
	case tabTasks:
		body = m.tasks.View(w, h)
	case tabNotes:
		body = m.notes.View(w, h)
	default:
		body = m.feedback.View(w, h)
	}

	var footer string
	if !m.capturing() {
		footer = m.help.View(global)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.tabBar(), panelString(body), footer)
}

func (m Model) tabBar() string {
	var tabs []string
	for i, name := range tabNames {
		if tab(i) == m.active {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}
	return tabBarStyle.Render(strings.Join(tabs, ""))
}
