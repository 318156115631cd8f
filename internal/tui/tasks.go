package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/bloco/internal/confirm"
	"github.com/Makepad-fr/bloco/internal/model"
	"github.com/Makepad-fr/bloco/internal/tasks"
)

// taskItem adapts model.Task to bubbles/list.Item
type taskItem struct {
	model.Task
}

func (i taskItem) Title() string       { return i.Text }
func (i taskItem) Description() string { return i.CreatedAt.Local().Format("02/01 15:04") }
func (i taskItem) FilterValue() string { return i.Text }

// Custom delegate to control how items render (single line + date)
type taskDelegate struct{}

func (d taskDelegate) Height() int                               { return 1 }
func (d taskDelegate) Spacing() int                              { return 0 }
func (d taskDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(taskItem)
	box := mutedStyle.Render(boxUnchecked)
	text := it.Text
	if it.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	line := fmt.Sprintf("%s %s  %s", box, text, mutedStyle.Render(it.Description()))
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type tasksTab struct {
	store *tasks.Store
	list  list.Model

	// Inline add
	adding bool
	ti     textinput.Model
	addErr string

	dialog *confirm.Dialog
}

func newTasksTab(s *tasks.Store) *tasksTab {
	l := list.New(nil, taskDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("tarefa", "tarefas")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addKey, toggleKey, deleteKey} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addKey, toggleKey, deleteKey} }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Digite sua nova tarefa..."
	ti.CharLimit = model.TaskTextMax

	t := &tasksTab{store: s, list: l, ti: ti}
	t.refresh()
	return t
}

// refresh rebuilds list items and the header counts from the store.
func (t *tasksTab) refresh() tea.Cmd {
	ts := t.store.Tasks()
	items := make([]list.Item, 0, len(ts))
	for _, it := range ts {
		items = append(items, taskItem{it})
	}
	c := t.store.Counts()
	t.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Tarefas"),
		pendingStyle.Render("Ativas"), c.Active,
		successStyle.Render("Concluídas"), c.Completed,
		accentStyle.Render("Total"), c.Total,
	)
	return t.list.SetItems(items)
}

// capturing reports whether keys belong to this tab (typing, filtering, dialogs).
func (t *tasksTab) capturing() bool {
	return t.adding || t.dialog != nil || t.list.FilterState() == list.Filtering
}

func (t *tasksTab) selected() (model.Task, bool) {
	it, ok := t.list.SelectedItem().(taskItem)
	return it.Task, ok
}

func (t *tasksTab) Update(msg tea.Msg) tea.Cmd {
	if t.dialog != nil {
		if k, ok := msg.(tea.KeyMsg); ok {
			answerDialog(t.dialog, k)
			if t.dialog.Resolved() {
				t.dialog = nil
				return t.refresh()
			}
		}
		return nil
	}

	if t.adding {
		var cmd tea.Cmd
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "enter":
				if _, err := t.store.Add(t.ti.Value()); err != nil {
					t.addErr = "Atenção: " + err.Error()
					return nil
				}
				t.addErr = ""
				t.ti.SetValue("")
				t.ti.Blur()
				t.adding = false
				return t.refresh()
			case "esc":
				t.adding = false
				t.addErr = ""
				t.ti.SetValue("")
				t.ti.Blur()
				return nil
			}
		}
		t.ti, cmd = t.ti.Update(msg)
		return cmd
	}

	if k, ok := msg.(tea.KeyMsg); ok && t.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(k, addKey):
			t.adding = true
			t.addErr = ""
			t.ti.SetValue("")
			return t.ti.Focus()
		case key.Matches(k, toggleKey):
			if it, ok := t.selected(); ok {
				t.store.Toggle(it.ID)
				return t.refresh()
			}
			return nil
		case key.Matches(k, deleteKey):
			if it, ok := t.selected(); ok {
				t.dialog = t.store.RequestRemove(it.ID)
			}
			return nil
		}
	}
	var cmd tea.Cmd
	t.list, cmd = t.list.Update(msg)
	return cmd
}

func (t *tasksTab) View(w, h int) string {
	listHeight := h
	if t.adding {
		listHeight = h - 4
	}
	t.list.SetSize(w, listHeight)

	content := t.list.View()
	if len(t.list.Items()) == 0 && !t.adding {
		content = t.list.Title + "\n\n" +
			mutedStyle.Render("Nenhuma tarefa encontrada\nAdicione uma nova tarefa para começar a organizar seu dia!") +
			"\n\n" + helpStyle.Render("a adicionar")
	}
	if t.adding {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		title := fmt.Sprintf("Nova tarefa %s", mutedStyle.Render(fmt.Sprintf("%d/%d", len([]rune(t.ti.Value())), model.TaskTextMax)))
		if t.addErr != "" {
			title += "  " + errorStyle.Render(t.addErr)
		}
		content += "\n" + bar.Render(title+"\n"+t.ti.View())
	}
	if t.dialog != nil {
		content += "\n" + dialogView(t.dialog)
	}
	return strings.TrimRight(content, "\n")
}
