package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/bloco/internal/model"
)

const (
	focusTitle = iota
	focusContent
	focusColor
	focusCount
)

// noteForm is the title/content/color editor used both to compose a new
// note and to edit an open one.
type noteForm struct {
	title   textinput.Model
	content textarea.Model
	color   int // palette index
	focus   int
	err     string
}

func newNoteForm() noteForm {
	ti := textinput.New()
	ti.Placeholder = "Título"
	ti.CharLimit = model.NoteTitleMax
	ti.Prompt = ""

	ta := textarea.New()
	ta.Placeholder = "Escreva sua nota..."
	ta.CharLimit = model.NoteContentMax
	ta.ShowLineNumbers = false
	ta.SetHeight(6)

	return noteForm{title: ti, content: ta}
}

// load fills the inputs and focuses the title.
func (f *noteForm) load(v model.NoteFields) tea.Cmd {
	f.title.SetValue(v.Title)
	f.content.SetValue(v.Content)
	f.color = v.Color.Index()
	if f.color < 0 {
		f.color = 0
	}
	f.err = ""
	return f.setFocus(focusTitle)
}

func (f *noteForm) fields() model.NoteFields {
	return model.NoteFields{
		Title:   f.title.Value(),
		Content: f.content.Value(),
		Color:   model.Palette[f.color],
	}
}

func (f *noteForm) blur() {
	f.title.Blur()
	f.content.Blur()
}

func (f *noteForm) setFocus(i int) tea.Cmd {
	f.focus = (i + focusCount) % focusCount
	f.blur()
	switch f.focus {
	case focusTitle:
		return f.title.Focus()
	case focusContent:
		return f.content.Focus()
	}
	return nil
}

// update handles typing and focus movement. Saving and leaving the form
// are up to the caller.
func (f *noteForm) update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab":
			return f.setFocus(f.focus + 1)
		case "shift+tab":
			return f.setFocus(f.focus - 1)
		}
		if f.focus == focusColor {
			switch k.String() {
			case "left", "h":
				f.color = (f.color + len(model.Palette) - 1) % len(model.Palette)
			case "right", "l":
				f.color = (f.color + 1) % len(model.Palette)
			}
			return nil
		}
	}
	var cmd tea.Cmd
	switch f.focus {
	case focusTitle:
		f.title, cmd = f.title.Update(msg)
	case focusContent:
		f.content, cmd = f.content.Update(msg)
	}
	return cmd
}

func (f *noteForm) view(width int) string {
	f.title.Width = width - 4
	f.content.SetWidth(width - 4)

	var swatches []string
	for i, c := range model.Palette {
		s := lipgloss.NewStyle().Background(lipgloss.Color(string(c))).Render("    ")
		if i == f.color {
			s = lipgloss.NewStyle().Background(lipgloss.Color(string(c))).Bold(true).Render(" ●  ")
		}
		swatches = append(swatches, s)
	}
	colorLabel := "Cor"
	if f.focus == focusColor {
		colorLabel = accentStyle.Render("Cor ←/→")
	}

	lines := []string{
		f.title.View(),
		"",
		f.content.View(),
		"",
		colorLabel + "  " + strings.Join(swatches, " "),
	}
	if f.err != "" {
		lines = append(lines, "", errorStyle.Render(f.err))
	}
	return strings.Join(lines, "\n")
}
