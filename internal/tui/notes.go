package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/bloco/internal/confirm"
	"github.com/Makepad-fr/bloco/internal/model"
	"github.com/Makepad-fr/bloco/internal/notes"
	"github.com/Makepad-fr/bloco/internal/ui"
)

type notesTab struct {
	store  *notes.Store
	cursor int

	composing bool
	form      noteForm
	dialog    *confirm.Dialog
}

func newNotesTab(s *notes.Store) *notesTab {
	return &notesTab{store: s, form: newNoteForm()}
}

func (t *notesTab) capturing() bool {
	return t.composing || t.dialog != nil || t.store.View() != notes.ViewGrid
}

func (t *notesTab) clampCursor() {
	if n := t.store.Len(); t.cursor >= n {
		t.cursor = n - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

func (t *notesTab) Update(msg tea.Msg) tea.Cmd {
	k, isKey := msg.(tea.KeyMsg)

	if t.dialog != nil {
		if isKey {
			answerDialog(t.dialog, k)
			if t.dialog.Resolved() {
				t.dialog = nil
				t.clampCursor()
			}
		}
		return nil
	}

	switch {
	case t.composing:
		return t.updateCompose(msg)
	case t.store.View() == notes.ViewEdit:
		return t.updateEdit(msg)
	case t.store.View() == notes.ViewDetail:
		if !isKey {
			return nil
		}
		sel, _ := t.store.Selected()
		switch {
		case key.Matches(k, backKey):
			t.store.Close()
		case key.Matches(k, editKey):
			if err := t.store.StartEdit(); err == nil {
				return t.form.load(t.store.EditBuffer())
			}
		case key.Matches(k, deleteKey):
			t.dialog = t.store.RequestDelete(sel.ID)
		}
		return nil
	}

	if !isKey {
		return nil
	}
	items := t.store.Notes()
	switch {
	case key.Matches(k, newKey):
		t.composing = true
		return t.form.load(t.store.Draft())
	case key.Matches(k, openKey):
		if t.cursor < len(items) {
			t.store.Open(items[t.cursor].ID)
		}
	case key.Matches(k, deleteKey):
		if t.cursor < len(items) {
			t.dialog = t.store.RequestDelete(items[t.cursor].ID)
		}
	case k.String() == "up" || k.String() == "k" || k.String() == "left" || k.String() == "h":
		if t.cursor > 0 {
			t.cursor--
		}
	case k.String() == "down" || k.String() == "j" || k.String() == "right" || k.String() == "l":
		if t.cursor < len(items)-1 {
			t.cursor++
		}
	}
	return nil
}

func (t *notesTab) updateCompose(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, saveKey):
			t.store.SetDraft(t.form.fields())
			if _, err := t.store.CreateDraft(); err != nil {
				t.form.err = "Erro: " + err.Error()
				return nil
			}
			t.composing = false
			t.cursor = 0
			t.form.blur()
			return nil
		case key.Matches(k, backKey):
			t.store.ResetDraft()
			t.composing = false
			t.form.blur()
			return nil
		}
	}
	return t.form.update(msg)
}

func (t *notesTab) updateEdit(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, saveKey):
			t.store.SetEditBuffer(t.form.fields())
			if _, err := t.store.CommitEdit(); err != nil {
				t.form.err = "Erro: " + err.Error()
				return nil
			}
			t.form.blur()
			return nil
		case key.Matches(k, backKey):
			t.store.CancelEdit()
			t.form.blur()
			return nil
		case k.String() == "ctrl+d":
			if sel, ok := t.store.Selected(); ok {
				t.dialog = t.store.RequestDelete(sel.ID)
			}
			return nil
		}
	}
	return t.form.update(msg)
}

func (t *notesTab) View(w, h int) string {
	var b strings.Builder
	switch {
	case t.composing:
		b.WriteString(titleStyle.Render("Nova nota") + "\n\n")
		b.WriteString(t.form.view(w))
		b.WriteString("\n\n" + helpStyle.Render("tab campo • ctrl+s salvar • esc cancelar"))
	case t.store.View() == notes.ViewEdit:
		b.WriteString(titleStyle.Render(notes.ViewEdit.String()) + "\n\n")
		b.WriteString(t.form.view(w))
		b.WriteString("\n\n" + helpStyle.Render("tab campo • ctrl+s salvar • esc descartar • ctrl+d excluir"))
	case t.store.View() == notes.ViewDetail:
		b.WriteString(t.detailView(w))
	default:
		b.WriteString(t.gridView(w))
	}
	if t.dialog != nil {
		b.WriteString("\n" + dialogView(t.dialog))
	}
	return b.String()
}

func (t *notesTab) detailView(w int) string {
	n, _ := t.store.Selected()
	var lines []string
	lines = append(lines, titleStyle.Render(notes.ViewDetail.String()), "")
	if n.Title != "" {
		lines = append(lines, titleStyle.Render(n.Title), "")
	}
	if n.Content != "" {
		lines = append(lines, n.Content, "")
	}
	stamp := "Criado em " + model.FormatDate(n.CreatedAt)
	if n.Edited() {
		stamp += " • Editado em " + model.FormatDate(n.UpdatedAt)
	}
	lines = append(lines, mutedStyle.Render(stamp))
	card := cardStyle(n.Color, false, w-4).Render(strings.Join(lines, "\n"))
	return card + "\n" + helpStyle.Render("e editar • d excluir • esc voltar")
}

func (t *notesTab) gridView(w int) string {
	items := t.store.Notes()
	label := "notas"
	if len(items) == 1 {
		label = "nota"
	}
	header := fmt.Sprintf("%s   %s", titleStyle.Render("Anotações"), mutedStyle.Render(fmt.Sprintf("%d %s", len(items), label)))
	if len(items) == 0 {
		return header + "\n\n" + mutedStyle.Render("Nenhuma nota ainda. Pressione n para criar a primeira.")
	}

	cols := 2
	cardW := (w - 2) / cols
	if cardW < 20 {
		cols, cardW = 1, w-2
	}
	inner := cardW - 4
	var rows []string
	for start := 0; start < len(items); start += cols {
		var cells []string
		for i := start; i < start+cols && i < len(items); i++ {
			n := items[i]
			var body []string
			// grid cards clamp the title to 2 lines and the content to 8
			if n.Title != "" {
				for _, ln := range ui.Clamp(n.Title, inner, 2) {
					body = append(body, titleStyle.Render(ln))
				}
			}
			if n.Content != "" {
				body = append(body, ui.Clamp(n.Content, inner, 8)...)
			}
			body = append(body, mutedStyle.Render(model.FormatDate(n.UpdatedAt)))
			cells = append(cells, cardStyle(n.Color, i == t.cursor, cardW-2).Render(strings.Join(body, "\n")))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return header + "\n\n" + strings.Join(rows, "\n") + "\n" +
		helpStyle.Render("n nova • enter abrir • d excluir • ←/→ mover")
}
