package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/bloco/internal/app"
	"github.com/Makepad-fr/bloco/internal/config"
	"github.com/Makepad-fr/bloco/internal/feedback"
	"github.com/Makepad-fr/bloco/internal/model"
	"github.com/Makepad-fr/bloco/internal/notes"
	"github.com/Makepad-fr/bloco/internal/store"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	cfg := &config.Config{Backend: config.BackendMemory}
	a, err := app.New(context.Background(), cfg, store.NewMemory(), nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter  = tea.KeyMsg{Type: tea.KeyEnter}
	esc    = tea.KeyMsg{Type: tea.KeyEsc}
	tabKey = tea.KeyMsg{Type: tea.KeyTab}
	ctrlS  = tea.KeyMsg{Type: tea.KeyCtrlS}
	space  = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

// send feeds msgs to m in order and returns the model and the last command.
func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestTabSwitching(t *testing.T) {
	m := New(context.Background(), newTestApp(t))
	if m.active != tabTasks {
		t.Fatalf("start tab = %v", m.active)
	}
	m, _ = send(m, runes("2"))
	if m.active != tabNotes {
		t.Errorf("after 2: %v", m.active)
	}
	m, _ = send(m, tabKey)
	if m.active != tabFeedback {
		t.Errorf("after tab: %v", m.active)
	}
	// the feedback form captures typing, esc goes back
	m, _ = send(m, runes("1"))
	if m.active != tabFeedback {
		t.Errorf("digit switched away from the feedback form")
	}
	m, cmd := send(m, esc)
	m, _ = send(m, cmd())
	if m.active != tabNotes {
		t.Errorf("esc went to %v, want notes", m.active)
	}
	if !strings.Contains(m.View(), "Anotações") {
		t.Error("tab bar missing")
	}
	if _, cmd := send(m, runes("q")); cmd == nil {
		t.Error("q did not quit")
	}
}

func TestTasksTab(t *testing.T) {
	a := newTestApp(t)
	m := New(context.Background(), a)

	m, _ = send(m, runes("a"), runes("ab"), enter)
	if a.Tasks.Len() != 0 || m.tasks.addErr == "" {
		t.Fatalf("short task accepted: len=%d err=%q", a.Tasks.Len(), m.tasks.addErr)
	}
	m, _ = send(m, runes("c"), enter)
	if a.Tasks.Len() != 1 || m.tasks.adding {
		t.Fatalf("task not added: len=%d adding=%v", a.Tasks.Len(), m.tasks.adding)
	}
	if !strings.Contains(m.View(), "abc") {
		t.Error("task not rendered")
	}

	m, _ = send(m, space)
	if !a.Tasks.Tasks()[0].Completed {
		t.Error("space did not toggle")
	}

	m, _ = send(m, runes("d"))
	if m.tasks.dialog == nil || !m.capturing() {
		t.Fatal("no confirmation dialog")
	}
	if !strings.Contains(m.View(), "Remover Tarefa") {
		t.Error("dialog not rendered")
	}
	m, _ = send(m, runes("n"))
	if a.Tasks.Len() != 1 {
		t.Fatal("removed after cancel")
	}
	m, _ = send(m, runes("d"), runes("s"))
	if a.Tasks.Len() != 0 || m.tasks.dialog != nil {
		t.Errorf("not removed after confirm: len=%d", a.Tasks.Len())
	}
}

func TestNotesTab(t *testing.T) {
	a := newTestApp(t)
	m := New(context.Background(), a)
	m, _ = send(m, runes("2"))

	m, _ = send(m, runes("n"), ctrlS)
	if a.Notes.Len() != 0 || m.notes.form.err == "" {
		t.Fatal("blank note accepted")
	}
	m, _ = send(m, runes("Groceries"), tabKey, runes("milk"), tabKey, tea.KeyMsg{Type: tea.KeyRight}, ctrlS)
	if a.Notes.Len() != 1 || m.notes.composing {
		t.Fatalf("note not created: len=%d", a.Notes.Len())
	}
	n := a.Notes.Notes()[0]
	if n.Title != "Groceries" || n.Content != "milk" || n.Color != model.Palette[1] {
		t.Errorf("note = %+v", n)
	}

	m, _ = send(m, enter)
	if a.Notes.View() != notes.ViewDetail || !strings.Contains(m.View(), "Criado em") {
		t.Fatalf("detail not shown: view=%v", a.Notes.View())
	}

	m, _ = send(m, runes("e"), tabKey, runes(", eggs"), ctrlS)
	if got := a.Notes.Notes()[0]; got.Content != "milk, eggs" {
		t.Errorf("content = %q", got.Content)
	}

	m, _ = send(m, runes("e"), ctrlS)
	m, _ = send(m, esc)
	if !a.Notes.Notes()[0].CreatedAt.Equal(n.CreatedAt) {
		t.Error("createdAt changed")
	}

	m, _ = send(m, runes("d"), runes("s"))
	if a.Notes.Len() != 0 || a.Notes.View() != notes.ViewGrid {
		t.Errorf("after delete: len=%d view=%v", a.Notes.Len(), a.Notes.View())
	}
	if m.capturing() {
		t.Error("still capturing after delete")
	}
}

type fakeSubmitter struct {
	errs  []error
	forms []feedback.Form
}

func (f *fakeSubmitter) Submit(_ context.Context, form feedback.Form) error {
	f.forms = append(f.forms, form)
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func TestFeedbackTab(t *testing.T) {
	sub := &fakeSubmitter{errs: []error{&feedback.SubmitError{Status: 500, Message: "boom", Err: errors.New("boom")}}}
	m := New(context.Background(), newTestApp(t))
	m.feedback.client = sub
	backs := make(chan tea.Msg, 1)
	m.out.send = func(msg tea.Msg) { backs <- msg }
	m.feedback.screen.BackDelay = time.Millisecond

	m, _ = send(m, runes("1"), runes("3"), runes("Great app"))
	if m.active != tabFeedback {
		t.Fatalf("active = %v", m.active)
	}
	if !strings.Contains(m.View(), "9/500") {
		t.Error("character counter not rendered")
	}

	m, cmd := send(m, ctrlS)
	if cmd != nil || len(sub.forms) != 0 || !strings.Contains(m.feedback.err, "avaliação") {
		t.Fatalf("submitted without rating: err=%q", m.feedback.err)
	}

	m, _ = send(m, tabKey, tabKey, runes("4"))
	if m.feedback.screen.Form.Rating != 4 {
		t.Fatalf("rating = %d", m.feedback.screen.Form.Rating)
	}
	m, cmd = send(m, ctrlS)
	if cmd == nil || !m.feedback.screen.Busy() {
		t.Fatal("submit did not start")
	}
	if !strings.Contains(m.View(), "Enviando...") {
		t.Error("busy state not rendered")
	}
	m, _ = send(m, ctrlS)
	m, _ = send(m, cmd())
	if len(sub.forms) != 1 || m.feedback.alert == nil || m.feedback.alert.title != "Erro ao Enviar" {
		t.Fatalf("failure not shown: forms=%d", len(sub.forms))
	}

	m, cmd = send(m, enter)
	m, _ = send(m, cmd())
	if len(sub.forms) != 2 || sub.forms[0] != sub.forms[1] {
		t.Fatalf("retry forms = %+v", sub.forms)
	}
	if m.feedback.alert == nil || m.feedback.alert.title != "Feedback Enviado!" {
		t.Fatal("success not shown")
	}
	if m.feedback.text.Value() != "" || m.feedback.screen.Form.Rating != 0 {
		t.Error("form not cleared after success")
	}

	m, _ = send(m, enter)
	select {
	case msg := <-backs:
		m, _ = send(m, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("back never requested")
	}
	if m.active != tabTasks {
		t.Errorf("back went to %v, want tasks", m.active)
	}
}

func TestFeedbackTextLimit(t *testing.T) {
	m := New(context.Background(), newTestApp(t))
	m, _ = send(m, runes("3"), runes(strings.Repeat("a", feedback.TextMax+100)))
	if n := len(m.feedback.text.Value()); n != feedback.TextMax {
		t.Errorf("text length = %d, want %d", n, feedback.TextMax)
	}
	if !strings.Contains(m.View(), "500/500") {
		t.Error("counter not at limit")
	}
}
