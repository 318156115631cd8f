package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/bloco/internal/feedback"
)

const (
	fbFocusText = iota
	fbFocusEmail
	fbFocusRating
	fbFocusSubmit
	fbFocusCount
)

type submitDoneMsg struct{ err error }

type feedbackTab struct {
	ctx    context.Context
	client feedback.Submitter
	screen *feedback.Screen

	text  textarea.Model
	email textinput.Model
	focus int
	err   string
	alert *alert
}

func newFeedbackTab(ctx context.Context, client feedback.Submitter, back func()) *feedbackTab {
	ta := textarea.New()
	ta.Placeholder = "Conte-nos o que você achou do app..."
	ta.ShowLineNumbers = false
	ta.CharLimit = feedback.TextMax
	ta.SetHeight(5)

	ti := textinput.New()
	ti.Placeholder = "seu@email.com (opcional)"
	ti.Prompt = ""

	t := &feedbackTab{
		ctx:    ctx,
		client: client,
		screen: feedback.NewScreen(back),
		text:   ta,
		email:  ti,
	}
	t.text.Focus()
	return t
}

// capturing is always true: the tab is a form and typing must not switch tabs.
func (t *feedbackTab) capturing() bool { return true }

func (t *feedbackTab) setFocus(i int) tea.Cmd {
	t.focus = (i + fbFocusCount) % fbFocusCount
	t.text.Blur()
	t.email.Blur()
	switch t.focus {
	case fbFocusText:
		return t.text.Focus()
	case fbFocusEmail:
		return t.email.Focus()
	}
	return nil
}

// submit copies the inputs into the form and starts one attempt.
func (t *feedbackTab) submit() tea.Cmd {
	t.screen.Form.Text = t.text.Value()
	t.screen.Form.Email = t.email.Value()
	f, err := t.screen.Begin()
	if err != nil {
		if !errors.Is(err, feedback.ErrInFlight) {
			t.err = "Erro: " + err.Error()
		}
		return nil
	}
	t.err = ""
	ctx, client := t.ctx, t.client
	return func() tea.Msg {
		return submitDoneMsg{err: client.Submit(ctx, f)}
	}
}

func (t *feedbackTab) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case submitDoneMsg:
		t.screen.Finish(msg.err)
		if msg.err == nil {
			t.text.SetValue("")
			t.email.SetValue("")
			t.alert = &alert{
				title:   "Feedback Enviado!",
				message: "Obrigado pelo seu feedback! Sua opinião é muito importante para nós.",
				ok:      "OK",
			}
			return nil
		}
		message := feedback.UserMessage
		var se *feedback.SubmitError
		if errors.As(msg.err, &se) && se.Status != 0 {
			message += "\n" + mutedStyle.Render(se.Message)
		}
		t.alert = &alert{title: "Erro ao Enviar", message: message, ok: "Tentar Novamente", cancel: "Cancelar"}
		return nil
	case tea.KeyMsg:
		return t.handleKey(msg)
	}
	return t.forward(msg)
}

func (t *feedbackTab) handleKey(k tea.KeyMsg) tea.Cmd {
	if t.screen.Busy() {
		// submit control disabled while in flight
		return nil
	}
	if t.alert != nil {
		switch k.String() {
		case "enter":
			t.alert = nil
			if t.screen.Status() == feedback.Sent {
				t.screen.Acknowledge()
				return nil
			}
			return t.submit() // retry with the unchanged form
		case "esc":
			if t.alert.cancel != "" {
				t.alert = nil
				t.screen.Dismiss()
			}
		}
		return nil
	}

	switch {
	case key.Matches(k, sendKey):
		return t.submit()
	case key.Matches(k, backKey):
		return func() tea.Msg { return backMsg{} }
	case k.String() == "tab":
		return t.setFocus(t.focus + 1)
	case k.String() == "shift+tab":
		return t.setFocus(t.focus - 1)
	}
	switch t.focus {
	case fbFocusRating:
		switch s := k.String(); s {
		case "1", "2", "3", "4", "5":
			t.screen.SetRating(int(s[0] - '0'))
		case "left", "h":
			if r := t.screen.Form.Rating; r > 1 {
				t.screen.SetRating(r - 1)
			}
		case "right", "l":
			if r := t.screen.Form.Rating; r < feedback.MaxRating {
				t.screen.SetRating(r + 1)
			}
		case "enter":
			return t.setFocus(fbFocusSubmit)
		}
		return nil
	case fbFocusSubmit:
		if k.String() == "enter" {
			return t.submit()
		}
		return nil
	}
	return t.forward(k)
}

func (t *feedbackTab) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch t.focus {
	case fbFocusText:
		t.text, cmd = t.text.Update(msg)
	case fbFocusEmail:
		t.email, cmd = t.email.Update(msg)
	}
	return cmd
}

func (t *feedbackTab) View(w, h int) string {
	t.text.SetWidth(w - 4)
	t.email.Width = w - 4

	label := func(i int, s string) string {
		if t.focus == i {
			return accentStyle.Render(s)
		}
		return s
	}

	var stars []string
	for i := 1; i <= feedback.MaxRating; i++ {
		if i <= t.screen.Form.Rating {
			stars = append(stars, starOn.Render("★"))
		} else {
			stars = append(stars, starOff.Render("☆"))
		}
	}
	ratingText := mutedStyle.Render(feedback.RatingLabel(t.screen.Form.Rating))

	button := "[ Enviar Feedback ]"
	switch {
	case t.screen.Busy():
		button = mutedStyle.Render("[ Enviando... ]")
	case t.focus == fbFocusSubmit:
		button = selectedStyle.Render(button)
	}

	lines := []string{
		titleStyle.Render("Feedback"),
		mutedStyle.Render("Sua opinião nos ajuda a melhorar"),
		"",
		label(fbFocusText, "Seu feedback"),
		t.text.View(),
		mutedStyle.Render(fmt.Sprintf("%d/%d", utf8.RuneCountInString(t.text.Value()), feedback.TextMax)),
		"",
		label(fbFocusEmail, "Email"),
		t.email.View(),
		"",
		label(fbFocusRating, "Avaliação") + "  " + strings.Join(stars, " ") + "  " + ratingText,
		"",
		button,
	}
	if t.err != "" {
		lines = append(lines, "", errorStyle.Render(t.err))
	}
	if t.alert != nil {
		lines = append(lines, "", t.alert.view())
	}
	lines = append(lines, "", helpStyle.Render("tab campo • 1-5 estrelas • ctrl+s enviar • esc voltar"))
	return strings.Join(lines, "\n")
}
