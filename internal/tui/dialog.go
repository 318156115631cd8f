package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/bloco/internal/confirm"
)

// answerDialog resolves d from a key press. It returns false for keys
// that are not an answer, which the dialog swallows anyway.
func answerDialog(d *confirm.Dialog, msg tea.KeyMsg) bool {
	switch msg.String() {
	case "y", "s", "enter":
		d.Confirm()
	case "n", "esc":
		d.Cancel()
	default:
		return false
	}
	return true
}

func dialogView(d *confirm.Dialog) string {
	body := fmt.Sprintf("%s\n%s\n\n%s  %s",
		titleStyle.Render(d.Title),
		d.Message,
		errorStyle.Render("[s] "+d.ConfirmLabel),
		mutedStyle.Render("[n] "+d.CancelLabel),
	)
	return dialogStyle.Render(body)
}

// alert is a blocking message with up to two choices.
type alert struct {
	title   string
	message string
	ok      string // enter
	cancel  string // esc, empty for a single-button alert
}

func (a alert) view() string {
	buttons := successStyle.Render("[enter] " + a.ok)
	if a.cancel != "" {
		buttons += "  " + mutedStyle.Render("[esc] "+a.cancel)
	}
	return dialogStyle.Render(fmt.Sprintf("%s\n%s\n\n%s", titleStyle.Render(a.title), a.message, buttons))
}
