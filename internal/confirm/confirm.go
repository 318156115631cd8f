// Package confirm models yes/no prompts as a two-step state machine.
//
// A Dialog starts Pending. Confirm runs the action once and moves to
// Confirmed; Cancel moves to Cancelled. Both are no-ops once resolved, so
// a late or repeated answer cannot run the action twice.
package confirm

type State int

const (
	Pending State = iota
	Confirmed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Dialog is one pending question.
type Dialog struct {
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string

	state  State
	action func()
}

// New returns a pending dialog that runs action on confirmation.
func New(title, message, confirmLabel string, action func()) *Dialog {
	return &Dialog{
		Title:        title,
		Message:      message,
		ConfirmLabel: confirmLabel,
		CancelLabel:  "Cancelar",
		action:       action,
	}
}

func (d *Dialog) State() State { return d.state }

// Resolved reports whether the dialog has been answered.
func (d *Dialog) Resolved() bool { return d.state != Pending }

// Confirm runs the action if the dialog is still pending.
func (d *Dialog) Confirm() {
	if d.state != Pending {
		return
	}
	d.state = Confirmed
	if d.action != nil {
		d.action()
	}
}

func (d *Dialog) Cancel() {
	if d.state != Pending {
		return
	}
	d.state = Cancelled
}

// Answer confirms on yes and cancels otherwise.
func (d *Dialog) Answer(yes bool) {
	if yes {
		d.Confirm()
		return
	}
	d.Cancel()
}
