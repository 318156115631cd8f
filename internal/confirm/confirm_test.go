package confirm

import "testing"

func TestDialog(t *testing.T) {
	t.Run("confirm runs action once", func(t *testing.T) {
		calls := 0
		d := New("Remover", "?", "Remover", func() { calls++ })
		if d.State() != Pending || d.Resolved() {
			t.Fatalf("new dialog state = %v", d.State())
		}
		d.Confirm()
		d.Confirm()
		d.Cancel()
		if calls != 1 {
			t.Errorf("action ran %d times, want 1", calls)
		}
		if d.State() != Confirmed {
			t.Errorf("state = %v, want confirmed", d.State())
		}
	})

	t.Run("cancel never runs action", func(t *testing.T) {
		calls := 0
		d := New("Remover", "?", "Remover", func() { calls++ })
		d.Answer(false)
		d.Answer(true)
		if calls != 0 {
			t.Errorf("action ran %d times, want 0", calls)
		}
		if d.State() != Cancelled {
			t.Errorf("state = %v, want cancelled", d.State())
		}
	})

	t.Run("nil action", func(t *testing.T) {
		d := New("t", "m", "ok", nil)
		d.Confirm()
		if d.State() != Confirmed {
			t.Errorf("state = %v", d.State())
		}
	})
}
