// Package notes holds the sticky notes: the note list, the composition
// draft, and the list/detail/edit view state. The list is written through
// to the "notes" slot after every mutation.
package notes

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/bloco/internal/confirm"
	"github.com/Makepad-fr/bloco/internal/model"
	"github.com/Makepad-fr/bloco/internal/store"
)

var ErrNoSelection = errors.New("nenhuma nota aberta")

// View is the pane the notes screen shows.
type View int

const (
	ViewGrid View = iota
	ViewDetail
	ViewEdit
)

func (v View) String() string {
	switch v {
	case ViewDetail:
		return "Visualizando"
	case ViewEdit:
		return "Editando"
	}
	return "Notas"
}

// Store is driven by a single goroutine.
type Store struct {
	coll  *store.Collection[model.Note]
	items []model.Note
	now   func() time.Time
	log   *log.Logger

	draft    model.NoteFields
	view     View
	selected model.Note // snapshot of the open note; valid unless view == ViewGrid
	edit     model.NoteFields
}

func New(coll *store.Collection[model.Note], logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		coll:  coll,
		items: []model.Note{},
		now:   time.Now,
		log:   logger.With("store", "notes"),
		draft: model.NoteFields{Color: model.DefaultColor},
		edit:  model.NoteFields{Color: model.DefaultColor},
	}
}

func (s *Store) SetClock(now func() time.Time) { s.now = now }

func (s *Store) Load(ctx context.Context) {
	s.items = s.coll.Load(ctx)
	s.log.Debug("loaded", "count", len(s.items))
}

// Notes returns a copy of the list, newest first.
func (s *Store) Notes() []model.Note {
	out := make([]model.Note, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

func (s *Store) Get(id string) (model.Note, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	return model.Note{}, false
}

// Draft returns the composition form buffers.
func (s *Store) Draft() model.NoteFields { return s.draft }

func (s *Store) SetDraft(f model.NoteFields) { s.draft = f }

// ResetDraft clears the composition form back to the default color.
func (s *Store) ResetDraft() {
	s.draft = model.NoteFields{Color: model.DefaultColor}
}

// CreateDraft creates a note from the composition form.
func (s *Store) CreateDraft() (model.Note, error) {
	return s.Create(s.draft.Title, s.draft.Content, s.draft.Color)
}

// Create prepends a new note and resets the composition form. At least one
// of title and content must be non-blank.
func (s *Store) Create(title, content string, color model.Color) (model.Note, error) {
	n, err := model.NewNote(model.NoteFields{Title: title, Content: content, Color: color}, s.now())
	if err != nil {
		return model.Note{}, err
	}
	s.items = append([]model.Note{n}, s.items...)
	s.persist()
	s.ResetDraft()
	return n, nil
}

// Open shows id in the detail pane and loads its fields into the edit buffers.
func (s *Store) Open(id string) bool {
	n, ok := s.Get(id)
	if !ok {
		return false
	}
	s.selected = n
	s.edit = fieldsOf(n)
	s.view = ViewDetail
	return true
}

// Close returns to the grid.
func (s *Store) Close() {
	s.view = ViewGrid
	s.selected = model.Note{}
	s.edit = model.NoteFields{Color: model.DefaultColor}
}

func (s *Store) View() View { return s.view }

// Selected returns the open note's last committed snapshot.
func (s *Store) Selected() (model.Note, bool) {
	if s.view == ViewGrid {
		return model.Note{}, false
	}
	return s.selected, true
}

func (s *Store) StartEdit() error {
	if s.view == ViewGrid {
		return ErrNoSelection
	}
	s.view = ViewEdit
	return nil
}

// Editing reports whether the edit pane is active.
func (s *Store) Editing() bool { return s.view == ViewEdit }

func (s *Store) EditBuffer() model.NoteFields { return s.edit }

func (s *Store) SetEditTitle(v string)            { s.edit.Title = v }
func (s *Store) SetEditContent(v string)          { s.edit.Content = v }
func (s *Store) SetEditColor(c model.Color)       { s.edit.Color = c }
func (s *Store) SetEditBuffer(f model.NoteFields) { s.edit = f }

// CommitEdit validates the edit buffers and replaces the open note.
// On a validation error nothing is stored and the edit pane stays open.
func (s *Store) CommitEdit() (model.Note, error) {
	if s.view != ViewEdit {
		return model.Note{}, ErrNoSelection
	}
	updated, err := s.selected.Apply(s.edit, s.now())
	if err != nil {
		return model.Note{}, err
	}
	i := s.index(updated.ID)
	if i < 0 {
		// deleted underneath us; nothing to replace
		s.Close()
		return model.Note{}, ErrNoSelection
	}
	s.items[i] = updated
	s.persist()
	s.selected = updated
	s.edit = fieldsOf(updated)
	s.view = ViewDetail
	return updated, nil
}

// CancelEdit restores the buffers from the open note and leaves edit mode.
func (s *Store) CancelEdit() {
	if s.view != ViewEdit {
		return
	}
	s.edit = fieldsOf(s.selected)
	s.view = ViewDetail
}

// Delete removes id. If it was open, the view goes back to the grid.
func (s *Store) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.persist()
	if s.view != ViewGrid && s.selected.ID == id {
		s.Close()
	}
	return true
}

// RequestDelete returns a pending confirmation that deletes id when confirmed.
func (s *Store) RequestDelete(id string) *confirm.Dialog {
	return confirm.New(
		"Excluir Nota",
		"Tem certeza que deseja excluir esta nota?",
		"Excluir",
		func() { s.Delete(id) },
	)
}

func (s *Store) index(id string) int {
	for i, n := range s.items {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist() {
	s.coll.Save(s.items)
}

func fieldsOf(n model.Note) model.NoteFields {
	return model.NoteFields{Title: n.Title, Content: n.Content, Color: n.Color}
}
