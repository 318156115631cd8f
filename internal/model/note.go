package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	NoteTitleMax   = 100
	NoteContentMax = 1000
)

// Color is one of the fixed note backgrounds.
type Color string

// Palette lists the note colors in picker order. Palette[0] is the default.
var Palette = [...]Color{
	"#1c1c1c", // default (dark)
	"#2a1f1f", // red
	"#1a2a22", // green
	"#1f2a2a", // blue
	"#2a2a1f", // yellow
	"#2a1f2a", // purple
}

// DefaultColor is the color preselected by the composition form.
const DefaultColor = Color("#1c1c1c")

func (c Color) Valid() bool {
	for _, p := range Palette {
		if c == p {
			return true
		}
	}
	return false
}

// Index returns the palette position of c, or -1.
func (c Color) Index() int {
	for i, p := range Palette {
		if c == p {
			return i
		}
	}
	return -1
}

// Note is a sticky note.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Color     Color     `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Edited reports whether the note was changed after creation.
func (n Note) Edited() bool { return !n.UpdatedAt.Equal(n.CreatedAt) }

// NoteFields holds user-editable note fields before validation.
type NoteFields struct {
	Title   string
	Content string
	Color   Color
}

// Normalize trims the text fields and validates them.
func (f NoteFields) Normalize() (NoteFields, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Content = strings.TrimSpace(f.Content)
	if f.Title == "" && f.Content == "" {
		return f, ErrEmptyNote
	}
	if utf8.RuneCountInString(f.Title) > NoteTitleMax {
		return f, ErrTitleTooLong
	}
	if utf8.RuneCountInString(f.Content) > NoteContentMax {
		return f, ErrContentTooLong
	}
	if f.Color == "" {
		f.Color = DefaultColor
	}
	if !f.Color.Valid() {
		return f, ErrUnknownColor
	}
	return f, nil
}

// NewNote validates f and builds a note with createdAt == updatedAt == now.
func NewNote(f NoteFields, now time.Time) (Note, error) {
	f, err := f.Normalize()
	if err != nil {
		return Note{}, err
	}
	return Note{
		ID:        NewID(),
		Title:     f.Title,
		Content:   f.Content,
		Color:     f.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Apply returns n with the edited fields and a new updatedAt.
// updatedAt never goes below createdAt, even if the clock stepped back.
func (n Note) Apply(f NoteFields, now time.Time) (Note, error) {
	f, err := f.Normalize()
	if err != nil {
		return n, err
	}
	n.Title, n.Content, n.Color = f.Title, f.Content, f.Color
	if now.Before(n.CreatedAt) {
		now = n.CreatedAt
	}
	n.UpdatedAt = now
	return n, nil
}

// FormatDate renders t as DD/MM/YY.
func FormatDate(t time.Time) string {
	return t.Local().Format("02/01/06")
}
