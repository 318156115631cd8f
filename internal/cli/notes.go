package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/Makepad-fr/bloco/internal/model"
	"github.com/Makepad-fr/bloco/internal/ui"
)

const noteWidth = 48

func (r *runner) notes(args []string) int {
	if len(args) == 0 {
		return r.listNotes()
	}
	cmd, a := args[0], args[1:]
	switch cmd {
	case "ls":
		return r.listNotes()
	case "new", "add":
		return r.newNote(a)
	case "show":
		if len(a) != 1 {
			ui.Fail("usage: bloco notes show <index>")
			return 2
		}
		return r.showNote(a[0])
	case "edit":
		return r.editNote(a)
	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: bloco notes rm <index>")
			return 2
		}
		return r.removeNote(a[0])
	}
	ui.Fail("unknown notes subcommand: " + cmd)
	return 2
}

func (r *runner) listNotes() int {
	items := r.app.Notes.Notes()
	t := ui.Current()
	label := "notas"
	if len(items) == 1 {
		label = "nota"
	}
	lines := []string{fmt.Sprintf("%s  %s", ui.C(t.Title, "Anotações"), ui.C(t.Muted, fmt.Sprintf("%d %s", len(items), label))), ""}
	if len(items) == 0 {
		lines = append(lines, ui.C(t.Muted, "Nenhuma nota ainda"))
	}
	for i, n := range items {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			ui.C(t.Muted, fmt.Sprintf("%2d.", i+1)),
			ui.Swatch(string(n.Color)),
			ui.C(t.Muted, model.FormatDate(n.UpdatedAt))))
		// grid cards show at most 2 title lines and 8 content lines
		if n.Title != "" {
			for _, ln := range ui.Clamp(n.Title, noteWidth, 2) {
				lines = append(lines, "    "+ui.C(t.Title, ln))
			}
		}
		if n.Content != "" {
			for _, ln := range ui.Clamp(n.Content, noteWidth, 8) {
				lines = append(lines, "    "+ln)
			}
		}
	}
	ui.Panel(lines)
	return 0
}

type noteFlags struct {
	fs      *flag.FlagSet
	title   string
	content string
	color   int
}

func newNoteFlags(name string) *noteFlags {
	nf := &noteFlags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	nf.fs.SetOutput(io.Discard)
	nf.fs.StringVar(&nf.title, "title", "", "note title")
	nf.fs.StringVar(&nf.content, "content", "", "note content")
	nf.fs.IntVar(&nf.color, "color", 1, "palette color 1-6")
	return nf
}

func (nf *noteFlags) set(name string) bool {
	found := false
	nf.fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func paletteColor(n int) (model.Color, bool) {
	if n < 1 || n > len(model.Palette) {
		ui.Fail(fmt.Sprintf("color must be 1-%d, got %d", len(model.Palette), n))
		return "", false
	}
	return model.Palette[n-1], true
}

func (r *runner) newNote(args []string) int {
	nf := newNoteFlags("notes new")
	if err := nf.fs.Parse(args); err != nil {
		ui.Fail("notes new: " + err.Error())
		return 2
	}
	color, ok := paletteColor(nf.color)
	if !ok {
		return 2
	}
	content := nf.content
	if rest := strings.Join(nf.fs.Args(), " "); rest != "" {
		content = rest
	}
	r.app.Notes.SetDraft(model.NoteFields{Title: nf.title, Content: content, Color: color})
	if _, err := r.app.Notes.CreateDraft(); err != nil {
		return noteError("notes new", err)
	}
	ui.OK("note created")
	return 0
}

func (r *runner) showNote(arg string) int {
	items := r.app.Notes.Notes()
	i, ok := index("notes show", arg, len(items))
	if !ok {
		return 2
	}
	r.app.Notes.Open(items[i].ID)
	defer r.app.Notes.Close()
	n, _ := r.app.Notes.Selected()

	t := ui.Current()
	lines := []string{ui.C(t.Muted, r.app.Notes.View().String()) + "  " + ui.Swatch(string(n.Color)), ""}
	if n.Title != "" {
		for _, ln := range strings.Split(n.Title, "\n") {
			lines = append(lines, ui.C(t.Title, ln))
		}
	}
	if n.Content != "" {
		if n.Title != "" {
			lines = append(lines, "")
		}
		lines = append(lines, strings.Split(n.Content, "\n")...)
	}
	stamp := "Criado em " + model.FormatDate(n.CreatedAt)
	if n.Edited() {
		stamp += " • Editado em " + model.FormatDate(n.UpdatedAt)
	}
	lines = append(lines, "", ui.C(t.Muted, stamp))
	ui.Panel(lines)
	return 0
}

func (r *runner) editNote(args []string) int {
	if len(args) == 0 {
		ui.Fail("usage: bloco notes edit <index> [-title t] [-content c] [-color 1-6]")
		return 2
	}
	items := r.app.Notes.Notes()
	i, ok := index("notes edit", args[0], len(items))
	if !ok {
		return 2
	}
	nf := newNoteFlags("notes edit")
	if err := nf.fs.Parse(args[1:]); err != nil {
		ui.Fail("notes edit: " + err.Error())
		return 2
	}

	s := r.app.Notes
	s.Open(items[i].ID)
	defer s.Close()
	if err := s.StartEdit(); err != nil {
		ui.Fail("notes edit: " + err.Error())
		return 1
	}
	if nf.set("title") {
		s.SetEditTitle(nf.title)
	}
	if nf.set("content") {
		s.SetEditContent(nf.content)
	}
	if nf.set("color") {
		c, ok := paletteColor(nf.color)
		if !ok {
			s.CancelEdit()
			return 2
		}
		s.SetEditColor(c)
	}
	if _, err := s.CommitEdit(); err != nil {
		s.CancelEdit()
		return noteError("notes edit", err)
	}
	ui.OK("note saved")
	return 0
}

func (r *runner) removeNote(arg string) int {
	items := r.app.Notes.Notes()
	i, ok := index("notes rm", arg, len(items))
	if !ok {
		return 2
	}
	if !r.confirm(r.app.Notes.RequestDelete(items[i].ID)) {
		ui.OK("kept")
		return 0
	}
	ui.OK("deleted")
	return 0
}

func noteError(cmd string, err error) int {
	switch {
	case errors.Is(err, model.ErrEmptyNote),
		errors.Is(err, model.ErrTitleTooLong),
		errors.Is(err, model.ErrContentTooLong),
		errors.Is(err, model.ErrUnknownColor):
		ui.Fail("Erro: " + err.Error())
		return 2
	}
	ui.Fail(cmd + ": " + err.Error())
	return 1
}
