package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Makepad-fr/bloco/internal/model"
	"github.com/Makepad-fr/bloco/internal/tasks"
	"github.com/Makepad-fr/bloco/internal/ui"
)

func (r *runner) tasks(args []string) int {
	if len(args) == 0 {
		return r.listTasks()
	}
	cmd, a := args[0], args[1:]
	switch cmd {
	case "ls":
		return r.listTasks()
	case "add":
		if len(a) == 0 {
			ui.Fail("usage: bloco tasks add <text...>")
			return 2
		}
		return r.addTask(strings.Join(a, " "))
	case "done":
		if len(a) != 1 {
			ui.Fail("usage: bloco tasks done <index>")
			return 2
		}
		return r.toggleTask(a[0])
	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: bloco tasks rm <index>")
			return 2
		}
		return r.removeTask(a[0])
	}
	ui.Fail("unknown tasks subcommand: " + cmd)
	return 2
}

func (r *runner) listTasks() int {
	items := r.app.Tasks.Tasks()
	c := r.app.Tasks.Counts()
	t := ui.Current()

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Tarefas"),
		ui.C(t.Pending, "Ativas"), c.Active,
		ui.C(t.Success, "Concluídas"), c.Completed,
		ui.C(t.Accent, "Total"), c.Total,
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(c.Completed, c.Total, 28)))
	lines = append(lines, "")
	if r.opt.Group {
		lines = append(lines, groupTaskLines(items)...)
	} else {
		lines = append(lines, taskLines(items, nil)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `bloco tasks add \"Comprar leite\"`"))
	ui.Panel(lines)
	return 0
}

func (r *runner) addTask(text string) int {
	if _, err := r.app.Tasks.Add(text); err != nil {
		if errors.Is(err, model.ErrTextTooShort) || errors.Is(err, model.ErrTextTooLong) {
			ui.Fail("Atenção: " + err.Error())
			return 2
		}
		ui.Fail("add: " + err.Error())
		return 1
	}
	ui.OK("added")
	return 0
}

func (r *runner) toggleTask(arg string) int {
	items := r.app.Tasks.Tasks()
	i, ok := index("tasks done", arg, len(items))
	if !ok {
		return 2
	}
	r.app.Tasks.Toggle(items[i].ID)
	ui.OK("toggled")
	return 0
}

func (r *runner) removeTask(arg string) int {
	items := r.app.Tasks.Tasks()
	i, ok := index("tasks rm", arg, len(items))
	if !ok {
		return 2
	}
	if !r.confirm(r.app.Tasks.RequestRemove(items[i].ID)) {
		ui.OK("kept")
		return 0
	}
	ui.OK("removed")
	return 0
}

// -------------- rendering helpers --------------

// taskLines renders tasks with their position in all (or in ts when all is nil).
func taskLines(ts, all []model.Task) []string {
	if len(ts) == 0 {
		return []string{ui.C(ui.Current().Muted, "Nenhuma tarefa encontrada")}
	}
	pos := map[string]int{}
	for i, t := range all {
		pos[t.ID] = i + 1
	}
	out := make([]string, 0, len(ts))
	for i, it := range ts {
		n := i + 1
		if p, ok := pos[it.ID]; ok {
			n = p
		}
		box := ui.Current().BoxUnchecked
		color := ui.Current().Muted
		if it.Completed {
			box, color = ui.Current().BoxChecked, ui.Current().Success
		}
		text := it.Text
		if r := []rune(text); len(r) > 80 {
			text = string(r[:77]) + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s %s",
			ui.C(ui.Current().Muted, fmt.Sprintf("%2d.", n)),
			ui.C(color, box),
			text,
			ui.C(ui.Current().Muted, it.CreatedAt.Local().Format("02/01 15:04"))))
	}
	return out
}

func groupTaskLines(items []model.Task) []string {
	active, done := tasks.Split(items)
	t := ui.Current()
	var lines []string
	lines = append(lines, ui.C(t.Accent, "Ativas"))
	if len(active) == 0 {
		lines = append(lines, ui.C(t.Muted, "(nenhuma)"))
	} else {
		lines = append(lines, taskLines(active, items)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Accent, "Concluídas"))
	if len(done) == 0 {
		lines = append(lines, ui.C(t.Muted, "(nenhuma)"))
	} else {
		lines = append(lines, taskLines(done, items)...)
	}
	return lines
}
