package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Makepad-fr/bloco/internal/app"
	"github.com/Makepad-fr/bloco/internal/confirm"
	"github.com/Makepad-fr/bloco/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	Group bool      // list tasks grouped by pending/done
	Yes   bool      // skip confirmation prompts
	In    io.Reader // answers to prompts; defaults to stdin
	RunUI func() error
}

type runner struct {
	ctx context.Context
	app *app.App
	opt Options
	in  *bufio.Reader
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, a *app.App, args []string, opt Options) int {
	if opt.In == nil {
		opt.In = os.Stdin
	}
	r := &runner{ctx: ctx, app: a, opt: opt, in: bufio.NewReader(opt.In)}

	if len(args) == 0 {
		return r.ui()
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0
	case "ui":
		return r.ui()
	case "tasks", "t":
		return r.tasks(rest)
	case "notes", "n":
		return r.notes(rest)
	case "feedback", "f":
		return r.feedback(rest)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.Stderr())
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Fprint(ui.Stdout(), `bloco - tasks, sticky notes and feedback

Usage:
  bloco [flags] [subcommand] [args]

Subcommands:
  ui                          Interactive app (default)
  tasks ls                    List tasks
  tasks add <text...>         Add a task (at least 3 characters)
  tasks done <index>          Toggle done for task at 1-based index
  tasks rm <index>            Remove task at 1-based index
  notes ls                    List notes
  notes new [-title t] [-color 1-6] [content...]
  notes show <index>          Show a note
  notes edit <index> [-title t] [-content c] [-color 1-6]
  notes rm <index>            Delete a note
  feedback send -rating 1-5 [-email e] <text...>

Flags:
  --config <file>   --data-dir <dir>   --backend json|sqlite|redis|memory
  --theme classic|neon|mono   --group   --yes   --log-level <level>

Examples:
  bloco tasks add "Comprar leite"
  bloco notes new -title Mercado -color 3 "Leite, ovos"
  bloco feedback send -rating 5 "Muito bom!"
`)
}

func (r *runner) ui() int {
	if r.opt.RunUI == nil {
		ui.Fail("interactive mode unavailable")
		return 1
	}
	if err := r.opt.RunUI(); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

// confirm resolves d from the prompt (or --yes) and reports whether it ran.
func (r *runner) confirm(d *confirm.Dialog) bool {
	if r.opt.Yes {
		d.Confirm()
		return true
	}
	d.Answer(r.ask(fmt.Sprintf("%s: %s [s/N] ", d.Title, d.Message)))
	return d.State() == confirm.Confirmed
}

func (r *runner) ask(prompt string) bool {
	fmt.Fprint(ui.Stdout(), prompt)
	line, err := r.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(ui.Stdout())
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

// index parses a 1-based position and checks it against n items.
func index(cmd, arg string, n int) (int, bool) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		ui.Fail(cmd + ": not a number: " + arg)
		return 0, false
	}
	if i < 1 || i > n {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", n, i))
		ui.Hint("Hint: run `bloco " + strings.Fields(cmd)[0] + " ls` to see valid indexes")
		return 0, false
	}
	return i - 1, true
}
