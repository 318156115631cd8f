package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Makepad-fr/bloco/internal/app"
	"github.com/Makepad-fr/bloco/internal/cli"
	"github.com/Makepad-fr/bloco/internal/config"
	"github.com/Makepad-fr/bloco/internal/logging"
	"github.com/Makepad-fr/bloco/internal/tui"
	"github.com/Makepad-fr/bloco/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("bloco", flag.ContinueOnError)
	fs.Usage = cli.PrintHelp
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		ui.Fail(err.Error())
		return 2
	}
	ui.SetTheme(cfg.UI.Theme)
	ui.SetColorForcing(os.Getenv("CLICOLOR_FORCE") != "", os.Getenv("NO_COLOR") != "")

	logger, closer, err := logging.Open(cfg.Log.File, logging.Options{Level: cfg.Log.Level, Prefix: "bloco"})
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "err", err)
		ui.Fail(err.Error())
		return 1
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("shutdown", "err", err)
			fmt.Fprintln(os.Stderr, err)
		}
	}()

	// Hand the remaining args to the CLI runner.
	return cli.Run(ctx, a, fs.Args(), cli.Options{
		Group: cfg.UI.Group,
		Yes:   cfg.Yes,
		In:    os.Stdin,
		RunUI: func() error { return tui.Run(ctx, a) },
	})
}
