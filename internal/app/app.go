// Package app wires configuration, storage and the stores together.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/bloco/internal/config"
	"github.com/Makepad-fr/bloco/internal/feedback"
	"github.com/Makepad-fr/bloco/internal/logging"
	"github.com/Makepad-fr/bloco/internal/model"
	"github.com/Makepad-fr/bloco/internal/notes"
	"github.com/Makepad-fr/bloco/internal/store"
	"github.com/Makepad-fr/bloco/internal/store/jsonstore"
	"github.com/Makepad-fr/bloco/internal/store/redisstore"
	"github.com/Makepad-fr/bloco/internal/store/sqlitestore"
	"github.com/Makepad-fr/bloco/internal/tasks"
)

// App is one running session: both stores loaded from the same backend,
// plus the feedback client.
type App struct {
	Config   *config.Config
	Log      *log.Logger
	Tasks    *tasks.Store
	Notes    *notes.Store
	Feedback *feedback.Client

	slots    store.Slots
	taskColl *store.Collection[model.Task]
	noteColl *store.Collection[model.Note]
}

// OpenSlots opens the backend selected by cfg.Backend.
func OpenSlots(ctx context.Context, cfg *config.Config) (store.Slots, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		return jsonstore.Open(cfg.DataDir)
	case config.BackendSQLite:
		return sqlitestore.Open(ctx, cfg.SQLite.Path)
	case config.BackendRedis:
		return redisstore.Dial(ctx, cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.Prefix)
	case config.BackendMemory:
		return store.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// Open opens storage and loads both stores.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	slots, err := OpenSlots(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}
	return New(ctx, cfg, slots, logger)
}

// New builds an App over an already opened backend and loads both stores.
// The App takes ownership of slots.
func New(ctx context.Context, cfg *config.Config, slots store.Slots, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	taskSchema, err := store.Schema("tasks")
	if err != nil {
		slots.Close()
		return nil, err
	}
	noteSchema, err := store.Schema("notes")
	if err != nil {
		slots.Close()
		return nil, err
	}

	a := &App{
		Config: cfg,
		Log:    logger,
		slots:  slots,
	}
	a.taskColl = store.NewCollection[model.Task](slots, store.TasksKey,
		store.WithSchema(taskSchema), store.WithLogger(logger))
	a.noteColl = store.NewCollection[model.Note](slots, store.NotesKey,
		store.WithSchema(noteSchema), store.WithLogger(logger))

	a.Tasks = tasks.New(a.taskColl, logger)
	a.Notes = notes.New(a.noteColl, logger)
	a.Tasks.Load(ctx)
	a.Notes.Load(ctx)

	a.Feedback = feedback.New(feedback.Config{
		Endpoint: cfg.Feedback.Endpoint,
		Platform: cfg.Feedback.Platform,
		Logger:   logger,
	})
	logger.Info("session opened", "backend", cfg.Backend, "tasks", a.Tasks.Len(), "notes", a.Notes.Len())
	return a, nil
}

// Flush waits for queued writes of both stores.
func (a *App) Flush() {
	a.taskColl.Flush()
	a.noteColl.Flush()
}

// Close drains pending writes and closes the backend.
func (a *App) Close() error {
	a.taskColl.Close()
	a.noteColl.Close()
	if err := a.slots.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}
