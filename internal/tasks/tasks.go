// Package tasks holds the task list: an in-memory ordered slice that is
// written through to the "@tarefas" slot after every mutation.
package tasks

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/bloco/internal/confirm"
	"github.com/Makepad-fr/bloco/internal/model"
	"github.com/Makepad-fr/bloco/internal/store"
)

// Store owns the task list for the session. It is not safe for concurrent
// use; one goroutine (the UI loop or a CLI command) drives it.
type Store struct {
	coll  *store.Collection[model.Task]
	items []model.Task
	now   func() time.Time
	log   *log.Logger
}

func New(coll *store.Collection[model.Task], logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		coll:  coll,
		items: []model.Task{},
		now:   time.Now,
		log:   logger.With("store", "tasks"),
	}
}

// SetClock replaces time.Now, for tests.
func (s *Store) SetClock(now func() time.Time) { s.now = now }

// Load replaces the in-memory list with the persisted one.
// Read failures leave an empty list.
func (s *Store) Load(ctx context.Context) {
	s.items = s.coll.Load(ctx)
	s.log.Debug("loaded", "count", len(s.items))
}

// Add prepends a new task. Text shorter than 3 characters after trimming
// is rejected with model.ErrTextTooShort and nothing changes.
func (s *Store) Add(text string) (model.Task, error) {
	t, err := model.NewTask(text, s.now())
	if err != nil {
		return model.Task{}, err
	}
	s.items = append([]model.Task{t}, s.items...)
	s.persist()
	return t, nil
}

// Toggle flips completed for id. It reports false if id is unknown.
func (s *Store) Toggle(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items[i].Completed = !s.items[i].Completed
	s.persist()
	return true
}

// Remove drops id immediately. Callers that need the user's consent go
// through RequestRemove.
func (s *Store) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.persist()
	return true
}

// RequestRemove returns a pending confirmation that removes id when confirmed.
func (s *Store) RequestRemove(id string) *confirm.Dialog {
	return confirm.New(
		"Remover Tarefa",
		"Tem certeza que deseja remover esta tarefa?",
		"Remover",
		func() { s.Remove(id) },
	)
}

// Get returns the task with id.
func (s *Store) Get(id string) (model.Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	return model.Task{}, false
}

// Tasks returns a copy of the list, newest first.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

// Counts summarizes the list. Computed on every call.
type Counts struct {
	Active, Completed, Total int
}

func (s *Store) Counts() Counts {
	var c Counts
	for _, t := range s.items {
		if t.Completed {
			c.Completed++
		} else {
			c.Active++
		}
	}
	c.Total = len(s.items)
	return c
}

// Split partitions ts into active and completed, keeping order.
func Split(ts []model.Task) (active, completed []model.Task) {
	for _, t := range ts {
		if t.Completed {
			completed = append(completed, t)
		} else {
			active = append(active, t)
		}
	}
	return active, completed
}

func (s *Store) index(id string) int {
	for i, t := range s.items {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist() {
	s.coll.Save(s.items)
}
