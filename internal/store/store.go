// Package store persists record lists in named key-value slots.
//
// A slot holds the whole list as one JSON array. Every mutation rewrites
// the slot; there is no schema versioning and no merge.
package store

import (
	"context"
	"sync"
)

// Slot keys used by the application.
const (
	TasksKey = "@tarefas"
	NotesKey = "notes"
)

// Slots is a minimal key-value backend.
type Slots interface {
	// Get returns the value stored under key. ok is false when the slot is empty.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set overwrites the slot.
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Memory is an in-process Slots. Nothing survives the process.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Close() error { return nil }
