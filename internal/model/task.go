package model

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	TaskTextMin = 3
	TaskTextMax = 150
)

// Task is one entry of the task list.
// The JSON shape matches what older builds wrote to the "@tarefas" slot.
type Task struct {
	ID        string
	Text      string
	Completed bool
	CreatedAt time.Time
}

type taskJSON struct {
	ID        string `json:"id"`
	Text      string `json:"texto"`
	Completed bool   `json:"concluida"`
	CreatedAt int64  `json:"criadaEm"` // unix millis
}

func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(taskJSON{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt.UnixMilli(),
	})
}

func (t *Task) UnmarshalJSON(b []byte) error {
	var raw taskJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*t = Task{
		ID:        raw.ID,
		Text:      raw.Text,
		Completed: raw.Completed,
		CreatedAt: time.UnixMilli(raw.CreatedAt),
	}
	return nil
}

// NewTask validates text and builds a pending task stamped with now.
func NewTask(text string, now time.Time) (Task, error) {
	text = strings.TrimSpace(text)
	switch n := utf8.RuneCountInString(text); {
	case n < TaskTextMin:
		return Task{}, ErrTextTooShort
	case n > TaskTextMax:
		return Task{}, ErrTextTooLong
	}
	return Task{
		ID:        NewID(),
		Text:      text,
		CreatedAt: now,
	}, nil
}
