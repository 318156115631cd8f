package store

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// recordingSlots counts writes and can be told to fail or to block.
type recordingSlots struct {
	*Memory
	mu     sync.Mutex
	writes [][]byte
	fail   error
	gate   chan struct{}
}

func newRecordingSlots() *recordingSlots {
	return &recordingSlots{Memory: NewMemory()}
}

func (r *recordingSlots) Set(ctx context.Context, key string, value []byte) error {
	if r.gate != nil {
		<-r.gate
	}
	r.mu.Lock()
	r.writes = append(r.writes, value)
	fail := r.fail
	r.mu.Unlock()
	if fail != nil {
		return fail
	}
	return r.Memory.Set(ctx, key, value)
}

func (r *recordingSlots) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.writes)
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if _, ok, err := m.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("empty get: ok=%v err=%v", ok, err)
	}
	in := []byte(`[1]`)
	if err := m.Set(ctx, "k", in); err != nil {
		t.Fatal(err)
	}
	in[1] = '2'
	got, ok, err := m.Get(ctx, "k")
	if !ok || err != nil || string(got) != "[1]" {
		t.Fatalf("get = %s, %v, %v", got, ok, err)
	}
}

func TestCollectionRoundTrip(t *testing.T) {
	ctx := context.Background()
	slots := NewMemory()

	c := NewCollection[item](slots, "items")
	if got := c.Load(ctx); got == nil || len(got) != 0 {
		t.Fatalf("absent slot loaded %v, want empty", got)
	}
	c.Save([]item{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}})
	c.Close()

	raw, ok, _ := slots.Get(ctx, "items")
	if !ok {
		t.Fatal("slot not written")
	}
	if want := `[{"id":"1","name":"a"},{"id":"2","name":"b"}]`; string(raw) != want {
		t.Errorf("slot = %s, want %s", raw, want)
	}

	c2 := NewCollection[item](slots, "items")
	defer c2.Close()
	got := c2.Load(ctx)
	if len(got) != 2 || got[0].ID != "1" || got[1].Name != "b" {
		t.Errorf("reloaded %v", got)
	}
}

func TestCollectionSaveNilWritesEmptyArray(t *testing.T) {
	slots := NewMemory()
	c := NewCollection[item](slots, "items")
	c.Save(nil)
	c.Close()
	raw, _, _ := slots.Get(context.Background(), "items")
	if string(raw) != "[]" {
		t.Errorf("slot = %s, want []", raw)
	}
}

func TestCollectionLoadBadValues(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"malformed", `{not json`, "discarding"},
		{"wrong shape", `{"id":"1"}`, "discarding"},
		{"schema violation", `[{"id":"","texto":"x","concluida":false}]`, "invalid"},
		{"empty value", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			slots := NewMemory()
			slots.Set(ctx, TasksKey, []byte(tt.raw))

			var buf bytes.Buffer
			c := NewCollection[item](slots, TasksKey,
				WithSchema(MustSchema("tasks")), WithLogger(log.New(&buf)))
			defer c.Close()

			got := c.Load(ctx)
			if got == nil || len(got) != 0 {
				t.Errorf("loaded %v, want empty", got)
			}
			if tt.want != "" && !strings.Contains(buf.String(), tt.want) {
				t.Errorf("log %q does not mention %q", buf.String(), tt.want)
			}
		})
	}
}

func TestCollectionGetError(t *testing.T) {
	var buf bytes.Buffer
	c := NewCollection[item](failingSlots{}, "items", WithLogger(log.New(&buf)))
	defer c.Close()
	if got := c.Load(context.Background()); len(got) != 0 {
		t.Errorf("loaded %v", got)
	}
	if !strings.Contains(buf.String(), "load failed") {
		t.Errorf("log = %q", buf.String())
	}
}

type failingSlots struct{}

func (failingSlots) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk on fire")
}
func (failingSlots) Set(context.Context, string, []byte) error { return errors.New("disk on fire") }
func (failingSlots) Close() error                              { return nil }

func TestCollectionWriteFailureIsLogged(t *testing.T) {
	slots := newRecordingSlots()
	slots.fail = errors.New("quota exceeded")
	var buf bytes.Buffer
	c := NewCollection[item](slots, "items", WithLogger(log.New(&buf)))

	c.Save([]item{{ID: "1"}})
	c.Flush()
	c.Save([]item{{ID: "1"}, {ID: "2"}})
	c.Close()

	if slots.count() != 2 {
		t.Errorf("writes = %d, want 2", slots.count())
	}
	if !strings.Contains(buf.String(), "save failed") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestCollectionCoalescesWrites(t *testing.T) {
	slots := newRecordingSlots()
	slots.gate = make(chan struct{})
	c := NewCollection[item](slots, "items")

	// The first write blocks in Set; the rest queue behind it.
	c.Save([]item{{ID: "1"}})
	for i := 2; i <= 10; i++ {
		items := make([]item, i)
		for j := range items {
			items[j] = item{ID: string(rune('0' + j))}
		}
		c.Save(items)
	}
	close(slots.gate)
	c.Close()

	n := slots.count()
	if n < 1 || n > 10 {
		t.Fatalf("writes = %d", n)
	}
	raw, _, _ := slots.Get(context.Background(), "items")
	if !strings.HasPrefix(string(raw), `[{"id":"0"`) || strings.Count(string(raw), `"id"`) != 10 {
		t.Errorf("last write lost: %s", raw)
	}
}

func TestCollectionSaveAfterClose(t *testing.T) {
	slots := newRecordingSlots()
	c := NewCollection[item](slots, "items")
	c.Close()
	c.Save([]item{{ID: "1"}})
	c.Flush()
	c.Close()
	if slots.count() != 0 {
		t.Errorf("writes after close = %d", slots.count())
	}
}

func TestSchemas(t *testing.T) {
	for _, name := range []string{"tasks", "notes"} {
		if _, err := Schema(name); err != nil {
			t.Errorf("Schema(%q): %v", name, err)
		}
	}
	if _, err := Schema("nope"); err == nil {
		t.Error("unknown schema compiled")
	}
}
