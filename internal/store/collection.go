package store

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Collection mirrors an in-memory list of T to one slot.
//
// Load reads the slot once. Save snapshots the list and hands it to a
// background writer; it never waits for I/O. Queued snapshots coalesce so
// only the newest one is written: the last mutation wins.
type Collection[T any] struct {
	slots  Slots
	key    string
	schema *jsonschema.Schema
	log    *log.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	pending []byte
	queued  bool
	seq     uint64 // snapshots accepted
	written uint64 // snapshots handled by the writer (ok or failed)
	closed  bool
	wake    chan struct{}
	stopped chan struct{}
}

// Option configures a Collection.
type Option func(*options)

type options struct {
	schema *jsonschema.Schema
	logger *log.Logger
}

// WithSchema validates slot contents on load. Invalid values load as empty.
func WithSchema(s *jsonschema.Schema) Option {
	return func(o *options) { o.schema = s }
}

func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewCollection starts the writer goroutine for key. Call Close when done.
func NewCollection[T any](slots Slots, key string, opts ...Option) *Collection[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	c := &Collection[T]{
		slots:   slots,
		key:     key,
		schema:  o.schema,
		log:     o.logger.With("slot", key),
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	c.cond = sync.NewCond(&c.mu)
	go c.run()
	return c
}

// Key returns the slot name.
func (c *Collection[T]) Key() string { return c.key }

// Load reads the slot. Absent, unreadable or malformed values yield an
// empty list; the failure is logged, never returned.
func (c *Collection[T]) Load(ctx context.Context) []T {
	raw, ok, err := c.slots.Get(ctx, c.key)
	if err != nil {
		c.log.Error("load failed", "err", err)
		return []T{}
	}
	if !ok || len(raw) == 0 {
		return []T{}
	}
	if c.schema != nil {
		if err := validate(c.schema, raw); err != nil {
			c.log.Error("discarding invalid slot value", "err", err)
			return []T{}
		}
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.Error("discarding malformed slot value", "err", err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	c.log.Debug("loaded", "count", len(items))
	return items
}

// Save schedules a write of items. Marshal failures are logged and dropped.
func (c *Collection[T]) Save(items []T) {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		c.log.Error("json marshal", "err", err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		c.log.Warn("save after close dropped", "count", len(items))
		return
	}
	c.pending = b
	c.queued = true
	c.seq++
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every snapshot accepted so far has been handled.
func (c *Collection[T]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	target := c.seq
	for c.written < target {
		c.cond.Wait()
	}
}

// Close flushes pending writes and stops the writer.
// The underlying Slots is left open; it is shared between collections.
func (c *Collection[T]) Close() {
	c.Flush()
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.wake)
	c.mu.Unlock()
	<-c.stopped
}

func (c *Collection[T]) run() {
	defer close(c.stopped)
	for range c.wake {
		for {
			c.mu.Lock()
			if !c.queued {
				c.mu.Unlock()
				break
			}
			b, seq := c.pending, c.seq
			c.pending, c.queued = nil, false
			c.mu.Unlock()

			if err := c.slots.Set(context.Background(), c.key, b); err != nil {
				c.log.Error("save failed", "err", err)
			}

			c.mu.Lock()
			c.written = seq
			c.cond.Broadcast()
			c.mu.Unlock()
		}
	}
}
