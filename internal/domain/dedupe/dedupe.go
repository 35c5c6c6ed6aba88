// Package dedupe suppresses duplicate match records. Daily scoreboard
// windows overlap at season boundaries and re-fetches, so the same game
// can arrive more than once; a match is identified by its date and the
// two team names.
package dedupe

import (
	"context"
	"sync"
)

// defaultMaxSize bounds the seen-set; a full season of daily fetches
// stays well under this.
const defaultMaxSize = 100_000

// Deduper records seen match keys so each game is ingested at most
// once.
type Deduper interface {
	// SeenAndRecord atomically checks whether key was seen and records
	// it if not. Returns true if key was already seen.
	SeenAndRecord(ctx context.Context, key string) bool

	// Size returns the number of recorded keys.
	Size() int
}

// inMemoryDeduper implements Deduper with a bounded map plus a FIFO
// ring of keys for eviction order.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string
	oldest  int
	maxSize int
}

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithMaxSize bounds the number of keys kept. Sizes below 1 are
// ignored.
func WithMaxSize(size int) Option {
	return func(d *inMemoryDeduper) {
		if size > 0 {
			d.maxSize = size
		}
	}
}

// New creates a bounded in-memory deduper.
func New(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{}, d.maxSize)
	d.order = make([]string, 0, d.maxSize)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}

	if len(d.seen) >= d.maxSize {
		// Evict the oldest key; the ring index wraps as the order
		// slice is reused in place.
		evicted := d.order[d.oldest]
		delete(d.seen, evicted)
		d.order[d.oldest] = key
		d.oldest = (d.oldest + 1) % d.maxSize
	} else {
		d.order = append(d.order, key)
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
