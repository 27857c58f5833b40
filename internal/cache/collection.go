package cache

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Pawan0019/Hotel-Room-Booking/shared/metrics"

	"github.com/rs/zerolog/log"
)

// Entity is anything the cache can index by id.
type Entity interface {
	Key() int64
}

// LoadFunc reads every entity of one kind from the store.
type LoadFunc[T Entity] func(ctx context.Context) ([]T, error)

// ChangeFunc is called after a mutation has been applied to a collection.
type ChangeFunc func(kind string, id int64)

// Collection mirrors one entity kind. It is empty until the first read, which loads the whole
// kind from the store. Loading and mutations hold the write lock; reads hold the read lock and
// return copies.
type Collection[T Entity] struct {
	mu       sync.RWMutex
	kind     string
	items    map[int64]T
	loaded   bool
	load     LoadFunc[T]
	onChange ChangeFunc
}

func NewCollection[T Entity](kind string, load LoadFunc[T]) *Collection[T] {
	return &Collection[T]{
		kind: kind,
		load: load,
	}
}

func (c *Collection[T]) Kind() string {
	return c.kind
}

func (c *Collection[T]) populate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return nil
	}

	rows, err := c.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s cache: %w", c.kind, err)
	}

	items := make(map[int64]T, len(rows))
	for _, row := range rows {
		items[row.Key()] = row
	}

	c.items = items
	c.loaded = true

	metrics.IncCacheLoad(c.kind)
	log.Debug().Str("kind", c.kind).Int("count", len(items)).Msg("cache loaded")

	return nil
}

// read runs fn under the read lock once the collection is loaded.
func (c *Collection[T]) read(ctx context.Context, fn func(items map[int64]T)) error {
	for {
		c.mu.RLock()
		if c.loaded {
			fn(c.items)
			c.mu.RUnlock()

			return nil
		}
		c.mu.RUnlock()

		if err := c.populate(ctx); err != nil {
			return err
		}
	}
}

// GetAll returns a snapshot of every entity ordered by id.
func (c *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	var res []T

	err := c.read(ctx, func(items map[int64]T) {
		res = make([]T, 0, len(items))
		for _, item := range items {
			res = append(res, item)
		}
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(res, func(a, b T) int {
		return cmp.Compare(a.Key(), b.Key())
	})

	return res, nil
}

// GetByID returns a copy of the entity and whether it was present.
func (c *Collection[T]) GetByID(ctx context.Context, id int64) (T, bool, error) {
	var (
		res   T
		found bool
	)

	err := c.read(ctx, func(items map[int64]T) {
		res, found = items[id]
	})

	return res, found, err
}

// Add mirrors a committed insert.
func (c *Collection[T]) Add(item T) {
	c.upsert(item)
}

// Update mirrors a committed update.
func (c *Collection[T]) Update(item T) {
	c.upsert(item)
}

// AddIfAbsent mirrors a row read from the store outside any transaction. An entry that is
// already present was written by a committed mutation and is kept. It reports whether item was
// stored.
func (c *Collection[T]) AddIfAbsent(item T) bool {
	c.mu.Lock()
	added := false

	if c.loaded {
		if _, ok := c.items[item.Key()]; !ok {
			c.items[item.Key()] = item
			added = true
		}
	}
	c.mu.Unlock()

	return added
}

// Reload replaces one entry with a fresh read from the store. fetch runs under the write lock,
// so a mutation mirrored afterwards always lands on top of it. A row fetch reports as missing is
// dropped. Unloaded collections are left alone.
func (c *Collection[T]) Reload(ctx context.Context, id int64, fetch func(ctx context.Context) (T, bool, error)) error {
	c.mu.Lock()

	if !c.loaded {
		c.mu.Unlock()

		return nil
	}

	item, found, err := fetch(ctx)
	if err != nil {
		c.mu.Unlock()

		return fmt.Errorf("failed to reload %s %d: %w", c.kind, id, err)
	}

	if found {
		c.items[id] = item
	} else {
		delete(c.items, id)
	}
	c.mu.Unlock()

	c.changed(id)

	return nil
}

// Delete mirrors a committed delete.
func (c *Collection[T]) Delete(id int64) {
	c.mu.Lock()
	if c.loaded {
		delete(c.items, id)
	}
	c.mu.Unlock()

	c.changed(id)
}

// Invalidate drops the mirror so the next read reloads it from the store.
func (c *Collection[T]) Invalidate() {
	c.mu.Lock()
	c.items = nil
	c.loaded = false
	c.mu.Unlock()
}

func (c *Collection[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.loaded
}

// upsert is a no-op on an unloaded collection: the write is already committed, so the first
// load will read it from the store.
func (c *Collection[T]) upsert(item T) {
	c.mu.Lock()
	if c.loaded {
		c.items[item.Key()] = item
	}
	c.mu.Unlock()

	c.changed(item.Key())
}

func (c *Collection[T]) changed(id int64) {
	if c.onChange != nil {
		c.onChange(c.kind, id)
	}
}
