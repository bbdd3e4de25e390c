package app

import (
	"fmt"
	"sync"

	"github.com/idilsaglam/menu/internal/model"
	"github.com/idilsaglam/menu/internal/store"
)

// Cache mirrors the remote list. Only refresh replaces it, and always as a
// whole; readers get copies.
type Cache struct {
	mu      sync.RWMutex
	records []model.Record
	loaded  bool

	// notifyMu orders replace+notify so subscribers see the final state last.
	// It is never held by Subscribe or unsubscribe.
	notifyMu sync.Mutex

	subsMu  sync.Mutex
	subs    map[int]func([]model.Record)
	nextSub int
}

func NewCache() *Cache {
	return &Cache{subs: map[int]func([]model.Record){}}
}

// Records returns a copy of the cached list in store order.
func (c *Cache) Records() []model.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Record, len(c.records))
	copy(out, c.records)
	return out
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Loaded reports whether at least one refresh has succeeded.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *Cache) Find(id model.ID) (model.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.records {
		if r.ID == id {
			return r, true
		}
	}
	return model.Record{}, false
}

// Lookup finds a record by the id as a user would type it. The number 7
// and the string "7" both match "7"; the first in store order wins.
func (c *Cache) Lookup(text string) (model.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.records {
		if r.ID.String() == text {
			return r, true
		}
	}
	return model.Record{}, false
}

// Subscribe registers fn to run with a copy of the list after every
// replacement. fn runs on the refreshing goroutine and must not block.
// fn may read the cache, subscribe or unsubscribe; changes to the
// subscriber set take effect from the next replacement. fn must not refresh.
func (c *Cache) Subscribe(fn func([]model.Record)) (unsubscribe func()) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		delete(c.subs, id)
	}
}

// replace swaps in recs after checking the cache invariants. On error the
// cache is left as it was.
func (c *Cache) replace(recs []model.Record) error {
	if err := checkRecords(recs); err != nil {
		return err
	}
	next := make([]model.Record, len(recs))
	copy(next, recs)

	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	c.records = next
	c.loaded = true
	c.mu.Unlock()

	c.subsMu.Lock()
	fns := make([]func([]model.Record), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subsMu.Unlock()

	for _, fn := range fns {
		snap := make([]model.Record, len(next))
		copy(snap, next)
		fn(snap)
	}
	return nil
}

func checkRecords(recs []model.Record) error {
	seen := make(map[model.ID]struct{}, len(recs))
	for i, r := range recs {
		if r.ID == "" {
			return fmt.Errorf("%w: record %d has no id", store.ErrMalformed, i)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: duplicate id %s", store.ErrMalformed, r.ID)
		}
		if r.Likes < 0 {
			return fmt.Errorf("%w: record %s has negative likes", store.ErrMalformed, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}
