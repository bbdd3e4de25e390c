// Package suggest picks one menu at random from the cached list.
package suggest

import (
	"math/rand/v2"
	"sync"

	"github.com/idilsaglam/menu/internal/model"
)

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Pick returns a copy of one record chosen uniformly from recs, or false
// when recs is empty.
func Pick(recs []model.Record, src Source) (model.Record, bool) {
	n := len(recs)
	if n == 0 {
		return model.Record{}, false
	}
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return recs[i], true
}

// NewSource returns a source seeded with seed, or a randomly seeded one when
// seed is zero.
func NewSource(seed uint64) Source {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Selector keeps the current suggestion. Observe it on the cache so every
// refresh picks again; Reroll picks again from the same list.
type Selector struct {
	mu      sync.Mutex
	src     Source
	recs    []model.Record
	current model.Record
	ok      bool
}

func NewSelector(src Source) *Selector {
	return &Selector{src: src}
}

// Observe takes a new list and picks from it. It has the signature of a
// cache subscriber.
func (s *Selector) Observe(recs []model.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = make([]model.Record, len(recs))
	copy(s.recs, recs)
	s.current, s.ok = Pick(s.recs, s.src)
}

func (s *Selector) Reroll() (model.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current, s.ok = Pick(s.recs, s.src)
	return s.current, s.ok
}

func (s *Selector) Current() (model.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.ok
}
