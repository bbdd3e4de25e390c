// Package memstore is an in-memory store.Store. Ids are sequential JSON numbers.
package memstore

import (
	"context"
	"strconv"
	"sync"

	"github.com/idilsaglam/menu/internal/model"
	"github.com/idilsaglam/menu/internal/store"
)

type Store struct {
	mu      sync.Mutex
	records []model.Record
	next    int
}

var _ store.Store = (*Store)(nil)

// New returns a store seeded with recs. New ids continue after the largest
// id in the seed that reads as an integer, whatever its JSON type.
func New(recs ...model.Record) *Store {
	s := &Store{next: 1}
	for _, r := range recs {
		if n, err := strconv.Atoi(r.ID.String()); err == nil && n >= s.next {
			s.next = n + 1
		}
		s.records = append(s.records, r)
	}
	return s
}

func (s *Store) List(ctx context.Context) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *Store) Create(ctx context.Context, name string) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := model.Record{ID: model.NumberID(strconv.Itoa(s.next)), Name: name}
	s.next++
	s.records = append(s.records, r)
	return r, nil
}

func (s *Store) Update(ctx context.Context, id model.ID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return store.ErrNotFound
	}
	s.records[i].Name = name
	return nil
}

func (s *Store) Delete(ctx context.Context, id model.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return store.ErrNotFound
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return nil
}

func (s *Store) Like(ctx context.Context, id model.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return store.ErrNotFound
	}
	s.records[i].Likes++
	return nil
}

func (s *Store) index(id model.ID) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
