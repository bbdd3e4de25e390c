package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/idilsaglam/menu/internal/model"
	"github.com/idilsaglam/menu/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// Every mutation rewrites the whole file; the mutex only serializes
// callers inside one process.

const DefaultFileName = "menus.json"

type Store struct {
	path string
	mu   sync.Mutex
}

var _ store.Store = (*Store)(nil)

// New returns a store backed by the file at path. An empty path means
// menus.json in the working directory.
func New(path string) (*Store, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		path = filepath.Join(wd, DefaultFileName)
	}
	return &Store{path: path}, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) load() ([]model.Record, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Record{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var recs []model.Record
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return recs, nil
}

func (s *Store) save(recs []model.Record) error {
	b, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) Create(ctx context.Context, name string) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.load()
	if err != nil {
		return model.Record{}, err
	}
	r := model.Record{ID: model.ID(uuid.NewString()), Name: name}
	if err := s.save(append(recs, r)); err != nil {
		return model.Record{}, err
	}
	return r, nil
}

func (s *Store) Update(ctx context.Context, id model.ID, name string) error {
	return s.mutate(id, func(recs []model.Record, i int) []model.Record {
		recs[i].Name = name
		return recs
	})
}

func (s *Store) Delete(ctx context.Context, id model.ID) error {
	return s.mutate(id, func(recs []model.Record, i int) []model.Record {
		return append(recs[:i], recs[i+1:]...)
	})
}

func (s *Store) Like(ctx context.Context, id model.ID) error {
	return s.mutate(id, func(recs []model.Record, i int) []model.Record {
		recs[i].Likes++
		return recs
	})
}

func (s *Store) mutate(id model.ID, fn func([]model.Record, int) []model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.load()
	if err != nil {
		return err
	}
	for i := range recs {
		if recs[i].ID == id {
			return s.save(fn(recs, i))
		}
	}
	return store.ErrNotFound
}
