// Package storetest holds behaviour checks every store.Store must pass.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/idilsaglam/menu/internal/model"
	"github.com/idilsaglam/menu/internal/store"
)

// Run exercises s, which must start empty. wantNotFound is false for
// stores that cannot report unknown ids as store.ErrNotFound (the HTTP
// client sees them as status errors); they must still fail.
func Run(t *testing.T, s store.Store, wantNotFound bool) {
	t.Helper()
	ctx := context.Background()

	recs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected empty store; got %d records", len(recs))
	}

	curry, err := s.Create(ctx, "Curry")
	if err != nil {
		t.Fatalf("create Curry: %v", err)
	}
	if curry.ID == "" || curry.Name != "Curry" || curry.Likes != 0 {
		t.Fatalf("unexpected created record: %+v", curry)
	}
	ramen, err := s.Create(ctx, "Ramen")
	if err != nil {
		t.Fatalf("create Ramen: %v", err)
	}
	if ramen.ID == curry.ID {
		t.Fatalf("expected distinct ids; both %q", ramen.ID)
	}

	recs = mustList(t, s)
	if len(recs) != 2 || recs[0].ID != curry.ID || recs[1].ID != ramen.ID {
		t.Fatalf("expected [Curry Ramen] in insertion order; got %+v", recs)
	}

	for i := 0; i < 2; i++ {
		if err := s.Like(ctx, curry.ID); err != nil {
			t.Fatalf("like: %v", err)
		}
	}
	if err := s.Update(ctx, curry.ID, "Green curry"); err != nil {
		t.Fatalf("update: %v", err)
	}
	got := find(t, mustList(t, s), curry.ID)
	if got.Name != "Green curry" || got.Likes != 2 {
		t.Fatalf("expected renamed record with likes kept; got %+v", got)
	}

	if err := s.Delete(ctx, ramen.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	recs = mustList(t, s)
	if len(recs) != 1 || recs[0].ID != curry.ID {
		t.Fatalf("expected only Curry after delete; got %+v", recs)
	}

	checks := map[string]error{
		"update": s.Update(ctx, ramen.ID, "x"),
		"delete": s.Delete(ctx, ramen.ID),
		"like":   s.Like(ctx, ramen.ID),
	}
	for op, err := range checks {
		if err == nil {
			t.Fatalf("%s of deleted id: expected error", op)
		}
		if wantNotFound && !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("%s of deleted id: expected ErrNotFound; got %v", op, err)
		}
	}
}

func mustList(t *testing.T, s store.Store) []model.Record {
	t.Helper()
	recs, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	return recs
}

func find(t *testing.T, recs []model.Record, id model.ID) model.Record {
	t.Helper()
	for _, r := range recs {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("record %s not found in %+v", id, recs)
	return model.Record{}
}
