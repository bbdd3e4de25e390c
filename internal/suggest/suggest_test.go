package suggest

import (
	"context"
	"math"
	"testing"

	"github.com/idilsaglam/menu/internal/app"
	"github.com/idilsaglam/menu/internal/model"
	"github.com/idilsaglam/menu/internal/store/memstore"
)

type fixed float64

func (f fixed) Float64() float64 { return float64(f) }

func four() []model.Record {
	return []model.Record{
		{ID: "1", Name: "Curry"},
		{ID: "2", Name: "Ramen"},
		{ID: "3", Name: "Soba"},
		{ID: "4", Name: "Udon"},
	}
}

func TestPick_EmptyIsAbsent(t *testing.T) {
	if r, ok := Pick(nil, fixed(0.5)); ok {
		t.Fatalf("expected no suggestion; got %+v", r)
	}
	if _, ok := Pick([]model.Record{}, fixed(0.5)); ok {
		t.Fatalf("expected no suggestion for empty slice")
	}
}

func TestPick_IndexIsFloorOfScaledUniform(t *testing.T) {
	recs := four()
	cases := map[float64]model.ID{0: "1", 0.2499: "1", 0.25: "2", 0.74: "3", 0.9999: "4", 1: "4"}
	for u, want := range cases {
		r, ok := Pick(recs, fixed(u))
		if !ok || r.ID != want {
			t.Fatalf("u=%v: expected %s; got %+v", u, want, r)
		}
	}
}

func TestPick_ReturnsCopy(t *testing.T) {
	recs := four()
	r, _ := Pick(recs, fixed(0))
	r.Name = "changed"
	if recs[0].Name != "Curry" {
		t.Fatalf("expected source slice untouched; got %q", recs[0].Name)
	}
}

func TestPick_SingleElementAlwaysChosen(t *testing.T) {
	recs := []model.Record{{ID: "only", Name: "Curry"}}
	s := NewSelector(NewSource(7))
	s.Observe(recs)
	for i := 0; i < 100; i++ {
		r, ok := s.Reroll()
		if !ok || r.ID != "only" {
			t.Fatalf("iteration %d: expected the single record; got %+v", i, r)
		}
	}
}

func TestPick_DistributionIsUniform(t *testing.T) {
	const n = 10000
	recs := four()
	src := NewSource(42)
	counts := map[model.ID]int{}
	for i := 0; i < n; i++ {
		r, _ := Pick(recs, src)
		counts[r.ID]++
	}
	// 4 standard deviations of a binomial(10000, 0.25) is about 173.
	for _, r := range recs {
		if d := math.Abs(float64(counts[r.ID]) - n/4); d > 200 {
			t.Fatalf("%s picked %d times; expected about %d", r.ID, counts[r.ID], n/4)
		}
	}
}

func TestSelector_EmptyBeforeAndAfterObserve(t *testing.T) {
	s := NewSelector(NewSource(1))
	if _, ok := s.Current(); ok {
		t.Fatalf("expected no suggestion before any list")
	}
	s.Observe(nil)
	if _, ok := s.Reroll(); ok {
		t.Fatalf("expected no suggestion for empty list")
	}
}

func TestSelector_RerollUsesSameListWithoutFetch(t *testing.T) {
	s := NewSelector(NewSource(3))
	recs := four()
	s.Observe(recs)
	recs[0].Name = "mutated after observe"

	seen := map[model.ID]bool{}
	for i := 0; i < 200; i++ {
		r, ok := s.Reroll()
		if !ok {
			t.Fatalf("expected a suggestion")
		}
		if r.ID == "1" && r.Name != "Curry" {
			t.Fatalf("expected selector to hold its own copy; got %q", r.Name)
		}
		seen[r.ID] = true
	}
	if len(seen) != 4 {
		t.Fatalf("expected rerolls to reach all 4 records; got %v", seen)
	}
}

func TestSelector_FollowsCacheRefreshes(t *testing.T) {
	st := memstore.New(model.Record{ID: "1", Name: "Curry"})
	a := app.New(st, nil)
	s := NewSelector(NewSource(9))
	a.Cache().Subscribe(s.Observe)
	ctx := context.Background()

	if err := a.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if r, ok := s.Current(); !ok || r.ID != "1" {
		t.Fatalf("expected Curry after first refresh; got %+v", r)
	}

	if err := a.Delete(ctx, "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if r, ok := s.Current(); ok {
		t.Fatalf("expected no suggestion once the list is empty; got %+v", r)
	}

	if err := a.Create(ctx, "Ramen"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if r, ok := s.Current(); !ok || r.Name != "Ramen" {
		t.Fatalf("expected Ramen after create; got %+v", r)
	}
}
