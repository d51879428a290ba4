package problem

import (
	"math/rand/v2"

	"github.com/arthur-debert/bongard/pkg/grid"
)

// reservoir is a bounded set of distinct grids. Inserting a new grid into a
// full reservoir first evicts uniformly chosen members until one slot is
// free, so the survivors are a uniform sample of everything kept so far.
type reservoir struct {
	capacity int
	rng      *rand.Rand
	items    []*grid.Grid
	ids      map[string]*grid.Grid
}

func newReservoir(capacity int, rng *rand.Rand) *reservoir {
	return &reservoir{
		capacity: capacity,
		rng:      rng,
		items:    make([]*grid.Grid, 0, capacity),
		ids:      make(map[string]*grid.Grid, capacity),
	}
}

// Add inserts g and reports whether the contents changed.
func (r *reservoir) Add(g *grid.Grid) bool {
	if r.Contains(g) {
		return false
	}
	for len(r.items) >= r.capacity {
		r.removeAt(r.rng.IntN(len(r.items)))
	}
	r.items = append(r.items, g)
	r.ids[g.ID()] = g
	return true
}

func (r *reservoir) removeAt(i int) {
	delete(r.ids, r.items[i].ID())
	last := len(r.items) - 1
	r.items[i] = r.items[last]
	r.items[last] = nil
	r.items = r.items[:last]
}

// Contains looks g up by ID and confirms the hit structurally.
func (r *reservoir) Contains(g *grid.Grid) bool {
	have, ok := r.ids[g.ID()]
	return ok && have.Equal(g)
}

func (r *reservoir) Full() bool { return len(r.items) == r.capacity }

func (r *reservoir) Len() int { return len(r.items) }

func (r *reservoir) Grids() []*grid.Grid {
	out := make([]*grid.Grid, len(r.items))
	copy(out, r.items)
	return out
}

// recent keeps the most recently added distinct grids, oldest first.
type recent struct {
	capacity int
	items    []*grid.Grid
}

func newRecent(capacity int) *recent {
	return &recent{capacity: capacity}
}

// Add appends g unless already present, then drops the oldest entries
// beyond capacity.
func (r *recent) Add(g *grid.Grid) {
	for _, have := range r.items {
		if have.Equal(g) {
			return
		}
	}
	r.items = append(r.items, g)
	if over := len(r.items) - r.capacity; over > 0 {
		r.items = append([]*grid.Grid(nil), r.items[over:]...)
	}
}

func (r *recent) Len() int { return len(r.items) }

func (r *recent) Grids() []*grid.Grid {
	out := make([]*grid.Grid, len(r.items))
	copy(out, r.items)
	return out
}
