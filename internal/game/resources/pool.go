package resources

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sigil-game/sigil-server-go/internal/game/category"
)

// Pool is a multiset of resources keyed by color. Missing keys hold zero.
// A Pool is mutated in place by whichever effect currently owns the
// execution context; evaluation is sequential so it carries no lock.
type Pool map[category.Category]int

// NewPool creates an empty pool.
func NewPool() Pool {
	return make(Pool)
}

// Get returns the held amount of a resource.
func (p Pool) Get(resource category.Category) int {
	return p[resource]
}

// Add adds amount of resource to the pool. A negative amount lowers the
// held amount and may leave it below zero.
func (p Pool) Add(resource category.Category, amount int) {
	if amount == 0 {
		return
	}
	p[resource] += amount
	if p[resource] == 0 {
		delete(p, resource)
	}
}

// AddPool adds every unit of other to p.
func (p Pool) AddPool(other Pool) {
	for resource, amount := range other {
		p.Add(resource, amount)
	}
}

// Subtract removes other from p. It fails without mutating p when other is
// not contained in p.
func (p Pool) Subtract(other Pool) error {
	if !p.Contains(other) {
		return fmt.Errorf("cannot subtract %s from %s", other, p)
	}
	for resource, amount := range other {
		if amount <= 0 {
			continue
		}
		p[resource] -= amount
		if p[resource] == 0 {
			delete(p, resource)
		}
	}
	return nil
}

// Contains reports whether other is a sub-multiset of p.
func (p Pool) Contains(other Pool) bool {
	for resource, amount := range other {
		if amount > p[resource] {
			return false
		}
	}
	return true
}

// Total returns the number of units across all resources, ignoring
// non-positive entries.
func (p Pool) Total() int {
	total := 0
	for _, amount := range p {
		if amount > 0 {
			total += amount
		}
	}
	return total
}

// Positive returns a copy holding only the entries with a positive amount.
func (p Pool) Positive() Pool {
	out := make(Pool, len(p))
	for resource, amount := range p {
		if amount > 0 {
			out[resource] = amount
		}
	}
	return out
}

// Resources returns the resources with a positive amount, sorted by name.
func (p Pool) Resources() []category.Category {
	out := make([]category.Category, 0, len(p))
	for resource, amount := range p {
		if amount > 0 {
			out = append(out, resource)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal compares two pools as multisets.
func (p Pool) Equal(other Pool) bool {
	return p.Contains(other) && other.Contains(p)
}

// Copy creates a deep copy of the pool.
func (p Pool) Copy() Pool {
	out := make(Pool, len(p))
	for resource, amount := range p {
		out[resource] = amount
	}
	return out
}

func (p Pool) String() string {
	parts := make([]string, 0, len(p))
	for _, resource := range p.Resources() {
		parts = append(parts, fmt.Sprintf("%s:%d", resource, p[resource]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
