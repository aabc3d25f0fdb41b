package ruleset

import (
	"fmt"
	"os"
	"sort"

	"github.com/sigil-game/sigil-server-go/internal/game/category"
	"gopkg.in/yaml.v3"
)

// Adjacencies maps a placed area to the areas a card there may move to.
type Adjacencies map[category.Category][]category.Category

// Of returns the destinations reachable from an area, in declared order.
func (a Adjacencies) Of(from category.Category) []category.Category {
	return append([]category.Category(nil), a[from]...)
}

// Allows reports whether a card may move from one area to another.
func (a Adjacencies) Allows(from, to category.Category) bool {
	for _, c := range a[from] {
		if c == to {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can freeze a mapping they were handed.
func (a Adjacencies) Clone() Adjacencies {
	if a == nil {
		return nil
	}
	out := make(Adjacencies, len(a))
	for from, to := range a {
		out[from] = append([]category.Category(nil), to...)
	}
	return out
}

// Validate checks every key and destination is a placeable area.
func (a Adjacencies) Validate() error {
	for from, to := range a {
		if !category.IsPlaceable(from) {
			return fmt.Errorf("adjacency source %q is not a placeable area", from)
		}
		for _, c := range to {
			if !category.IsPlaceable(c) {
				return fmt.Errorf("adjacency %s -> %q is not a placeable area", from, c)
			}
		}
	}
	return nil
}

// Ruleset is the static rules data consulted by effects at execution time.
type Ruleset struct {
	Name        string
	adjacencies Adjacencies
}

// New creates a ruleset with a frozen copy of the given adjacencies.
func New(name string, adjacencies Adjacencies) (*Ruleset, error) {
	if err := adjacencies.Validate(); err != nil {
		return nil, err
	}
	return &Ruleset{Name: name, adjacencies: adjacencies.Clone()}, nil
}

// Adjacencies returns the move adjacency table.
func (r *Ruleset) Adjacencies() Adjacencies {
	return r.adjacencies.Clone()
}

// Default returns the standard table: the colors form a ring in
// declaration order and artifacts never move.
func Default() *Ruleset {
	colors := category.Colors()
	adj := make(Adjacencies, len(colors))
	for i, c := range colors {
		prev := colors[(i+len(colors)-1)%len(colors)]
		next := colors[(i+1)%len(colors)]
		adj[c] = []category.Category{prev, next}
	}
	return &Ruleset{Name: "default", adjacencies: adj}
}

type rulesetFile struct {
	Name        string              `yaml:"name"`
	Adjacencies map[string][]string `yaml:"adjacencies"`
}

// Parse decodes a YAML ruleset.
func Parse(data []byte) (*Ruleset, error) {
	var rf rulesetFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse ruleset YAML: %w", err)
	}
	if len(rf.Adjacencies) == 0 {
		return nil, fmt.Errorf("ruleset %q declares no adjacencies", rf.Name)
	}

	// Sorted keys keep error messages deterministic.
	keys := make([]string, 0, len(rf.Adjacencies))
	for k := range rf.Adjacencies {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	adj := make(Adjacencies, len(keys))
	for _, k := range keys {
		from, err := category.Parse(k)
		if err != nil {
			return nil, fmt.Errorf("adjacencies: %w", err)
		}
		for _, name := range rf.Adjacencies[k] {
			to, err := category.Parse(name)
			if err != nil {
				return nil, fmt.Errorf("adjacencies of %s: %w", from, err)
			}
			adj[from] = append(adj[from], to)
		}
	}

	name := rf.Name
	if name == "" {
		name = "custom"
	}
	return New(name, adj)
}

// Load reads a YAML ruleset file.
func Load(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
