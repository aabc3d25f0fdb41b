package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/sigil-game/sigil-server-go/internal/game/category"
	"github.com/sigil-game/sigil-server-go/internal/game/effects"
	"gopkg.in/yaml.v3"
)

// ErrUnknownCard is returned when a template name is not in the catalog.
var ErrUnknownCard = errors.New("unknown card")

// Template is the printed, immutable side of a card.
type Template struct {
	Name           string
	Kind           category.Category
	Effect         effects.Effect
	AlwaysTriggers bool
	IsStartingCard bool
}

// Catalog holds card templates by name. Structurally identical effect trees
// are stored once and shared between templates.
type Catalog struct {
	templates map[string]*Template
	order     []string
	distinct  []effects.Effect
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{templates: make(map[string]*Template)}
}

// Add registers a template.
func (c *Catalog) Add(t Template) (*Template, error) {
	if t.Name == "" {
		return nil, fmt.Errorf("card template has no name")
	}
	if _, exists := c.templates[t.Name]; exists {
		return nil, fmt.Errorf("duplicate card %q", t.Name)
	}
	if !category.IsCardKind(t.Kind) {
		return nil, fmt.Errorf("card %q has invalid kind %q", t.Name, t.Kind)
	}
	if t.Effect == nil {
		t.Effect = effects.NullEffect{}
	}
	t.Effect = c.intern(t.Effect)

	stored := t
	c.templates[t.Name] = &stored
	c.order = append(c.order, t.Name)
	return &stored, nil
}

func (c *Catalog) intern(e effects.Effect) effects.Effect {
	for _, existing := range c.distinct {
		if effects.Equal(existing, e) {
			return existing
		}
	}
	c.distinct = append(c.distinct, e)
	return e
}

// Lookup returns the template with the given name.
func (c *Catalog) Lookup(name string) (*Template, error) {
	t, ok := c.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCard, name)
	}
	return t, nil
}

// Names returns template names in the order they were added.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.order)
}

// DistinctEffects returns how many structurally different effect trees the
// catalog holds.
func (c *Catalog) DistinctEffects() int {
	return len(c.distinct)
}

type catalogFile struct {
	Cards []cardEntry `yaml:"cards"`
}

type cardEntry struct {
	Name           string    `yaml:"name"`
	Kind           string    `yaml:"kind"`
	AlwaysTriggers bool      `yaml:"always_triggers"`
	Starting       bool      `yaml:"starting"`
	Effect         yaml.Node `yaml:"effect"`
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	c := New()
	for _, entry := range cf.Cards {
		kind, err := category.Parse(entry.Kind)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", entry.Name, err)
		}
		var effect effects.Effect = effects.NullEffect{}
		if entry.Effect.Kind != 0 {
			effect, err = DecodeEffect(&entry.Effect)
			if err != nil {
				return nil, fmt.Errorf("card %q: %w", entry.Name, err)
			}
		}
		if _, err := c.Add(Template{
			Name:           entry.Name,
			Kind:           kind,
			Effect:         effect,
			AlwaysTriggers: entry.AlwaysTriggers,
			IsStartingCard: entry.Starting,
		}); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Load reads a YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
