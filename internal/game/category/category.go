package category

import (
	"fmt"
	"sort"
	"strings"
)

// Category is a finite, comparable token naming a color, a card kind or an
// area a card can sit in.
type Category string

// None is the zero category. Frontends return it to decline a choice.
const None Category = ""

const (
	// Colors
	Purple Category = "PURPLE"
	Green  Category = "GREEN"
	Red    Category = "RED"
	Blue   Category = "BLUE"
	Yellow Category = "YELLOW"

	// Non-color card kinds
	Artifact Category = "ARTIFACT"
	Event    Category = "EVENT"

	// Non-placeable areas
	Hand    Category = "HAND"
	Discard Category = "DISCARD"
)

var (
	colors    = []Category{Purple, Green, Red, Blue, Yellow}
	cardKinds = []Category{Purple, Green, Red, Blue, Yellow, Artifact, Event}
	placeable = []Category{Purple, Green, Red, Blue, Yellow, Artifact}
	areas     = []Category{Purple, Green, Red, Blue, Yellow, Artifact, Hand, Discard}
)

// Colors returns every color in declaration order.
func Colors() []Category {
	return append([]Category(nil), colors...)
}

// CardKinds returns every kind a card template can have.
func CardKinds() []Category {
	return append([]Category(nil), cardKinds...)
}

// Placeable returns the areas a card counts as "placed" in.
func Placeable() []Category {
	return append([]Category(nil), placeable...)
}

// Areas returns every area a player holds cards in.
func Areas() []Category {
	return append([]Category(nil), areas...)
}

// IsColor reports whether c is one of the five colors.
func IsColor(c Category) bool {
	return contains(colors, c)
}

// IsPlaceable reports whether cards in area c are on the table.
func IsPlaceable(c Category) bool {
	return contains(placeable, c)
}

// IsCardKind reports whether c can be the kind of a card template.
func IsCardKind(c Category) bool {
	return contains(cardKinds, c)
}

// IsArea reports whether c names a player area.
func IsArea(c Category) bool {
	return contains(areas, c)
}

// Parse converts a case-insensitive name into a known category.
func Parse(name string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(name)))
	if contains(areas, c) || contains(cardKinds, c) {
		return c, nil
	}
	return None, fmt.Errorf("unknown category %q", name)
}

func contains(list []Category, c Category) bool {
	for _, item := range list {
		if item == c {
			return true
		}
	}
	return false
}

// Filter is an immutable set of allowed categories.
type Filter struct {
	allowed map[Category]struct{}
}

// NewFilter creates a filter allowing exactly the given categories.
func NewFilter(allowed ...Category) Filter {
	set := make(map[Category]struct{}, len(allowed))
	for _, c := range allowed {
		set[c] = struct{}{}
	}
	return Filter{allowed: set}
}

// AnyColor allows the five colors.
func AnyColor() Filter {
	return NewFilter(colors...)
}

// AnyKind allows every card kind.
func AnyKind() Filter {
	return NewFilter(cardKinds...)
}

// Allows reports whether c is in the filter.
func (f Filter) Allows(c Category) bool {
	_, ok := f.allowed[c]
	return ok
}

// Without returns a copy of the filter with the given categories removed.
func (f Filter) Without(excluded ...Category) Filter {
	out := make([]Category, 0, len(f.allowed))
	for _, c := range f.Members() {
		if !contains(excluded, c) {
			out = append(out, c)
		}
	}
	return NewFilter(out...)
}

// Members returns the allowed categories sorted by name.
func (f Filter) Members() []Category {
	out := make([]Category, 0, len(f.allowed))
	for c := range f.allowed {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsEmpty reports whether nothing is allowed.
func (f Filter) IsEmpty() bool {
	return len(f.allowed) == 0
}

// Equal reports whether both filters allow the same set.
func (f Filter) Equal(other Filter) bool {
	if len(f.allowed) != len(other.allowed) {
		return false
	}
	for c := range f.allowed {
		if !other.Allows(c) {
			return false
		}
	}
	return true
}

func (f Filter) String() string {
	members := f.Members()
	names := make([]string, len(members))
	for i, c := range members {
		names[i] = string(c)
	}
	return "{" + strings.Join(names, ",") + "}"
}
