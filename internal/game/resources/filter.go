package resources

import "github.com/sigil-game/sigil-server-go/internal/game/category"

// Filter restricts which resources a spend may use.
type Filter = category.Filter

// AnyColor allows spending any of the five colors.
func AnyColor() Filter {
	return category.AnyColor()
}

// NotYellow allows every color except yellow.
func NotYellow() Filter {
	return category.AnyColor().Without(category.Yellow)
}

// NotRed allows every color except red.
func NotRed() Filter {
	return category.AnyColor().Without(category.Red)
}

// OnlyAllowed reports whether every positive entry of p passes the filter.
func (p Pool) OnlyAllowed(filter Filter) bool {
	for resource, amount := range p {
		if amount > 0 && !filter.Allows(resource) {
			return false
		}
	}
	return true
}
