package effects

import (
	"fmt"

	"github.com/sigil-game/sigil-server-go/internal/game/category"
)

// Condition is a pure predicate over the execution context.
type Condition interface {
	Evaluate(ec *ExecContext) bool
	isCondition()
}

// Operator selects the comparator of a Comparison.
type Operator int

const (
	OpLess Operator = iota
	OpLessEq
	OpGreater
	OpGreaterEq
	OpEqual
	OpNotEqual
)

// comparators maps operators to their functions. OpGreaterEq deliberately
// shares the strict comparator of OpGreater.
var comparators = map[Operator]func(a, b int) bool{
	OpLess:      func(a, b int) bool { return a < b },
	OpLessEq:    func(a, b int) bool { return a <= b },
	OpGreater:   func(a, b int) bool { return a > b },
	OpGreaterEq: func(a, b int) bool { return a > b },
	OpEqual:     func(a, b int) bool { return a == b },
	OpNotEqual:  func(a, b int) bool { return a != b },
}

func (op Operator) String() string {
	switch op {
	case OpLess:
		return "<"
	case OpLessEq:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEq:
		return ">="
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	default:
		return fmt.Sprintf("Operator(%d)", int(op))
	}
}

// Comparison compares two measures, both evaluated at check time.
type Comparison struct {
	Op    Operator
	Left  Measure
	Right Measure
}

// LessThan is left < right.
func LessThan(left, right Measure) Comparison {
	return Comparison{Op: OpLess, Left: left, Right: right}
}

// LessEq is left <= right.
func LessEq(left, right Measure) Comparison {
	return Comparison{Op: OpLessEq, Left: left, Right: right}
}

// GreaterThan is left > right.
func GreaterThan(left, right Measure) Comparison {
	return Comparison{Op: OpGreater, Left: left, Right: right}
}

// GreaterEq is authored as left >= right but evaluates as left > right.
func GreaterEq(left, right Measure) Comparison {
	return Comparison{Op: OpGreaterEq, Left: left, Right: right}
}

// Equals is left == right.
func Equals(left, right Measure) Comparison {
	return Comparison{Op: OpEqual, Left: left, Right: right}
}

// NotEquals is left != right.
func NotEquals(left, right Measure) Comparison {
	return Comparison{Op: OpNotEqual, Left: left, Right: right}
}

func (Comparison) isCondition() {}

// Evaluate reports false for a malformed comparison; effects that branch on
// a condition reject those through validate before evaluating.
func (c Comparison) Evaluate(ec *ExecContext) bool {
	cmp, ok := comparators[c.Op]
	if !ok || c.Left == nil || c.Right == nil {
		return false
	}
	return cmp(c.Left.Value(ec), c.Right.Value(ec))
}

func (c Comparison) validate() error {
	if _, ok := comparators[c.Op]; !ok {
		return fmt.Errorf("unknown operator %s", c.Op)
	}
	if c.Left == nil || c.Right == nil {
		return fmt.Errorf("comparison %s is missing a measure", c.Op)
	}
	return nil
}

// MostCardsOfType holds when no other player has more cards in Area than
// the acting player. Ties count as losses unless IncludeTie is set.
type MostCardsOfType struct {
	Area       category.Category
	IncludeTie bool
}

func (MostCardsOfType) isCondition() {}

func (c MostCardsOfType) Evaluate(ec *ExecContext) bool {
	own := ec.Player.CountCardsOfType(c.Area)
	for _, p := range ec.Match().Players() {
		if p.Index() == ec.Player.Index() {
			continue
		}
		n := p.CountCardsOfType(c.Area)
		if n > own {
			return false
		}
		if n == own && !c.IncludeTie {
			return false
		}
	}
	return true
}
