package effects

import (
	"errors"
	"fmt"
)

// ErrInvariant marks a fatal violation of a rules invariant: the ruleset or
// the frontend handed the interpreter something it promised never to.
// It is never converted into CantExec.
var ErrInvariant = errors.New("effect invariant violated")

func invariantf(effect any, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvariant, nameOf(effect), fmt.Sprintf(format, args...))
}

func frontendErr(effect any, err error) error {
	return fmt.Errorf("%s: frontend: %w", nameOf(effect), err)
}
