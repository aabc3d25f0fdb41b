package effects

// EffectGroup runs every child in order regardless of their results and
// never fails itself.
type EffectGroup struct {
	effects []Effect
}

// Group creates an EffectGroup over a private copy of the children.
func Group(children ...Effect) EffectGroup {
	return EffectGroup{effects: append([]Effect(nil), children...)}
}

// Effects returns a copy of the children.
func (g EffectGroup) Effects() []Effect {
	return append([]Effect(nil), g.effects...)
}

func (EffectGroup) isEffect() {}

func (g EffectGroup) Execute(ec *ExecContext) (Result, error) {
	for _, child := range g.effects {
		if _, err := execChild(ec, child); err != nil {
			return CantExec, err
		}
	}
	return Done, nil
}

// StrictEffectGroup runs children in order and stops at the first one that
// reports CantExec, reporting CantExec itself. Nested inside another node it
// triggers that node's failure path, e.g. as the spend of a ConvertEffect.
type StrictEffectGroup struct {
	effects []Effect
}

// Strict creates a StrictEffectGroup over a private copy of the children.
func Strict(children ...Effect) StrictEffectGroup {
	return StrictEffectGroup{effects: append([]Effect(nil), children...)}
}

// Effects returns a copy of the children.
func (g StrictEffectGroup) Effects() []Effect {
	return append([]Effect(nil), g.effects...)
}

func (StrictEffectGroup) isEffect() {}

func (g StrictEffectGroup) Execute(ec *ExecContext) (Result, error) {
	for _, child := range g.effects {
		res, err := execChild(ec, child)
		if err != nil {
			return CantExec, err
		}
		if res.Failed() {
			return CantExec, nil
		}
	}
	return Done, nil
}

// ConvertEffect lets the player pay Spend for Gain plus an optional Side
// effect. When Spend cannot be paid nothing else runs, but the card keeps
// executing: ConvertEffect itself never reports CantExec.
type ConvertEffect struct {
	Spend Effect
	Gain  Effect
	Side  Effect
}

// Convert creates a ConvertEffect. side may be nil.
func Convert(spend, gain, side Effect) ConvertEffect {
	if side == nil {
		side = NullEffect{}
	}
	return ConvertEffect{Spend: spend, Gain: gain, Side: side}
}

func (ConvertEffect) isEffect() {}

func (e ConvertEffect) Execute(ec *ExecContext) (Result, error) {
	res, err := execChild(ec, e.Spend)
	if err != nil {
		return CantExec, err
	}
	if res.Failed() {
		return Done, nil
	}
	if _, err := execChild(ec, e.Gain); err != nil {
		return CantExec, err
	}
	if _, err := execChild(ec, e.Side); err != nil {
		return CantExec, err
	}
	return Done, nil
}

// SuppressFail runs Effect and always reports Done.
type SuppressFail struct {
	Effect Effect
}

func (SuppressFail) isEffect() {}

func (e SuppressFail) Execute(ec *ExecContext) (Result, error) {
	if _, err := execChild(ec, e.Effect); err != nil {
		return CantExec, err
	}
	return Done, nil
}

// ConditionalEffect runs IfTrue or IfFalse depending on Cond and passes the
// branch's result through. A nil IfFalse does nothing.
type ConditionalEffect struct {
	Cond    Condition
	IfTrue  Effect
	IfFalse Effect
}

func (ConditionalEffect) isEffect() {}

func (e ConditionalEffect) Execute(ec *ExecContext) (Result, error) {
	if e.Cond == nil {
		return CantExec, invariantf(e, "no condition")
	}
	if v, ok := e.Cond.(interface{ validate() error }); ok {
		if err := v.validate(); err != nil {
			return CantExec, invariantf(e, "%v", err)
		}
	}
	if e.Cond.Evaluate(ec) {
		return execChild(ec, e.IfTrue)
	}
	return execChild(ec, e.IfFalse)
}
