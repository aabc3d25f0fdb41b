package catalog

import (
	"fmt"

	"github.com/sigil-game/sigil-server-go/internal/game/category"
	"github.com/sigil-game/sigil-server-go/internal/game/effects"
	"github.com/sigil-game/sigil-server-go/internal/game/resources"
	"github.com/sigil-game/sigil-server-go/internal/game/ruleset"
	"gopkg.in/yaml.v3"
)

// DecodeEffect builds an effect tree from YAML. Every node is either a bare
// name (`discard_this`) or a mapping with a single key naming the variant:
//
//	group:
//	  - gain: {resource: RED, amount: 2}
//	  - convert:
//	      spend: {spend: {colors: any, amount: 1}}
//	      gain: {gain: {resource: YELLOW, amount: 1}}
func DecodeEffect(node *yaml.Node) (effects.Effect, error) {
	node = resolve(node)
	if node.Kind == yaml.ScalarNode {
		return decodeBareEffect(node)
	}

	key, value, err := single(node)
	if err != nil {
		return nil, err
	}

	switch key {
	case "gain":
		var p struct {
			Resource string `yaml:"resource"`
			Amount   int    `yaml:"amount"`
		}
		if err := value.Decode(&p); err != nil {
			return nil, at(value, "gain: %v", err)
		}
		res, err := category.Parse(p.Resource)
		if err != nil {
			return nil, at(value, "gain: %v", err)
		}
		return effects.GainResource{Resource: res, Amount: p.Amount}, nil

	case "spend":
		var p struct {
			Colors yaml.Node `yaml:"colors"`
			Amount int       `yaml:"amount"`
		}
		if err := value.Decode(&p); err != nil {
			return nil, at(value, "spend: %v", err)
		}
		filter, err := decodeResourceFilter(&p.Colors)
		if err != nil {
			return nil, err
		}
		return effects.SpendResource{Colors: filter, Amount: p.Amount}, nil

	case "add_marker":
		n, err := decodeAmount(value, 1)
		if err != nil {
			return nil, err
		}
		return effects.AddMarker{Amount: n}, nil

	case "remove_marker":
		n, err := decodeAmount(value, 1)
		if err != nil {
			return nil, err
		}
		return effects.RemoveMarker{Amount: n}, nil

	case "group", "strict":
		children, err := decodeEffectList(value)
		if err != nil {
			return nil, err
		}
		if key == "group" {
			return effects.Group(children...), nil
		}
		return effects.Strict(children...), nil

	case "convert":
		var p struct {
			Spend yaml.Node `yaml:"spend"`
			Gain  yaml.Node `yaml:"gain"`
			Side  yaml.Node `yaml:"side"`
		}
		if err := value.Decode(&p); err != nil {
			return nil, at(value, "convert: %v", err)
		}
		spend, err := DecodeEffect(&p.Spend)
		if err != nil {
			return nil, err
		}
		gain, err := DecodeEffect(&p.Gain)
		if err != nil {
			return nil, err
		}
		side, err := decodeOptionalEffect(&p.Side)
		if err != nil {
			return nil, err
		}
		return effects.Convert(spend, gain, side), nil

	case "suppress_fail":
		inner, err := DecodeEffect(value)
		if err != nil {
			return nil, err
		}
		return effects.SuppressFail{Effect: inner}, nil

	case "if":
		var p struct {
			Cond yaml.Node `yaml:"cond"`
			Then yaml.Node `yaml:"then"`
			Else yaml.Node `yaml:"else"`
		}
		if err := value.Decode(&p); err != nil {
			return nil, at(value, "if: %v", err)
		}
		cond, err := DecodeCondition(&p.Cond)
		if err != nil {
			return nil, err
		}
		ifTrue, err := DecodeEffect(&p.Then)
		if err != nil {
			return nil, err
		}
		ifFalse, err := decodeOptionalEffect(&p.Else)
		if err != nil {
			return nil, err
		}
		if ifFalse == nil {
			ifFalse = effects.NullEffect{}
		}
		return effects.ConditionalEffect{Cond: cond, IfTrue: ifTrue, IfFalse: ifFalse}, nil

	case "for_each_marker", "for_each_color_set", "for_each_discard",
		"for_each_placed_magic", "for_each_empty_color", "for_each_chosen_color":
		inner, err := DecodeEffect(value)
		if err != nil {
			return nil, err
		}
		return wrapRepeat(key, inner), nil

	case "for_each_card_of_type":
		var p struct {
			Area   string    `yaml:"area"`
			Effect yaml.Node `yaml:"effect"`
		}
		if err := value.Decode(&p); err != nil {
			return nil, at(value, "for_each_card_of_type: %v", err)
		}
		area, err := category.Parse(p.Area)
		if err != nil {
			return nil, at(value, "for_each_card_of_type: %v", err)
		}
		inner, err := DecodeEffect(&p.Effect)
		if err != nil {
			return nil, err
		}
		return effects.ForEachCardOfType{Area: area, Effect: inner}, nil

	case "for_each":
		var p struct {
			Measure yaml.Node `yaml:"measure"`
			Effect  yaml.Node `yaml:"effect"`
		}
		if err := value.Decode(&p); err != nil {
			return nil, at(value, "for_each: %v", err)
		}
		m, err := DecodeMeasure(&p.Measure)
		if err != nil {
			return nil, err
		}
		inner, err := DecodeEffect(&p.Effect)
		if err != nil {
			return nil, err
		}
		return effects.ForEachM{Measure: m, Effect: inner}, nil

	case "choose_from_discard":
		var p struct {
			Offset int      `yaml:"offset"`
			Kinds  []string `yaml:"kinds"`
		}
		if err := value.Decode(&p); err != nil {
			return nil, at(value, "choose_from_discard: %v", err)
		}
		kinds, err := parseCategories(p.Kinds)
		if err != nil {
			return nil, at(value, "choose_from_discard: %v", err)
		}
		return effects.ChooseFromDiscardOf{PlayerOffset: p.Offset, Filter: category.NewFilter(kinds...)}, nil

	case "exec_own_placed":
		p := struct {
			Times int `yaml:"times"`
		}{Times: 1}
		if err := decodeOptional(value, &p); err != nil {
			return nil, at(value, "exec_own_placed: %v", err)
		}
		return effects.ExecOwnPlacedCard{Times: p.Times}, nil

	case "exec_chosen_color":
		p := struct {
			Amount          int `yaml:"amount"`
			EvergreenAmount int `yaml:"evergreen_amount"`
		}{Amount: 2}
		if err := decodeOptional(value, &p); err != nil {
			return nil, at(value, "exec_chosen_color: %v", err)
		}
		return effects.ExecChosenColorNTimes{Amount: p.Amount, EvergreenAmount: p.EvergreenAmount}, nil

	case "exec_colors_not_biggest":
		p := struct {
			Evergreens bool `yaml:"evergreens"`
		}{Evergreens: true}
		if err := decodeOptional(value, &p); err != nil {
			return nil, at(value, "exec_colors_not_biggest: %v", err)
		}
		return effects.ExecColorsNotBiggest{DoEvergreens: p.Evergreens}, nil

	case "exec_chosen_and_discard":
		p := struct {
			N int `yaml:"n"`
		}{N: 3}
		if err := decodeOptional(value, &p); err != nil {
			return nil, at(value, "exec_chosen_and_discard: %v", err)
		}
		return effects.ExecChosenNTimesAndDiscard{N: p.N}, nil

	case "move_chosen":
		var p struct {
			Adjacencies map[string][]string `yaml:"adjacencies"`
		}
		if err := decodeOptional(value, &p); err != nil {
			return nil, at(value, "move_chosen: %v", err)
		}
		if p.Adjacencies == nil {
			return effects.MoveChosen(nil), nil
		}
		adj := make(ruleset.Adjacencies, len(p.Adjacencies))
		for from, to := range p.Adjacencies {
			src, err := category.Parse(from)
			if err != nil {
				return nil, at(value, "move_chosen: %v", err)
			}
			dests, err := parseCategories(to)
			if err != nil {
				return nil, at(value, "move_chosen: %v", err)
			}
			adj[src] = dests
		}
		if err := adj.Validate(); err != nil {
			return nil, at(value, "move_chosen: %v", err)
		}
		return effects.MoveChosen(adj), nil
	}

	return nil, at(node, "unknown effect %q", key)
}

func decodeBareEffect(node *yaml.Node) (effects.Effect, error) {
	switch node.Value {
	case "null", "~", "nothing", "":
		return effects.NullEffect{}, nil
	case "discard_this":
		return effects.DiscardThis{}, nil
	case "add_marker":
		return effects.AddMarker{Amount: 1}, nil
	case "remove_marker":
		return effects.RemoveMarker{Amount: 1}, nil
	case "exec_own_placed":
		return effects.ExecOwnPlacedCard{Times: 1}, nil
	case "exec_chosen_color":
		return effects.ExecChosenColorNTimes{Amount: 2}, nil
	case "exec_colors_not_biggest":
		return effects.ExecColorsNotBiggest{DoEvergreens: true}, nil
	case "exec_chosen_and_discard":
		return effects.ExecChosenNTimesAndDiscard{N: 3}, nil
	case "move_chosen":
		return effects.MoveChosen(nil), nil
	}
	return nil, at(node, "unknown effect %q", node.Value)
}

func wrapRepeat(key string, inner effects.Effect) effects.Effect {
	switch key {
	case "for_each_marker":
		return effects.ForEachMarker{Effect: inner}
	case "for_each_color_set":
		return effects.ForEachColorSet{Effect: inner}
	case "for_each_discard":
		return effects.ForEachDiscard{Effect: inner}
	case "for_each_placed_magic":
		return effects.ForEachPlacedMagic{Effect: inner}
	case "for_each_empty_color":
		return effects.ForEachEmptyColor{Effect: inner}
	default:
		return effects.ForEachDynChosenColor{Effect: inner}
	}
}

// DecodeCondition builds a condition: a comparison such as
// `ge: [markers, 3]` or `most_cards: {area: RED, include_tie: true}`.
func DecodeCondition(node *yaml.Node) (effects.Condition, error) {
	node = resolve(node)
	key, value, err := single(node)
	if err != nil {
		return nil, err
	}

	if key == "most_cards" {
		var p struct {
			Area       string `yaml:"area"`
			IncludeTie bool   `yaml:"include_tie"`
		}
		if err := value.Decode(&p); err != nil {
			return nil, at(value, "most_cards: %v", err)
		}
		area, err := category.Parse(p.Area)
		if err != nil {
			return nil, at(value, "most_cards: %v", err)
		}
		return effects.MostCardsOfType{Area: area, IncludeTie: p.IncludeTie}, nil
	}

	ops := map[string]func(l, r effects.Measure) effects.Comparison{
		"lt": effects.LessThan,
		"le": effects.LessEq,
		"gt": effects.GreaterThan,
		"ge": effects.GreaterEq,
		"eq": effects.Equals,
		"ne": effects.NotEquals,
	}
	build, ok := ops[key]
	if !ok {
		return nil, at(node, "unknown condition %q", key)
	}
	if value.Kind != yaml.SequenceNode || len(value.Content) != 2 {
		return nil, at(value, "%s: expected [left, right]", key)
	}
	left, err := DecodeMeasure(value.Content[0])
	if err != nil {
		return nil, err
	}
	right, err := DecodeMeasure(value.Content[1])
	if err != nil {
		return nil, err
	}
	return build(left, right), nil
}

// DecodeMeasure builds a measure: an integer constant, `discarded`,
// `markers`, `{cards_of_type: AREA}` or `{resource: COLOR}`.
func DecodeMeasure(node *yaml.Node) (effects.Measure, error) {
	node = resolve(node)
	if node.Kind == yaml.ScalarNode {
		switch node.Value {
		case "discarded":
			return effects.DiscardedCards{}, nil
		case "markers":
			return effects.NumMarkers{}, nil
		}
		var n int
		if err := node.Decode(&n); err != nil {
			var f float64
			if node.Decode(&f) == nil {
				return nil, at(node, "measure constant %q must be an integer", node.Value)
			}
			return nil, at(node, "unknown measure %q", node.Value)
		}
		return effects.ConstMeasure{N: n}, nil
	}

	key, value, err := single(node)
	if err != nil {
		return nil, err
	}
	var name string
	if err := value.Decode(&name); err != nil {
		return nil, at(value, "%s: %v", key, err)
	}
	c, err := category.Parse(name)
	if err != nil {
		return nil, at(value, "%s: %v", key, err)
	}
	switch key {
	case "cards_of_type":
		return effects.CardsOfType{Area: c}, nil
	case "resource":
		return effects.ResourceCount{Resource: c}, nil
	}
	return nil, at(node, "unknown measure %q", key)
}

func decodeEffectList(node *yaml.Node) ([]effects.Effect, error) {
	node = resolve(node)
	if node.Kind != yaml.SequenceNode {
		return nil, at(node, "expected a list of effects")
	}
	out := make([]effects.Effect, 0, len(node.Content))
	for _, child := range node.Content {
		e, err := DecodeEffect(child)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeOptionalEffect(node *yaml.Node) (effects.Effect, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	return DecodeEffect(node)
}

func decodeOptional(node *yaml.Node, out any) error {
	node = resolve(node)
	if node.Kind == yaml.ScalarNode && (node.Tag == "!!null" || node.Value == "") {
		return nil
	}
	return node.Decode(out)
}

func decodeAmount(node *yaml.Node, def int) (int, error) {
	node = resolve(node)
	if node.Kind == yaml.ScalarNode {
		if node.Tag == "!!null" || node.Value == "" {
			return def, nil
		}
		var n int
		if err := node.Decode(&n); err != nil {
			return 0, at(node, "amount: %v", err)
		}
		return n, nil
	}
	p := struct {
		Amount int `yaml:"amount"`
	}{Amount: def}
	if err := node.Decode(&p); err != nil {
		return 0, at(node, "amount: %v", err)
	}
	return p.Amount, nil
}

func decodeResourceFilter(node *yaml.Node) (resources.Filter, error) {
	node = resolve(node)
	switch {
	case node.Kind == 0:
		return resources.AnyColor(), nil
	case node.Kind == yaml.ScalarNode:
		switch node.Value {
		case "any", "":
			return resources.AnyColor(), nil
		case "not_yellow":
			return resources.NotYellow(), nil
		case "not_red":
			return resources.NotRed(), nil
		}
		return resources.Filter{}, at(node, "unknown color filter %q", node.Value)
	}
	var names []string
	if err := node.Decode(&names); err != nil {
		return resources.Filter{}, at(node, "colors: %v", err)
	}
	colors, err := parseCategories(names)
	if err != nil {
		return resources.Filter{}, at(node, "colors: %v", err)
	}
	return category.NewFilter(colors...), nil
}

func parseCategories(names []string) ([]category.Category, error) {
	out := make([]category.Category, 0, len(names))
	for _, name := range names {
		c, err := category.Parse(name)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func single(node *yaml.Node) (string, *yaml.Node, error) {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return "", nil, at(node, "expected a mapping with exactly one key")
	}
	return node.Content[0].Value, resolve(node.Content[1]), nil
}

func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		return resolve(node.Content[0])
	}
	return node
}

func at(node *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", node.Line, fmt.Sprintf(format, args...))
}
