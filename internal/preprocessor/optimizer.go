package preprocessor

import (
	"fmt"

	"rgehrsitz/gact/internal/rules"

	"github.com/rs/zerolog/log"
)

// LoadContext collects what a set of loaded actions relies on.
type LoadContext struct {
	// SelectorUsage counts leaf selector types across all rules.
	SelectorUsage map[string]int
	// UnknownSelectors lists selector types no condition handles, first seen first.
	UnknownSelectors []string
}

func NewLoadContext() *LoadContext {
	return &LoadContext{SelectorUsage: make(map[string]int)}
}

// LoadActions runs the whole pipeline: parse, validate, optimize.
func LoadActions(actionsJSON []byte, context *LoadContext) ([]*rules.Action, error) {
	parsed, err := ParseActions(actionsJSON)
	if err != nil {
		return nil, err
	}
	if err := ValidateActions(parsed, context); err != nil {
		return nil, err
	}
	return OptimizeActions(parsed), nil
}

// ValidateActions records selector usage in context. Unknown selector types are
// logged, not refused: such leaves never select a roll.
func ValidateActions(actions []*rules.Action, context *LoadContext) error {
	log.Info().Msg("Started validating actions...")
	if context == nil {
		context = NewLoadContext()
	}
	for i, action := range actions {
		if action == nil {
			return fmt.Errorf("action %d is nil", i)
		}
		if err := validateRule(action.Rule); err != nil {
			return fmt.Errorf("action '%s': %w", action.ID, err)
		}
		if action.Rule.Kind == rules.KindNone {
			log.Warn().Str("action", action.ID).Msg("Action has no selector and never applies")
		}
		traverseRule(action, context)
	}
	return nil
}

func traverseRule(action *rules.Action, context *LoadContext) {
	action.Rule.Walk(func(r rules.Rule) {
		if r.Kind != rules.KindLeaf {
			return
		}
		selectorType := r.Selector.Type
		if _, seen := context.SelectorUsage[selectorType]; !seen && !rules.IsSupportedSelector(selectorType) {
			context.UnknownSelectors = append(context.UnknownSelectors, selectorType)
			log.Warn().Str("action", action.ID).Str("selector_type", selectorType).Msg("Unknown selector type")
		}
		context.SelectorUsage[selectorType]++
	})
}

// OptimizeActions drops actions without an id and collapses duplicate ids:
// the last definition wins and takes the place of the first.
func OptimizeActions(actions []*rules.Action) []*rules.Action {
	position := make(map[string]int, len(actions))
	optimized := make([]*rules.Action, 0, len(actions))
	for _, action := range actions {
		if action == nil {
			continue
		}
		if action.ID == "" {
			log.Warn().Str("name", action.Name).Msg("Dropping action without id")
			continue
		}
		if i, seen := position[action.ID]; seen {
			log.Debug().Str("action", action.ID).Msg("Duplicate action id replaces earlier definition")
			optimized[i] = action
			continue
		}
		position[action.ID] = len(optimized)
		optimized = append(optimized, action)
	}
	return optimized
}
