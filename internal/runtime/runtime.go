// internal/runtime/runtime.go

package runtime

import (
	"rgehrsitz/gact/internal/entity"
	"rgehrsitz/gact/internal/i18n"
	"rgehrsitz/gact/internal/rules"
)

// Context is what a roll exposes to selector rules. Evaluation never modifies it.
type Context struct {
	Item  *entity.Item
	Actor *entity.Actor
	// Targets are the currently targeted tokens, in targeting order.
	Targets []*entity.Token
	// Localizer resolves selector values that carry a localization key.
	// A nil Localizer leaves keys untranslated.
	Localizer i18n.Localizer
}

func (c *Context) localize(key string) string {
	if c.Localizer == nil {
		return key
	}
	return c.Localizer.Localize(key)
}

// Evaluate reports whether rule selects the roll described by ctx.
// It has no side effects and is safe for concurrent use.
func Evaluate(rule rules.Rule, ctx *Context) bool {
	if ctx == nil {
		ctx = &Context{}
	}
	return evaluate(rule, ctx)
}

func evaluate(rule rules.Rule, ctx *Context) bool {
	switch rule.Kind {
	case rules.KindLeaf:
		return checkSelector(rule.Selector, ctx)
	case rules.KindAnd:
		for _, child := range rule.Children {
			if !evaluate(child, ctx) {
				return false
			}
		}
		return true
	case rules.KindOr:
		for _, child := range rule.Children {
			if evaluate(child, ctx) {
				return true
			}
		}
		return false
	case rules.KindNot:
		// only the first child counts
		var first rules.Rule
		if len(rule.Children) > 0 {
			first = rule.Children[0]
		}
		return !evaluate(first, ctx)
	default:
		return false
	}
}

func checkSelector(selector rules.Selector, ctx *Context) bool {
	condition, ok := lookupCondition(selector.Type)
	if !ok {
		return false
	}
	return condition(selector, ctx)
}
