package runtime

import (
	"strings"

	"rgehrsitz/gact/internal/entity"
	"rgehrsitz/gact/internal/rules"
)

// Condition is a leaf test of the selector table.
type Condition func(selector rules.Selector, ctx *Context) bool

var conditions = map[string]Condition{
	rules.SelectorSkill:                   skillCondition,
	rules.SelectorAttribute:               attributeCondition,
	rules.SelectorAll:                     func(rules.Selector, *Context) bool { return true },
	rules.SelectorItemType:                itemTypeCondition,
	rules.SelectorActorName:               actorNameCondition,
	rules.SelectorItemName:                itemNameCondition,
	rules.SelectorItemDescriptionIncludes: itemDescriptionCondition,
	rules.SelectorItemSourceContains:      itemSourceCondition,
	rules.SelectorActorHasEffect:          actorHasEffectCondition,
	rules.SelectorActorHasEdge:            actorHasItem(entity.TypeEdge, false),
	rules.SelectorActorHasAbility:         actorHasItem(entity.TypeAbility, false),
	rules.SelectorActorHasHindrance:       actorHasItem(entity.TypeHindrance, false),
	rules.SelectorActorHasMajorHindrance:  actorHasItem(entity.TypeHindrance, true),
	rules.SelectorActorHasJoker:           actorHasJokerCondition,
	rules.SelectorIsWildcard:              isWildcardCondition,
	rules.SelectorTargetHasEdge:           targetHasItem(entity.TypeEdge, false),
	rules.SelectorTargetHasAbility:        targetHasItem(entity.TypeAbility, false),
	rules.SelectorTargetHasHindrance:      targetHasItem(entity.TypeHindrance, false),
	rules.SelectorTargetHasMajorHindrance: targetHasItem(entity.TypeHindrance, true),
	rules.SelectorTargetHasEffect:         targetHasEffectCondition,
	rules.SelectorFaction:                 factionCondition,
}

func lookupCondition(selectorType string) (Condition, bool) {
	if condition, ok := conditions[selectorType]; ok {
		return condition, true
	}
	switch {
	case strings.HasPrefix(selectorType, rules.SelectorActorAdditionalStatPrefix):
		return actorAdditionalStatCondition, true
	case strings.HasPrefix(selectorType, rules.SelectorItemAdditionalStatPrefix):
		return itemAdditionalStatCondition, true
	}
	return nil, false
}

// HasCondition reports whether the table can evaluate selectorType.
func HasCondition(selectorType string) bool {
	_, ok := lookupCondition(selectorType)
	return ok
}

// needle is the lower-cased text a value is matched with.
func needle(value rules.Value, ctx *Context) string {
	if value.Localized() {
		return strings.ToLower(ctx.localize(value.LocalizationKey))
	}
	return strings.ToLower(value.Raw)
}

// display translates stored text that is itself a localization key.
func display(text string, ctx *Context) string {
	if strings.HasPrefix(text, rules.LocalizationPrefix) {
		return ctx.localize(text)
	}
	return text
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}

func skillCondition(selector rules.Selector, ctx *Context) bool {
	item := ctx.Item
	if item == nil || item.Type == entity.TypeAttribute {
		return false
	}
	skill := item
	if item.Type != entity.TypeSkill {
		skill = ctx.Actor.ItemTrait(item, ctx.Localizer)
	}
	if skill == nil {
		return false
	}
	if selector.Value.Localized() {
		return containsFold(skill.Name, needle(selector.Value, ctx))
	}
	return containsFold(skill.Name, strings.ToLower(selector.Value.Raw)) ||
		containsFold(skill.Name, strings.ToLower(ctx.localize(rules.LocalizationPrefix+"SkillName-"+selector.Value.Raw)))
}

func attributeCondition(selector rules.Selector, ctx *Context) bool {
	return ctx.Item != nil && ctx.Item.Type == entity.TypeAttribute &&
		containsFold(ctx.Item.Name, needle(selector.Value, ctx))
}

func itemTypeCondition(selector rules.Selector, ctx *Context) bool {
	return ctx.Item != nil && ctx.Item.Type == selector.Value.Raw
}

func actorNameCondition(selector rules.Selector, ctx *Context) bool {
	return ctx.Actor != nil && containsFold(ctx.Actor.Name, needle(selector.Value, ctx))
}

func itemNameCondition(selector rules.Selector, ctx *Context) bool {
	return ctx.Item != nil && ctx.Item.Type != entity.TypeSkill &&
		containsFold(ctx.Item.Name, needle(selector.Value, ctx))
}

func itemDescriptionCondition(selector rules.Selector, ctx *Context) bool {
	if ctx.Item == nil {
		return false
	}
	description := ctx.Item.System.Description + " " + ctx.Item.System.Trapping
	return containsFold(description, needle(selector.Value, ctx))
}

func itemSourceCondition(selector rules.Selector, ctx *Context) bool {
	if ctx.Item == nil || ctx.Item.System.Source == "" {
		return false
	}
	return containsFold(ctx.Item.System.Source, needle(selector.Value, ctx))
}

// findEffect returns the first effect whose label contains the value.
func findEffect(actor *entity.Actor, selector rules.Selector, ctx *Context) *entity.Effect {
	n := needle(selector.Value, ctx)
	return actor.FindEffect(func(e *entity.Effect) bool {
		return containsFold(display(e.Label, ctx), n)
	})
}

func actorHasEffectCondition(selector rules.Selector, ctx *Context) bool {
	effect := findEffect(ctx.Actor, selector, ctx)
	return effect != nil && !effect.Disabled
}

func findOwned(actor *entity.Actor, itemType string, major bool, selector rules.Selector, ctx *Context) *entity.Item {
	n := needle(selector.Value, ctx)
	return actor.FindItem(func(it *entity.Item) bool {
		return it.Type == itemType && containsFold(it.Name, n) && (!major || it.System.Major)
	})
}

func actorHasItem(itemType string, major bool) Condition {
	return func(selector rules.Selector, ctx *Context) bool {
		return findOwned(ctx.Actor, itemType, major, selector, ctx) != nil
	}
}

// targetHasItem ORs the owned item test over every targeted token.
func targetHasItem(itemType string, major bool) Condition {
	return func(selector rules.Selector, ctx *Context) bool {
		selected := false
		for _, target := range ctx.Targets {
			if target == nil || target.Actor == nil {
				continue
			}
			selected = selected || findOwned(target.Actor, itemType, major, selector, ctx) != nil
		}
		return selected
	}
}

// targetHasEffectCondition lets every target owning a matching effect overwrite the
// result with that effect's enabled state; targets without a match leave it as is.
func targetHasEffectCondition(selector rules.Selector, ctx *Context) bool {
	selected := false
	for _, target := range ctx.Targets {
		if target == nil || target.Actor == nil {
			continue
		}
		if effect := findEffect(target.Actor, selector, ctx); effect != nil {
			selected = !effect.Disabled
		}
	}
	return selected
}

func actorHasJokerCondition(_ rules.Selector, ctx *Context) bool {
	return ctx.Actor != nil && ctx.Actor.HasJoker
}

func isWildcardCondition(selector rules.Selector, ctx *Context) bool {
	if ctx.Actor == nil {
		return false
	}
	selected := ctx.Actor.System.Wildcard
	// only the string "false" inverts; a boolean value does not
	if selector.Value.IsString() && selector.Value.Raw == "false" {
		selected = !selected
	}
	return selected
}

func factionCondition(selector rules.Selector, ctx *Context) bool {
	if len(ctx.Targets) == 0 {
		return false
	}
	token := ctx.Actor.ActiveToken()
	target := ctx.Targets[0]
	if token == nil || target == nil || entity.SameToken(token, target) {
		return false
	}
	if selector.Value.Raw == "same" {
		return token.Disposition == target.Disposition
	}
	return token.Disposition != target.Disposition
}

func actorAdditionalStatCondition(selector rules.Selector, ctx *Context) bool {
	if ctx.Actor == nil {
		return false
	}
	return additionalStatMatches(ctx.Actor.System.AdditionalStats, selector)
}

func itemAdditionalStatCondition(selector rules.Selector, ctx *Context) bool {
	if ctx.Item == nil {
		return false
	}
	return additionalStatMatches(ctx.Item.System.AdditionalStats, selector)
}

func additionalStatMatches(stats map[string]entity.AdditionalStat, selector rules.Selector) bool {
	key, _ := rules.AdditionalStatKey(selector.Type)
	stat, ok := stats[key]
	if !ok {
		return false
	}
	return looseEqual(stat, selector.Value)
}
