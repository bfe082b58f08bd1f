// internal/rules/condition.go

package rules

import "strings"

const (
	SelectorSkill                   = "skill"
	SelectorAttribute               = "attribute"
	SelectorAll                     = "all"
	SelectorItemType                = "item_type"
	SelectorActorName               = "actor_name"
	SelectorItemName                = "item_name"
	SelectorItemDescriptionIncludes = "item_description_includes"
	SelectorItemSourceContains      = "item_source_contains"
	SelectorActorHasEffect          = "actor_has_effect"
	SelectorActorHasEdge            = "actor_has_edge"
	SelectorActorHasAbility         = "actor_has_ability"
	SelectorActorHasHindrance       = "actor_has_hindrance"
	SelectorActorHasMajorHindrance  = "actor_has_major_hindrance"
	SelectorActorHasJoker           = "actor_has_joker"
	SelectorIsWildcard              = "is_wildcard"
	SelectorTargetHasEdge           = "target_has_edge"
	SelectorTargetHasAbility        = "target_has_ability"
	SelectorTargetHasHindrance      = "target_has_hindrance"
	SelectorTargetHasMajorHindrance = "target_has_major_hindrance"
	SelectorTargetHasEffect         = "target_has_effect"
	SelectorFaction                 = "faction"
	// SelectorGMAction marks actions toggled by the GM. It never matches a roll.
	SelectorGMAction = "gm_action"
)

// Selector types whose remainder names an additional stat key.
const (
	SelectorActorAdditionalStatPrefix = "actor_additional_stat_"
	SelectorItemAdditionalStatPrefix  = "item_additional_stat_"
)

var SupportedSelectors = []string{
	SelectorSkill,
	SelectorAttribute,
	SelectorAll,
	SelectorItemType,
	SelectorActorName,
	SelectorItemName,
	SelectorItemDescriptionIncludes,
	SelectorItemSourceContains,
	SelectorActorHasEffect,
	SelectorActorHasEdge,
	SelectorActorHasAbility,
	SelectorActorHasHindrance,
	SelectorActorHasMajorHindrance,
	SelectorActorHasJoker,
	SelectorIsWildcard,
	SelectorTargetHasEdge,
	SelectorTargetHasAbility,
	SelectorTargetHasHindrance,
	SelectorTargetHasMajorHindrance,
	SelectorTargetHasEffect,
	SelectorFaction,
	SelectorGMAction,
}

// IsSupportedSelector reports whether selectorType names a known leaf condition,
// including the additional stat families.
func IsSupportedSelector(selectorType string) bool {
	if stat, ok := AdditionalStatKey(selectorType); ok {
		return stat != ""
	}
	for _, supported := range SupportedSelectors {
		if selectorType == supported {
			return true
		}
	}
	return false
}

// AdditionalStatKey splits an additional stat selector type into its stat key.
func AdditionalStatKey(selectorType string) (string, bool) {
	for _, prefix := range []string{SelectorActorAdditionalStatPrefix, SelectorItemAdditionalStatPrefix} {
		if strings.HasPrefix(selectorType, prefix) {
			return selectorType[len(prefix):], true
		}
	}
	return "", false
}

// Keys describing the action itself.
var actionKeys = []string{"id", "name", "button_name", "group"}

// EffectKeys are the modifier keys an action may carry. The engine never reads them.
var EffectKeys = []string{
	"skillMod",
	"dmgMod",
	"dmgOverride",
	"defaultChecked",
	"runSkillMacro",
	"runDamageMacro",
	"raiseDamageFormula",
	"wildDieFormula",
	"rerollSkillMod",
	"rerollDamageMod",
	"shotsUsed",
	"rof",
	"self_add_status",
	"tnOverride",
	"extra_text",
	"overrideAp",
	"multiplyDmgMod",
	"add_wild_die",
	"avoid_exploding_damage",
}

// RequiredKeys must be present on every action document.
var RequiredKeys = []string{"id", "name"}

func IsActionKey(key string) bool {
	return contains(actionKeys, key)
}

func IsRuleKey(key string) bool {
	switch key {
	case KeySelectorType, KeySelectorValue, KeyAndSelector, KeyOrSelector, KeyNotSelector:
		return true
	}
	return false
}

func IsEffectKey(key string) bool {
	return contains(EffectKeys, key)
}

// IsSupportedKey reports whether key may appear at the top level of an action document.
func IsSupportedKey(key string) bool {
	return IsActionKey(key) || IsRuleKey(key) || IsEffectKey(key)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
