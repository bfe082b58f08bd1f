package catalog

import (
	"fmt"

	"rgehrsitz/gact/internal/i18n"
	"rgehrsitz/gact/internal/rules"
)

// GMAction is a gm_action toggled from the GM panel instead of matched by a rule.
type GMAction struct {
	Action  *rules.Action
	Enabled bool
}

// GMState is the persisted toggle state of one GM action.
type GMState struct {
	ID     string `json:"id"`
	Enable bool   `json:"enable"`
}

// GMActions returns the enabled-in-world GM actions, all toggled off.
func (c *Catalog) GMActions(disabled []string) []GMAction {
	var out []GMAction
	for _, action := range c.Enabled(disabled) {
		if action.SelectorType() == rules.SelectorGMAction {
			out = append(out, GMAction{Action: action})
		}
	}
	return out
}

// RefreshGMActions carries the previous toggle state over to current by id.
// GM actions no longer present in current are forgotten.
func RefreshGMActions(previous []GMState, current []GMAction) []GMAction {
	enabled := make(map[string]bool, len(previous))
	for _, state := range previous {
		if state.Enable {
			enabled[state.ID] = true
		}
	}
	out := make([]GMAction, len(current))
	for i, gm := range current {
		out[i] = GMAction{Action: gm.Action, Enabled: enabled[gm.Action.ID]}
	}
	return out
}

// Toggle flips the GM action with the given name. It fails when no action has that name.
func Toggle(actions []GMAction, name string) ([]GMAction, error) {
	out := make([]GMAction, len(actions))
	copy(out, actions)
	found := false
	for i := range out {
		if out[i].Action.Name == name {
			out[i].Enabled = !out[i].Enabled
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("no GM action named '%s'", name)
	}
	return out, nil
}

// States returns the persisted form of actions.
func States(actions []GMAction) []GMState {
	out := make([]GMState, len(actions))
	for i, gm := range actions {
		out[i] = GMState{ID: gm.Action.ID, Enable: gm.Enabled}
	}
	return out
}

// EnabledGMActions returns the actions currently toggled on.
func EnabledGMActions(actions []GMAction) []*rules.Action {
	var out []*rules.Action
	for _, gm := range actions {
		if gm.Enabled {
			out = append(out, gm.Action)
		}
	}
	return out
}

type GMEntry struct {
	Name    string
	Label   string
	Enabled bool
}

type GMGroup struct {
	Name    string
	Entries []GMEntry
}

// GroupGMActions groups actions by group in first-seen order, translating group
// and button names that are localization keys.
func GroupGMActions(actions []GMAction, loc i18n.Localizer) []GMGroup {
	var groups []GMGroup
	index := map[string]int{}
	for _, gm := range actions {
		i, ok := index[gm.Action.Group]
		if !ok {
			i = len(groups)
			index[gm.Action.Group] = i
			groups = append(groups, GMGroup{Name: localizeKey(gm.Action.Group, loc)})
		}
		groups[i].Entries = append(groups[i].Entries, GMEntry{
			Name:    gm.Action.Name,
			Label:   localizeKey(gm.Action.ButtonName, loc),
			Enabled: gm.Enabled,
		})
	}
	return groups
}

func localizeKey(text string, loc i18n.Localizer) string {
	value := rules.NewValue(text)
	if !value.Localized() || loc == nil {
		return text
	}
	return loc.Localize(value.LocalizationKey)
}
