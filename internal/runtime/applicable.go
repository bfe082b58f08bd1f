package runtime

import (
	"sort"

	"rgehrsitz/gact/internal/catalog"
	"rgehrsitz/gact/internal/rules"
)

// ApplicableActions returns the catalog actions that are not disabled and whose
// rule selects ctx, ordered by id.
func ApplicableActions(cat *catalog.Catalog, disabled []string, ctx *Context) []*rules.Action {
	return SelectActions(cat.Actions(), disabled, ctx)
}

// SelectActions is ApplicableActions over a plain action list.
func SelectActions(actions []*rules.Action, disabled []string, ctx *Context) []*rules.Action {
	off := make(map[string]bool, len(disabled))
	for _, id := range disabled {
		off[id] = true
	}
	selected := make([]*rules.Action, 0)
	for _, action := range actions {
		if action == nil || off[action.ID] {
			continue
		}
		if Evaluate(action.Rule, ctx) {
			selected = append(selected, action)
		}
	}
	SortByID(selected)
	return selected
}

// SortByID orders actions by ascending id. Actions sharing an id keep their
// relative order.
func SortByID(actions []*rules.Action) {
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].ID < actions[j].ID
	})
}
