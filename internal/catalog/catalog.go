// Package catalog assembles the global actions available to a world.
package catalog

import (
	"rgehrsitz/gact/internal/rules"
)

// Catalog is an immutable, ordered set of actions with unique ids.
// Every change produces a new Catalog.
type Catalog struct {
	actions []*rules.Action
	byID    map[string]int
}

// New merges built-in and custom actions. A custom action replaces the built-in
// with the same id; built-ins come first, then custom actions in their order.
// Within custom, a later duplicate id replaces the earlier entry in place.
func New(builtins, custom []*rules.Action) *Catalog {
	custom = dedup(custom)
	replaced := make(map[string]bool, len(custom))
	for _, action := range custom {
		replaced[action.ID] = true
	}

	merged := make([]*rules.Action, 0, len(builtins)+len(custom))
	for _, action := range dedup(builtins) {
		if !replaced[action.ID] {
			merged = append(merged, action)
		}
	}
	merged = append(merged, custom...)
	return build(merged)
}

// With returns a catalog where every action sharing an id with actions is
// removed and actions are appended.
func (c *Catalog) With(actions ...*rules.Action) *Catalog {
	added := dedup(actions)
	ids := make(map[string]bool, len(added))
	for _, action := range added {
		ids[action.ID] = true
	}
	merged := make([]*rules.Action, 0, c.Len()+len(added))
	for _, action := range c.list() {
		if !ids[action.ID] {
			merged = append(merged, action)
		}
	}
	merged = append(merged, added...)
	return build(merged)
}

func build(actions []*rules.Action) *Catalog {
	c := &Catalog{actions: actions, byID: make(map[string]int, len(actions))}
	for i, action := range actions {
		c.byID[action.ID] = i
	}
	return c
}

// dedup drops nil entries and keeps the last action of every id at the
// position of its first occurrence.
func dedup(actions []*rules.Action) []*rules.Action {
	pos := make(map[string]int, len(actions))
	out := make([]*rules.Action, 0, len(actions))
	for _, action := range actions {
		if action == nil {
			continue
		}
		if i, seen := pos[action.ID]; seen {
			out[i] = action
			continue
		}
		pos[action.ID] = len(out)
		out = append(out, action)
	}
	return out
}

func (c *Catalog) list() []*rules.Action {
	if c == nil {
		return nil
	}
	return c.actions
}

// Len returns the number of actions.
func (c *Catalog) Len() int {
	return len(c.list())
}

// Actions returns the actions in catalog order. The slice is a copy.
func (c *Catalog) Actions() []*rules.Action {
	out := make([]*rules.Action, len(c.list()))
	copy(out, c.list())
	return out
}

// Lookup returns the action with the given id.
func (c *Catalog) Lookup(id string) (*rules.Action, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return c.actions[i], true
}

// ByName returns the first action with the given name.
func (c *Catalog) ByName(name string) (*rules.Action, bool) {
	for _, action := range c.list() {
		if action.Name == name {
			return action, true
		}
	}
	return nil, false
}

// Enabled returns the actions whose id is not disabled, in catalog order.
func (c *Catalog) Enabled(disabled []string) []*rules.Action {
	off := toSet(disabled)
	out := make([]*rules.Action, 0, c.Len())
	for _, action := range c.list() {
		if !off[action.ID] {
			out = append(out, action)
		}
	}
	return out
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
