package catalog

import (
	"sort"

	"rgehrsitz/gact/internal/i18n"
	"rgehrsitz/gact/internal/rules"
)

// Entry is one action row of the system action configuration.
type Entry struct {
	ID      string
	Name    string
	Enabled bool
}

type Group struct {
	Name    string
	Entries []Entry
}

// Groups lays out actions by group, in first-seen order, with translated
// button names and their enabled state.
func Groups(actions []*rules.Action, disabled []string, loc i18n.Localizer) []Group {
	if loc == nil {
		loc = i18n.Identity{}
	}
	off := toSet(disabled)
	var groups []Group
	index := map[string]int{}
	for _, action := range actions {
		i, ok := index[action.Group]
		if !ok {
			i = len(groups)
			index[action.Group] = i
			groups = append(groups, Group{Name: action.Group})
		}
		groups[i].Entries = append(groups[i].Entries, Entry{
			ID:      action.ID,
			Name:    loc.Localize(action.ButtonName),
			Enabled: !off[action.ID],
		})
	}
	return groups
}

// DisabledFromForm returns the ids whose checkbox is cleared, sorted.
func DisabledFromForm(form map[string]bool) []string {
	disabled := make([]string, 0)
	for id, checked := range form {
		if !checked {
			disabled = append(disabled, id)
		}
	}
	sort.Strings(disabled)
	return disabled
}
