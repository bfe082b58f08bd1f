// internal/rules/action.go

package rules

import (
	"encoding/json"
	"fmt"
)

// Action is a global action: an optional roll modifier bundle guarded by a Rule.
type Action struct {
	ID         string
	Name       string
	ButtonName string
	Group      string
	Rule       Rule
	// Effects holds the modifier keys (skillMod, dmgMod, ...) untouched.
	Effects map[string]json.RawMessage
}

// SelectorType returns the leaf selector type of a single-leaf action, or "".
func (a *Action) SelectorType() string {
	if a.Rule.Kind != KindLeaf {
		return ""
	}
	return a.Rule.Selector.Type
}

// Effect decodes one effect value into out. It reports false when the key is absent.
func (a *Action) Effect(key string, out interface{}) (bool, error) {
	raw, ok := a.Effects[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("effect %s of action %s: %w", key, a.ID, err)
	}
	return true, nil
}

type actionHeader struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ButtonName string `json:"button_name,omitempty"`
	Group      string `json:"group,omitempty"`
}

// UnmarshalJSON decodes the flat action document. Unknown keys are kept as effects;
// rejecting them is the preprocessor's job.
func (a *Action) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	var header actionHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return err
	}
	rule, err := decodeRule(doc)
	if err != nil {
		return fmt.Errorf("action %q: %w", header.ID, err)
	}

	effects := make(map[string]json.RawMessage)
	for key, raw := range doc {
		if IsActionKey(key) || IsRuleKey(key) {
			continue
		}
		effects[key] = raw
	}

	*a = Action{
		ID:         header.ID,
		Name:       header.Name,
		ButtonName: header.ButtonName,
		Group:      header.Group,
		Rule:       rule,
		Effects:    effects,
	}
	return nil
}

// MarshalJSON writes the flat action document back out.
func (a Action) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, len(a.Effects)+6)
	for key, raw := range a.Effects {
		doc[key] = raw
	}
	doc["id"] = a.ID
	doc["name"] = a.Name
	if a.ButtonName != "" {
		doc["button_name"] = a.ButtonName
	}
	if a.Group != "" {
		doc["group"] = a.Group
	}
	a.Rule.encodeInto(doc)
	return json.Marshal(doc)
}
