// internal/rules/rule.go

package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// LocalizationPrefix marks a selector value that names a translation key.
const LocalizationPrefix = "BRSW."

// Kind identifies which shape a Rule node has.
type Kind int

const (
	KindNone Kind = iota
	KindLeaf
	KindAnd
	KindOr
	KindNot
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindNot:
		return "not"
	default:
		return "none"
	}
}

// ValueType is the JSON scalar kind a selector value was written with.
type ValueType int

const (
	ValueString ValueType = iota
	ValueNumber
	ValueBool
)

// Value is a selector value. Raw holds the string itself, or the JSON text of
// a number or boolean. LocalizationKey is set when a string value is a
// translation key.
type Value struct {
	Raw             string
	LocalizationKey string
	Type            ValueType
}

// NewValue builds a string Value, deciding once whether raw is a localization key.
func NewValue(raw string) Value {
	v := Value{Raw: raw}
	if strings.HasPrefix(raw, LocalizationPrefix) {
		v.LocalizationKey = raw
	}
	return v
}

func NumberValue(n float64) Value {
	return Value{Raw: strconv.FormatFloat(n, 'f', -1, 64), Type: ValueNumber}
}

func BoolValue(b bool) Value {
	return Value{Raw: strconv.FormatBool(b), Type: ValueBool}
}

// IsString reports whether the value was written as a JSON string.
func (v Value) IsString() bool {
	return v.Type == ValueString
}

// Number returns the numeric value of a number Value.
func (v Value) Number() (float64, bool) {
	if v.Type != ValueNumber {
		return 0, false
	}
	n, err := strconv.ParseFloat(v.Raw, 64)
	return n, err == nil
}

// Bool returns the value of a boolean Value.
func (v Value) Bool() (bool, bool) {
	if v.Type != ValueBool {
		return false, false
	}
	return v.Raw == "true", true
}

func (v Value) jsonValue() interface{} {
	if v.Type == ValueString {
		return v.Raw
	}
	return json.RawMessage(v.Raw)
}

// Localized reports whether the value must be translated before matching.
func (v Value) Localized() bool {
	return v.LocalizationKey != ""
}

// Selector is the leaf test of a rule.
type Selector struct {
	Type  string
	Value Value
}

// Rule is a node of a selector expression tree.
type Rule struct {
	Kind     Kind
	Selector Selector
	Children []Rule
}

func Leaf(selectorType, value string) Rule {
	return LeafValue(selectorType, NewValue(value))
}

// LeafValue is Leaf for a value of any scalar type.
func LeafValue(selectorType string, value Value) Rule {
	return Rule{Kind: KindLeaf, Selector: Selector{Type: selectorType, Value: value}}
}

func And(children ...Rule) Rule {
	return Rule{Kind: KindAnd, Children: nonNil(children)}
}

func Or(children ...Rule) Rule {
	return Rule{Kind: KindOr, Children: nonNil(children)}
}

// Not negates its first child. Extra children are kept but never evaluated.
func Not(children ...Rule) Rule {
	return Rule{Kind: KindNot, Children: nonNil(children)}
}

func nonNil(children []Rule) []Rule {
	if children == nil {
		return []Rule{}
	}
	return children
}

// Walk visits r and every nested rule in depth-first order.
func (r Rule) Walk(fn func(Rule)) {
	fn(r)
	for _, child := range r.Children {
		child.Walk(fn)
	}
}

// Rule document keys.
const (
	KeySelectorType  = "selector_type"
	KeySelectorValue = "selector_value"
	KeyAndSelector   = "and_selector"
	KeyOrSelector    = "or_selector"
	KeyNotSelector   = "not_selector"
)

// ShapeError reports a rule document that names more than one shape.
type ShapeError struct {
	Keys []string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("ambiguous rule: keys %s are mutually exclusive", strings.Join(e.Keys, ", "))
}

// ruleKeys returns the shape keys present in doc, in dispatch order.
func ruleKeys(doc map[string]json.RawMessage) []string {
	var found []string
	for _, key := range []string{KeySelectorType, KeyAndSelector, KeyOrSelector, KeyNotSelector} {
		if _, ok := doc[key]; ok {
			found = append(found, key)
		}
	}
	return found
}

// decodeRule maps the key set of a rule document to a Rule variant.
// A document without any rule key decodes to KindNone.
func decodeRule(doc map[string]json.RawMessage) (Rule, error) {
	keys := ruleKeys(doc)
	if len(keys) > 1 {
		return Rule{}, &ShapeError{Keys: keys}
	}
	if len(keys) == 0 {
		return Rule{}, nil
	}

	switch keys[0] {
	case KeySelectorType:
		var selectorType string
		if err := json.Unmarshal(doc[KeySelectorType], &selectorType); err != nil {
			return Rule{}, fmt.Errorf("%s: %w", KeySelectorType, err)
		}
		value, err := decodeSelectorValue(doc[KeySelectorValue])
		if err != nil {
			return Rule{}, fmt.Errorf("%s: %w", KeySelectorValue, err)
		}
		return LeafValue(selectorType, value), nil
	case KeyAndSelector:
		children, err := decodeChildren(doc[KeyAndSelector])
		if err != nil {
			return Rule{}, fmt.Errorf("%s: %w", KeyAndSelector, err)
		}
		return Rule{Kind: KindAnd, Children: children}, nil
	case KeyOrSelector:
		children, err := decodeChildren(doc[KeyOrSelector])
		if err != nil {
			return Rule{}, fmt.Errorf("%s: %w", KeyOrSelector, err)
		}
		return Rule{Kind: KindOr, Children: children}, nil
	default:
		children, err := decodeChildren(doc[KeyNotSelector])
		if err != nil {
			return Rule{}, fmt.Errorf("%s: %w", KeyNotSelector, err)
		}
		return Rule{Kind: KindNot, Children: children}, nil
	}
}

func decodeChildren(data json.RawMessage) ([]Rule, error) {
	var docs []map[string]json.RawMessage
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, err
	}
	children := make([]Rule, 0, len(docs))
	for i, doc := range docs {
		child, err := decodeRule(doc)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		children = append(children, child)
	}
	return children, nil
}

// decodeSelectorValue accepts strings, numbers and booleans and keeps their type.
// A missing or null value is the empty string.
func decodeSelectorValue(data json.RawMessage) (Value, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return NewValue(""), nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return Value{}, err
		}
		return NewValue(s), nil
	}
	var scalar interface{}
	if err := json.Unmarshal(data, &scalar); err != nil {
		return Value{}, err
	}
	switch scalar.(type) {
	case float64:
		return Value{Raw: string(data), Type: ValueNumber}, nil
	case bool:
		return Value{Raw: string(data), Type: ValueBool}, nil
	default:
		return Value{}, fmt.Errorf("expected a string, number or boolean, got %s", data)
	}
}

// UnmarshalJSON decodes a standalone rule document.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	rule, err := decodeRule(doc)
	if err != nil {
		return err
	}
	*r = rule
	return nil
}

// MarshalJSON encodes the rule with its shape key.
func (r Rule) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, 2)
	r.encodeInto(doc)
	return json.Marshal(doc)
}

func (r Rule) encodeInto(doc map[string]interface{}) {
	switch r.Kind {
	case KindLeaf:
		doc[KeySelectorType] = r.Selector.Type
		doc[KeySelectorValue] = r.Selector.Value.jsonValue()
	case KindAnd:
		doc[KeyAndSelector] = nonNil(r.Children)
	case KindOr:
		doc[KeyOrSelector] = nonNil(r.Children)
	case KindNot:
		doc[KeyNotSelector] = nonNil(r.Children)
	}
}

// String renders the rule in a compact prefix form, used in logs.
func (r Rule) String() string {
	switch r.Kind {
	case KindLeaf:
		if !r.Selector.Value.IsString() {
			return r.Selector.Type + "(" + r.Selector.Value.Raw + ")"
		}
		return r.Selector.Type + "(" + strconv.Quote(r.Selector.Value.Raw) + ")"
	case KindAnd, KindOr, KindNot:
		parts := make([]string, len(r.Children))
		for i, child := range r.Children {
			parts[i] = child.String()
		}
		return r.Kind.String() + "(" + strings.Join(parts, ", ") + ")"
	default:
		return "none"
	}
}
