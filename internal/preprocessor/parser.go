package preprocessor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"rgehrsitz/gact/internal/i18n"
	"rgehrsitz/gact/internal/rules"

	"github.com/rs/zerolog/log"
)

// Reason classifies why an action document was refused.
type Reason string

const (
	ReasonInvalidJSON  Reason = "invalid_json"
	ReasonMissingKey   Reason = "missing_key"
	ReasonUnknownKey   Reason = "unknown_key"
	ReasonInvalidValue Reason = "invalid_value"
	ReasonInvalidRule  Reason = "invalid_rule"
)

// Message keys shown to the user for each reason.
const (
	MessageInvalidJSON = "BRSW.InvalidJSONError"
	MessageMissingKey  = "BRSW.MissingJSON"
	MessageUnknownKey  = "BRSW.UnknownActionKey"
)

// ValidationError reports an action document refused before registration.
type ValidationError struct {
	Reason Reason
	Key    string
	Err    error
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonMissingKey:
		return fmt.Sprintf("missing key '%s'", e.Key)
	case ReasonUnknownKey:
		return fmt.Sprintf("unknown key '%s'", e.Key)
	}
	if e.Err == nil {
		return string(e.Reason)
	}
	if e.Key != "" {
		return fmt.Sprintf("%s '%s': %v", e.Reason, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Localize renders the error with the user facing messages of loc.
func (e *ValidationError) Localize(loc i18n.Localizer) string {
	if loc == nil {
		loc = i18n.Identity{}
	}
	switch e.Reason {
	case ReasonInvalidJSON:
		return loc.Localize(MessageInvalidJSON)
	case ReasonMissingKey:
		return loc.Localize(MessageMissingKey) + e.Key
	case ReasonUnknownKey:
		return loc.Localize(MessageUnknownKey) + e.Key
	default:
		return e.Error()
	}
}

// ParseActions parses a JSON array of action documents. The legacy layout
// that wraps the array in another array is unwrapped.
func ParseActions(actionsJSON []byte) ([]*rules.Action, error) {
	log.Info().Msg("Started parsing actions...")
	var docs []json.RawMessage
	if err := json.Unmarshal(actionsJSON, &docs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal actions JSON: %w", err)
	}
	if len(docs) > 0 && bytes.HasPrefix(bytes.TrimSpace(docs[0]), []byte("[")) {
		log.Debug().Msg("Unwrapping nested actions array")
		if err := json.Unmarshal(docs[0], &docs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal nested actions JSON: %w", err)
		}
	}

	parsed := make([]*rules.Action, 0, len(docs))
	for i, doc := range docs {
		action, err := ParseAction(doc)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		parsed = append(parsed, action)
	}
	return parsed, nil
}

// ParseAction parses and checks one action document: it must be a JSON object,
// carry every required key and only supported keys, and hold a well formed rule.
func ParseAction(actionJSON []byte) (*rules.Action, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(actionJSON, &doc); err != nil || doc == nil {
		if err == nil {
			err = errors.New("action must be a JSON object")
		}
		return nil, &ValidationError{Reason: ReasonInvalidJSON, Err: err}
	}
	if err := checkKeys(doc); err != nil {
		return nil, err
	}
	for _, key := range []string{"id", "name", "button_name", "group"} {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, &ValidationError{Reason: ReasonInvalidValue, Key: key, Err: err}
		}
	}

	var action rules.Action
	if err := json.Unmarshal(actionJSON, &action); err != nil {
		return nil, &ValidationError{Reason: ReasonInvalidRule, Err: err}
	}
	if err := validateRule(action.Rule); err != nil {
		return nil, &ValidationError{Reason: ReasonInvalidRule, Err: err}
	}
	return &action, nil
}

func checkKeys(doc map[string]json.RawMessage) error {
	for _, key := range rules.RequiredKeys {
		if _, ok := doc[key]; !ok {
			return &ValidationError{Reason: ReasonMissingKey, Key: key}
		}
	}
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !rules.IsSupportedKey(key) {
			return &ValidationError{Reason: ReasonUnknownKey, Key: key}
		}
	}
	return nil
}

// validateRule refuses a not_selector without a child anywhere in the tree.
func validateRule(rule rules.Rule) error {
	var err error
	rule.Walk(func(r rules.Rule) {
		if err == nil && r.Kind == rules.KindNot && len(r.Children) == 0 {
			err = fmt.Errorf("%s needs one rule", rules.KeyNotSelector)
		}
	})
	return err
}
