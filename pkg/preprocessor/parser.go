// pkg/preprocessor/parser.go

package preprocessor

import (
	"errors"

	"rgehrsitz/gact/internal/i18n"
	internal "rgehrsitz/gact/internal/preprocessor"
	"rgehrsitz/gact/internal/rules"
)

// ValidationError is the error returned for refused action documents.
type ValidationError = internal.ValidationError

// ParseAction parses one user authored action document.
func ParseAction(actionJSON []byte) (*rules.Action, error) {
	return internal.ParseAction(actionJSON)
}

// ParseActions parses a document holding a list of actions.
func ParseActions(actionsJSON []byte) ([]*rules.Action, error) {
	return internal.LoadActions(actionsJSON, internal.NewLoadContext())
}

// CheckJSON validates the text of an action editor. It returns the title to
// show for the action: its name when valid, the translated error otherwise.
// ok reports whether the action can be registered.
func CheckJSON(text string, loc i18n.Localizer) (title string, ok bool) {
	action, err := internal.ParseAction([]byte(text))
	if err == nil {
		return action.Name, true
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Localize(loc), false
	}
	return err.Error(), false
}
