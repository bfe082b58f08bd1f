package catalog

import (
	_ "embed"
	"sync"

	"rgehrsitz/gact/internal/preprocessor"
	"rgehrsitz/gact/internal/rules"
)

//go:embed builtin_actions.json
var builtinJSON []byte

var (
	builtinsOnce   sync.Once
	builtinActions []*rules.Action
)

// Builtins returns the system actions shipped with the engine. They are parsed
// on first use, after the caller has configured logging.
func Builtins() []*rules.Action {
	builtinsOnce.Do(func() {
		builtinActions = mustLoadBuiltins()
	})
	out := make([]*rules.Action, len(builtinActions))
	copy(out, builtinActions)
	return out
}

func mustLoadBuiltins() []*rules.Action {
	actions, err := preprocessor.ParseActions(builtinJSON)
	if err != nil {
		panic(err)
	}
	return actions
}
