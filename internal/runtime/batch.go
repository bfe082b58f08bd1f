package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"rgehrsitz/gact/internal/catalog"
	"rgehrsitz/gact/internal/entity"
	"rgehrsitz/gact/internal/i18n"
	"rgehrsitz/gact/internal/rules"

	"golang.org/x/sync/errgroup"
)

// Roll is the serialized form of a Context.
type Roll struct {
	Item    *entity.Item    `json:"item"`
	Actor   *entity.Actor   `json:"actor"`
	Targets []*entity.Token `json:"targets,omitempty"`
}

// Context binds the roll to a localizer.
func (r Roll) Context(loc i18n.Localizer) *Context {
	return &Context{Item: r.Item, Actor: r.Actor, Targets: r.Targets, Localizer: loc}
}

// DecodeRolls reads a single roll object or an array of rolls.
func DecodeRolls(data []byte) ([]Roll, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var rolls []Roll
		if err := json.Unmarshal(trimmed, &rolls); err != nil {
			return nil, fmt.Errorf("decode rolls: %w", err)
		}
		return rolls, nil
	}
	var roll Roll
	if err := json.Unmarshal(trimmed, &roll); err != nil {
		return nil, fmt.Errorf("decode roll: %w", err)
	}
	return []Roll{roll}, nil
}

// EvaluateBatch selects the applicable actions of every roll concurrently.
// Results are indexed like rolls.
func EvaluateBatch(ctx context.Context, cat *catalog.Catalog, disabled []string, rolls []Roll, loc i18n.Localizer, limit int) ([][]*rules.Action, error) {
	results := make([][]*rules.Action, len(rolls))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	actions := cat.Actions()
	for i := range rolls {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = SelectActions(actions, disabled, rolls[i].Context(loc))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
