package runtime

import (
	"context"
	"math/rand"
	"testing"

	"rgehrsitz/gact/internal/catalog"
	"rgehrsitz/gact/internal/entity"
	"rgehrsitz/gact/internal/i18n"
	"rgehrsitz/gact/internal/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func action(id string, rule rules.Rule) *rules.Action {
	return &rules.Action{ID: id, Name: id, Group: "Test", Rule: rule}
}

func ids(actions []*rules.Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.ID
	}
	return out
}

func TestSortByID(t *testing.T) {
	actions := []*rules.Action{action("b", always), action("a", always), action("c", always)}
	SortByID(actions)
	assert.Equal(t, []string{"a", "b", "c"}, ids(actions))
}

func TestSortByID_AdversarialInputs(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"reverse sorted", []string{"e", "d", "c", "b", "a"}, []string{"a", "b", "c", "d", "e"}},
		{"prefix", []string{"aa", "a", "aaa", "ab"}, []string{"a", "aa", "aaa", "ab"}},
		{"upper case before lower", []string{"a", "B", "b", "A"}, []string{"A", "B", "a", "b"}},
		{"digits", []string{"10", "9", "1", "01"}, []string{"01", "1", "10", "9"}},
		{"empty id first", []string{"x", "", "a"}, []string{"", "a", "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actions := make([]*rules.Action, len(tc.in))
			for i, id := range tc.in {
				actions[i] = action(id, always)
			}
			SortByID(actions)
			assert.Equal(t, tc.want, ids(actions))
		})
	}
}

func TestSortByID_Permutations(t *testing.T) {
	want := []string{"AIM", "DISTRACTED", "FRENZY", "GANGUP", "JOKER", "MARKSMAN", "VULNERABLE", "WILDATTACK", "aim", "z"}
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		shuffled := append([]string(nil), want...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		actions := make([]*rules.Action, len(shuffled))
		for i, id := range shuffled {
			actions[i] = action(id, always)
		}
		SortByID(actions)
		require.Equal(t, want, ids(actions), "input %v", shuffled)
	}
}

func TestSortByID_EqualIDsKeepOrder(t *testing.T) {
	first := &rules.Action{ID: "x", Name: "first"}
	second := &rules.Action{ID: "x", Name: "second"}
	actions := []*rules.Action{second, action("a", always), first}
	SortByID(actions)
	assert.Equal(t, []string{"a", "x", "x"}, ids(actions))
	assert.Equal(t, "second", actions[1].Name)
	assert.Equal(t, "first", actions[2].Name)
}

func TestSelectActions_FiltersDisabledAndSorts(t *testing.T) {
	actions := []*rules.Action{
		action("ZED", always),
		action("NEVER", never),
		action("ALPHA", always),
		action("OFF", always),
		nil,
	}
	selected := SelectActions(actions, []string{"OFF"}, &Context{})
	assert.Equal(t, []string{"ALPHA", "ZED"}, ids(selected))
}

func TestSelectActions_NothingApplies(t *testing.T) {
	selected := SelectActions([]*rules.Action{action("NEVER", never)}, nil, &Context{})
	assert.NotNil(t, selected)
	assert.Empty(t, selected)
}

func TestApplicableActions_Builtins(t *testing.T) {
	cat := catalog.New(catalog.Builtins(), nil)
	actor := fighter()
	actor.HasJoker = true
	ctx := &Context{
		Item:      sword(),
		Actor:     actor,
		Targets:   []*entity.Token{target("t1", -1, &entity.Actor{Effects: []entity.Effect{{Label: "Vulnerable"}}})},
		Localizer: i18n.Default().Localizer("en-US"),
	}

	selected := ApplicableActions(cat, nil, ctx)
	assert.Equal(t, []string{"FRENZY", "GANGUP", "JOKER", "VULNERABLE", "WILDATTACK"}, ids(selected))

	selected = ApplicableActions(cat, []string{"JOKER", "FRENZY"}, ctx)
	assert.Equal(t, []string{"GANGUP", "VULNERABLE", "WILDATTACK"}, ids(selected))
}

func TestApplicableActions_CustomOverridesBuiltin(t *testing.T) {
	custom := action("JOKER", rules.Leaf(rules.SelectorItemName, "sword"))
	cat := catalog.New(catalog.Builtins(), []*rules.Action{custom})
	ctx := &Context{Item: sword(), Actor: &entity.Actor{}}

	selected := ApplicableActions(cat, nil, ctx)
	require.Contains(t, ids(selected), "JOKER")
	for _, a := range selected {
		if a.ID == "JOKER" {
			assert.Same(t, custom, a)
		}
	}
}

func TestDecodeRolls(t *testing.T) {
	single := `{"item":{"type":"weapon","name":"Axe"},"actor":{"name":"Red","system":{"wildcard":true}}}`
	rolls, err := DecodeRolls([]byte(single))
	require.NoError(t, err)
	require.Len(t, rolls, 1)
	assert.Equal(t, "Axe", rolls[0].Item.Name)
	assert.True(t, rolls[0].Actor.System.Wildcard)

	many := `[
		{"item":{"type":"weapon","name":"Axe"}},
		{"item":{"type":"power","name":"Bolt"},"targets":[{"id":"t1","disposition":-1,"actor":{"name":"Orc"}}]}
	]`
	rolls, err = DecodeRolls([]byte(many))
	require.NoError(t, err)
	require.Len(t, rolls, 2)
	require.Len(t, rolls[1].Targets, 1)
	assert.Equal(t, "Orc", rolls[1].Targets[0].Actor.Name)

	_, err = DecodeRolls([]byte(`{"item":`))
	assert.Error(t, err)
}

func TestEvaluateBatch(t *testing.T) {
	cat := catalog.New(nil, []*rules.Action{
		action("SWORD", rules.Leaf(rules.SelectorItemName, "sword")),
		action("AXE", rules.Leaf(rules.SelectorItemName, "axe")),
		action("ANY", always),
	})
	rolls := []Roll{
		{Item: &entity.Item{Type: entity.TypeWeapon, Name: "Long Sword"}},
		{Item: &entity.Item{Type: entity.TypeWeapon, Name: "Battle Axe"}},
		{Item: &entity.Item{Type: entity.TypeGear, Name: "Rope"}},
	}

	results, err := EvaluateBatch(context.Background(), cat, []string{"ANY"}, rolls, i18n.Identity{}, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []string{"SWORD"}, ids(results[0]))
	assert.Equal(t, []string{"AXE"}, ids(results[1]))
	assert.Empty(t, results[2])
}

func TestEvaluateBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := EvaluateBatch(ctx, catalog.New(nil, nil), nil, []Roll{{}}, nil, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
