package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapLocalizer map[string]string

func (m mapLocalizer) Localize(key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

var testLoc = mapLocalizer{
	"SWADE.AttrAgi":            "Agility",
	"SWADE.AttrStr":            "Strength",
	"BRSW.SkillName-untrained": "Untrained",
}

func fighter() *Actor {
	return &Actor{
		Name: "Red",
		Items: []Item{
			{Type: TypeSkill, Name: "Fighting"},
			{Type: TypeSkill, Name: "Shooting"},
			{Type: TypeSkill, Name: "Athletics"},
			{Type: TypeSkill, Name: "★ Spellcasting"},
			{Type: TypeSkill, Name: "Faith"},
			{Type: TypeSkill, Name: "Unskilled Attempt"},
			{Type: TypeEdge, Name: "Frenzy"},
		},
	}
}

func TestItemTrait_ExplicitSkill(t *testing.T) {
	actor := fighter()
	skill := actor.ItemTrait(&Item{Type: TypeWeapon, System: ItemSystem{Actions: ItemActions{Skill: "Spellcasting"}}}, testLoc)
	require.NotNil(t, skill)
	assert.Equal(t, "★ Spellcasting", skill.Name)
}

func TestItemTrait_ExplicitAttribute(t *testing.T) {
	skill := fighter().ItemTrait(&Item{Type: TypeGear, System: ItemSystem{Actions: ItemActions{Skill: "agility"}}}, testLoc)
	require.NotNil(t, skill)
	assert.Equal(t, TypeAttribute, skill.Type)
	assert.Equal(t, "Agility", skill.Name)
}

func TestItemTrait_ExplicitUnknownFallsBackToUntrained(t *testing.T) {
	skill := fighter().ItemTrait(&Item{Type: TypeWeapon, System: ItemSystem{Actions: ItemActions{Skill: "Piloting"}}}, testLoc)
	require.NotNil(t, skill)
	assert.Equal(t, "Unskilled Attempt", skill.Name)
}

func TestItemTrait_SkilllessTypes(t *testing.T) {
	actor := fighter()
	for _, typ := range []string{TypeArmor, TypeShield, TypeGear, TypeEdge, TypeHindrance, "Armor"} {
		assert.Nil(t, actor.ItemTrait(&Item{Type: typ}, testLoc), typ)
	}
}

func TestItemTrait_Arcane(t *testing.T) {
	skill := fighter().ItemTrait(&Item{Type: TypePower, System: ItemSystem{Arcane: "Faith"}}, testLoc)
	require.NotNil(t, skill)
	assert.Equal(t, "Faith", skill.Name)
}

func TestItemTrait_PowerUsesArcaneSkill(t *testing.T) {
	skill := fighter().ItemTrait(&Item{Type: TypePower}, testLoc)
	require.NotNil(t, skill)
	// the starred spellcasting skill is not a literal list match
	assert.Equal(t, "Faith", skill.Name)
}

func TestItemTrait_Weapons(t *testing.T) {
	actor := fighter()

	melee := actor.ItemTrait(&Item{Type: TypeWeapon, System: ItemSystem{Damage: "@str+d6"}}, testLoc)
	require.NotNil(t, melee)
	assert.Equal(t, "Fighting", melee.Name)

	ranged := actor.ItemTrait(&Item{Type: TypeWeapon, System: ItemSystem{Range: "12/24/48", Damage: "2d6"}}, testLoc)
	require.NotNil(t, ranged)
	assert.Equal(t, "Shooting", ranged.Name)

	thrown := actor.ItemTrait(&Item{Type: TypeWeapon, System: ItemSystem{Range: "3/6/12", Damage: "@str+d4"}}, testLoc)
	require.NotNil(t, thrown)
	assert.Equal(t, "Athletics", thrown.Name)
}

func TestItemTrait_LocalizedUntrained(t *testing.T) {
	actor := &Actor{Items: []Item{{Type: TypeSkill, Name: "Ungeübt"}}}
	loc := mapLocalizer{"BRSW.SkillName-untrained": "Ungeübt"}
	skill := actor.ItemTrait(&Item{Type: "consumable"}, loc)
	require.NotNil(t, skill)
	assert.Equal(t, "Ungeübt", skill.Name)
}

func TestItemTrait_LocalizedUntrainedIsContained(t *testing.T) {
	actor := &Actor{Items: []Item{
		{Type: TypeSkill, Name: "Notice"},
		{Type: TypeSkill, Name: "Entrenamiento"},
	}}
	loc := mapLocalizer{"BRSW.SkillName-untrained": "Sin entrenamiento"}
	skill := actor.ItemTrait(&Item{Type: "consumable"}, loc)
	require.NotNil(t, skill)
	assert.Equal(t, "Entrenamiento", skill.Name)

	assert.Nil(t, (&Actor{Items: []Item{{Type: TypeSkill, Name: "Notice"}}}).ItemTrait(&Item{Type: "consumable"}, loc))
}

func TestItemTrait_NilSafe(t *testing.T) {
	var actor *Actor
	assert.Nil(t, actor.ItemTrait(&Item{Type: TypeWeapon}, testLoc))
	assert.Nil(t, fighter().ItemTrait(nil, testLoc))
	assert.Nil(t, (&Actor{}).ItemTrait(&Item{Type: TypeWeapon}, nil))
}

func TestAdditionalStat_Text(t *testing.T) {
	assert.Equal(t, "2", Stat(2).Text())
	assert.Equal(t, "2.5", Stat(2.5).Text())
	assert.Equal(t, "heavy", Stat("heavy").Text())
	assert.Equal(t, "true", Stat(true).Text())
	assert.Equal(t, "", AdditionalStat{}.Text())

	var stat AdditionalStat
	require.NoError(t, json.Unmarshal([]byte(`{"label":"Size","value":3}`), &stat))
	assert.Equal(t, "3", stat.Text())
}

func TestSameToken(t *testing.T) {
	a := &Token{ID: "t1"}
	b := &Token{ID: "t1"}
	c := &Token{ID: "t2"}
	assert.True(t, SameToken(a, a))
	assert.True(t, SameToken(a, b))
	assert.False(t, SameToken(a, c))
	assert.False(t, SameToken(&Token{}, &Token{}))
	assert.False(t, SameToken(a, nil))
}
