// Package entity describes the slice of host documents global action selectors read.
// Values are treated as read-only by the engine.
package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Item types referenced by selectors and trait resolution.
const (
	TypeSkill     = "skill"
	TypeAttribute = "attribute"
	TypeEdge      = "edge"
	TypeHindrance = "hindrance"
	TypeAbility   = "ability"
	TypePower     = "power"
	TypeWeapon    = "weapon"
	TypeArmor     = "armor"
	TypeShield    = "shield"
	TypeGear      = "gear"
)

type Item struct {
	ID     string     `json:"id"`
	Type   string     `json:"type"`
	Name   string     `json:"name"`
	System ItemSystem `json:"system"`
}

type ItemSystem struct {
	Description     string                    `json:"description,omitempty"`
	Trapping        string                    `json:"trapping,omitempty"`
	Source          string                    `json:"source,omitempty"`
	Major           bool                      `json:"major,omitempty"`
	Arcane          string                    `json:"arcane,omitempty"`
	Range           string                    `json:"range,omitempty"`
	Damage          string                    `json:"damage,omitempty"`
	Actions         ItemActions               `json:"actions,omitempty"`
	AdditionalStats map[string]AdditionalStat `json:"additionalStats,omitempty"`
}

type ItemActions struct {
	Skill string `json:"skill,omitempty"`
}

// AdditionalStat is a user defined stat. Value keeps its JSON scalar form.
type AdditionalStat struct {
	Label string          `json:"label,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Text renders the stat value the way selectors compare it: strings unquoted,
// numbers and booleans as written.
func (s AdditionalStat) Text() string {
	if len(s.Value) == 0 {
		return ""
	}
	var str string
	if err := json.Unmarshal(s.Value, &str); err == nil {
		return str
	}
	var num float64
	if err := json.Unmarshal(s.Value, &num); err == nil {
		return strconv.FormatFloat(num, 'f', -1, 64)
	}
	return string(s.Value)
}

// Stat builds an AdditionalStat from a Go scalar.
func Stat(value interface{}) AdditionalStat {
	raw, err := json.Marshal(value)
	if err != nil {
		panic(fmt.Sprintf("entity: stat value %v: %v", value, err))
	}
	return AdditionalStat{Value: raw}
}

type Effect struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled,omitempty"`
}

type Attribute struct {
	Die      Die `json:"die"`
	Modifier int `json:"modifier,omitempty"`
}

type Die struct {
	Sides    int `json:"sides"`
	Modifier int `json:"modifier,omitempty"`
}

type ActorSystem struct {
	Wildcard        bool                      `json:"wildcard,omitempty"`
	Attributes      map[string]Attribute      `json:"attributes,omitempty"`
	AdditionalStats map[string]AdditionalStat `json:"additionalStats,omitempty"`
}

type Actor struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Items    []Item      `json:"items,omitempty"`
	Effects  []Effect    `json:"effects,omitempty"`
	System   ActorSystem `json:"system"`
	HasJoker bool        `json:"hasJoker,omitempty"`
	// Tokens are the actor's active tokens on the current scene.
	Tokens []Token `json:"tokens,omitempty"`
}

// Token is a placed actor. Disposition follows the host: -1 hostile, 0 neutral, 1 friendly.
type Token struct {
	ID          string `json:"id"`
	Disposition int    `json:"disposition"`
	Actor       *Actor `json:"actor,omitempty"`
}

// FindItem returns the first owned item satisfying match.
func (a *Actor) FindItem(match func(*Item) bool) *Item {
	if a == nil {
		return nil
	}
	for i := range a.Items {
		if match(&a.Items[i]) {
			return &a.Items[i]
		}
	}
	return nil
}

// FindEffect returns the first effect satisfying match.
func (a *Actor) FindEffect(match func(*Effect) bool) *Effect {
	if a == nil {
		return nil
	}
	for i := range a.Effects {
		if match(&a.Effects[i]) {
			return &a.Effects[i]
		}
	}
	return nil
}

// ActiveToken returns the actor's first active token.
func (a *Actor) ActiveToken() *Token {
	if a == nil || len(a.Tokens) == 0 {
		return nil
	}
	return &a.Tokens[0]
}

// SameToken reports whether two handles denote the same placed token.
func SameToken(a, b *Token) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	return a.ID != "" && a.ID == b.ID
}
