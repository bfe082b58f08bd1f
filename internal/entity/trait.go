package entity

import (
	"strconv"
	"strings"
)

// Localizer translates attribute name keys during trait resolution.
type Localizer interface {
	Localize(key string) string
}

var (
	ArcaneSkills = []string{"faith", "focus", "spellcasting", "glaube", "fokus",
		"zaubern", "druidism", "elementalism", "glamour", "heahwisardry",
		"hrimwisardry", "solar magic", "song magic", "soul binding", "artificer",
		"astrology", "dervish", "divination", "jinn binding", "khem-hekau",
		"mathemagic", "sand magic", "sha'ir", "ship magic", "ushabti",
		"wizir magic", "word magic", "druidenmagie", "elementarmagie", "heahmagie",
		"hrimmagie", "gesangsmagie", "psiónica", "psionica", "fe", "hechicería",
		"hechiceria", "foi", "magie", "science étrange", "science etrange",
		"élémentalisme", "elementalisme", "druidisme", "magie solaire",
		"weird science", "voidomancy"}
	UntrainedSkills = []string{"untrained", "untrainiert", "desentrenada",
		"non entraine", "non entrainé", "unskilled", "unskilled attempt"}
	FightingSkills = []string{"fighting", "kämpfen", "pelear", "combat", "combattimento"}
	ShootingSkills = []string{"shooting", "schießen", "disparar", "tir", "tiro"}
	ThrowingSkills = []string{"athletics", "athletik", "atletismo", "athlétisme", "atletica"}
)

// AttributeKeys maps attribute ids to their translation keys.
var AttributeKeys = map[string]string{
	"agility":  "SWADE.AttrAgi",
	"smarts":   "SWADE.AttrSma",
	"spirit":   "SWADE.AttrSpr",
	"strength": "SWADE.AttrStr",
	"vigor":    "SWADE.AttrVig",
}

var attributeOrder = []string{"agility", "smarts", "spirit", "strength", "vigor"}

var skilllessTypes = []string{TypeArmor, TypeShield, TypeGear, TypeEdge, TypeHindrance}

// ItemTrait returns the skill or attribute rolled when using item, or nil.
func (a *Actor) ItemTrait(item *Item, loc Localizer) *Item {
	if a == nil || item == nil {
		return nil
	}
	if item.System.Actions.Skill != "" {
		return a.traitFromName(item.System.Actions.Skill, loc)
	}
	for _, t := range skilllessTypes {
		if strings.ToLower(item.Type) == t {
			return nil
		}
	}
	if item.System.Arcane != "" {
		return a.traitFromName(item.System.Arcane, loc)
	}

	var skill *Item
	switch item.Type {
	case TypePower:
		skill = a.skillIn(ArcaneSkills)
	case TypeWeapon:
		if weaponRange(item.System.Range) > 0 {
			if strings.Contains(item.System.Damage, "str") {
				skill = a.skillIn(ThrowingSkills)
			} else {
				skill = a.skillIn(ShootingSkills)
			}
		} else {
			skill = a.skillIn(FightingSkills)
		}
	}
	if skill == nil {
		skill = a.untrained(loc)
	}
	return skill
}

// traitFromName finds a skill by name, then an attribute by translated name,
// then the untrained skill.
func (a *Actor) traitFromName(name string, loc Localizer) *Item {
	wanted := trimStar(strings.ToLower(name))
	if skill := a.FindItem(func(it *Item) bool {
		return it.Type == TypeSkill && trimStar(strings.ToLower(it.Name)) == wanted
	}); skill != nil {
		return skill
	}
	for _, attribute := range attributeOrder {
		translation := AttributeKeys[attribute]
		if loc != nil {
			translation = loc.Localize(translation)
		}
		if strings.ToLower(name) == strings.ToLower(translation) {
			return &Item{Type: TypeAttribute, Name: translation}
		}
	}
	return a.skillIn(UntrainedSkills)
}

func (a *Actor) untrained(loc Localizer) *Item {
	if skill := a.skillIn(UntrainedSkills); skill != nil {
		return skill
	}
	if loc == nil {
		return nil
	}
	return a.skillWithin(strings.ToLower(loc.Localize("BRSW.SkillName-untrained")))
}

// skillWithin returns the last owned skill whose name appears in text.
func (a *Actor) skillWithin(text string) *Item {
	var found *Item
	for i := range a.Items {
		it := &a.Items[i]
		if it.Type == TypeSkill && strings.Contains(text, strings.ToLower(it.Name)) {
			found = it
		}
	}
	return found
}

// skillIn returns the last owned skill whose name is in names.
func (a *Actor) skillIn(names []string) *Item {
	var found *Item
	for i := range a.Items {
		it := &a.Items[i]
		if it.Type != TypeSkill {
			continue
		}
		lower := strings.ToLower(it.Name)
		for _, n := range names {
			if lower == n {
				found = it
				break
			}
		}
	}
	return found
}

func trimStar(s string) string {
	return strings.Replace(s, "★ ", "", 1)
}

// weaponRange reads the leading integer of a range like "12/24/48".
func weaponRange(r string) int {
	r = strings.TrimSpace(r)
	end := 0
	for end < len(r) && (r[end] >= '0' && r[end] <= '9' || end == 0 && r[end] == '-') {
		end++
	}
	n, err := strconv.Atoi(r[:end])
	if err != nil {
		return 0
	}
	return n
}
