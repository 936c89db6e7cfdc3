package character

import (
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/conditions"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/rulebook"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/shared"
)

// CurrentSchemaVersion is the record layout this package reads and writes.
//
//	0: records written before versioning; combat block and current scores may be missing
//	1: explicit combat block, base/current abilities, conditions map
const CurrentSchemaVersion = 1

const (
	defaultAbilityScore = 10
	defaultFumbleDie    = "1d4"
)

// Migrate brings a loaded record up to CurrentSchemaVersion and enforces the
// record invariants. It is the only place defaults are filled in; code reading
// a migrated record never needs its own fallbacks. Returns true if anything changed.
func Migrate(c *Character) bool {
	if c == nil {
		return false
	}
	changed := false

	if c.SchemaVersion < 1 {
		migrateV0(c)
		c.SchemaVersion = 1
		changed = true
	}

	if enforceInvariants(c) {
		changed = true
	}
	return changed
}

func migrateV0(c *Character) {
	if c.Class == "" {
		c.Class = shared.ClassZero
	}

	if c.Abilities == nil {
		c.Abilities = make(map[shared.Ability]*AbilityScore, len(shared.Abilities))
	}
	for _, a := range shared.Abilities {
		score := c.Abilities[a]
		if score == nil {
			c.Abilities[a] = NewAbilityScore(defaultAbilityScore)
			continue
		}
		if score.Base == 0 {
			score.Base = score.Current
		}
		if score.Current == 0 && score.Base > 0 {
			score.Current = score.Base
		}
	}

	p := rulebook.Progression(c.Class, c.Level)
	if len(c.Combat.ActionDice) == 0 {
		c.Combat.ActionDice = p.ActionDice
	}
	if c.Combat.AttackBonus == 0 {
		c.Combat.AttackBonus = p.AttackBonus
	}
	if c.Combat.CritDie == "" {
		c.Combat.CritDie = p.CritDie
	}
	if c.Combat.CritTable == "" {
		c.Combat.CritTable = p.CritTable
	}
	if c.Combat.FumbleDie == "" {
		c.Combat.FumbleDie = defaultFumbleDie
	}
	if c.Combat.DeedDie == "" {
		c.Combat.DeedDie = p.DeedDie
	}
	if c.Combat.LuckDie == "" {
		c.Combat.LuckDie = p.LuckDie
	}
	if c.Combat.ThreatRange == 0 {
		c.Combat.ThreatRange = p.ThreatRange
	}
	if c.Combat.BackstabBonus == 0 {
		c.Combat.BackstabBonus = p.BackstabBonus
	}

	if c.Conditions == nil {
		c.Conditions = conditions.Set{}
	}
}

// enforceInvariants clamps hp and ability pairs into range and refreshes modifiers
func enforceInvariants(c *Character) bool {
	changed := false

	if c.HP.Max < 0 {
		c.HP.Max = 0
		changed = true
	}
	if c.HP.Current < 0 {
		c.HP.Current = 0
		changed = true
	}
	if c.HP.Current > c.HP.Max {
		c.HP.Current = c.HP.Max
		changed = true
	}

	for _, score := range c.Abilities {
		if score == nil {
			continue
		}
		if score.Current < 0 {
			score.Current = 0
			changed = true
		}
		if score.Current > score.Base {
			score.Current = score.Base
			changed = true
		}
		mod := shared.ModifierFor(score.Current)
		if mod != score.Modifier {
			score.Modifier = mod
			changed = true
		}
	}
	return changed
}

// New creates a record at the current schema with class defaults for its level
func New(name string, class shared.Class, level int, scores map[shared.Ability]int, hp int) *Character {
	c := &Character{
		Name:      name,
		Class:     class,
		Level:     level,
		Abilities: make(map[shared.Ability]*AbilityScore, len(shared.Abilities)),
		HP:        HitPoints{Current: hp, Max: hp},
	}
	for _, a := range shared.Abilities {
		score, ok := scores[a]
		if !ok {
			score = defaultAbilityScore
		}
		c.Abilities[a] = NewAbilityScore(score)
	}
	Migrate(c)
	return c
}
