package character

import (
	"strings"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/conditions"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/rulebook"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/shared"
)

// HitPoints is the current/max hit point pair
type HitPoints struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// ClassParams are the class- and level-specific combat numbers of a record
type ClassParams struct {
	ActionDice    []string `json:"action_dice"`
	AttackBonus   int      `json:"attack_bonus"`
	CritDie       string   `json:"crit_die"`
	CritTable     string   `json:"crit_table"`
	FumbleDie     string   `json:"fumble_die"`
	DeedDie       string   `json:"deed_die,omitempty"`
	LuckDie       string   `json:"luck_die,omitempty"`
	ThreatRange   int      `json:"threat_range"`
	BackstabBonus int      `json:"backstab_bonus,omitempty"`
}

// LuckyWeapon is a weapon granted a fixed bonus to attack rolls
type LuckyWeapon struct {
	Weapon string `json:"weapon"`
	Bonus  int    `json:"bonus"`
}

// Augury is the birth augury: a category and the starting luck modifier it grants
type Augury struct {
	Name     string                `json:"name"`
	Category shared.AuguryCategory `json:"category"`
	Modifier int                   `json:"modifier"`
	Weapon   string                `json:"weapon,omitempty"` // Only for AuguryWeapon
}

// Saves holds saving throw modifiers
type Saves struct {
	Fortitude *int `json:"fortitude,omitempty"`
	Reflex    *int `json:"reflex,omitempty"`
	Willpower *int `json:"willpower,omitempty"`
}

// Character is the durable combatant record
type Character struct {
	SchemaVersion int                              `json:"schema_version"`
	Name          string                           `json:"name"`
	OwnerID       string                           `json:"owner_id,omitempty"`
	Class         shared.Class                     `json:"class"`
	Alignment     shared.Alignment                 `json:"alignment"`
	Level         int                              `json:"level"`
	Abilities     map[shared.Ability]*AbilityScore `json:"abilities"`
	HP            HitPoints                        `json:"hp"`
	AC            int                              `json:"ac"`
	Equipped      string                           `json:"equipped,omitempty"`
	Weapons       []string                         `json:"weapons,omitempty"`
	Trained       []string                         `json:"trained,omitempty"`
	Combat        ClassParams                      `json:"combat"`
	LuckyWeapon   *LuckyWeapon                     `json:"lucky_weapon,omitempty"`
	Augury        *Augury                          `json:"augury,omitempty"`
	Saves         Saves                            `json:"saves"`
	RollPenalty   int                              `json:"roll_penalty,omitempty"` // Armor check penalty and similar
	Conditions    conditions.Set                   `json:"conditions,omitempty"`
}

// Key is the store key of a record; names are case-insensitive
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Key returns the store key of this record
func (c *Character) Key() string {
	return Key(c.Name)
}

// Ability returns the score for a, or nil if the record has none
func (c *Character) Ability(a shared.Ability) *AbilityScore {
	if c.Abilities == nil {
		return nil
	}
	return c.Abilities[a]
}

// Modifier returns the current modifier for a, 0 when missing
func (c *Character) Modifier(a shared.Ability) int {
	if score := c.Ability(a); score != nil {
		return score.Modifier
	}
	return 0
}

// Luck returns the current and maximum luck
func (c *Character) Luck() (current, maximum int) {
	if score := c.Ability(shared.AbilityLuck); score != nil {
		return score.Current, score.Base
	}
	return 0, 0
}

// LuckModifier is the modifier of the current luck score
func (c *Character) LuckModifier() int {
	return c.Modifier(shared.AbilityLuck)
}

// BurnLuck spends up to requested points of current luck and returns how many
// were actually spent. Luck never drops below zero.
func (c *Character) BurnLuck(requested int) int {
	score := c.Ability(shared.AbilityLuck)
	if score == nil || requested <= 0 {
		return 0
	}
	return score.Lower(requested, 0)
}

// IsTrainedWith reports whether the record is trained with weaponKey
func (c *Character) IsTrainedWith(weaponKey string) bool {
	trained := c.Trained
	if len(trained) == 0 {
		trained = rulebook.TrainedWeapons(c.Class)
	}
	return rulebook.IsTrained(trained, weaponKey)
}

// Carries reports whether weaponKey is the equipped weapon or in the carried list
func (c *Character) Carries(weaponKey string) bool {
	if c.Equipped == weaponKey {
		return true
	}
	for _, w := range c.Weapons {
		if w == weaponKey {
			return true
		}
	}
	return false
}

// SaveModifier returns the modifier for kind; ok is false when the record has no value
func (c *Character) SaveModifier(kind shared.SaveKind) (int, bool) {
	var v *int
	switch kind {
	case shared.SaveFortitude:
		v = c.Saves.Fortitude
	case shared.SaveReflex:
		v = c.Saves.Reflex
	case shared.SaveWillpower:
		v = c.Saves.Willpower
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// ConditionSet returns the record's active conditions, creating the set if needed
func (c *Character) ConditionSet() conditions.Set {
	if c.Conditions == nil {
		c.Conditions = conditions.Set{}
	}
	return c.Conditions
}

// IsAlive returns true if the combatant has more than 0 HP
func (c *Character) IsAlive() bool {
	return c.HP.Current > 0
}

// ApplyDamage removes hit points, clamping at zero, and returns the damage taken
func (c *Character) ApplyDamage(damage int) int {
	if damage <= 0 {
		return 0
	}
	before := c.HP.Current
	c.HP.Current -= damage
	if c.HP.Current < 0 {
		c.HP.Current = 0
	}
	return before - c.HP.Current
}

// Heal restores hit points up to the maximum and returns the amount healed
func (c *Character) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := c.HP.Current
	c.HP.Current += amount
	if c.HP.Current > c.HP.Max {
		c.HP.Current = c.HP.Max
	}
	return c.HP.Current - before
}
