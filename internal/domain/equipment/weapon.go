package equipment

import (
	"strings"
)

// WeaponKind is the melee/ranged/thrown classification of a weapon
type WeaponKind string

const (
	WeaponKindMelee  WeaponKind = "melee"
	WeaponKindRanged WeaponKind = "ranged"
	WeaponKindThrown WeaponKind = "thrown"
)

// Tag is a capability flag that gates optional rule branches
type Tag string

const (
	TagBackstab Tag = "backstab"
	TagMounted  Tag = "mounted"
	TagThrown   Tag = "thrown"
	TagShield   Tag = "shield"
	TagUnarmed  Tag = "unarmed"
)

// UnarmedKey is the catalog key of the synthetic unarmed strike
const UnarmedKey = "unarmed"

// Weapon is a weapon definition
type Weapon struct {
	Key         string     `yaml:"key" json:"key"`
	Name        string     `yaml:"name" json:"name"`
	Damage      string     `yaml:"damage" json:"damage"`
	Kind        WeaponKind `yaml:"kind" json:"kind"`
	TwoHanded   bool       `yaml:"two_handed,omitempty" json:"two_handed,omitempty"`
	AttackBonus int        `yaml:"attack_bonus,omitempty" json:"attack_bonus,omitempty"` // Magic or masterwork bonus
	DamageBonus int        `yaml:"damage_bonus,omitempty" json:"damage_bonus,omitempty"`
	Tags        []Tag      `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Unarmed returns the synthetic weapon used for punches, kicks and other special moves
func Unarmed() *Weapon {
	return &Weapon{
		Key:    UnarmedKey,
		Name:   "Unarmed strike",
		Damage: "1d3",
		Kind:   WeaponKindMelee,
		Tags:   []Tag{TagUnarmed},
	}
}

func (w *Weapon) IsMelee() bool {
	return w.Kind == WeaponKindMelee
}

func (w *Weapon) IsRanged() bool {
	return w.Kind == WeaponKindRanged
}

// IsThrown reports whether this attack is a throw. Melee weapons tagged
// thrown (daggers, handaxes) only count as thrown when used at range.
func (w *Weapon) IsThrown() bool {
	return w.Kind == WeaponKindThrown
}

func (w *Weapon) IsUnarmed() bool {
	return w.HasTag(TagUnarmed)
}

// HasTag checks if the weapon has a specific tag
func (w *Weapon) HasTag(tag Tag) bool {
	for _, t := range w.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AsThrown returns a copy of a throwable melee weapon classified as thrown
func (w *Weapon) AsThrown() *Weapon {
	thrown := *w
	thrown.Kind = WeaponKindThrown
	return &thrown
}

// NormalizeKey turns a display name like "Short Sword" into a catalog key
func NormalizeKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
