package attack

import (
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/equipment"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/shared"
)

// classification is what an augury category is matched against
type classification struct {
	weapon  *equipment.Weapon
	mounted bool
}

func (c classification) ranged() bool {
	return c.weapon.IsRanged() || c.weapon.IsThrown()
}

// auguryMatchers holds one predicate per category; every entry of
// shared.AuguryCategories must appear here
var auguryMatchers = map[shared.AuguryCategory]func(a *character.Augury, c classification) bool{
	shared.AuguryAllAttacks:    func(*character.Augury, classification) bool { return true },
	shared.AuguryMeleeAttacks:  func(_ *character.Augury, c classification) bool { return c.weapon.IsMelee() },
	shared.AuguryRangedAttacks: func(_ *character.Augury, c classification) bool { return c.ranged() },
	shared.AuguryUnarmed:       func(_ *character.Augury, c classification) bool { return c.weapon.IsUnarmed() },
	shared.AuguryMounted:       func(_ *character.Augury, c classification) bool { return c.mounted },
	shared.AuguryWeapon: func(a *character.Augury, c classification) bool {
		return a.Weapon != "" && equipment.NormalizeKey(a.Weapon) == c.weapon.Key
	},
	shared.AuguryAllDamage:    func(*character.Augury, classification) bool { return true },
	shared.AuguryMeleeDamage:  func(_ *character.Augury, c classification) bool { return c.weapon.IsMelee() },
	shared.AuguryRangedDamage: func(_ *character.Augury, c classification) bool { return c.ranged() },
}

// auguryBonus returns the augury modifier when it applies to this attack.
// forDamage selects damage categories instead of attack categories.
func auguryBonus(a *character.Augury, c classification, forDamage bool) (int, bool) {
	if a == nil || a.Modifier == 0 || a.Category.IsDamage() != forDamage {
		return 0, false
	}
	match, ok := auguryMatchers[a.Category]
	if !ok || !match(a, c) {
		return 0, false
	}
	return a.Modifier, true
}
