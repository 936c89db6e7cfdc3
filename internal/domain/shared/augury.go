package shared

// AuguryCategory is the combat classification a birth augury applies to.
// Non-combat auguries use AuguryNone and never match an attack.
type AuguryCategory string

const (
	AuguryNone          AuguryCategory = ""
	AuguryAllAttacks    AuguryCategory = "all_attacks"    // Harsh winter
	AuguryMeleeAttacks  AuguryCategory = "melee_attacks"  // The bull
	AuguryRangedAttacks AuguryCategory = "ranged_attacks" // Fortunate date
	AuguryUnarmed       AuguryCategory = "unarmed"        // Raised by wolves
	AuguryMounted       AuguryCategory = "mounted"        // Conceived on horseback
	AuguryWeapon        AuguryCategory = "weapon"         // Attacks with one named weapon
	AuguryAllDamage     AuguryCategory = "all_damage"     // Born on the battlefield
	AuguryMeleeDamage   AuguryCategory = "melee_damage"   // Path of the bear
	AuguryRangedDamage  AuguryCategory = "ranged_damage"  // Hawkeye
)

// AuguryCategories lists every category that can match a combat roll
var AuguryCategories = []AuguryCategory{
	AuguryAllAttacks,
	AuguryMeleeAttacks,
	AuguryRangedAttacks,
	AuguryUnarmed,
	AuguryMounted,
	AuguryWeapon,
	AuguryAllDamage,
	AuguryMeleeDamage,
	AuguryRangedDamage,
}

// IsDamage reports whether the augury modifies damage rather than the attack roll
func (a AuguryCategory) IsDamage() bool {
	switch a {
	case AuguryAllDamage, AuguryMeleeDamage, AuguryRangedDamage:
		return true
	}
	return false
}
