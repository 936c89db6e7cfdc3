package rulebook

import "github.com/KirkDiggler/dcc-bot-discord/internal/domain/shared"

// trainedAll marks classes trained in every weapon
const trainedAll = "*"

var classWeapons = map[shared.Class][]string{
	shared.ClassWarrior:  {trainedAll},
	shared.ClassThief:    {"blackjack", "blowgun", "crossbow", "dagger", "dart", "garrote", "longsword", "short-sword", "sling", "staff"},
	shared.ClassCleric:   {"club", "crossbow", "dagger", "flail", "mace", "polearm", "sling", "staff", "warhammer"},
	shared.ClassWizard:   {"dagger", "longbow", "longsword", "shortbow", "short-sword", "staff"},
	shared.ClassElf:      {"dagger", "javelin", "lance", "longbow", "longsword", "shortbow", "short-sword", "spear", "staff", "two-handed-sword"},
	shared.ClassDwarf:    {"battleaxe", "club", "crossbow", "dagger", "handaxe", "longbow", "longsword", "mace", "shortbow", "short-sword", "spear", "two-handed-sword", "warhammer", "shield"},
	shared.ClassHalfling: {"club", "crossbow", "dagger", "handaxe", "javelin", "shortbow", "short-sword", "sling", "spear", "staff"},
}

// TrainedWeapons returns the class's default weapon training list. A single
// "*" entry means every weapon.
func TrainedWeapons(class shared.Class) []string {
	return append([]string(nil), classWeapons[class]...)
}

// IsTrained reports whether weaponKey appears in trained (or trained is "*").
// Unarmed strikes are always trained.
func IsTrained(trained []string, weaponKey string) bool {
	if weaponKey == "unarmed" {
		return true
	}
	for _, key := range trained {
		if key == trainedAll || key == weaponKey {
			return true
		}
	}
	return false
}
