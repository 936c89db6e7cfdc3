package attack

import (
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/equipment"
	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
)

// ResolveWeapon picks the weapon for an attack. An empty request means the
// equipped weapon, or an unarmed strike when nothing is equipped.
func ResolveWeapon(catalog *equipment.Catalog, attacker *character.Character, requested string) (*equipment.Weapon, error) {
	key := equipment.NormalizeKey(requested)
	if key == "" {
		key = equipment.NormalizeKey(attacker.Equipped)
	}
	if key == "" || key == equipment.UnarmedKey {
		return equipment.Unarmed(), nil
	}

	weapon, ok := catalog.Get(key)
	if !ok {
		return nil, dnderr.UnknownWeaponf("unknown weapon %q", requested).
			WithMeta("weapon", key)
	}

	if equipment.NormalizeKey(attacker.Equipped) != weapon.Key {
		if attacker.Carries(weapon.Key) {
			return nil, dnderr.NotEquippedf("%s carries %s but does not have it in hand", attacker.Name, weapon.Name).
				WithMeta("weapon", weapon.Key).
				WithMeta("equipped", attacker.Equipped)
		}
		return nil, dnderr.NotEquippedf("%s does not have %s equipped", attacker.Name, weapon.Name).
			WithMeta("weapon", weapon.Key).
			WithMeta("equipped", attacker.Equipped)
	}

	return weapon, nil
}
