package combat

import (
	"github.com/KirkDiggler/dcc-bot-discord/internal/dice"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/equipment"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/rulebook"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/shared"
)

// InitiativeRoll is a rolled initiative with its parts
type InitiativeRoll struct {
	Roll     *dice.RollResult
	Modifier int
	Total    int
}

// RollInitiative rolls for a record: d20 (d16 with a two-handed weapon) plus
// the Agility modifier, plus level for classes that add it
func RollInitiative(roller dice.Roller, c *character.Character, weapon *equipment.Weapon) (*InitiativeRoll, error) {
	die := "1d20"
	if weapon != nil && weapon.TwoHanded {
		die = "1d16"
	}

	roll, err := dice.RollExpression(roller, die)
	if err != nil {
		return nil, err
	}

	mod := c.Modifier(shared.AbilityAgility)
	if rulebook.AddsLevelToInitiative(c.Class) {
		mod += c.Level
	}

	return &InitiativeRoll{Roll: roll, Modifier: mod, Total: roll.Total + mod}, nil
}

// RollFlatInitiative rolls d20 plus a fixed bonus, for snapshot combatants
func RollFlatInitiative(roller dice.Roller, bonus int) (*InitiativeRoll, error) {
	roll, err := dice.RollExpression(roller, "1d20")
	if err != nil {
		return nil, err
	}
	return &InitiativeRoll{Roll: roll, Modifier: bonus, Total: roll.Total + bonus}, nil
}
