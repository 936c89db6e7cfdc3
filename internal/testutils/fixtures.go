package testutils

import (
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/shared"
)

func intPtr(v int) *int {
	return &v
}

// CreateTestWarrior creates a level-1 warrior with a longsword in hand
func CreateTestWarrior(name string) *character.Character {
	c := character.New(name, shared.ClassWarrior, 1, map[shared.Ability]int{
		shared.AbilityStrength: 16,
		shared.AbilityAgility:  12,
		shared.AbilityStamina:  14,
		shared.AbilityLuck:     10,
	}, 12)
	c.AC = 15
	c.Equipped = "longsword"
	c.Weapons = []string{"longsword", "dagger"}
	c.Saves = character.Saves{Fortitude: intPtr(2), Reflex: intPtr(1), Willpower: intPtr(0)}
	return c
}

// CreateTestThief creates a level-1 thief with a dagger in hand
func CreateTestThief(name string) *character.Character {
	c := character.New(name, shared.ClassThief, 1, map[shared.Ability]int{
		shared.AbilityAgility: 16,
		shared.AbilityLuck:    13,
	}, 6)
	c.AC = 12
	c.Equipped = "dagger"
	c.Weapons = []string{"dagger", "shortbow"}
	c.Saves = character.Saves{Fortitude: intPtr(0), Reflex: intPtr(3), Willpower: intPtr(0)}
	return c
}

// CreateTestPeasant creates a 0-level funnel character armed with a club
func CreateTestPeasant(name string) *character.Character {
	c := character.New(name, shared.ClassZero, 0, nil, 3)
	c.AC = 10
	c.Equipped = "club"
	c.Weapons = []string{"club"}
	return c
}
