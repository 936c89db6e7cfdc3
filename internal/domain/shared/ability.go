package shared

// Ability is one of the six DCC ability scores
type Ability string

// Abilities lists the six abilities in sheet order
var Abilities = []Ability{AbilityStrength, AbilityAgility, AbilityStamina, AbilityPersonality, AbilityIntelligence, AbilityLuck}

const (
	AbilityNone         Ability = ""
	AbilityStrength     Ability = "str"
	AbilityAgility      Ability = "agl"
	AbilityStamina      Ability = "sta"
	AbilityPersonality  Ability = "per"
	AbilityIntelligence Ability = "int"
	AbilityLuck         Ability = "lck"
)

// Short returns the three-letter sheet label
func (a Ability) Short() string {
	return string(a)
}

// ModifierFor converts an ability score into its modifier.
// Scores outside 3..18 clamp to the table ends.
func ModifierFor(score int) int {
	switch {
	case score <= 3:
		return -3
	case score <= 5:
		return -2
	case score <= 8:
		return -1
	case score <= 12:
		return 0
	case score <= 15:
		return 1
	case score <= 17:
		return 2
	default:
		return 3
	}
}
