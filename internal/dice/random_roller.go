package dice

// randomRoller implements Roller using math/rand
type randomRoller struct{}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	return Roll(count, sides, bonus)
}

// forcedRoller resolves every die to the same face
type forcedRoller struct {
	value int
}

// NewForcedRoller creates a roller whose dice all land on value, clamped into [1, sides].
// It exists for deterministic tests and GM overrides.
func NewForcedRoller(value int) Roller {
	return &forcedRoller{value: value}
}

// Roll implements Roller.Roll
func (r *forcedRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 || sides < 1 {
		// reuse the random roller's validation messages
		return Roll(count, sides, bonus)
	}

	face := r.value
	if face < 1 {
		face = 1
	}
	if face > sides {
		face = sides
	}

	rolls := make([]int, count)
	for i := range rolls {
		rolls[i] = face
	}
	return newResult(count, sides, bonus, rolls), nil
}
