package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// RollResult is the outcome of rolling one dice expression
type RollResult struct {
	Expression string
	Total      int
	Highest    int
	Lowest     int
	Rolls      []int
	Bonus      int
	Count      int
	Sides      int
	RawTotal   int // Total without Bonus
}

// Natural returns the first die of the roll, which is what crit and fumble checks look at
func (r *RollResult) Natural() int {
	if r == nil || len(r.Rolls) == 0 {
		return 0
	}
	return r.Rolls[0]
}

// IsMax reports whether a single-die roll came up on its highest face
func (r *RollResult) IsMax() bool {
	return r != nil && r.Count == 1 && r.Natural() == r.Sides
}

// IsMin reports whether a single-die roll came up a natural 1
func (r *RollResult) IsMin() bool {
	return r != nil && r.Count == 1 && r.Natural() == 1
}

func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", ",")
	if r.Bonus != 0 {
		return fmt.Sprintf("%s %s %+d = **%d**", r.Expression, compact, r.Bonus, r.Total)
	}
	return fmt.Sprintf("%s %s = **%d**", r.Expression, compact, r.Total)
}

// Roll rolls count dice of the given size with math/rand and adds bonus
func Roll(count, size, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}

	if size < 1 {
		return nil, errors.New("invalid dice size")
	}

	out := make([]int, count)
	for i := 0; i < count; i++ {
		out[i] = rand.Intn(size) + 1
	}

	return newResult(count, size, bonus, out), nil
}

// newResult builds a RollResult from already-rolled dice
func newResult(count, sides, bonus int, rolls []int) *RollResult {
	maxValue, minValue, total := 0, 0, 0
	for i, roll := range rolls {
		total += roll
		if i == 0 || roll < minValue {
			minValue = roll
		}
		if i == 0 || roll > maxValue {
			maxValue = roll
		}
	}

	return &RollResult{
		Expression: Expression{Count: count, Sides: sides, Modifier: bonus}.String(),
		Total:      total + bonus,
		Highest:    maxValue,
		Lowest:     minValue,
		Rolls:      rolls,
		Bonus:      bonus,
		Count:      count,
		Sides:      sides,
		RawTotal:   total,
	}
}
