package tables

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/dcc-bot-discord/internal/dice"
	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
)

// FormulaResult is an evaluated damage or DC formula
type FormulaResult struct {
	Formula string
	Total   int
	Rolls   []*dice.RollResult
}

// EvalFormula evaluates a sum of terms such as "10+level", "2d6+1" or "1d4-level".
// Terms are integers, dice expressions, or names looked up in vars.
func EvalFormula(formula string, vars map[string]int, roller dice.Roller) (*FormulaResult, error) {
	src := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(formula), " ", ""))
	if src == "" {
		return nil, dnderr.InvalidArgument("empty formula")
	}

	result := &FormulaResult{Formula: formula}
	sign := 1
	start := 0
	for i := 0; i <= len(src); i++ {
		if i < len(src) && src[i] != '+' && src[i] != '-' {
			continue
		}
		term := src[start:i]
		if term == "" {
			// leading sign or doubled operator
			if i == len(src) || (i > 0 && start != 0) {
				return nil, dnderr.InvalidArgumentf("malformed formula %q", formula)
			}
		} else {
			v, roll, err := evalTerm(term, vars, roller)
			if err != nil {
				return nil, dnderr.Wrapf(err, "formula %q", formula)
			}
			result.Total += sign * v
			if roll != nil {
				result.Rolls = append(result.Rolls, roll)
			}
		}
		if i < len(src) {
			sign = 1
			if src[i] == '-' {
				sign = -1
			}
		}
		start = i + 1
	}

	return result, nil
}

func evalTerm(term string, vars map[string]int, roller dice.Roller) (int, *dice.RollResult, error) {
	if n, err := strconv.Atoi(term); err == nil {
		return n, nil, nil
	}
	if v, ok := vars[term]; ok {
		return v, nil, nil
	}
	if strings.Contains(term, "d") {
		roll, err := dice.RollExpression(roller, term)
		if err != nil {
			return 0, nil, err
		}
		return roll.Total, roll, nil
	}
	return 0, nil, dnderr.InvalidArgumentf("unknown term %q", term)
}
