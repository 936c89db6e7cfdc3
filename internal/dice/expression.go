package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
)

// Chain is the ascending sequence of die sizes dice are stepped along
var Chain = []int{3, 4, 5, 6, 7, 8, 10, 12, 14, 16, 20, 24, 30}

var expressionPattern = regexp.MustCompile(`^(\d*)d(\d+)(?:([+-])(\d+))?$`)

// Expression is a parsed [count]d[sides][+k] dice expression
type Expression struct {
	Count    int
	Sides    int
	Modifier int
}

// Parse reads expressions such as "d20", "1d16", "2d6+1" and "d30+2"
func Parse(expr string) (Expression, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(expr), " ", ""))
	m := expressionPattern.FindStringSubmatch(normalized)
	if m == nil {
		return Expression{}, dnderr.MalformedDicef("invalid dice expression %q", expr)
	}

	e := Expression{Count: 1}
	if m[1] != "" {
		count, err := strconv.Atoi(m[1])
		if err != nil {
			return Expression{}, dnderr.MalformedDicef("invalid dice count in %q", expr)
		}
		e.Count = count
	}

	sides, err := strconv.Atoi(m[2])
	if err != nil {
		return Expression{}, dnderr.MalformedDicef("invalid die size in %q", expr)
	}
	e.Sides = sides

	if m[3] != "" {
		mod, err := strconv.Atoi(m[4])
		if err != nil {
			return Expression{}, dnderr.MalformedDicef("invalid modifier in %q", expr)
		}
		if m[3] == "-" {
			mod = -mod
		}
		e.Modifier = mod
	}

	if e.Count < 1 || e.Sides < 1 {
		return Expression{}, dnderr.MalformedDicef("dice expression %q must roll at least one die with at least one side", expr)
	}

	return e, nil
}

// MustParse is Parse for expressions known at compile time
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return e
}

// String renders the expression in canonical NdS[+k] form
func (e Expression) String() string {
	s := fmt.Sprintf("%dd%d", e.Count, e.Sides)
	if e.Modifier != 0 {
		s += fmt.Sprintf("%+d", e.Modifier)
	}
	return s
}

// Die renders only the die size, e.g. "d20"
func (e Expression) Die() string {
	return fmt.Sprintf("d%d", e.Sides)
}

// Max is the highest total the expression can produce
func (e Expression) Max() int {
	return e.Count*e.Sides + e.Modifier
}

// Min is the lowest total the expression can produce
func (e Expression) Min() int {
	return e.Count + e.Modifier
}

// Step moves the die delta positions along Chain, clamping at either end.
// Count and modifier are carried unchanged.
func (e Expression) Step(delta int) (Expression, error) {
	idx := chainIndex(e.Sides)
	if idx < 0 {
		return e, dnderr.MalformedDicef("d%d is not on the dice chain", e.Sides)
	}

	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(Chain) {
		idx = len(Chain) - 1
	}

	e.Sides = Chain[idx]
	return e, nil
}

// Step parses expr and steps it delta positions along the dice chain
func Step(expr string, delta int) (string, error) {
	e, err := Parse(expr)
	if err != nil {
		return "", err
	}

	stepped, err := e.Step(delta)
	if err != nil {
		return "", err
	}

	return stepped.String(), nil
}

// Larger reports whether a is further up the dice chain than b
func Larger(a, b Expression) bool {
	return a.Sides > b.Sides
}

func chainIndex(sides int) int {
	for i, s := range Chain {
		if s == sides {
			return i
		}
	}
	return -1
}
