package dice

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}

// RollExpression parses expr and rolls it with r
func RollExpression(r Roller, expr string) (*RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return RollParsed(r, e)
}

// RollParsed rolls an already parsed expression with r
func RollParsed(r Roller, e Expression) (*RollResult, error) {
	result, err := r.Roll(e.Count, e.Sides, e.Modifier)
	if err != nil {
		return nil, err
	}
	result.Expression = e.String()
	return result, nil
}
