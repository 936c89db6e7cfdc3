package character

import (
	"fmt"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/shared"
)

// AbilityScore is one ability with its permanent maximum and current value.
// Luck burn and stamina loss lower Current; permanent loss lowers both.
type AbilityScore struct {
	Base     int `json:"base"`
	Current  int `json:"current"`
	Modifier int `json:"modifier"`
}

// NewAbilityScore creates a score at full value
func NewAbilityScore(score int) *AbilityScore {
	a := &AbilityScore{Base: score, Current: score}
	a.Recompute()
	return a
}

// Recompute refreshes Modifier from Current
func (a *AbilityScore) Recompute() {
	a.Modifier = shared.ModifierFor(a.Current)
}

// Lower subtracts amount from Current without going below floor
func (a *AbilityScore) Lower(amount, floor int) int {
	before := a.Current
	a.Current -= amount
	if a.Current < floor {
		a.Current = floor
	}
	a.Recompute()
	return before - a.Current
}

// LowerPermanently subtracts amount from both Current and Base, never below floor
func (a *AbilityScore) LowerPermanently(amount, floor int) {
	a.Base -= amount
	if a.Base < floor {
		a.Base = floor
	}
	a.Current -= amount
	if a.Current < floor {
		a.Current = floor
	}
	if a.Current > a.Base {
		a.Current = a.Base
	}
	a.Recompute()
}

func (a *AbilityScore) String() string {
	if a.Current != a.Base {
		return fmt.Sprintf("%d/%d (%+d)", a.Current, a.Base, a.Modifier)
	}
	return fmt.Sprintf("%d (%+d)", a.Current, a.Modifier)
}
