package combat

import (
	"fmt"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/shared"
)

// LifeStatus is where a combatant sits in the alive -> dying -> dead machine
type LifeStatus string

const (
	LifeAlive LifeStatus = "alive"
	LifeDying LifeStatus = "dying"
	LifeDead  LifeStatus = "dead"
)

// LifeState is the life state of an initiative entry. The zero value is alive.
type LifeState struct {
	Status         LifeStatus `json:"status,omitempty"`
	RemainingTurns int        `json:"remaining_turns,omitempty"`
}

// IsAlive reports whether the state is neither dying nor dead
func (l LifeState) IsAlive() bool {
	return l.Status == "" || l.Status == LifeAlive
}

// IsDying reports whether the combatant is bleeding out
func (l LifeState) IsDying() bool {
	return l.Status == LifeDying
}

// IsDead reports whether the combatant is dead
func (l LifeState) IsDead() bool {
	return l.Status == LifeDead
}

func (l LifeState) String() string {
	switch {
	case l.IsDying():
		return fmt.Sprintf("dying (%d)", l.RemainingTurns)
	case l.IsDead():
		return "dead"
	default:
		return "alive"
	}
}

// LifeTransition reports one change of life state
type LifeTransition struct {
	Name string    `json:"name"`
	From LifeState `json:"from"`
	To   LifeState `json:"to"`
	Text string    `json:"text"`
}

// OnZeroHP moves a combatant that just dropped to 0 hp into dying, or straight
// to dead when level gives no buffer. Already dying or dead combatants are unchanged.
func (l *LifeState) OnZeroHP(name string, level int) *LifeTransition {
	if !l.IsAlive() {
		return nil
	}
	from := *l
	if level <= 0 {
		*l = LifeState{Status: LifeDead}
		return &LifeTransition{Name: name, From: from, To: *l, Text: fmt.Sprintf("%s is slain!", name)}
	}

	*l = LifeState{Status: LifeDying, RemainingTurns: level}
	return &LifeTransition{
		Name: name,
		From: from,
		To:   *l,
		Text: fmt.Sprintf("%s is bleeding out! %d turns until death.", name, level),
	}
}

// Tick counts a dying combatant down once. Reaching zero is death.
func (l *LifeState) Tick(name string) *LifeTransition {
	if !l.IsDying() {
		return nil
	}
	from := *l
	l.RemainingTurns--
	if l.RemainingTurns <= 0 {
		*l = LifeState{Status: LifeDead}
		return &LifeTransition{Name: name, From: from, To: *l, Text: fmt.Sprintf("%s has bled out and died.", name)}
	}
	return &LifeTransition{
		Name: name,
		From: from,
		To:   *l,
		Text: fmt.Sprintf("%s is dying: %d turns left.", name, l.RemainingTurns),
	}
}

// Stabilize handles hit points rising above zero while dying: the record
// permanently loses a point of Stamina (never below 1) and the countdown is cleared.
func (l *LifeState) Stabilize(c *character.Character) *LifeTransition {
	if !l.IsDying() || c == nil || c.HP.Current <= 0 {
		return nil
	}
	from := *l
	*l = LifeState{Status: LifeAlive}

	text := fmt.Sprintf("%s is stabilized", c.Name)
	if stamina := c.Ability(shared.AbilityStamina); stamina != nil {
		stamina.LowerPermanently(1, 1)
		text += fmt.Sprintf(" but carries a lasting wound (Stamina now %d)", stamina.Base)
	}

	return &LifeTransition{Name: c.Name, From: from, To: *l, Text: text + "."}
}
