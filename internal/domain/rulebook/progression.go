package rulebook

import (
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/shared"
)

// MaxLevel is the highest level the progression tables cover. Higher levels
// reuse the level-10 row.
const MaxLevel = 10

// CombatProgression is the per-level combat row of a class
type CombatProgression struct {
	ActionDice    []string
	AttackBonus   int
	CritDie       string
	CritTable     string
	ThreatRange   int // Lowest natural roll that threatens a crit on the largest action die
	DeedDie       string
	LuckDie       string
	BackstabBonus int
}

type classTable struct {
	attackBonus   [MaxLevel]int
	critDie       [MaxLevel]string
	critTable     [MaxLevel]string
	threatRange   [MaxLevel]int
	deedDie       [MaxLevel]string
	luckDie       [MaxLevel]string
	backstabBonus [MaxLevel]int
	actionDice    [MaxLevel][]string
}

var deedDice = [MaxLevel]string{"1d3", "1d4", "1d5", "1d6", "1d7", "1d8", "1d10+1", "1d10+2", "1d10+3", "1d10+4"}

func flat[T any](v T) [MaxLevel]T {
	var out [MaxLevel]T
	for i := range out {
		out[i] = v
	}
	return out
}

var progressions = map[shared.Class]classTable{
	shared.ClassWarrior: {
		critDie:     [MaxLevel]string{"1d12", "1d14", "1d16", "1d20", "1d24", "1d30", "1d30", "2d20", "2d20", "2d20"},
		critTable:   [MaxLevel]string{"III", "III", "IV", "IV", "V", "V", "V", "V", "V", "V"},
		threatRange: [MaxLevel]int{19, 19, 19, 19, 18, 18, 18, 18, 17, 17},
		deedDie:     deedDice,
		actionDice: [MaxLevel][]string{
			{"1d20"}, {"1d20"}, {"1d20"}, {"1d20"}, {"1d20", "1d14"},
			{"1d20", "1d16"}, {"1d20", "1d20"}, {"1d20", "1d20"}, {"1d20", "1d20"}, {"1d20", "1d20", "1d14"},
		},
	},
	shared.ClassDwarf: {
		critDie:     [MaxLevel]string{"1d10", "1d12", "1d14", "1d16", "1d20", "1d24", "1d30", "1d30", "2d20", "2d20"},
		critTable:   [MaxLevel]string{"III", "III", "IV", "IV", "V", "V", "V", "V", "V", "V"},
		threatRange: flat(20),
		deedDie:     deedDice,
	},
	shared.ClassThief: {
		attackBonus:   [MaxLevel]int{0, 1, 1, 2, 2, 3, 3, 3, 4, 4},
		critDie:       [MaxLevel]string{"1d10", "1d12", "1d14", "1d16", "1d20", "1d24", "1d30", "1d30+2", "1d30+4", "1d30+6"},
		critTable:     flat("II"),
		threatRange:   flat(20),
		luckDie:       [MaxLevel]string{"1d3", "1d4", "1d5", "1d6", "1d7", "1d8", "1d10", "1d12", "1d14", "1d16"},
		backstabBonus: [MaxLevel]int{1, 3, 5, 7, 8, 9, 10, 11, 12, 13},
	},
	shared.ClassCleric: {
		attackBonus: [MaxLevel]int{0, 1, 2, 2, 3, 4, 5, 5, 6, 7},
		critDie:     [MaxLevel]string{"1d8", "1d8", "1d10", "1d10", "1d12", "1d12", "1d14", "1d14", "1d16", "1d16"},
		critTable:   flat("III"),
		threatRange: flat(20),
	},
	shared.ClassWizard: {
		attackBonus: [MaxLevel]int{0, 1, 1, 1, 2, 2, 3, 3, 4, 4},
		critDie:     [MaxLevel]string{"1d6", "1d6", "1d8", "1d8", "1d10", "1d10", "1d12", "1d12", "1d14", "1d14"},
		critTable:   flat("I"),
		threatRange: flat(20),
	},
	shared.ClassElf: {
		attackBonus: [MaxLevel]int{1, 1, 2, 2, 3, 3, 4, 4, 5, 5},
		critDie:     [MaxLevel]string{"1d6", "1d8", "1d8", "1d10", "1d10", "1d12", "1d12", "1d14", "1d14", "1d16"},
		critTable:   flat("II"),
		threatRange: flat(20),
	},
	shared.ClassHalfling: {
		attackBonus: [MaxLevel]int{1, 2, 2, 3, 4, 5, 5, 6, 7, 8},
		critDie:     [MaxLevel]string{"1d8", "1d8", "1d10", "1d10", "1d12", "1d12", "1d14", "1d14", "1d16", "1d16"},
		critTable:   flat("III"),
		threatRange: flat(20),
	},
}

// Progression returns the combat row for class at level. Level 0 and unknown
// classes get the funnel row: d20 action die, 1d4 on crit table I.
func Progression(class shared.Class, level int) CombatProgression {
	table, ok := progressions[class]
	if !ok || level < 1 {
		return CombatProgression{
			ActionDice:  []string{"1d20"},
			CritDie:     "1d4",
			CritTable:   "I",
			ThreatRange: 20,
		}
	}

	idx := level - 1
	if idx >= MaxLevel {
		idx = MaxLevel - 1
	}

	p := CombatProgression{
		ActionDice:    append([]string(nil), table.actionDice[idx]...),
		AttackBonus:   table.attackBonus[idx],
		CritDie:       table.critDie[idx],
		CritTable:     table.critTable[idx],
		ThreatRange:   table.threatRange[idx],
		DeedDie:       table.deedDie[idx],
		LuckDie:       table.luckDie[idx],
		BackstabBonus: table.backstabBonus[idx],
	}
	if len(p.ActionDice) == 0 {
		p.ActionDice = []string{"1d20"}
	}
	return p
}

// CanBackstab reports whether the class gets the backstab bonus and auto-crit
func CanBackstab(class shared.Class) bool {
	return class == shared.ClassThief
}

// RollsLuckDie reports whether the class rolls its luck die per point of luck burned
func RollsLuckDie(class shared.Class) bool {
	return class == shared.ClassThief
}

// DoublesSelfLuck reports whether the class gets two points per point of its own luck burned
func DoublesSelfLuck(class shared.Class) bool {
	return class == shared.ClassHalfling
}

// AddsLevelToInitiative reports whether the class adds its level to initiative rolls
func AddsLevelToInitiative(class shared.Class) bool {
	return class == shared.ClassWarrior
}
