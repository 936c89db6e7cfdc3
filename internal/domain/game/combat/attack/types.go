package attack

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/dcc-bot-discord/internal/dice"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/equipment"
)

// RangeBand is the distance band of a ranged or thrown attack
type RangeBand string

const (
	RangeClose  RangeBand = "close"
	RangeMedium RangeBand = "medium"
	RangeLong   RangeBand = "long"
)

// Rules are the house-rule constants the aggregator applies
type Rules struct {
	DeedSuccessThreshold     int
	MountedHigherGroundBonus int
	ChargeAttackBonus        int
	FiringIntoMeleePenalty   int
	MediumRangePenalty       int
	LongRangeDieSteps        int
}

// DefaultRules returns the tabletop values
func DefaultRules() Rules {
	return Rules{
		DeedSuccessThreshold:     3,
		MountedHigherGroundBonus: 1,
		ChargeAttackBonus:        2,
		FiringIntoMeleePenalty:   1,
		MediumRangePenalty:       2,
		LongRangeDieSteps:        1,
	}
}

// Flags are the situational switches of one attack
type Flags struct {
	ActionDie       int   // Index into the attacker's action dice
	Trained         *bool // Overrides the record's weapon training when set
	Range           RangeBand
	Mounted         bool
	DefenderMounted bool
	Charging        bool
	IntoMelee       bool
	Backstab        bool
	Deed            bool   // A mighty deed was declared
	DeedText        string // What the deed attempts
	LuckBurn        int    // Points of luck to spend
}

// Defender is the attack target as the aggregator sees it
type Defender struct {
	Name string
	AC   int
}

// Input is one attack to resolve
type Input struct {
	Attacker   *character.Character
	Defender   *Defender // nil for attacks with no target
	Weapon     *equipment.Weapon
	Donor      *character.Character // Luck donor, nil to burn the attacker's own
	Flags      Flags
	ACOverride *int
}

// Term is one addend of the attack or damage total
type Term struct {
	Label string           `json:"label"`
	Value int              `json:"value"`
	Roll  *dice.RollResult `json:"roll,omitempty"`
}

func (t Term) String() string {
	if t.Roll != nil {
		return fmt.Sprintf("%s %v = %d", t.Label, t.Roll.Rolls, t.Value)
	}
	return fmt.Sprintf("%s %+d", t.Label, t.Value)
}

// DeedResult is the rolled deed die
type DeedResult struct {
	Die      string           `json:"die"`
	Roll     *dice.RollResult `json:"roll"`
	Value    int              `json:"value"`
	Declared bool             `json:"declared"`
	Text     string           `json:"text,omitempty"`
	Success  bool             `json:"success"`
}

// LuckBurn is the luck spent on one attack
type LuckBurn struct {
	Source     string             `json:"source"` // Name of whoever spent the luck
	Donated    bool               `json:"donated"`
	Requested  int                `json:"requested"`
	Consumed   int                `json:"consumed"`
	Multiplier int                `json:"multiplier"` // 0 when a luck die was rolled per point
	Rolls      []*dice.RollResult `json:"rolls,omitempty"`
	Bonus      int                `json:"bonus"`
}

// Result is the resolved attack before any damage is applied
type Result struct {
	Attacker        string            `json:"attacker"`
	Defender        string            `json:"defender,omitempty"`
	Weapon          *equipment.Weapon `json:"weapon"`
	ActionDie       string            `json:"action_die"`
	ActionRoll      *dice.RollResult  `json:"action_roll"`
	Natural         int               `json:"natural"`
	Terms           []Term            `json:"terms"`
	AttackTotal     int               `json:"attack_total"`
	TargetAC        int               `json:"target_ac"`
	HasTarget       bool              `json:"has_target"`
	Hit             bool              `json:"hit"`
	CritCandidate   bool              `json:"crit_candidate"`
	FumbleCandidate bool              `json:"fumble_candidate"`
	Critical        bool              `json:"critical"`
	Fumble          bool              `json:"fumble"`
	Backstab        bool              `json:"backstab"`
	DamageTerms     []Term            `json:"damage_terms"`
	Damage          int               `json:"damage"`
	Deed            *DeedResult       `json:"deed,omitempty"`
	LuckBurn        *LuckBurn         `json:"luck_burn,omitempty"`
	Notes           []string          `json:"notes,omitempty"`
}

// Breakdown renders the attack terms, e.g. "d20 [15] = 15 + Str +1 + Attack bonus +2 = 18"
func (r *Result) Breakdown() string {
	return joinTerms(r.Terms, r.AttackTotal)
}

// DamageBreakdown renders the damage terms
func (r *Result) DamageBreakdown() string {
	return joinTerms(r.DamageTerms, r.Damage)
}

func joinTerms(terms []Term, total int) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		parts = append(parts, t.String())
	}
	return fmt.Sprintf("%s = **%d**", strings.Join(parts, " + "), total)
}

func (r *Result) note(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

func (r *Result) addTerm(label string, value int, roll *dice.RollResult) {
	r.Terms = append(r.Terms, Term{Label: label, Value: value, Roll: roll})
	r.AttackTotal += value
}

func (r *Result) addDamage(label string, value int, roll *dice.RollResult) {
	r.DamageTerms = append(r.DamageTerms, Term{Label: label, Value: value, Roll: roll})
	r.Damage += value
}
