package attack

import (
	"fmt"

	"github.com/KirkDiggler/dcc-bot-discord/internal/dice"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/equipment"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/rulebook"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
)

// NotLuckyEnough is the note attached when less luck was available than requested
const NotLuckyEnough = "not lucky enough"

// Aggregator computes attack and damage totals for one attack
type Aggregator struct {
	roller dice.Roller
	rules  Rules
}

// NewAggregator creates an aggregator rolling with roller
func NewAggregator(roller dice.Roller, rules Rules) *Aggregator {
	if roller == nil {
		roller = dice.NewRandomRoller()
	}
	return &Aggregator{roller: roller, rules: rules}
}

// Rules returns the rule constants in effect
func (a *Aggregator) Rules() Rules {
	return a.rules
}

// Resolve rolls the attack. Validation happens before anything is rolled or
// spent; the only record mutation is luck burned from the attacker or donor.
// Damage is computed but not applied.
func (a *Aggregator) Resolve(in *Input) (*Result, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	attacker := in.Attacker
	weapon := in.Weapon
	if weapon.IsMelee() && weapon.HasTag(equipment.TagThrown) && in.Flags.Range != "" {
		weapon = weapon.AsThrown()
	}

	res := &Result{Attacker: attacker.Name, Weapon: weapon}
	if in.Defender != nil {
		res.Defender = in.Defender.Name
	}

	// Step 1: action die
	actionDie, largest, err := a.selectActionDie(in, weapon, res)
	if err != nil {
		return nil, err
	}
	res.ActionDie = actionDie.String()

	// Step 2: roll it
	roll, err := dice.RollParsed(a.roller, actionDie)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll action die")
	}
	res.ActionRoll = roll
	res.Natural = roll.Natural()
	res.addTerm(actionDie.Die(), roll.Total, roll)

	// Step 3: ability, progression, weapon, penalties, situation
	a.addFlatTerms(in, weapon, res)

	// Step 4: class terms
	if err := a.rollDeed(in, res); err != nil {
		return nil, err
	}
	if lw := attacker.LuckyWeapon; lw != nil && lw.Bonus != 0 && equipment.NormalizeKey(lw.Weapon) == weapon.Key {
		res.addTerm("Lucky weapon", lw.Bonus, nil)
	}
	if in.Flags.Backstab {
		if canBackstab(attacker, weapon) {
			res.Backstab = true
			if attacker.Combat.BackstabBonus != 0 {
				res.addTerm("Backstab", attacker.Combat.BackstabBonus, nil)
			}
		} else {
			res.note("%s cannot backstab with %s", attacker.Name, weapon.Name)
		}
	}
	class := classification{weapon: weapon, mounted: in.Flags.Mounted}
	if bonus, ok := auguryBonus(attacker.Augury, class, false); ok {
		res.addTerm("Augury", bonus, nil)
	}

	// Step 5: luck burn
	if err := a.burnLuck(in, res); err != nil {
		return nil, err
	}

	// Step 6: damage
	if err := a.rollDamage(in, weapon, class, res); err != nil {
		return nil, err
	}

	// Step 7: hit, crit and fumble
	a.compare(in, actionDie, largest, res)

	return res, nil
}

func validate(in *Input) error {
	if in == nil || in.Attacker == nil {
		return dnderr.InvalidArgument("attacker is required")
	}
	if in.Weapon == nil {
		return dnderr.InvalidArgument("weapon is required")
	}
	if in.Flags.LuckBurn < 0 {
		return dnderr.InvalidArgumentf("cannot burn %d luck", in.Flags.LuckBurn)
	}
	if in.Donor != nil && in.Donor.Key() == in.Attacker.Key() {
		return dnderr.InvalidDonorf("%s cannot donate luck to themselves", in.Donor.Name)
	}
	return nil
}

// selectActionDie picks the requested action die and applies training and
// long range step-downs. largest reports whether it is the record's biggest die.
func (a *Aggregator) selectActionDie(in *Input, weapon *equipment.Weapon, res *Result) (dice.Expression, bool, error) {
	attacker := in.Attacker
	dieExprs := attacker.Combat.ActionDice
	if len(dieExprs) == 0 {
		dieExprs = []string{"1d20"}
	}

	idx := in.Flags.ActionDie
	if idx < 0 || idx >= len(dieExprs) {
		res.note("no action die #%d, using %s", idx+1, dieExprs[0])
		idx = 0
	}

	parsed := make([]dice.Expression, len(dieExprs))
	for i, expr := range dieExprs {
		e, err := dice.Parse(expr)
		if err != nil {
			return dice.Expression{}, false, dnderr.Wrapf(err, "action die of %s", attacker.Name)
		}
		parsed[i] = e
	}

	selected := parsed[idx]
	largest := true
	for _, e := range parsed {
		if dice.Larger(e, selected) {
			largest = false
		}
	}

	trained := attacker.IsTrainedWith(weapon.Key)
	if in.Flags.Trained != nil {
		trained = *in.Flags.Trained
	}
	if !trained && attacker.Level > 0 {
		stepped, err := selected.Step(-1)
		if err != nil {
			return dice.Expression{}, false, err
		}
		res.note("untrained with %s: action die steps down to %s", weapon.Name, stepped.Die())
		selected = stepped
	}

	if in.Flags.Range == RangeLong && a.rules.LongRangeDieSteps > 0 {
		stepped, err := selected.Step(-a.rules.LongRangeDieSteps)
		if err != nil {
			return dice.Expression{}, false, err
		}
		res.note("long range: action die steps down to %s", stepped.Die())
		selected = stepped
	}

	return selected, largest, nil
}

func (a *Aggregator) addFlatTerms(in *Input, weapon *equipment.Weapon, res *Result) {
	attacker := in.Attacker

	ability := shared.AbilityStrength
	if !weapon.IsMelee() {
		ability = shared.AbilityAgility
	}
	if mod := attacker.Modifier(ability); mod != 0 {
		res.addTerm(abilityLabel(ability), mod, nil)
	}
	if closeThrow(weapon, in.Flags.Range) {
		if mod := attacker.Modifier(shared.AbilityStrength); mod != 0 {
			res.addTerm(abilityLabel(shared.AbilityStrength), mod, nil)
		}
	}
	if attacker.Combat.AttackBonus != 0 {
		res.addTerm("Attack bonus", attacker.Combat.AttackBonus, nil)
	}
	if weapon.AttackBonus != 0 {
		res.addTerm(weapon.Name, weapon.AttackBonus, nil)
	}
	if attacker.RollPenalty != 0 {
		res.addTerm("Roll penalty", attacker.RollPenalty, nil)
	}
	if penalty := attacker.Conditions.AttackPenalty(); penalty != 0 {
		res.addTerm("Conditions", -penalty, nil)
	}

	if in.Flags.Charging {
		res.addTerm("Charge", a.rules.ChargeAttackBonus, nil)
	}
	if in.Flags.Mounted && !in.Flags.DefenderMounted && weapon.IsMelee() {
		res.addTerm("Higher ground", a.rules.MountedHigherGroundBonus, nil)
	}
	if !weapon.IsMelee() {
		if in.Flags.IntoMelee {
			res.addTerm("Firing into melee", -a.rules.FiringIntoMeleePenalty, nil)
		}
		if in.Flags.Range == RangeMedium {
			res.addTerm("Medium range", -a.rules.MediumRangePenalty, nil)
		}
	}
}

// closeThrow reports a thrown attack at close range, which keeps Strength
func closeThrow(weapon *equipment.Weapon, band RangeBand) bool {
	return weapon.IsThrown() && (band == "" || band == RangeClose)
}

func (a *Aggregator) rollDeed(in *Input, res *Result) error {
	die := in.Attacker.Combat.DeedDie
	if die == "" {
		if in.Flags.Deed {
			res.note("%s has no deed die", in.Attacker.Name)
		}
		return nil
	}

	roll, err := dice.RollExpression(a.roller, die)
	if err != nil {
		return dnderr.Wrap(err, "failed to roll deed die")
	}
	res.Deed = &DeedResult{
		Die:      die,
		Roll:     roll,
		Value:    roll.Total,
		Declared: in.Flags.Deed,
		Text:     in.Flags.DeedText,
	}
	res.addTerm("Deed", roll.Total, roll)
	return nil
}

// luckMultiplier is how many bonus points each consumed luck point is worth.
// 0 means a luck die is rolled per point instead.
func luckMultiplier(attacker *character.Character, donated bool) int {
	switch {
	case donated:
		return 1
	case rulebook.RollsLuckDie(attacker.Class) && attacker.Combat.LuckDie != "":
		return 0
	case rulebook.DoublesSelfLuck(attacker.Class):
		return 2
	default:
		return 1
	}
}

func (a *Aggregator) burnLuck(in *Input, res *Result) error {
	requested := in.Flags.LuckBurn
	if requested == 0 {
		return nil
	}

	source := in.Attacker
	donated := in.Donor != nil
	if donated {
		source = in.Donor
	}

	burn := &LuckBurn{
		Source:     source.Name,
		Donated:    donated,
		Requested:  requested,
		Multiplier: luckMultiplier(in.Attacker, donated),
	}
	res.LuckBurn = burn

	burn.Consumed = source.BurnLuck(requested)
	if burn.Consumed < requested {
		res.Notes = append(res.Notes, NotLuckyEnough)
	}
	if burn.Consumed == 0 {
		return nil
	}

	if burn.Multiplier == 0 {
		for i := 0; i < burn.Consumed; i++ {
			roll, err := dice.RollExpression(a.roller, in.Attacker.Combat.LuckDie)
			if err != nil {
				return dnderr.Wrap(err, "failed to roll luck die")
			}
			burn.Rolls = append(burn.Rolls, roll)
			burn.Bonus += roll.Total
		}
	} else {
		burn.Bonus = burn.Consumed * burn.Multiplier
	}

	label := fmt.Sprintf("Luck (%d burned)", burn.Consumed)
	if donated {
		label = fmt.Sprintf("Luck from %s (%d)", source.Name, burn.Consumed)
	}
	res.addTerm(label, burn.Bonus, nil)
	return nil
}

func (a *Aggregator) rollDamage(in *Input, weapon *equipment.Weapon, class classification, res *Result) error {
	attacker := in.Attacker

	expr, err := dice.Parse(weapon.Damage)
	if err != nil {
		return dnderr.Wrapf(err, "damage of %s", weapon.Name)
	}
	if in.Flags.Mounted && in.Flags.Charging && weapon.HasTag(equipment.TagMounted) {
		expr.Count *= 2
		res.note("mounted charge with %s: damage dice doubled", weapon.Name)
	}

	roll, err := dice.RollParsed(a.roller, expr)
	if err != nil {
		return dnderr.Wrap(err, "failed to roll damage")
	}
	res.addDamage(weapon.Name, roll.Total, roll)

	if weapon.DamageBonus != 0 {
		res.addDamage("Weapon bonus", weapon.DamageBonus, nil)
	}

	if weapon.IsMelee() || closeThrow(weapon, in.Flags.Range) {
		if mod := attacker.Modifier(shared.AbilityStrength); mod != 0 {
			res.addDamage(abilityLabel(shared.AbilityStrength), mod, nil)
		}
	}

	if res.Deed != nil {
		res.addDamage("Deed", res.Deed.Value, nil)
	}

	if bonus, ok := auguryBonus(attacker.Augury, class, true); ok {
		res.addDamage("Augury", bonus, nil)
	}

	if res.Damage < 1 {
		res.Damage = 1
	}
	return nil
}

func (a *Aggregator) compare(in *Input, actionDie dice.Expression, largest bool, res *Result) {
	attacker := in.Attacker

	switch {
	case in.ACOverride != nil:
		res.TargetAC = *in.ACOverride
		res.HasTarget = true
	case in.Defender != nil:
		res.TargetAC = in.Defender.AC
		res.HasTarget = true
	}

	natural := res.Natural
	naturalMax := natural == actionDie.Sides
	res.FumbleCandidate = natural == 1

	threat := attacker.Combat.ThreatRange
	if threat <= 0 {
		threat = actionDie.Sides
	}
	threatened := largest && natural >= threat

	switch {
	case res.FumbleCandidate:
		res.Hit = false
	case naturalMax:
		res.Hit = true
	case res.HasTarget:
		res.Hit = res.AttackTotal >= res.TargetAC
	default:
		res.Hit = true
		res.note("no target AC, hit assumed")
	}

	res.CritCandidate = naturalMax || threatened
	res.Critical = res.CritCandidate && res.Hit
	res.Fumble = res.FumbleCandidate

	if res.Backstab && res.Hit && !res.Critical {
		res.Critical = true
		res.note("backstab: automatic critical")
	}

	if res.Deed != nil && res.Deed.Declared {
		res.Deed.Success = res.Hit && res.Deed.Value >= a.rules.DeedSuccessThreshold
	}
}

func canBackstab(attacker *character.Character, weapon *equipment.Weapon) bool {
	if !rulebook.CanBackstab(attacker.Class) {
		return false
	}
	return weapon.IsMelee() || weapon.HasTag(equipment.TagBackstab)
}

func abilityLabel(a shared.Ability) string {
	switch a {
	case shared.AbilityStrength:
		return "Str"
	case shared.AbilityAgility:
		return "Agl"
	default:
		return string(a)
	}
}
