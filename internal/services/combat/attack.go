package combat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/conditions"
	gamecombat "github.com/KirkDiggler/dcc-bot-discord/internal/domain/game/combat"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/game/combat/attack"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/tables"
	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// participant is one side of an attack: a durable record, an initiative
// entry, or both
type participant struct {
	name   string
	record *character.Character
	entry  *gamecombat.Entry
}

func (p *participant) hp() (current, maximum int) {
	switch {
	case p.record != nil:
		return p.record.HP.Current, p.record.HP.Max
	case p.entry != nil && p.entry.Snapshot != nil:
		return p.entry.Snapshot.HP, p.entry.Snapshot.MaxHP
	}
	return 0, 0
}

func (p *participant) ac() int {
	if p.record != nil {
		return p.record.AC
	}
	return p.entry.Snapshot.AC
}

func (p *participant) target() *tables.Target {
	if p.record != nil {
		return &tables.Target{Name: p.name, Conditions: p.record.ConditionSet(), Saves: p.record}
	}
	snap := p.entry.Snapshot
	if snap.Conditions == nil {
		snap.Conditions = conditions.Set{}
	}
	return &tables.Target{Name: p.name, Conditions: snap.Conditions}
}

func (p *participant) standing() CombatantHP {
	current, maximum := p.hp()
	s := CombatantHP{Name: p.name, HP: current, MaxHP: maximum}
	if p.entry != nil {
		s.Life = p.entry.Life
	}
	return s
}

// ResolveAttack validates and loads everything first; the only mutations
// happen after every lookup succeeded and are persisted together at the end.
func (s *service) ResolveAttack(ctx context.Context, req *AttackRequest) (*AttackResult, error) {
	ctx, span := s.tracer.Start(ctx, "combat.resolve_attack")
	defer span.End()

	if req == nil {
		return nil, fail(span, dnderr.InvalidArgument("attack request is required"))
	}
	if character.Key(req.Attacker) == "" {
		return nil, fail(span, dnderr.InvalidArgument("attacker is required"))
	}
	span.SetAttributes(
		attribute.String("attacker", req.Attacker),
		attribute.String("defender", req.Defender),
		attribute.String("weapon", req.Weapon),
		attribute.String("session_id", req.SessionID),
	)

	if req.Donor != "" && character.Key(req.Donor) == character.Key(req.Attacker) {
		return nil, fail(span, dnderr.InvalidDonorf("%s cannot donate luck to themselves", req.Donor).
			WithMeta("donor", req.Donor))
	}

	if req.SessionID != "" {
		defer s.sessionLocks.Lock(req.SessionID)()
	}

	tracker, err := s.optionalTracker(ctx, req.SessionID)
	if err != nil {
		return nil, fail(span, err)
	}

	attacker := &participant{name: req.Attacker}
	if tracker != nil {
		if entry, ok := tracker.FindRecord(req.Attacker); ok {
			attacker.entry = entry
		}
	}
	if attacker.entry != nil && !attacker.entry.Life.IsAlive() {
		return nil, fail(span, dnderr.InvalidArgumentf("%s is %s and cannot attack", attacker.entry.Name, attacker.entry.Life))
	}

	var defender *participant
	defenderKey := ""
	if strings.TrimSpace(req.Defender) != "" {
		defender = &participant{name: req.Defender}
		if tracker != nil {
			if entry, _, ok := tracker.Find(req.Defender); ok {
				defender.entry = entry
				defender.name = entry.Name
				defenderKey = entry.Record
			}
		}
		if defender.entry == nil {
			defenderKey = character.Key(req.Defender)
		}
		if defenderKey == character.Key(req.Attacker) {
			return nil, fail(span, dnderr.InvalidArgumentf("%s cannot attack themselves", req.Attacker))
		}
	}

	defer s.recordLocks.LockAll(character.Key(req.Attacker), defenderKey, character.Key(req.Donor))()

	records, err := s.loadRecords(ctx, req.Attacker, defenderKey, req.Donor)
	if err != nil {
		return nil, fail(span, err)
	}
	attacker.record = records[0]
	attacker.name = attacker.record.Name
	if defender != nil && records[1] != nil {
		defender.record = records[1]
		defender.name = defender.record.Name
	}
	donor := records[2]

	weapon, err := attack.ResolveWeapon(s.catalog, attacker.record, req.Weapon)
	if err != nil {
		return nil, fail(span, err)
	}

	in := &attack.Input{
		Attacker:   attacker.record,
		Weapon:     weapon,
		Donor:      donor,
		Flags:      req.Flags,
		ACOverride: req.AC,
	}
	if defender != nil {
		in.Defender = &attack.Defender{Name: defender.name, AC: defender.ac()}
	}

	res, err := s.aggregator.Resolve(in)
	if err != nil {
		return nil, fail(span, err)
	}

	result := &AttackResult{Attack: res}

	if res.Critical {
		var target *tables.Target
		if defender != nil {
			target = defender.target()
		}
		crit, err := s.tables.ResolveCrit(ctx, &tables.CritInput{
			Table:         attacker.record.Combat.CritTable,
			Die:           attacker.record.Combat.CritDie,
			LuckModifier:  attacker.record.LuckModifier(),
			AttackerName:  attacker.name,
			AttackerLevel: attacker.record.Level,
			Defender:      target,
		})
		if err != nil {
			return nil, fail(span, dnderr.Wrap(err, "failed to resolve critical hit"))
		}
		result.Crit = crit
		result.Applied = append(result.Applied, crit.Applied...)
		if crit.BonusDamage > 0 {
			res.DamageTerms = append(res.DamageTerms, attack.Term{Label: "Crit", Value: crit.BonusDamage})
			res.Damage += crit.BonusDamage
		}
	}

	if res.Fumble {
		fumble, err := s.tables.ResolveFumble(ctx, &tables.FumbleInput{
			Die:           attacker.record.Combat.FumbleDie,
			LuckModifier:  attacker.record.LuckModifier(),
			AttackerLevel: attacker.record.Level,
			Attacker:      attacker.target(),
		})
		if err != nil {
			return nil, fail(span, dnderr.Wrap(err, "failed to resolve fumble"))
		}
		result.Fumble = fumble
		result.Applied = append(result.Applied, fumble.Applied...)
	}

	// Damage
	if res.Hit && defender != nil {
		result.DamageDealt = s.damage(tracker, defender, res.Damage, result)
	}
	if result.Fumble != nil && result.Fumble.BonusDamage > 0 {
		result.SelfDamage = s.damage(tracker, attacker, result.Fumble.BonusDamage, result)
	}

	result.Attacker = attacker.standing()
	if defender != nil {
		standing := defender.standing()
		result.Defender = &standing
	}
	result.Notes = append(result.Notes, res.Notes...)

	if tracker != nil {
		tracker.AddLogEntry(summarize(result))
	}

	if err := s.persist(ctx, tracker, attacker.record, recordOf(defender), donor); err != nil {
		return nil, fail(span, err)
	}

	span.SetAttributes(
		attribute.Bool("hit", res.Hit),
		attribute.Bool("critical", res.Critical),
		attribute.Bool("fumble", res.Fumble),
		attribute.Int("damage", result.DamageDealt),
	)
	log.Printf("[COMBAT] %s", summarize(result))

	return result, nil
}

// damage applies amount to p and runs the life-state machine when hp reaches 0.
// Snapshot combatants at 0 hp die and leave the initiative order.
func (s *service) damage(tracker *gamecombat.Tracker, p *participant, amount int, result *AttackResult) int {
	var dealt int
	var level int
	switch {
	case p.record != nil:
		dealt = p.record.ApplyDamage(amount)
		level = p.record.Level
	case p.entry != nil && p.entry.Snapshot != nil:
		snap := p.entry.Snapshot
		before := snap.HP
		snap.HP -= amount
		if snap.HP < 0 {
			snap.HP = 0
		}
		dealt = before - snap.HP
	default:
		return 0
	}

	if current, _ := p.hp(); current > 0 {
		return dealt
	}

	life := &gamecombat.LifeState{}
	if p.entry != nil {
		life = &p.entry.Life
	}
	if transition := life.OnZeroHP(p.name, level); transition != nil {
		result.Life = append(result.Life, transition)
		if tracker != nil {
			tracker.AddLogEntry(transition.Text)
		}
	}

	if p.entry != nil && !p.entry.HasRecord() && tracker != nil {
		if _, err := tracker.Remove(p.entry.Name); err == nil {
			result.Removed = append(result.Removed, p.entry.Name)
		}
	}
	return dealt
}

// loadRecords fetches the attacker, defender and donor concurrently. Empty
// names yield nil slots; any missing record fails the whole load, and a
// missing donor is reported as a bad donor.
func (s *service) loadRecords(ctx context.Context, attacker, defender, donor string) ([]*character.Character, error) {
	slots := []struct {
		role string
		name string
	}{
		{role: "attacker", name: attacker},
		{role: "defender", name: defender},
		{role: "donor", name: donor},
	}
	records := make([]*character.Character, len(slots))

	g, ctx := errgroup.WithContext(ctx)
	for i, slot := range slots {
		if character.Key(slot.name) == "" {
			continue
		}
		g.Go(func() error {
			rec, err := s.characters.Get(ctx, slot.name)
			if err != nil {
				if !dnderr.IsNotFound(err) {
					return dnderr.Wrapf(err, "failed to load %s", slot.name)
				}
				if slot.role == "donor" {
					return dnderr.InvalidDonorf("no combatant record named %s to donate luck", slot.name).
						WithMeta("name", slot.name).
						WithMeta("role", slot.role)
				}
				return dnderr.NotFoundf("no combatant record named %s", slot.name).
					WithMeta("name", slot.name).
					WithMeta("role", slot.role)
			}
			records[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// persist saves every touched record concurrently, then the tracker
func (s *service) persist(ctx context.Context, tracker *gamecombat.Tracker, records ...*character.Character) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, rec := range records {
		if rec == nil {
			continue
		}
		g.Go(func() error {
			if err := s.characters.Save(gctx, rec); err != nil {
				return dnderr.Wrapf(err, "failed to save %s", rec.Name)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if tracker != nil {
		if err := s.encounters.Save(ctx, tracker); err != nil {
			return dnderr.Wrap(err, "failed to save initiative order")
		}
	}
	return nil
}

func recordOf(p *participant) *character.Character {
	if p == nil {
		return nil
	}
	return p.record
}

func summarize(r *AttackResult) string {
	res := r.Attack
	var b strings.Builder
	fmt.Fprintf(&b, "%s attacks", res.Attacker)
	if res.Defender != "" {
		fmt.Fprintf(&b, " %s", res.Defender)
	}
	fmt.Fprintf(&b, " with %s (%d)", res.Weapon.Name, res.AttackTotal)
	switch {
	case res.Fumble:
		b.WriteString(": fumble")
	case res.Critical:
		fmt.Fprintf(&b, ": critical hit for %d", r.DamageDealt)
	case res.Hit:
		fmt.Fprintf(&b, ": hit for %d", r.DamageDealt)
	default:
		b.WriteString(": miss")
	}
	if r.SelfDamage > 0 {
		fmt.Fprintf(&b, ", %d self damage", r.SelfDamage)
	}
	return b.String()
}
