package combat

import (
	"context"
	"log"
	"slices"
	"strings"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/character"
	gamecombat "github.com/KirkDiggler/dcc-bot-discord/internal/domain/game/combat"
	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// optionalTracker loads the session's tracker; no session or no encounter yields nil
func (s *service) optionalTracker(ctx context.Context, sessionID string) (*gamecombat.Tracker, error) {
	if sessionID == "" {
		return nil, nil
	}
	tracker, err := s.encounters.Get(ctx, sessionID)
	if err != nil {
		if dnderr.IsNotFound(err) {
			return nil, nil
		}
		return nil, dnderr.Wrap(err, "failed to load initiative order")
	}
	return tracker, nil
}

// requireTracker loads the session's tracker and fails when there is none
func (s *service) requireTracker(ctx context.Context, sessionID string) (*gamecombat.Tracker, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, dnderr.InvalidArgument("session ID is required")
	}
	tracker, err := s.encounters.Get(ctx, sessionID)
	if err != nil {
		if dnderr.IsNotFound(err) {
			return nil, dnderr.NotFound("no initiative order here, add a combatant first").
				WithMeta("session_id", sessionID)
		}
		return nil, dnderr.Wrap(err, "failed to load initiative order")
	}
	return tracker, nil
}

// AdvanceTurn moves the pointer to the next combatant
func (s *service) AdvanceTurn(ctx context.Context, sessionID string) (*gamecombat.TurnResult, error) {
	ctx, span := s.tracer.Start(ctx, "combat.advance_turn")
	defer span.End()
	span.SetAttributes(attribute.String("session_id", sessionID))

	defer s.sessionLocks.Lock(sessionID)()

	tracker, err := s.requireTracker(ctx, sessionID)
	if err != nil {
		return nil, fail(span, err)
	}

	turn, err := tracker.Advance()
	if err != nil {
		return nil, fail(span, err)
	}

	if err := s.encounters.Save(ctx, tracker); err != nil {
		return nil, fail(span, dnderr.Wrap(err, "failed to save initiative order"))
	}

	span.SetAttributes(
		attribute.Int("round", turn.Round),
		attribute.Int("index", turn.Index),
		attribute.Bool("new_round", turn.NewRound),
	)
	log.Printf("[COMBAT] Session %s: round %d, %s is up", sessionID, turn.Round, turn.Entry.Name)
	if turn.Life != nil {
		log.Printf("[COMBAT] %s", turn.Life.Text)
	}

	return turn, nil
}

// AddCombatant rolls initiative unless one is given and inserts the entry,
// creating the session's tracker on first use
func (s *service) AddCombatant(ctx context.Context, input *AddCombatantInput) (*AddCombatantResult, error) {
	ctx, span := s.tracer.Start(ctx, "combat.add_combatant")
	defer span.End()

	if input == nil {
		return nil, fail(span, dnderr.InvalidArgument("input cannot be nil"))
	}
	if strings.TrimSpace(input.SessionID) == "" {
		return nil, fail(span, dnderr.InvalidArgument("session ID is required"))
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fail(span, dnderr.InvalidArgument("combatant name is required"))
	}
	if input.Monster && input.HP <= 0 {
		return nil, fail(span, dnderr.InvalidArgumentf("%s needs hit points above 0", input.Name))
	}
	span.SetAttributes(
		attribute.String("session_id", input.SessionID),
		attribute.String("name", input.Name),
		attribute.Bool("monster", input.Monster),
	)

	defer s.sessionLocks.Lock(input.SessionID)()

	tracker, err := s.optionalTracker(ctx, input.SessionID)
	if err != nil {
		return nil, fail(span, err)
	}
	if tracker == nil {
		tracker = gamecombat.NewTracker(s.uuidGenerator.New(), input.SessionID, input.ChannelID)
	}

	entry := &gamecombat.Entry{
		ID:    s.uuidGenerator.New(),
		Name:  strings.TrimSpace(input.Name),
		Owner: input.Owner,
	}
	result := &AddCombatantResult{Entry: entry}

	if input.Monster {
		entry.Type = gamecombat.CombatantTypeMonster
		entry.Snapshot = &gamecombat.Snapshot{HP: input.HP, MaxHP: input.HP, AC: input.AC}
		if input.Initiative == nil {
			roll, err := gamecombat.RollFlatInitiative(s.roller, input.InitiativeBonus)
			if err != nil {
				return nil, fail(span, dnderr.Wrap(err, "failed to roll initiative"))
			}
			result.Roll = roll
		}
	} else {
		rec, err := s.characters.Get(ctx, input.Name)
		if err != nil {
			if dnderr.IsNotFound(err) {
				return nil, fail(span, dnderr.NotFoundf("no combatant record named %s", input.Name).
					WithMeta("name", input.Name))
			}
			return nil, fail(span, dnderr.Wrapf(err, "failed to load %s", input.Name))
		}
		entry.Type = gamecombat.CombatantTypePlayer
		entry.Name = rec.Name
		entry.Record = rec.Key()
		if entry.Owner == "" {
			entry.Owner = rec.OwnerID
		}
		if input.Initiative == nil {
			weapon, _ := s.catalog.Get(rec.Equipped)
			roll, err := gamecombat.RollInitiative(s.roller, rec, weapon)
			if err != nil {
				return nil, fail(span, dnderr.Wrap(err, "failed to roll initiative"))
			}
			result.Roll = roll
		}
	}

	if input.Initiative != nil {
		entry.Initiative = *input.Initiative
	} else {
		entry.Initiative = result.Roll.Total
	}

	if err := tracker.Add(entry); err != nil {
		return nil, fail(span, err)
	}
	tracker.AddLogEntry(entry.Name + " joins the fight")

	if err := s.encounters.Save(ctx, tracker); err != nil {
		return nil, fail(span, dnderr.Wrap(err, "failed to save initiative order"))
	}

	result.Round = tracker.Round
	span.SetAttributes(attribute.Int("initiative", entry.Initiative))
	log.Printf("[COMBAT] Session %s: %s joins with initiative %d", input.SessionID, entry.Name, entry.Initiative)

	return result, nil
}

// RemoveCombatant takes the named entry out of the order
func (s *service) RemoveCombatant(ctx context.Context, sessionID, name string) (*gamecombat.Entry, error) {
	ctx, span := s.tracer.Start(ctx, "combat.remove_combatant")
	defer span.End()
	span.SetAttributes(attribute.String("session_id", sessionID), attribute.String("name", name))

	defer s.sessionLocks.Lock(sessionID)()

	tracker, err := s.requireTracker(ctx, sessionID)
	if err != nil {
		return nil, fail(span, err)
	}

	entry, err := tracker.Remove(name)
	if err != nil {
		return nil, fail(span, err)
	}
	tracker.AddLogEntry(entry.Name + " leaves the fight")

	if err := s.encounters.Save(ctx, tracker); err != nil {
		return nil, fail(span, dnderr.Wrap(err, "failed to save initiative order"))
	}

	log.Printf("[COMBAT] Session %s: removed %s", sessionID, entry.Name)
	return entry, nil
}

// ListInitiative renders the order, filling in record hit points. A record
// that can no longer be loaded is listed without hit points.
func (s *service) ListInitiative(ctx context.Context, sessionID string) (*InitiativeList, error) {
	ctx, span := s.tracer.Start(ctx, "combat.list_initiative")
	defer span.End()
	span.SetAttributes(attribute.String("session_id", sessionID))

	defer s.sessionLocks.Lock(sessionID)()

	tracker, err := s.requireTracker(ctx, sessionID)
	if err != nil {
		return nil, fail(span, err)
	}

	rows := slices.Collect(tracker.List())

	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range tracker.Entries {
		if !entry.HasRecord() {
			continue
		}
		g.Go(func() error {
			rec, err := s.characters.Get(gctx, entry.Record)
			if dnderr.IsNotFound(err) {
				log.Printf("[COMBAT] Record %s in session %s is gone", entry.Record, sessionID)
				return nil
			}
			if err != nil {
				return dnderr.Wrapf(err, "failed to load %s", entry.Name)
			}
			rows[i].HP = rec.HP.Current
			rows[i].MaxHP = rec.HP.Max
			rows[i].HasHP = true
			rows[i].Conditions = rec.Conditions.Keys()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fail(span, err)
	}

	return &InitiativeList{
		SessionID: sessionID,
		Round:     tracker.Round,
		Current:   tracker.Current,
		Rows:      rows,
		Log:       tracker.CombatLog,
	}, nil
}

// EndEncounter deletes the session's tracker
func (s *service) EndEncounter(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "combat.end_encounter")
	defer span.End()
	span.SetAttributes(attribute.String("session_id", sessionID))

	defer s.sessionLocks.Lock(sessionID)()

	if err := s.encounters.Delete(ctx, sessionID); err != nil {
		if dnderr.IsNotFound(err) {
			return fail(span, dnderr.NotFound("no initiative order to end").WithMeta("session_id", sessionID))
		}
		return fail(span, dnderr.Wrap(err, "failed to end encounter"))
	}

	log.Printf("[COMBAT] Session %s: encounter ended", sessionID)
	return nil
}

// Heal restores hit points. A dying record brought above 0 is stabilized;
// dead combatants cannot be healed.
func (s *service) Heal(ctx context.Context, input *HealInput) (*HealResult, error) {
	ctx, span := s.tracer.Start(ctx, "combat.heal")
	defer span.End()

	if input == nil {
		return nil, fail(span, dnderr.InvalidArgument("input cannot be nil"))
	}
	if strings.TrimSpace(input.Target) == "" {
		return nil, fail(span, dnderr.InvalidArgument("heal target is required"))
	}
	if input.Amount <= 0 {
		return nil, fail(span, dnderr.InvalidArgumentf("cannot heal %d hit points", input.Amount))
	}
	span.SetAttributes(
		attribute.String("session_id", input.SessionID),
		attribute.String("target", input.Target),
		attribute.Int("amount", input.Amount),
	)

	if input.SessionID != "" {
		defer s.sessionLocks.Lock(input.SessionID)()
	}

	tracker, err := s.optionalTracker(ctx, input.SessionID)
	if err != nil {
		return nil, fail(span, err)
	}

	var entry *gamecombat.Entry
	recordKey := character.Key(input.Target)
	if tracker != nil {
		if e, _, ok := tracker.Find(input.Target); ok {
			entry = e
			recordKey = e.Record
		}
	}
	if entry != nil && entry.Life.IsDead() {
		return nil, fail(span, dnderr.InvalidArgumentf("%s is dead", entry.Name))
	}

	result := &HealResult{}

	if entry != nil && !entry.HasRecord() {
		snap := entry.Snapshot
		before := snap.HP
		snap.HP += input.Amount
		if snap.HP > snap.MaxHP {
			snap.HP = snap.MaxHP
		}
		result.Name = entry.Name
		result.Healed = snap.HP - before
		result.HP = snap.HP
		result.MaxHP = snap.MaxHP
	} else {
		defer s.recordLocks.Lock(recordKey)()

		rec, err := s.characters.Get(ctx, recordKey)
		if err != nil {
			if dnderr.IsNotFound(err) {
				return nil, fail(span, dnderr.NotFoundf("no combatant record named %s", input.Target).
					WithMeta("name", input.Target))
			}
			return nil, fail(span, dnderr.Wrapf(err, "failed to load %s", input.Target))
		}

		result.Name = rec.Name
		result.Healed = rec.Heal(input.Amount)
		result.HP = rec.HP.Current
		result.MaxHP = rec.HP.Max
		if entry != nil {
			result.Life = entry.Life.Stabilize(rec)
		}

		if err := s.characters.Save(ctx, rec); err != nil {
			return nil, fail(span, dnderr.Wrapf(err, "failed to save %s", rec.Name))
		}
	}

	if tracker != nil && entry != nil {
		tracker.AddLogEntry(result.Name + " is healed")
		if result.Life != nil {
			tracker.AddLogEntry(result.Life.Text)
		}
		if err := s.encounters.Save(ctx, tracker); err != nil {
			return nil, fail(span, dnderr.Wrap(err, "failed to save initiative order"))
		}
	}

	log.Printf("[COMBAT] %s healed %d (%d/%d)", result.Name, result.Healed, result.HP, result.MaxHP)
	return result, nil
}
