package tables

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/KirkDiggler/dcc-bot-discord/internal/dice"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/conditions"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
	"github.com/KirkDiggler/dcc-bot-discord/internal/uuid"
)

// Kind tells crit outcomes from fumble outcomes
type Kind string

const (
	KindCrit   Kind = "crit"
	KindFumble Kind = "fumble"
)

// SaveSource provides saving throw modifiers; character records satisfy it
type SaveSource interface {
	SaveModifier(kind shared.SaveKind) (int, bool)
}

// Target is whoever receives an entry's conditions and forced save
type Target struct {
	Name       string
	Conditions conditions.Set
	Saves      SaveSource // nil when the target has no save data
}

// CritInput selects and rolls on a crit table
type CritInput struct {
	Table         string // Selector such as "III"
	Die           string // Crit die expression
	LuckModifier  int    // Attacker's luck modifier, added to the roll
	AttackerName  string
	AttackerLevel int
	Defender      *Target
}

// FumbleInput rolls on the fumble table
type FumbleInput struct {
	Die           string
	LuckModifier  int // Subtracted from the roll
	AttackerLevel int
	Attacker      *Target
}

// SaveOutcome is a resolved forced save
type SaveOutcome struct {
	Kind     shared.SaveKind  `json:"kind"`
	DC       int              `json:"dc"`
	Roll     *dice.RollResult `json:"roll"`
	Modifier int              `json:"modifier"`
	Total    int              `json:"total"`
	Passed   bool             `json:"passed"`
	OnFail   string           `json:"on_fail,omitempty"`
}

// Outcome is the resolved crit or fumble
type Outcome struct {
	Kind         Kind                 `json:"kind"`
	Table        string               `json:"table"`
	Die          string               `json:"die"`
	Roll         *dice.RollResult     `json:"roll,omitempty"`
	LuckModifier int                  `json:"luck_modifier"`
	Value        int                  `json:"value"` // Roll adjusted by luck
	Found        bool                 `json:"found"`
	Entry        *Entry               `json:"entry,omitempty"`
	BonusDamage  int                  `json:"bonus_damage"` // Crit: added to the hit. Fumble: dealt to the attacker.
	DamageRoll   *FormulaResult       `json:"damage_roll,omitempty"`
	Save         *SaveOutcome         `json:"save,omitempty"`
	Applied      []conditions.Applied `json:"applied,omitempty"`
	Notes        []string             `json:"notes,omitempty"`
}

// Text is the entry text, or the note explaining why there is none
func (o *Outcome) Text() string {
	if o.Entry != nil {
		return o.Entry.Text
	}
	return strings.Join(o.Notes, "; ")
}

// EngineConfig holds the engine's collaborators
type EngineConfig struct {
	Loader        Loader
	Roller        dice.Roller
	UUIDGenerator uuid.Generator
}

// Engine resolves crits and fumbles against loaded tables
type Engine struct {
	crits    map[string]*Table
	fumbles  *Table
	registry *conditions.Registry
	applier  *conditions.Applier
	roller   dice.Roller
}

// NewEngine loads every table up front. A missing table file is not an error:
// lookups against it resolve to a "no entry" outcome. Unreadable or malformed
// files are.
func NewEngine(ctx context.Context, cfg *EngineConfig) (*Engine, error) {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Loader == nil {
		panic("loader is required")
	}
	if cfg.Roller == nil {
		cfg.Roller = dice.NewRandomRoller()
	}

	crits, err := cfg.Loader.LoadCritTables(ctx)
	if err != nil && !dnderr.IsNotFound(err) {
		return nil, dnderr.Wrap(err, "failed to load crit tables")
	}
	if crits == nil {
		crits = map[string]*Table{}
	}

	fumbles, err := cfg.Loader.LoadFumbleTable(ctx)
	if err != nil {
		if !dnderr.IsNotFound(err) {
			return nil, dnderr.Wrap(err, "failed to load fumble table")
		}
		log.Printf("[TABLES] No fumble table: %v", err)
	}

	registry, err := cfg.Loader.LoadConditionsRegistry(ctx)
	if err != nil {
		if !dnderr.IsNotFound(err) {
			return nil, dnderr.Wrap(err, "failed to load conditions registry")
		}
		log.Printf("[TABLES] No conditions registry, labels fall back to keys: %v", err)
		registry = conditions.NewRegistry(nil)
	}

	log.Printf("[TABLES] Loaded %d crit tables, fumble table: %t, %d conditions",
		len(crits), fumbles != nil, len(registry.Keys()))

	return &Engine{
		crits:    crits,
		fumbles:  fumbles,
		registry: registry,
		applier:  conditions.NewApplier(registry, cfg.UUIDGenerator),
		roller:   cfg.Roller,
	}, nil
}

// Registry returns the conditions registry used for labels
func (e *Engine) Registry() *conditions.Registry {
	return e.registry
}

// CritTable returns the crit table for selector
func (e *Engine) CritTable(selector string) (*Table, bool) {
	t, ok := e.crits[NormalizeSelector(selector)]
	return t, ok
}

// ResolveCrit rolls the crit die plus luck on the selected table and applies the entry to the defender
func (e *Engine) ResolveCrit(ctx context.Context, input *CritInput) (*Outcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	selector := NormalizeSelector(input.Table)
	return e.resolve(&resolveParams{
		kind:      KindCrit,
		name:      selector,
		table:     e.crits[selector],
		die:       input.Die,
		luck:      input.LuckModifier,
		luckSign:  1,
		level:     input.AttackerLevel,
		target:    input.Defender,
		source:    fmt.Sprintf("crit table %s", selector),
		sourceID:  input.AttackerName,
		noteLabel: fmt.Sprintf("crit table %s", selector),
	})
}

// ResolveFumble rolls the fumble die minus luck and applies the entry to the attacker
func (e *Engine) ResolveFumble(ctx context.Context, input *FumbleInput) (*Outcome, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var name string
	if input.Attacker != nil {
		name = input.Attacker.Name
	}

	return e.resolve(&resolveParams{
		kind:      KindFumble,
		name:      "fumble",
		table:     e.fumbles,
		die:       input.Die,
		luck:      input.LuckModifier,
		luckSign:  -1,
		level:     input.AttackerLevel,
		target:    input.Attacker,
		source:    "fumble",
		sourceID:  name,
		noteLabel: "fumble table",
	})
}

type resolveParams struct {
	kind      Kind
	name      string
	table     *Table
	die       string
	luck      int
	luckSign  int
	level     int
	target    *Target
	source    string
	sourceID  string
	noteLabel string
}

func (e *Engine) resolve(p *resolveParams) (*Outcome, error) {
	out := &Outcome{
		Kind:         p.kind,
		Table:        p.name,
		Die:          p.die,
		LuckModifier: p.luck,
	}

	if p.table == nil || len(p.table.Entries) == 0 {
		out.Notes = append(out.Notes, fmt.Sprintf("no %s loaded, no entry", p.noteLabel))
		return out, nil
	}

	roll, err := dice.RollExpression(e.roller, p.die)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to roll %s die", p.kind)
	}
	out.Roll = roll
	out.Value = roll.Total + p.luckSign*p.luck

	entry, ok := p.table.Lookup(out.Value)
	if !ok {
		out.Notes = append(out.Notes, fmt.Sprintf("no entry for %d on %s", out.Value, p.noteLabel))
		return out, nil
	}
	out.Found = true
	out.Entry = entry

	vars := map[string]int{"level": p.level}

	if entry.Damage != "" {
		dmg, err := EvalFormula(entry.Damage, vars, e.roller)
		if err != nil {
			return nil, dnderr.Wrapf(err, "bad damage on %s entry %s", p.noteLabel, entry.Range)
		}
		out.DamageRoll = dmg
		if dmg.Total > 0 {
			out.BonusDamage = dmg.Total
		}
	}

	e.applyTags(out, p, entry.Tags)

	if entry.Save != nil {
		if err := e.forceSave(out, p, entry.Save, vars); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (e *Engine) forceSave(out *Outcome, p *resolveParams, desc *SaveDescriptor, vars map[string]int) error {
	if p.target == nil || p.target.Saves == nil {
		out.Notes = append(out.Notes, fmt.Sprintf("no %s save data, save skipped", desc.Kind))
		return nil
	}
	mod, ok := p.target.Saves.SaveModifier(desc.Kind)
	if !ok {
		out.Notes = append(out.Notes, fmt.Sprintf("%s has no %s save, save skipped", p.target.Name, desc.Kind))
		return nil
	}

	dc, err := EvalFormula(desc.DC, vars, e.roller)
	if err != nil {
		return dnderr.Wrapf(err, "bad save DC on %s", p.noteLabel)
	}

	roll, err := dice.RollExpression(e.roller, "1d20")
	if err != nil {
		return dnderr.Wrap(err, "failed to roll save")
	}

	save := &SaveOutcome{
		Kind:     desc.Kind,
		DC:       dc.Total,
		Roll:     roll,
		Modifier: mod,
		Total:    roll.Total + mod,
		OnFail:   desc.OnFail,
	}
	save.Passed = save.Total >= save.DC
	out.Save = save

	if !save.Passed {
		e.applyTags(out, p, desc.FailTags)
	}
	return nil
}

func (e *Engine) applyTags(out *Outcome, p *resolveParams, tags []string) {
	if len(tags) == 0 {
		return
	}
	if p.target == nil || p.target.Conditions == nil {
		out.Notes = append(out.Notes, fmt.Sprintf("conditions not tracked for target: %s", strings.Join(tags, ", ")))
		return
	}
	for _, tag := range tags {
		cond, refreshed := e.applier.Apply(p.target.Conditions, tag, p.source, p.sourceID)
		out.Applied = append(out.Applied, conditions.Applied{
			Target:    p.target.Name,
			Key:       cond.Key,
			Label:     cond.Label,
			Refreshed: refreshed,
		})
	}
}
