package combat

//go:generate mockgen -destination=mock/mock_service.go -package=mockcombat -source=service.go

import (
	"context"

	"github.com/KirkDiggler/dcc-bot-discord/internal/dice"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/conditions"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/equipment"
	gamecombat "github.com/KirkDiggler/dcc-bot-discord/internal/domain/game/combat"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/game/combat/attack"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/tables"
	"github.com/KirkDiggler/dcc-bot-discord/internal/repositories/characters"
	"github.com/KirkDiggler/dcc-bot-discord/internal/repositories/encounters"
	"github.com/KirkDiggler/dcc-bot-discord/internal/telemetry"
	"github.com/KirkDiggler/dcc-bot-discord/internal/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Service runs attacks and the initiative order of each session
type Service interface {
	// ResolveAttack rolls one attack, applies its damage and conditions, and saves every touched record
	ResolveAttack(ctx context.Context, req *AttackRequest) (*AttackResult, error)

	// AdvanceTurn moves the session's initiative pointer and ticks the life state of whoever is up
	AdvanceTurn(ctx context.Context, sessionID string) (*gamecombat.TurnResult, error)

	// AddCombatant puts a record or a snapshot combatant into the session's initiative order
	AddCombatant(ctx context.Context, input *AddCombatantInput) (*AddCombatantResult, error)

	// RemoveCombatant takes a combatant out of the initiative order
	RemoveCombatant(ctx context.Context, sessionID, name string) (*gamecombat.Entry, error)

	// ListInitiative returns the display rows of the session's initiative order
	ListInitiative(ctx context.Context, sessionID string) (*InitiativeList, error)

	// Heal restores hit points, stabilizing a dying record
	Heal(ctx context.Context, input *HealInput) (*HealResult, error)

	// EndEncounter discards the session's initiative order
	EndEncounter(ctx context.Context, sessionID string) error
}

// TableResolver resolves crit and fumble rolls; *tables.Engine implements it
type TableResolver interface {
	ResolveCrit(ctx context.Context, input *tables.CritInput) (*tables.Outcome, error)
	ResolveFumble(ctx context.Context, input *tables.FumbleInput) (*tables.Outcome, error)
}

// AttackRequest is one attack as issued by a player
type AttackRequest struct {
	SessionID string // Optional; enables initiative lookups and life-state tracking
	Attacker  string // Record name
	Defender  string // Record name or initiative entry name/abbreviation; empty for no target
	Weapon    string // Empty uses the equipped weapon
	Donor     string // Record donating luck; empty burns the attacker's own
	Flags     attack.Flags
	AC        *int // Overrides the defender's AC
}

// CombatantHP is a combatant's standing after an attack
type CombatantHP struct {
	Name  string               `json:"name"`
	HP    int                  `json:"hp"`
	MaxHP int                  `json:"max_hp"`
	Life  gamecombat.LifeState `json:"life"`
}

// AttackResult is everything one attack did
type AttackResult struct {
	Attack      *attack.Result               `json:"attack"`
	Crit        *tables.Outcome              `json:"crit,omitempty"`
	Fumble      *tables.Outcome              `json:"fumble,omitempty"`
	Applied     []conditions.Applied         `json:"applied,omitempty"`
	DamageDealt int                          `json:"damage_dealt"`
	SelfDamage  int                          `json:"self_damage"`
	Attacker    CombatantHP                  `json:"attacker"`
	Defender    *CombatantHP                 `json:"defender,omitempty"`
	Life        []*gamecombat.LifeTransition `json:"life,omitempty"`
	Removed     []string                     `json:"removed,omitempty"`
	Notes       []string                     `json:"notes,omitempty"`
}

// AddCombatantInput adds a record-backed combatant, or a snapshot monster when Monster is set
type AddCombatantInput struct {
	SessionID       string
	ChannelID       string
	Name            string
	Owner           string
	Monster         bool
	Initiative      *int // Fixed initiative; rolled when nil
	InitiativeBonus int  // Monsters only
	HP              int  // Monsters only
	AC              int  // Monsters only
}

// AddCombatantResult is the new entry and how its initiative was found
type AddCombatantResult struct {
	Entry *gamecombat.Entry          `json:"entry"`
	Roll  *gamecombat.InitiativeRoll `json:"roll,omitempty"`
	Round int                        `json:"round"`
}

// InitiativeList is the rendered initiative order of a session
type InitiativeList struct {
	SessionID string           `json:"session_id"`
	Round     int              `json:"round"`
	Current   int              `json:"current"`
	Rows      []gamecombat.Row `json:"rows"`
	Log       []string         `json:"log"`
}

// HealInput restores hit points to a record or a snapshot combatant
type HealInput struct {
	SessionID string
	Target    string
	Amount    int
}

// HealResult is the target's standing after healing
type HealResult struct {
	Name   string                     `json:"name"`
	Healed int                        `json:"healed"`
	HP     int                        `json:"hp"`
	MaxHP  int                        `json:"max_hp"`
	Life   *gamecombat.LifeTransition `json:"life,omitempty"`
}

type service struct {
	characters    characters.Repository
	encounters    encounters.Repository
	tables        TableResolver
	catalog       *equipment.Catalog
	roller        dice.Roller
	aggregator    *attack.Aggregator
	uuidGenerator uuid.Generator
	tracer        trace.Tracer
	sessionLocks  *keyedMutex
	recordLocks   *keyedMutex
}

// ServiceConfig holds configuration for the combat service
type ServiceConfig struct {
	Characters    characters.Repository
	Encounters    encounters.Repository
	Tables        TableResolver
	Catalog       *equipment.Catalog // Defaults to the standard weapon list
	Roller        dice.Roller        // Defaults to random rolls
	Rules         *attack.Rules      // Defaults to attack.DefaultRules
	UUIDGenerator uuid.Generator
	Tracer        trace.Tracer // Defaults to the global tracer provider
}

// NewService creates a new combat service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Characters == nil {
		panic("character repository is required")
	}
	if cfg.Encounters == nil {
		panic("encounter repository is required")
	}
	if cfg.Tables == nil {
		panic("table resolver is required")
	}

	svc := &service{
		characters:   cfg.Characters,
		encounters:   cfg.Encounters,
		tables:       cfg.Tables,
		catalog:      cfg.Catalog,
		roller:       cfg.Roller,
		sessionLocks: newKeyedMutex(),
		recordLocks:  newKeyedMutex(),
	}

	if svc.catalog == nil {
		svc.catalog = equipment.DefaultCatalog()
	}
	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}

	rules := attack.DefaultRules()
	if cfg.Rules != nil {
		rules = *cfg.Rules
	}
	svc.aggregator = attack.NewAggregator(svc.roller, rules)

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	if cfg.Tracer != nil {
		svc.tracer = cfg.Tracer
	} else {
		svc.tracer = telemetry.Tracer("combat")
	}

	return svc
}
