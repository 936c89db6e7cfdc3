package conditions

import (
	"log"
	"sort"
	"time"

	"github.com/KirkDiggler/dcc-bot-discord/internal/uuid"
)

// Set holds the active conditions of one combatant keyed by condition key
type Set map[string]*Condition

// Applier applies conditions to sets, stamping IDs and times
type Applier struct {
	registry      *Registry
	uuidGenerator uuid.Generator
	now           func() time.Time
}

// NewApplier creates an applier backed by registry
func NewApplier(registry *Registry, generator uuid.Generator) *Applier {
	if generator == nil {
		generator = uuid.NewGoogleUUIDGenerator()
	}
	return &Applier{
		registry:      registry,
		uuidGenerator: generator,
		now:           time.Now,
	}
}

// Registry returns the registry the applier labels conditions from
func (a *Applier) Registry() *Registry {
	return a.registry
}

// Apply puts the condition key on set. Re-applying an active key refreshes it
// (source and time are replaced) instead of adding a second copy.
func (a *Applier) Apply(set Set, key, source, sourceID string) (*Condition, bool) {
	def, _ := a.registry.Lookup(key)

	if existing, ok := set[def.Key]; ok {
		existing.Source = source
		existing.SourceID = sourceID
		existing.AppliedAt = a.now()
		existing.Refreshes++
		log.Printf("[CONDITIONS] Refreshed %s (source: %s)", def.Key, source)
		return existing, true
	}

	cond := &Condition{
		ID:            a.uuidGenerator.New(),
		Key:           def.Key,
		Label:         def.Label,
		Source:        source,
		SourceID:      sourceID,
		AttackPenalty: def.AttackPenalty,
		AppliedAt:     a.now(),
	}
	set[def.Key] = cond
	log.Printf("[CONDITIONS] Applied %s (source: %s)", def.Key, source)
	return cond, false
}

// Has reports whether key is active
func (s Set) Has(key string) bool {
	_, ok := s[normalizeKey(key)]
	return ok
}

// Remove clears key; removing an absent key is a no-op
func (s Set) Remove(key string) {
	delete(s, normalizeKey(key))
}

// AttackPenalty sums the attack penalties of all active conditions
func (s Set) AttackPenalty() int {
	total := 0
	for _, c := range s {
		total += c.AttackPenalty
	}
	return total
}

// Keys returns the active keys sorted for stable display
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
