package conditions_test

import (
	"testing"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/conditions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sequenceGenerator struct {
	next int
}

func (g *sequenceGenerator) New() string {
	g.next++
	return "cond-" + string(rune('0'+g.next))
}

func newApplier() *conditions.Applier {
	registry := conditions.NewRegistry([]conditions.Definition{
		{Key: "prone", Label: "Prone", AttackPenalty: 2},
		{Key: "Blinded", Label: "Blinded", AttackPenalty: 4},
		{Key: "bleeding", Label: "Bleeding"},
	})
	return conditions.NewApplier(registry, &sequenceGenerator{})
}

func TestApplier_ApplyRefreshesInsteadOfStacking(t *testing.T) {
	applier := newApplier()
	set := conditions.Set{}

	first, refreshed := applier.Apply(set, "prone", "crit table III", "Brakka")
	require.NotNil(t, first)
	assert.False(t, refreshed)
	assert.Equal(t, "Prone", first.Label)
	assert.Equal(t, 2, first.AttackPenalty)

	second, refreshed := applier.Apply(set, "PRONE", "fumble", "Brakka")
	assert.True(t, refreshed)
	assert.Same(t, first, second)
	assert.Len(t, set, 1)
	assert.Equal(t, "fumble", second.Source)
	assert.Equal(t, 1, second.Refreshes)
	assert.Equal(t, "cond-1", second.ID, "refresh keeps the original ID")
}

func TestApplier_UnknownKeyStillApplies(t *testing.T) {
	applier := newApplier()
	set := conditions.Set{}

	cond, _ := applier.Apply(set, "Dazed", "crit", "")
	assert.Equal(t, "dazed", cond.Key)
	assert.Equal(t, "dazed", cond.Label)
	assert.True(t, set.Has("dazed"))
}

func TestSet_AttackPenaltyAndRemove(t *testing.T) {
	applier := newApplier()
	set := conditions.Set{}
	applier.Apply(set, "prone", "", "")
	applier.Apply(set, "blinded", "", "")
	applier.Apply(set, "bleeding", "", "")

	assert.Equal(t, 6, set.AttackPenalty())
	assert.Equal(t, []string{"bleeding", "blinded", "prone"}, set.Keys())

	set.Remove("Blinded")
	assert.Equal(t, 2, set.AttackPenalty())
	set.Remove("not-there")
	assert.Len(t, set, 2)
}

func TestRegistry_Labels(t *testing.T) {
	registry := conditions.NewRegistry([]conditions.Definition{
		{Key: "stunned"},
		{Key: "  "},
	})
	assert.Equal(t, map[string]string{"stunned": "stunned"}, registry.Labels())
	assert.Equal(t, "stunned", registry.Label("Stunned"))
	assert.Equal(t, []string{"stunned"}, registry.Keys())
}
