package attack_test

import (
	"testing"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/conditions"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/equipment"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/game/combat/attack"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var conditionPenalty = conditions.Condition{Key: "prone", Label: "Prone", AttackPenalty: 2}

func TestResolveWeapon(t *testing.T) {
	catalog := equipment.DefaultCatalog()
	c := character.New("Brakka", shared.ClassWarrior, 1, nil, 10)
	c.Equipped = "longsword"

	w, err := attack.ResolveWeapon(catalog, c, "")
	require.NoError(t, err)
	assert.Equal(t, "longsword", w.Key)

	w, err = attack.ResolveWeapon(catalog, c, "Longsword")
	require.NoError(t, err)
	assert.Equal(t, "longsword", w.Key)

	_, err = attack.ResolveWeapon(catalog, c, "vorpal spoon")
	assert.True(t, dnderr.IsUnknownWeapon(err))

	_, err = attack.ResolveWeapon(catalog, c, "dagger")
	assert.True(t, dnderr.IsNotEquipped(err))
	assert.Contains(t, err.Error(), "does not have Dagger equipped")

	c.Weapons = []string{"dagger"}
	_, err = attack.ResolveWeapon(catalog, c, "dagger")
	assert.True(t, dnderr.IsNotEquipped(err))
	assert.Contains(t, err.Error(), "carries Dagger")

	w, err = attack.ResolveWeapon(catalog, c, "unarmed")
	require.NoError(t, err)
	assert.True(t, w.IsUnarmed())

	c.Equipped = ""
	w, err = attack.ResolveWeapon(catalog, c, "")
	require.NoError(t, err)
	assert.True(t, w.IsUnarmed())
}
