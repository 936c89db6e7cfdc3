package equipment_test

import (
	"testing"

	"github.com/KirkDiggler/dcc-bot-discord/internal/dice"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/equipment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := equipment.DefaultCatalog()

	dagger, ok := catalog.Get("Dagger")
	require.True(t, ok)
	assert.Equal(t, "1d4", dagger.Damage)
	assert.True(t, dagger.HasTag(equipment.TagBackstab))
	assert.True(t, dagger.IsMelee())

	lance, ok := catalog.Get("lance")
	require.True(t, ok)
	assert.True(t, lance.HasTag(equipment.TagMounted))

	sword, ok := catalog.Get("Short Sword")
	require.True(t, ok)
	assert.Equal(t, "short-sword", sword.Key)

	unarmed, ok := catalog.Get("unarmed")
	require.True(t, ok)
	assert.True(t, unarmed.IsUnarmed())

	_, ok = catalog.Get("laser rifle")
	assert.False(t, ok)
}

func TestDefaultCatalog_AllDamageExpressionsParse(t *testing.T) {
	catalog := equipment.DefaultCatalog()
	for _, key := range catalog.Keys() {
		w, _ := catalog.Get(key)
		_, err := dice.Parse(w.Damage)
		assert.NoError(t, err, key)
	}
}

func TestLoadCatalog_RejectsUnknownFields(t *testing.T) {
	_, err := equipment.LoadCatalog([]byte("weapons:\n  - {key: club, dmg: 1d4}\n"))
	assert.Error(t, err)
}

func TestWeapon_AsThrown(t *testing.T) {
	dagger, _ := equipment.DefaultCatalog().Get("dagger")
	thrown := dagger.AsThrown()
	assert.True(t, thrown.IsThrown())
	assert.True(t, dagger.IsMelee(), "original is not modified")
}
