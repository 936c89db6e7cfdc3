package attack

import (
	"testing"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/equipment"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestAuguryMatchers_CoverEveryCategory(t *testing.T) {
	for _, category := range shared.AuguryCategories {
		_, ok := auguryMatchers[category]
		assert.True(t, ok, "no matcher for %s", category)
	}
	assert.Len(t, auguryMatchers, len(shared.AuguryCategories))
}

func TestAuguryBonus(t *testing.T) {
	catalog := equipment.DefaultCatalog()
	longsword, _ := catalog.Get("longsword")
	longbow, _ := catalog.Get("longbow")
	melee := classification{weapon: longsword}
	ranged := classification{weapon: longbow}
	punch := classification{weapon: equipment.Unarmed()}
	mounted := classification{weapon: longsword, mounted: true}

	tests := []struct {
		name      string
		augury    *character.Augury
		class     classification
		forDamage bool
		want      int
		wantOK    bool
	}{
		{name: "no augury", augury: nil, class: melee},
		{name: "melee attacks with a sword", augury: &character.Augury{Category: shared.AuguryMeleeAttacks, Modifier: 1}, class: melee, want: 1, wantOK: true},
		{name: "melee attacks with a bow", augury: &character.Augury{Category: shared.AuguryMeleeAttacks, Modifier: 1}, class: ranged},
		{name: "negative luck still applies", augury: &character.Augury{Category: shared.AuguryRangedAttacks, Modifier: -2}, class: ranged, want: -2, wantOK: true},
		{name: "unarmed", augury: &character.Augury{Category: shared.AuguryUnarmed, Modifier: 1}, class: punch, want: 1, wantOK: true},
		{name: "mounted needs the mount", augury: &character.Augury{Category: shared.AuguryMounted, Modifier: 1}, class: melee},
		{name: "mounted", augury: &character.Augury{Category: shared.AuguryMounted, Modifier: 1}, class: mounted, want: 1, wantOK: true},
		{name: "named weapon", augury: &character.Augury{Category: shared.AuguryWeapon, Weapon: "Longsword", Modifier: 2}, class: melee, want: 2, wantOK: true},
		{name: "other weapon", augury: &character.Augury{Category: shared.AuguryWeapon, Weapon: "dagger", Modifier: 2}, class: melee},
		{name: "damage augury ignored on attack", augury: &character.Augury{Category: shared.AuguryAllDamage, Modifier: 1}, class: melee},
		{name: "damage augury on damage", augury: &character.Augury{Category: shared.AuguryAllDamage, Modifier: 1}, class: melee, forDamage: true, want: 1, wantOK: true},
		{name: "ranged damage with a sword", augury: &character.Augury{Category: shared.AuguryRangedDamage, Modifier: 1}, class: melee, forDamage: true},
		{name: "non-combat augury", augury: &character.Augury{Category: shared.AuguryNone, Modifier: 3}, class: melee},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := auguryBonus(tt.augury, tt.class, tt.forDamage)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
