package combat_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/KirkDiggler/dcc-bot-discord/internal/dice"
	mockdice "github.com/KirkDiggler/dcc-bot-discord/internal/dice/mock"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/character"
	gamecombat "github.com/KirkDiggler/dcc-bot-discord/internal/domain/game/combat"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/game/combat/attack"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/shared"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/tables"
	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
	"github.com/KirkDiggler/dcc-bot-discord/internal/repositories/characters"
	mockcharacters "github.com/KirkDiggler/dcc-bot-discord/internal/repositories/characters/mock"
	"github.com/KirkDiggler/dcc-bot-discord/internal/repositories/encounters"
	mockencrepo "github.com/KirkDiggler/dcc-bot-discord/internal/repositories/encounters/mock"
	"github.com/KirkDiggler/dcc-bot-discord/internal/services/combat"
	"github.com/KirkDiggler/dcc-bot-discord/internal/telemetry"
	"github.com/KirkDiggler/dcc-bot-discord/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const session = "channel-1"

var testTables = fstest.MapFS{
	"crit_iii.yaml": {Data: []byte(`name: III
entries:
  - range: "0-3"
    text: solid hit
    damage: 1d6
  - range: "4"
    text: knocked down
    tags: [prone]
  - range: "5+"
    text: skull cracked
    damage: "2"
`)},
	"fumbles.yaml": {Data: []byte(`name: fumble
entries:
  - range: "0-"
    text: nothing happens
  - range: "1-2"
    text: trip
    tags: [prone]
  - range: "3+"
    text: hit yourself
    damage: 1d4
`)},
	"conditions.yaml": {Data: []byte(`conditions:
  - key: prone
    label: Prone
    attack_penalty: 2
`)},
}

func newEngine(t require.TestingT, roller dice.Roller) *tables.Engine {
	engine, err := tables.NewEngine(context.Background(), &tables.EngineConfig{
		Loader: tables.NewFSLoader(testTables),
		Roller: roller,
	})
	require.NoError(t, err)
	return engine
}

type ServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	roller     *mockdice.ManualMockRoller
	characters characters.Repository
	encounters encounters.Repository
	svc        combat.Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.roller = mockdice.NewManualMockRoller()
	s.characters = characters.NewInMemoryRepository()
	s.encounters = encounters.NewInMemoryRepository()
	s.svc = combat.NewService(&combat.ServiceConfig{
		Characters: s.characters,
		Encounters: s.encounters,
		Tables:     newEngine(s.T(), s.roller),
		Roller:     s.roller,
		Tracer:     telemetry.NoopTracer(),
	})

	s.Require().NoError(s.characters.Save(s.ctx, testutils.CreateTestWarrior("Brakka")))
	s.Require().NoError(s.characters.Save(s.ctx, testutils.CreateTestThief("Vex")))
	s.Require().NoError(s.characters.Save(s.ctx, testutils.CreateTestPeasant("Tom")))
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func intPtr(v int) *int {
	return &v
}

func (s *ServiceTestSuite) record(name string) *character.Character {
	rec, err := s.characters.Get(s.ctx, name)
	s.Require().NoError(err)
	return rec
}

func (s *ServiceTestSuite) addMonster(name string, hp, ac, initiative int) {
	_, err := s.svc.AddCombatant(s.ctx, &combat.AddCombatantInput{
		SessionID:  session,
		Name:       name,
		Monster:    true,
		HP:         hp,
		AC:         ac,
		Initiative: intPtr(initiative),
	})
	s.Require().NoError(err)
}

func (s *ServiceTestSuite) addRecord(name string, initiative int) {
	_, err := s.svc.AddCombatant(s.ctx, &combat.AddCombatantInput{
		SessionID:  session,
		Name:       name,
		Initiative: intPtr(initiative),
	})
	s.Require().NoError(err)
}

func (s *ServiceTestSuite) TestResolveAttack_KillsAndRemovesMonster() {
	s.addRecord("Brakka", 15)
	s.addMonster("Goblin", 4, 12, 10)

	s.roller.SetRolls([]int{10, 1, 3}) // d20, deed d3, longsword d8

	result, err := s.svc.ResolveAttack(s.ctx, &combat.AttackRequest{
		SessionID: session,
		Attacker:  "brakka",
		Defender:  "gob",
	})
	s.Require().NoError(err)

	s.Equal(13, result.Attack.AttackTotal)
	s.True(result.Attack.Hit)
	s.Equal(6, result.Attack.Damage)
	s.Equal(4, result.DamageDealt)
	s.Require().NotNil(result.Defender)
	s.Equal("Goblin", result.Defender.Name)
	s.Equal(0, result.Defender.HP)
	s.True(result.Defender.Life.IsDead())
	s.Equal([]string{"Goblin"}, result.Removed)
	s.Require().Len(result.Life, 1)
	s.Equal("Goblin is slain!", result.Life[0].Text)

	list, err := s.svc.ListInitiative(s.ctx, session)
	s.Require().NoError(err)
	s.Require().Len(list.Rows, 1)
	s.Equal("Brakka", list.Rows[0].Name)
	s.Contains(list.Log[len(list.Log)-1], "Brakka attacks Goblin with Longsword (13): hit for 4")
}

func (s *ServiceTestSuite) TestResolveAttack_CriticalAppliesTableEntry() {
	s.roller.SetRolls([]int{19, 2, 5, 4}) // d20 threat, deed, damage, crit die

	result, err := s.svc.ResolveAttack(s.ctx, &combat.AttackRequest{
		Attacker: "Brakka",
		Defender: "Tom",
	})
	s.Require().NoError(err)

	s.True(result.Attack.Critical)
	s.Require().NotNil(result.Crit)
	s.Equal("knocked down", result.Crit.Text())
	s.Require().Len(result.Applied, 1)
	s.Equal("Tom", result.Applied[0].Target)
	s.Equal("prone", result.Applied[0].Key)
	s.Equal(9, result.Attack.Damage)
	s.Equal(3, result.DamageDealt)

	s.Require().Len(result.Life, 1, "a level-0 record at 0 hp dies")
	s.True(result.Life[0].To.IsDead())

	tom := s.record("Tom")
	s.Equal(0, tom.HP.Current)
	s.True(tom.Conditions.Has("prone"))
	s.Equal(0, s.roller.Remaining())
}

func (s *ServiceTestSuite) TestResolveAttack_CritBonusDamageJoinsTheHit() {
	s.roller.SetRolls([]int{20, 1, 2, 1, 6}) // natural max, deed, damage, crit die 1, 1d6 bonus

	result, err := s.svc.ResolveAttack(s.ctx, &combat.AttackRequest{
		Attacker: "Brakka",
		Defender: "Vex",
	})
	s.Require().NoError(err)

	s.Equal("solid hit", result.Crit.Text())
	s.Equal(6, result.Crit.BonusDamage)
	s.Equal(2+2+1+6, result.Attack.Damage)
	last := result.Attack.DamageTerms[len(result.Attack.DamageTerms)-1]
	s.Equal(attack.Term{Label: "Crit", Value: 6}, last)
	s.Equal(6, result.DamageDealt)
	s.Equal(0, s.record("Vex").HP.Current)
}

func (s *ServiceTestSuite) TestResolveAttack_FumbleHurtsAttacker() {
	s.roller.SetRolls([]int{1, 2, 4, 3}) // d20 natural 1, dagger d4, fumble d4, 1d4 self damage

	result, err := s.svc.ResolveAttack(s.ctx, &combat.AttackRequest{
		Attacker: "Vex",
		Defender: "Brakka",
	})
	s.Require().NoError(err)

	s.False(result.Attack.Hit)
	s.True(result.Attack.Fumble)
	s.Require().NotNil(result.Fumble)
	s.Equal(3, result.Fumble.Value, "fumble roll minus luck modifier")
	s.Equal("hit yourself", result.Fumble.Text())
	s.Equal(3, result.SelfDamage)
	s.Equal(0, result.DamageDealt)
	s.Equal(3, result.Attacker.HP)

	s.Equal(3, s.record("Vex").HP.Current)
	s.Equal(12, s.record("Brakka").HP.Current)
}

func (s *ServiceTestSuite) TestResolveAttack_LuckBurnIsPersisted() {
	s.roller.SetRolls([]int{8, 2, 3, 2}) // d20, two thief luck dice, dagger d4

	result, err := s.svc.ResolveAttack(s.ctx, &combat.AttackRequest{
		Attacker: "Vex",
		Defender: "Brakka",
		Flags:    attack.Flags{LuckBurn: 2},
	})
	s.Require().NoError(err)

	s.Require().NotNil(result.Attack.LuckBurn)
	s.Equal(5, result.Attack.LuckBurn.Bonus)
	s.Equal(13, result.Attack.AttackTotal)
	s.False(result.Attack.Hit)

	current, _ := s.record("Vex").Luck()
	s.Equal(11, current)
}

func (s *ServiceTestSuite) TestResolveAttack_DonorLuck() {
	s.roller.SetRolls([]int{8, 2}) // d20, dagger d4

	result, err := s.svc.ResolveAttack(s.ctx, &combat.AttackRequest{
		Attacker: "Vex",
		Defender: "Tom",
		Donor:    "Brakka",
		Flags:    attack.Flags{LuckBurn: 3},
	})
	s.Require().NoError(err)

	s.Equal(3, result.Attack.LuckBurn.Bonus)
	s.True(result.Attack.LuckBurn.Donated)
	current, _ := s.record("Brakka").Luck()
	s.Equal(7, current)
	current, _ = s.record("Vex").Luck()
	s.Equal(13, current)
}

func (s *ServiceTestSuite) TestResolveAttack_ValidationAbortsBeforeMutation() {
	s.roller.SetRolls([]int{20, 3, 8})

	_, err := s.svc.ResolveAttack(s.ctx, &combat.AttackRequest{Attacker: "Vex", Defender: "Tom", Weapon: "lance", Flags: attack.Flags{LuckBurn: 2}})
	s.True(dnderr.IsUnknownWeapon(err) || dnderr.IsNotEquipped(err))

	_, err = s.svc.ResolveAttack(s.ctx, &combat.AttackRequest{Attacker: "Vex", Defender: "Nobody"})
	s.True(dnderr.IsNotFound(err))

	_, err = s.svc.ResolveAttack(s.ctx, &combat.AttackRequest{Attacker: "Vex", Donor: "vex", Flags: attack.Flags{LuckBurn: 1}})
	s.True(dnderr.IsInvalidDonor(err))

	_, err = s.svc.ResolveAttack(s.ctx, &combat.AttackRequest{Attacker: "Vex", Defender: "Tom", Donor: "Nobody", Flags: attack.Flags{LuckBurn: 1}})
	s.True(dnderr.IsInvalidDonor(err))
	s.False(dnderr.IsNotFound(err))

	_, err = s.svc.ResolveAttack(s.ctx, &combat.AttackRequest{Attacker: "Vex", Defender: "VEX"})
	s.True(dnderr.IsInvalidArgument(err))

	current, _ := s.record("Vex").Luck()
	s.Equal(13, current)
	s.Equal(3, s.roller.Remaining(), "nothing was rolled")
}

func (s *ServiceTestSuite) TestResolveAttack_DeadAttackerCannotAct() {
	s.addRecord("Tom", 5)
	s.addMonster("Orc", 10, 10, 12)

	tracker, err := s.encounters.Get(s.ctx, session)
	s.Require().NoError(err)
	entry, _ := tracker.FindRecord("tom")
	entry.Life = gamecombat.LifeState{Status: gamecombat.LifeDead}
	s.Require().NoError(s.encounters.Save(s.ctx, tracker))

	_, err = s.svc.ResolveAttack(s.ctx, &combat.AttackRequest{SessionID: session, Attacker: "Tom", Defender: "Orc"})
	s.True(dnderr.IsInvalidArgument(err))
	s.Equal(0, s.roller.Remaining())
}

func (s *ServiceTestSuite) TestAddCombatant_RollsInitiative() {
	s.roller.SetRolls([]int{12, 7})

	res, err := s.svc.AddCombatant(s.ctx, &combat.AddCombatantInput{SessionID: session, ChannelID: "c", Name: "brakka"})
	s.Require().NoError(err)
	s.Equal(13, res.Entry.Initiative, "d20 + agility 0 + warrior level 1")
	s.Equal("Brakka", res.Entry.Name)
	s.Equal("brakka", res.Entry.Record)
	s.Equal(1, res.Round)

	res, err = s.svc.AddCombatant(s.ctx, &combat.AddCombatantInput{SessionID: session, Name: "Goblin Archer", Monster: true, HP: 5, AC: 13, InitiativeBonus: 1})
	s.Require().NoError(err)
	s.Equal(8, res.Entry.Initiative)
	s.Equal("GA", res.Entry.Abbrev)

	_, err = s.svc.AddCombatant(s.ctx, &combat.AddCombatantInput{SessionID: session, Name: "Brakka", Initiative: intPtr(3)})
	s.True(dnderr.IsInvalidArgument(err), "duplicates are rejected")

	_, err = s.svc.AddCombatant(s.ctx, &combat.AddCombatantInput{SessionID: session, Name: "Ghost", Initiative: intPtr(3)})
	s.True(dnderr.IsNotFound(err))

	_, err = s.svc.AddCombatant(s.ctx, &combat.AddCombatantInput{SessionID: session, Name: "Rat", Monster: true})
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *ServiceTestSuite) TestAdvanceTurn_DyingCountsDownToDeath() {
	s.addRecord("Brakka", 15)
	s.addMonster("Goblin", 4, 12, 10)

	tracker, err := s.encounters.Get(s.ctx, session)
	s.Require().NoError(err)
	entry, _ := tracker.FindRecord("brakka")
	entry.Life = gamecombat.LifeState{Status: gamecombat.LifeDying, RemainingTurns: 2}
	s.Require().NoError(s.encounters.Save(s.ctx, tracker))

	turn, err := s.svc.AdvanceTurn(s.ctx, session)
	s.Require().NoError(err)
	s.Equal(0, turn.Index)
	s.Equal(1, turn.Round)
	s.False(turn.NewRound)
	s.Require().NotNil(turn.Life)
	s.Equal(1, turn.Life.To.RemainingTurns)

	turn, err = s.svc.AdvanceTurn(s.ctx, session)
	s.Require().NoError(err)
	s.Equal("Goblin", turn.Entry.Name)
	s.Nil(turn.Life)

	turn, err = s.svc.AdvanceTurn(s.ctx, session)
	s.Require().NoError(err)
	s.True(turn.NewRound)
	s.Equal(2, turn.Round)
	s.Require().NotNil(turn.Life)
	s.True(turn.Life.To.IsDead())
}

func (s *ServiceTestSuite) TestAdvanceTurn_NoEncounter() {
	_, err := s.svc.AdvanceTurn(s.ctx, "elsewhere")
	s.True(dnderr.IsNotFound(err))
}

func (s *ServiceTestSuite) TestHeal_StabilizesDyingRecord() {
	s.addRecord("Brakka", 15)

	brakka := s.record("Brakka")
	brakka.HP.Current = 0
	s.Require().NoError(s.characters.Save(s.ctx, brakka))

	tracker, err := s.encounters.Get(s.ctx, session)
	s.Require().NoError(err)
	entry, _ := tracker.FindRecord("brakka")
	entry.Life = gamecombat.LifeState{Status: gamecombat.LifeDying, RemainingTurns: 1}
	s.Require().NoError(s.encounters.Save(s.ctx, tracker))

	res, err := s.svc.Heal(s.ctx, &combat.HealInput{SessionID: session, Target: "BRA", Amount: 3})
	s.Require().NoError(err)
	s.Equal(3, res.Healed)
	s.Require().NotNil(res.Life)
	s.True(res.Life.To.IsAlive())

	brakka = s.record("Brakka")
	s.Equal(3, brakka.HP.Current)
	stamina := brakka.Ability(shared.AbilityStamina)
	s.Equal(13, stamina.Base)
	s.Equal(13, stamina.Current)

	list, err := s.svc.ListInitiative(s.ctx, session)
	s.Require().NoError(err)
	s.True(list.Rows[0].Life.IsAlive())
	s.True(list.Rows[0].HasHP)
	s.Equal(3, list.Rows[0].HP)
}

func (s *ServiceTestSuite) TestHeal_SnapshotAndDead() {
	s.addMonster("Goblin", 6, 12, 10)
	s.addMonster("Orc", 6, 12, 9)

	tracker, err := s.encounters.Get(s.ctx, session)
	s.Require().NoError(err)
	gob, _, _ := tracker.Find("Goblin")
	gob.Snapshot.HP = 2
	orc, _, _ := tracker.Find("Orc")
	orc.Life = gamecombat.LifeState{Status: gamecombat.LifeDead}
	s.Require().NoError(s.encounters.Save(s.ctx, tracker))

	res, err := s.svc.Heal(s.ctx, &combat.HealInput{SessionID: session, Target: "goblin", Amount: 10})
	s.Require().NoError(err)
	s.Equal(4, res.Healed)
	s.Equal(6, res.HP)

	_, err = s.svc.Heal(s.ctx, &combat.HealInput{SessionID: session, Target: "orc", Amount: 1})
	s.True(dnderr.IsInvalidArgument(err))

	_, err = s.svc.Heal(s.ctx, &combat.HealInput{SessionID: session, Target: "goblin", Amount: 0})
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *ServiceTestSuite) TestRemoveAndEnd() {
	s.addRecord("Brakka", 15)
	s.addMonster("Goblin", 4, 12, 10)

	removed, err := s.svc.RemoveCombatant(s.ctx, session, "gob")
	s.Require().NoError(err)
	s.Equal("Goblin", removed.Name)

	_, err = s.svc.RemoveCombatant(s.ctx, session, "gob")
	s.True(dnderr.IsNotFound(err))

	s.Require().NoError(s.svc.EndEncounter(s.ctx, session))
	s.True(dnderr.IsNotFound(s.svc.EndEncounter(s.ctx, session)))

	_, err = s.svc.ListInitiative(s.ctx, session)
	s.True(dnderr.IsNotFound(err))
}

func TestResolveAttack_ConcurrentAttacksNeverLoseDamage(t *testing.T) {
	ctx := context.Background()
	roller := dice.NewRandomRoller()
	repo := characters.NewInMemoryRepository()
	svc := combat.NewService(&combat.ServiceConfig{
		Characters: repo,
		Encounters: encounters.NewInMemoryRepository(),
		Tables:     newEngine(t, roller),
		Roller:     roller,
		Tracer:     telemetry.NoopTracer(),
	})

	target := testutils.CreateTestWarrior("Anvil")
	target.HP = character.HitPoints{Current: 1000, Max: 1000}
	require.NoError(t, repo.Save(ctx, target))

	attackers := []string{"A1", "A2", "A3", "A4"}
	for _, name := range attackers {
		a := testutils.CreateTestWarrior(name)
		a.HP = character.HitPoints{Current: 1000, Max: 1000}
		require.NoError(t, repo.Save(ctx, a))
	}

	var mu sync.Mutex
	total := 0
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			res, err := svc.ResolveAttack(ctx, &combat.AttackRequest{Attacker: name, Defender: "Anvil"})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			total += res.DamageDealt
			mu.Unlock()
		}(attackers[i%len(attackers)])
	}
	wg.Wait()

	got, err := repo.Get(ctx, "anvil")
	require.NoError(t, err)
	assert.Equal(t, 1000-total, got.HP.Current)
}

type ServiceMockTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	ctx        context.Context
	roller     *mockdice.ManualMockRoller
	characters *mockcharacters.MockRepository
	encounters *mockencrepo.MockRepository
	svc        combat.Service
}

func (s *ServiceMockTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()
	s.roller = mockdice.NewManualMockRoller()
	s.characters = mockcharacters.NewMockRepository(s.ctrl)
	s.encounters = mockencrepo.NewMockRepository(s.ctrl)
	s.svc = combat.NewService(&combat.ServiceConfig{
		Characters: s.characters,
		Encounters: s.encounters,
		Tables:     newEngine(s.T(), s.roller),
		Roller:     s.roller,
		Tracer:     telemetry.NoopTracer(),
	})
}

func (s *ServiceMockTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceMockSuite(t *testing.T) {
	suite.Run(t, new(ServiceMockTestSuite))
}

func (s *ServiceMockTestSuite) TestResolveAttack_SaveFailureSurfaces() {
	s.characters.EXPECT().Get(gomock.Any(), "Brakka").Return(testutils.CreateTestWarrior("Brakka"), nil)
	s.characters.EXPECT().Get(gomock.Any(), "tom").Return(testutils.CreateTestPeasant("Tom"), nil)
	s.characters.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("redis down")).AnyTimes()
	s.roller.SetRolls([]int{5, 1, 1})

	_, err := s.svc.ResolveAttack(s.ctx, &combat.AttackRequest{Attacker: "Brakka", Defender: "Tom"})
	s.Error(err)
}

func (s *ServiceMockTestSuite) TestResolveAttack_EncounterErrorAbortsBeforeRolling() {
	s.encounters.EXPECT().Get(gomock.Any(), session).Return(nil, errors.New("redis down"))
	s.roller.SetRolls([]int{20})

	_, err := s.svc.ResolveAttack(s.ctx, &combat.AttackRequest{SessionID: session, Attacker: "Brakka", Defender: "Tom"})
	s.Error(err)
	s.Equal(1, s.roller.Remaining())
}

func (s *ServiceMockTestSuite) TestResolveAttack_MissingEncounterStillResolves() {
	s.encounters.EXPECT().Get(gomock.Any(), session).Return(nil, dnderr.NotFound("no encounter"))
	s.characters.EXPECT().Get(gomock.Any(), "Brakka").Return(testutils.CreateTestWarrior("Brakka"), nil)
	s.characters.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	s.roller.SetRolls([]int{12, 1, 4})

	res, err := s.svc.ResolveAttack(s.ctx, &combat.AttackRequest{SessionID: session, Attacker: "Brakka"})
	s.Require().NoError(err)
	s.True(res.Attack.Hit)
	s.Contains(res.Notes, "no target AC, hit assumed")
	s.Nil(res.Defender)
}

func (s *ServiceMockTestSuite) TestEndEncounter_RepositoryError() {
	s.encounters.EXPECT().Delete(gomock.Any(), session).Return(errors.New("redis down"))

	err := s.svc.EndEncounter(s.ctx, session)
	s.Error(err)
	s.False(dnderr.IsNotFound(err))
}

func TestNewService_PanicsOnMissingDependencies(t *testing.T) {
	ctrl := gomock.NewController(t)
	chars := mockcharacters.NewMockRepository(ctrl)
	encs := mockencrepo.NewMockRepository(ctrl)
	engine := newEngine(t, dice.NewRandomRoller())

	assert.Panics(t, func() { combat.NewService(nil) })
	assert.Panics(t, func() { combat.NewService(&combat.ServiceConfig{Encounters: encs, Tables: engine}) })
	assert.Panics(t, func() { combat.NewService(&combat.ServiceConfig{Characters: chars, Tables: engine}) })
	assert.Panics(t, func() { combat.NewService(&combat.ServiceConfig{Characters: chars, Encounters: encs}) })
	assert.NotPanics(t, func() {
		combat.NewService(&combat.ServiceConfig{Characters: chars, Encounters: encs, Tables: engine})
	})
}
