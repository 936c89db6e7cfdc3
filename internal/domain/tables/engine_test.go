package tables_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	mockdice "github.com/KirkDiggler/dcc-bot-discord/internal/dice/mock"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/conditions"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/shared"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/tables"
	mocktables "github.com/KirkDiggler/dcc-bot-discord/internal/domain/tables/mock"
	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testCrits = `name: III
entries:
  - range: "0-"
    text: glancing
  - range: "1-3"
    text: solid hit
    damage: 1d6
  - range: "4"
    text: knocked down
    tags: [prone]
  - range: "5+"
    text: skull cracked
    damage: "2"
    tags: [dazed]
    save:
      kind: fort
      dc: 10+level
      on_fail: out cold
      fail_tags: [stunned]
`

const testFumbles = `name: fumble
entries:
  - range: "0-"
    text: nothing happens
  - range: "1-2"
    text: trip
    tags: [prone]
  - range: "3+"
    text: hit yourself
    damage: 1d4
`

const testConditions = `conditions:
  - key: prone
    label: Prone
    attack_penalty: 2
  - key: dazed
    label: Dazed
  - key: stunned
    label: Stunned
`

type saves map[shared.SaveKind]int

func (s saves) SaveModifier(kind shared.SaveKind) (int, bool) {
	v, ok := s[kind]
	return v, ok
}

type EngineTestSuite struct {
	suite.Suite
	ctx    context.Context
	roller *mockdice.ManualMockRoller
	engine *tables.Engine
}

func (s *EngineTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.roller = mockdice.NewManualMockRoller()

	loader := tables.NewFSLoader(fstest.MapFS{
		"crit_iii.yaml":   {Data: []byte(testCrits)},
		"fumbles.yaml":    {Data: []byte(testFumbles)},
		"conditions.yaml": {Data: []byte(testConditions)},
	})

	engine, err := tables.NewEngine(s.ctx, &tables.EngineConfig{
		Loader: loader,
		Roller: s.roller,
	})
	s.Require().NoError(err)
	s.engine = engine
}

func (s *EngineTestSuite) defender() *tables.Target {
	return &tables.Target{
		Name:       "Orc",
		Conditions: conditions.Set{},
		Saves:      saves{shared.SaveFortitude: 1},
	}
}

func (s *EngineTestSuite) TestCritAddsLuckModifier() {
	s.roller.SetRolls([]int{2, 5}) // crit die 2 (+1 luck = 3), bonus 1d6 = 5

	out, err := s.engine.ResolveCrit(s.ctx, &tables.CritInput{
		Table:        "iii",
		Die:          "1d12",
		LuckModifier: 1,
		Defender:     s.defender(),
	})
	s.Require().NoError(err)

	s.True(out.Found)
	s.Equal(3, out.Value)
	s.Equal("solid hit", out.Text())
	s.Equal(5, out.BonusDamage)
	s.Empty(out.Applied)
}

func (s *EngineTestSuite) TestCritTagsLandOnDefender() {
	s.roller.SetRolls([]int{4})
	target := s.defender()

	out, err := s.engine.ResolveCrit(s.ctx, &tables.CritInput{
		Table:        "III",
		Die:          "1d12",
		AttackerName: "Brakka",
		Defender:     target,
	})
	s.Require().NoError(err)

	s.Require().Len(out.Applied, 1)
	s.Equal(conditions.Applied{Target: "Orc", Key: "prone", Label: "Prone"}, out.Applied[0])
	s.True(target.Conditions.Has("prone"))
	s.Equal("Brakka", target.Conditions["prone"].SourceID)
	s.Equal(2, target.Conditions.AttackPenalty())
}

func (s *EngineTestSuite) TestForcedSaveFailureAppliesFailTags() {
	// crit die 9, save d20 = 10 (+1 fort = 11) against DC 10+2
	s.roller.SetRolls([]int{9, 10})
	target := s.defender()

	out, err := s.engine.ResolveCrit(s.ctx, &tables.CritInput{
		Table:         "III",
		Die:           "1d12",
		AttackerLevel: 2,
		Defender:      target,
	})
	s.Require().NoError(err)

	s.Equal(2, out.BonusDamage)
	s.Require().NotNil(out.Save)
	s.Equal(12, out.Save.DC)
	s.Equal(11, out.Save.Total)
	s.False(out.Save.Passed)
	s.True(target.Conditions.Has("dazed"))
	s.True(target.Conditions.Has("stunned"))
	s.Len(out.Applied, 2)
}

func (s *EngineTestSuite) TestForcedSavePassed() {
	s.roller.SetRolls([]int{9, 15})
	target := s.defender()

	out, err := s.engine.ResolveCrit(s.ctx, &tables.CritInput{
		Table:         "III",
		Die:           "1d12",
		AttackerLevel: 2,
		Defender:      target,
	})
	s.Require().NoError(err)

	s.True(out.Save.Passed)
	s.False(target.Conditions.Has("stunned"))
}

func (s *EngineTestSuite) TestMissingSaveDataIsANote() {
	s.roller.SetRolls([]int{9})
	target := &tables.Target{Name: "Zombie", Conditions: conditions.Set{}}

	out, err := s.engine.ResolveCrit(s.ctx, &tables.CritInput{Table: "III", Die: "1d12", Defender: target})
	s.Require().NoError(err)

	s.Nil(out.Save)
	s.NotEmpty(out.Notes)
	s.True(target.Conditions.Has("dazed"))
	s.False(target.Conditions.Has("stunned"))
}

func (s *EngineTestSuite) TestMissingCritTableIsNeutral() {
	out, err := s.engine.ResolveCrit(s.ctx, &tables.CritInput{Table: "V", Die: "1d30", Defender: s.defender()})
	s.Require().NoError(err)

	s.False(out.Found)
	s.Nil(out.Roll)
	s.Contains(out.Text(), "no crit table V loaded")
	s.Equal(0, s.roller.Remaining())
}

func (s *EngineTestSuite) TestFumbleSubtractsLuckModifier() {
	s.roller.SetRolls([]int{2})
	attacker := &tables.Target{Name: "Vex", Conditions: conditions.Set{}}

	out, err := s.engine.ResolveFumble(s.ctx, &tables.FumbleInput{
		Die:          "1d4",
		LuckModifier: 2,
		Attacker:     attacker,
	})
	s.Require().NoError(err)

	s.Equal(0, out.Value)
	s.Equal("nothing happens", out.Text())
	s.Empty(attacker.Conditions)
}

func (s *EngineTestSuite) TestFumbleConditionsLandOnAttacker() {
	s.roller.SetRolls([]int{4, 3})
	attacker := &tables.Target{Name: "Vex", Conditions: conditions.Set{}}

	out, err := s.engine.ResolveFumble(s.ctx, &tables.FumbleInput{
		Die:          "1d4",
		LuckModifier: -1,
		Attacker:     attacker,
	})
	s.Require().NoError(err)

	s.Equal(5, out.Value)
	s.Equal("hit yourself", out.Text())
	s.Equal(3, out.BonusDamage)
}

func (s *EngineTestSuite) TestMalformedDieFails() {
	_, err := s.engine.ResolveCrit(s.ctx, &tables.CritInput{Table: "III", Die: "d9x", Defender: s.defender()})
	s.Require().Error(err)
	s.True(dnderr.IsMalformedDice(err))
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func TestNewEngine_LoaderErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("missing files degrade", func(t *testing.T) {
		loader := mocktables.NewMockLoader(ctrl)
		loader.EXPECT().LoadCritTables(gomock.Any()).Return(map[string]*tables.Table{}, nil)
		loader.EXPECT().LoadFumbleTable(gomock.Any()).Return(nil, dnderr.NotFound("fumbles.yaml"))
		loader.EXPECT().LoadConditionsRegistry(gomock.Any()).Return(nil, dnderr.NotFound("conditions.yaml"))

		engine, err := tables.NewEngine(ctx, &tables.EngineConfig{Loader: loader, Roller: mockdice.NewManualMockRoller()})
		require.NoError(t, err)

		out, err := engine.ResolveFumble(ctx, &tables.FumbleInput{Die: "1d4"})
		require.NoError(t, err)
		assert.False(t, out.Found)
		assert.Equal(t, "prone", engine.Registry().Label("prone"))
	})

	t.Run("read failures are returned", func(t *testing.T) {
		loader := mocktables.NewMockLoader(ctrl)
		loader.EXPECT().LoadCritTables(gomock.Any()).Return(nil, errors.New("disk on fire"))

		_, err := tables.NewEngine(ctx, &tables.EngineConfig{Loader: loader})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk on fire")
	})
}
