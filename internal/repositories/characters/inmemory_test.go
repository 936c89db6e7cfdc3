package characters_test

import (
	"context"
	"sync"
	"testing"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
	"github.com/KirkDiggler/dcc-bot-discord/internal/repositories/characters"
	"github.com/stretchr/testify/suite"
)

type InMemoryRepositoryTestSuite struct {
	suite.Suite
	repo characters.Repository
	ctx  context.Context
}

func (s *InMemoryRepositoryTestSuite) SetupTest() {
	s.repo = characters.NewInMemoryRepository()
	s.ctx = context.Background()
}

func TestInMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(InMemoryRepositoryTestSuite))
}

func newWarrior(name string) *character.Character {
	return character.New(name, shared.ClassWarrior, 1, map[shared.Ability]int{
		shared.AbilityStrength: 16,
	}, 10)
}

func (s *InMemoryRepositoryTestSuite) TestSaveAndGet_CaseInsensitive() {
	s.Require().NoError(s.repo.Save(s.ctx, newWarrior("Brakka")))

	got, err := s.repo.Get(s.ctx, "  BRAKKA ")
	s.Require().NoError(err)
	s.Equal("Brakka", got.Name)
	s.Equal(2, got.Modifier(shared.AbilityStrength))
	s.Equal("1d3", got.Combat.DeedDie)
}

func (s *InMemoryRepositoryTestSuite) TestGet_ReturnsCopy() {
	s.Require().NoError(s.repo.Save(s.ctx, newWarrior("Brakka")))

	first, err := s.repo.Get(s.ctx, "brakka")
	s.Require().NoError(err)
	first.ApplyDamage(5)

	second, err := s.repo.Get(s.ctx, "brakka")
	s.Require().NoError(err)
	s.Equal(10, second.HP.Current)
}

func (s *InMemoryRepositoryTestSuite) TestSave_Replaces() {
	char := newWarrior("Brakka")
	s.Require().NoError(s.repo.Save(s.ctx, char))

	char.ApplyDamage(4)
	s.Require().NoError(s.repo.Save(s.ctx, char))

	got, err := s.repo.Get(s.ctx, "brakka")
	s.Require().NoError(err)
	s.Equal(6, got.HP.Current)
}

func (s *InMemoryRepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, "nobody")
	s.True(dnderr.IsNotFound(err))
	s.Equal("nobody", dnderr.GetMeta(err)["name"])
}

func (s *InMemoryRepositoryTestSuite) TestValidation() {
	s.True(dnderr.IsInvalidArgument(s.repo.Save(s.ctx, nil)))
	s.True(dnderr.IsInvalidArgument(s.repo.Save(s.ctx, &character.Character{Name: "  "})))

	_, err := s.repo.Get(s.ctx, "")
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *InMemoryRepositoryTestSuite) TestDeleteAndList() {
	s.Require().NoError(s.repo.Save(s.ctx, newWarrior("Zed")))
	s.Require().NoError(s.repo.Save(s.ctx, newWarrior("Anna")))

	list, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("Anna", list[0].Name)
	s.Equal("Zed", list[1].Name)

	s.Require().NoError(s.repo.Delete(s.ctx, "zed"))
	s.True(dnderr.IsNotFound(s.repo.Delete(s.ctx, "zed")))

	list, err = s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *InMemoryRepositoryTestSuite) TestGet_MigratesLegacyRecords() {
	legacy := &character.Character{Name: "Old Tom", Level: 0}
	s.Require().NoError(s.repo.Save(s.ctx, legacy))

	got, err := s.repo.Get(s.ctx, "old tom")
	s.Require().NoError(err)
	s.Equal(character.CurrentSchemaVersion, got.SchemaVersion)
	s.Equal(shared.ClassZero, got.Class)
	s.NotNil(got.Ability(shared.AbilityLuck))
}

func (s *InMemoryRepositoryTestSuite) TestConcurrentSaves() {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(hp int) {
			defer wg.Done()
			c := newWarrior("Brakka")
			c.HP.Current = hp % 10
			s.NoError(s.repo.Save(s.ctx, c))
		}(i)
	}
	wg.Wait()

	list, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 1)
}
