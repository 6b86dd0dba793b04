package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vmaia/cardswipe/internal/models"
	"github.com/vmaia/cardswipe/internal/repository"
	"github.com/vmaia/cardswipe/internal/repository/sqlite"
	"github.com/vmaia/cardswipe/internal/testutil"
)

type CardRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.CardRepository
}

func (s *CardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCardRepository(s.db)
}

func (s *CardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CardRepositorySuite) newCard(scryfallID, setCode string) models.Card {
	return models.Card{
		ScryfallID: scryfallID,
		Name:       "Lightning Bolt",
		ImageURL:   "https://img.example/bolt.jpg",
		Artist:     "Christopher Rush",
		SetName:    "Limited Edition Alpha",
		SetCode:    setCode,
		TypeLine:   "Instant",
		OracleText: "Lightning Bolt deals 3 damage to any target.",
		ManaCost:   "{R}",
		Rarity:     "common",
		Keywords:   []string{"Haste"},
	}
}

func (s *CardRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, s.newCard("sf-1", "lea"))
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	card, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("sf-1", card.ScryfallID)
	s.Assert().Equal("Lightning Bolt", card.Name)
	s.Assert().Equal("lea", card.SetCode)
	s.Assert().Equal([]string{"Haste"}, card.Keywords)
	s.Assert().Nil(card.CardFaces)
	s.Assert().False(card.CreatedAt.IsZero())
}

func (s *CardRepositorySuite) TestGetNotFound() {
	_, err := s.repo.Get(context.Background(), 9999)
	s.Assert().ErrorIs(err, sql.ErrNoRows)
}

func (s *CardRepositorySuite) TestGetByScryfallID() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, s.newCard("sf-2", "lea"))
	s.Require().NoError(err)

	card, err := s.repo.GetByScryfallID(ctx, "sf-2")
	s.Require().NoError(err)
	s.Assert().Equal(id, card.ID)
}

func (s *CardRepositorySuite) TestInsertDuplicateScryfallID() {
	ctx := context.Background()

	_, err := s.repo.Insert(ctx, s.newCard("sf-3", "lea"))
	s.Require().NoError(err)

	_, err = s.repo.Insert(ctx, s.newCard("sf-3", "lea"))
	s.Assert().ErrorIs(err, repository.ErrDuplicate)
}

func (s *CardRepositorySuite) TestCardFacesRoundTrip() {
	ctx := context.Background()

	card := s.newCard("sf-4", "neo")
	card.CardFaces = []models.CardFace{
		{Name: "Front", ImageURL: "https://img.example/front.jpg"},
		{Name: "Back", ImageURL: "https://img.example/back.jpg"},
	}

	id, err := s.repo.Insert(ctx, card)
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().Len(got.CardFaces, 2)
	s.Assert().Equal("Front", got.CardFaces[0].Name)
	s.Assert().Equal("Back", got.CardFaces[1].Name)
}

func (s *CardRepositorySuite) TestMalformedFacesDegradeToNil() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, s.newCard("sf-5", "neo"))
	s.Require().NoError(err)

	_, err = s.db.ExecContext(ctx, `UPDATE cards SET card_faces = 'not json' WHERE id = ?`, id)
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Nil(got.CardFaces)
}

func (s *CardRepositorySuite) TestCountWithFilter() {
	ctx := context.Background()

	_, err := s.repo.Insert(ctx, s.newCard("sf-6", "lea"))
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, s.newCard("sf-7", "lea"))
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, s.newCard("sf-8", "neo"))
	s.Require().NoError(err)

	total, err := s.repo.Count(ctx, models.CardFilter{})
	s.Require().NoError(err)
	s.Assert().Equal(3, total)

	lea, err := s.repo.Count(ctx, models.CardFilter{SetCode: "lea"})
	s.Require().NoError(err)
	s.Assert().Equal(2, lea)

	none, err := s.repo.Count(ctx, models.CardFilter{SetCode: "mh3"})
	s.Require().NoError(err)
	s.Assert().Equal(0, none)
}

func (s *CardRepositorySuite) TestGetByOffset() {
	ctx := context.Background()

	id1, err := s.repo.Insert(ctx, s.newCard("sf-9", "lea"))
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, s.newCard("sf-10", "neo"))
	s.Require().NoError(err)
	id3, err := s.repo.Insert(ctx, s.newCard("sf-11", "lea"))
	s.Require().NoError(err)

	// Offsets index the id-ordered filtered list, not raw row ids.
	first, err := s.repo.GetByOffset(ctx, models.CardFilter{SetCode: "lea"}, 0)
	s.Require().NoError(err)
	s.Assert().Equal(id1, first.ID)

	second, err := s.repo.GetByOffset(ctx, models.CardFilter{SetCode: "lea"}, 1)
	s.Require().NoError(err)
	s.Assert().Equal(id3, second.ID)

	_, err = s.repo.GetByOffset(ctx, models.CardFilter{SetCode: "lea"}, 2)
	s.Assert().ErrorIs(err, sql.ErrNoRows)
}

func TestCardRepositorySuite(t *testing.T) {
	suite.Run(t, new(CardRepositorySuite))
}
