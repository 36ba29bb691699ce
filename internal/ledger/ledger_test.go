package ledger

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/monopoly/internal/board"
	"github.com/KirkDiggler/monopoly/internal/common/errs"
	"github.com/KirkDiggler/monopoly/internal/models"
)

type LedgerTestSuite struct {
	suite.Suite
	game       *models.GameSession
	players    *PlayerLedger
	properties *PropertyLedger
	alice      *models.Player
	bob        *models.Player
}

func (s *LedgerTestSuite) SetupTest() {
	s.alice = &models.Player{ID: "alice", Money: 15000}
	s.bob = &models.Player{ID: "bob", Money: 15000}
	s.game = &models.GameSession{
		Players:    []*models.Player{s.alice, s.bob},
		Properties: board.MustLoad().Tiles(),
	}
	s.players = NewPlayerLedger(s.game)
	s.properties = NewPropertyLedger(s.game)
}

func (s *LedgerTestSuite) assign(id int, p *models.Player) *models.PropertyTile {
	t, err := s.properties.Tile(id)
	s.Require().NoError(err)
	s.Require().NoError(s.properties.Assign(t, p))
	return t
}

func (s *LedgerTestSuite) TestDebitRefusesOverdraft() {
	err := s.players.Debit(s.alice, 15001)
	s.ErrorIs(err, ErrInsufficientFunds)
	s.True(errs.IsIllegalAction(err))
	s.Equal(15000, s.alice.Money)

	s.NoError(s.players.Debit(s.alice, 15000))
	s.Equal(0, s.alice.Money)
}

func (s *LedgerTestSuite) TestTransferConservesMoney() {
	s.Require().NoError(s.players.Transfer(s.alice, s.bob, 600))
	s.Equal(14400, s.alice.Money)
	s.Equal(15600, s.bob.Money)
	s.Equal(30000, s.alice.Money+s.bob.Money)

	s.ErrorIs(s.players.Transfer(s.alice, s.bob, 20000), ErrInsufficientFunds)
	s.Equal(14400, s.alice.Money)
	s.ErrorIs(s.players.Transfer(s.alice, s.bob, -1), ErrInvalidAmount)
}

func (s *LedgerTestSuite) TestAdvance() {
	testCases := []struct {
		name      string
		from      int
		spaces    int
		wantPos   int
		wantBonus bool
	}{
		{name: "leaving start", from: 0, spaces: 6, wantPos: 6, wantBonus: true},
		{name: "plain move", from: 6, spaces: 5, wantPos: 11, wantBonus: false},
		{name: "wrapping", from: 37, spaces: 5, wantPos: 2, wantBonus: true},
		{name: "landing on start", from: 35, spaces: 5, wantPos: 0, wantBonus: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			p := &models.Player{Position: tc.from, Money: 100}
			paid := s.players.Advance(p, tc.spaces, 2000)
			s.Equal(tc.wantPos, p.Position)
			s.Equal(tc.wantBonus, paid)
			if tc.wantBonus {
				s.Equal(2100, p.Money)
			} else {
				s.Equal(100, p.Money)
			}
		})
	}
}

func (s *LedgerTestSuite) TestTeleport() {
	s.alice.Position = 22
	paid, err := s.players.Teleport(s.alice, 0, true, 2000)
	s.Require().NoError(err)
	s.True(paid)
	s.Equal(17000, s.alice.Money)

	paid, err = s.players.Teleport(s.alice, 5, true, 2000)
	s.Require().NoError(err)
	s.False(paid)
	s.Equal(5, s.alice.Position)

	_, err = s.players.Teleport(s.alice, 40, false, 0)
	s.True(errs.IsNotFound(err))
}

func (s *LedgerTestSuite) TestJail() {
	s.alice.Position = 30
	s.alice.DoublesCount = 2
	s.players.SendToJail(s.alice)
	s.Equal(models.JailPosition, s.alice.Position)
	s.True(s.alice.InJail)
	s.Equal(0, s.alice.DoublesCount)

	s.alice.JailTurns = 2
	s.players.Release(s.alice)
	s.False(s.alice.InJail)
	s.Equal(0, s.alice.JailTurns)
}

func (s *LedgerTestSuite) TestRemove() {
	idx, err := s.players.Remove("alice")
	s.Require().NoError(err)
	s.Equal(0, idx)
	s.Len(s.game.Players, 1)

	_, err = s.players.Remove("alice")
	s.ErrorIs(err, ErrPlayerNotFound)
}

func (s *LedgerTestSuite) TestPropertyRent() {
	mumbai := s.assign(6, s.alice)
	s.Equal(60, s.properties.Rent(mumbai, 7))

	s.assign(8, s.alice)
	s.Equal(60, s.properties.Rent(mumbai, 7))

	s.assign(9, s.alice)
	s.Equal(120, s.properties.Rent(mumbai, 7), "monopoly doubles base rent")

	mumbai.Improvements = 2
	s.Equal(900, s.properties.Rent(mumbai, 7))

	mumbai.Improvements = models.MaxImprovements
	s.Equal(5500, s.properties.Rent(mumbai, 7))

	mumbai.Improvements = 0
	mumbai.Mortgaged = true
	s.Equal(0, s.properties.Rent(mumbai, 7))
}

func (s *LedgerTestSuite) TestRailroadRent() {
	first := s.assign(5, s.bob)
	s.Equal(250, s.properties.Rent(first, 7))

	s.assign(15, s.bob)
	s.assign(25, s.bob)
	s.Equal(1000, s.properties.Rent(first, 7))

	s.assign(35, s.bob)
	s.Equal(2000, s.properties.Rent(first, 7))
}

func (s *LedgerTestSuite) TestUtilityRent() {
	electric := s.assign(12, s.bob)
	s.Equal(28, s.properties.Rent(electric, 7))

	s.assign(27, s.bob)
	s.Equal(70, s.properties.Rent(electric, 7))
}

func (s *LedgerTestSuite) TestUnownedRentIsZero() {
	t, err := s.properties.Tile(6)
	s.Require().NoError(err)
	s.Equal(0, s.properties.Rent(t, 7))

	_, err = s.properties.Tile(-1)
	s.ErrorIs(err, ErrTileNotFound)
}

func (s *LedgerTestSuite) TestAssignRejectsCorners() {
	t, err := s.properties.Tile(0)
	s.Require().NoError(err)
	s.ErrorIs(s.properties.Assign(t, s.alice), ErrNotPurchasable)
}

func (s *LedgerTestSuite) TestTransferAndRelease() {
	goas := s.assign(1, s.alice)
	goas.Improvements = 3
	goas.Mortgaged = true

	s.properties.Transfer(goas, s.alice, s.bob)
	s.Equal("bob", goas.Owner)
	s.Equal(3, goas.Improvements)
	s.True(goas.Mortgaged)
	s.Empty(s.alice.Properties)
	s.Equal([]int{1}, s.bob.Properties)

	returned := s.properties.Release(goas, s.bob)
	s.Equal(3, returned)
	s.Empty(goas.Owner)
	s.Zero(goas.Improvements)
	s.False(goas.Mortgaged)
	s.Empty(s.bob.Properties)
}

func (s *LedgerTestSuite) TestOwnership() {
	s.assign(1, s.alice)
	s.False(s.properties.OwnsGroup("alice", "brown"))
	s.assign(3, s.alice)
	s.True(s.properties.OwnsGroup("alice", "brown"))
	s.False(s.properties.OwnsGroup("", "pink"))

	s.Len(s.properties.OwnedBy("alice"), 2)
	s.Empty(s.properties.OwnedBy(""))
	s.Equal(2, s.properties.CountOwned("alice", models.TileCategoryProperty))
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}
