package deck

import (
	"testing"

	"github.com/KirkDiggler/monopoly/internal/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type DeckTestSuite struct {
	suite.Suite
	cards []int
	deck  *Deck[int]
}

func (s *DeckTestSuite) SetupTest() {
	s.cards = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	s.deck = New(s.cards)
}

func TestDeckTestSuite(t *testing.T) {
	suite.Run(t, new(DeckTestSuite))
}

func (s *DeckTestSuite) TestDrawRotatesFrontToBack() {
	card, err := s.deck.Draw()
	s.Require().NoError(err)

	s.Equal(1, card)
	s.Equal([]int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 1}, s.deck.Cards())
}

func (s *DeckTestSuite) TestFullCycleRestoresOrder() {
	for i := 0; i < len(s.cards); i++ {
		_, err := s.deck.Draw()
		s.Require().NoError(err)
		s.Equal(len(s.cards), s.deck.Len(), "drawing never shrinks the deck")
	}

	s.Equal(s.cards, s.deck.Cards())
}

func (s *DeckTestSuite) TestThirteenthDrawMatchesFirst() {
	first, err := s.deck.Draw()
	s.Require().NoError(err)

	var thirteenth int
	for i := 0; i < 12; i++ {
		thirteenth, err = s.deck.Draw()
		s.Require().NoError(err)
	}

	s.Equal(first, thirteenth)
}

func (s *DeckTestSuite) TestNewCopiesInput() {
	s.cards[0] = 99
	card, err := s.deck.Peek()
	s.Require().NoError(err)
	s.Equal(1, card)
}

func (s *DeckTestSuite) TestShuffleUsesProvidedFunc() {
	// reverse instead of random
	s.deck.Shuffle(func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	})

	s.Equal([]int{12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, s.deck.Cards())
}

func (s *DeckTestSuite) TestCloneIsIndependent() {
	clone := s.deck.Clone()
	_, err := s.deck.Draw()
	s.Require().NoError(err)

	top, err := clone.Peek()
	s.Require().NoError(err)
	s.Equal(1, top)
}

func TestDrawFromEmptyDeck(t *testing.T) {
	d := New[string](nil)

	_, err := d.Draw()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyDeck)
	assert.True(t, errs.IsIllegalAction(err))

	_, err = d.Peek()
	assert.ErrorIs(t, err, ErrEmptyDeck)
}
