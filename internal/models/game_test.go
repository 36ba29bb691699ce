package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/monopoly/internal/deck"
)

func TestSnapshotIsDeepCopy(t *testing.T) {
	game := &GameSession{
		RoomCode: "ROOM1",
		Players: []*Player{
			{ID: "p1", Money: 100, Properties: []int{1}},
			{ID: "p2", Money: 200},
		},
		CurrentPlayer: 1,
		Phase:         TurnPhaseAction,
		Properties:    []*PropertyTile{{TileSpec: TileSpec{ID: 1}, Owner: "p1"}},
		ChanceDeck:    deck.New([]Card{{ID: 1, Effect: JailFreeEffect{}}}),
		Trades: map[string]*TradeOffer{
			"t1": {ID: "t1", Status: TradeStatusPending, FromProperties: []int{1}},
			"t2": {ID: "t2", Status: TradeStatusRejected},
		},
	}

	snap := game.Snapshot()
	assert.Equal(t, "p2", snap.CurrentPlayerID)
	assert.Equal(t, 1, snap.ChanceCardsLeft)
	assert.Equal(t, 0, snap.CommunityCardsLeft)
	assert.Len(t, snap.PendingTrades, 1)

	snap.Players[0].Money = 0
	snap.Players[0].Properties[0] = 99
	snap.Properties[0].Owner = "p2"
	snap.PendingTrades[0].FromProperties[0] = 99

	assert.Equal(t, 100, game.Players[0].Money)
	assert.Equal(t, []int{1}, game.Players[0].Properties)
	assert.Equal(t, "p1", game.Properties[0].Owner)
	assert.Equal(t, []int{1}, game.Trades["t1"].FromProperties)
}

func TestCurrent(t *testing.T) {
	game := &GameSession{}
	assert.Nil(t, game.Current())

	game.Players = []*Player{{ID: "p1"}}
	assert.Equal(t, "p1", game.Current().ID)
}
