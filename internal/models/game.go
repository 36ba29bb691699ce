package models

import (
	"time"

	"github.com/KirkDiggler/monopoly/internal/deck"
)

// TurnPhase is the state of the turn state machine
type TurnPhase string

const (
	// TurnPhaseRoll waits for the current player to roll
	TurnPhaseRoll TurnPhase = "roll"

	// TurnPhaseMove has dice on the table, the token has not moved yet
	TurnPhaseMove TurnPhase = "move"

	// TurnPhaseAction lets the current player buy, build or end the turn
	TurnPhaseAction TurnPhase = "action"

	// TurnPhaseTrade is entered while a trade offer from the current player is pending
	TurnPhaseTrade TurnPhase = "trade"

	// TurnPhaseEndTurn is a forced end of turn: only end-turn and trades are allowed
	TurnPhaseEndTurn TurnPhase = "end_turn"

	// TurnPhaseGameOver accepts no further actions
	TurnPhaseGameOver TurnPhase = "game_over"
)

// GameSession is the authoritative state of one room's game.
//
// It is not safe for concurrent use; every access goes through the room's lock.
type GameSession struct {
	// RoomCode identifies the room the game belongs to
	RoomCode string

	// Players in turn order
	Players []*Player

	// CurrentPlayer indexes Players
	CurrentPlayer int

	// DiceValues holds the last roll
	DiceValues [2]int

	// Phase is the current turn phase
	Phase TurnPhase

	// Properties holds all 40 tiles indexed by position
	Properties []*PropertyTile

	// ChanceDeck and CommunityDeck recycle drawn cards to the bottom
	ChanceDeck    *deck.Deck[Card]
	CommunityDeck *deck.Deck[Card]

	// Log is the append-only, human-readable event log
	Log []string

	// Winner is set once a single player remains
	Winner string

	// Ended is set together with Winner
	Ended bool

	// HousesRemaining and HotelsRemaining are the bank's building stock
	HousesRemaining int
	HotelsRemaining int

	// Trades holds pending trade offers by ID
	Trades map[string]*TradeOffer

	// CreatedAt is when the game started
	CreatedAt time.Time
}

// Current returns the player whose turn it is, nil when nobody is left
func (g *GameSession) Current() *Player {
	if g.CurrentPlayer < 0 || g.CurrentPlayer >= len(g.Players) {
		return nil
	}
	return g.Players[g.CurrentPlayer]
}

// DiceTotal is the sum of the last roll
func (g *GameSession) DiceTotal() int {
	return g.DiceValues[0] + g.DiceValues[1]
}

// AddLog appends an entry to the game log
func (g *GameSession) AddLog(entry string) {
	g.Log = append(g.Log, entry)
}

// GameSnapshot is a read-only copy of a game for clients and the query API.
// Deck order is not exposed, only sizes.
type GameSnapshot struct {
	RoomCode           string          `json:"room_code"`
	CurrentPlayer      int             `json:"current_player"`
	CurrentPlayerID    string          `json:"current_player_id,omitempty"`
	Players            []*Player       `json:"players"`
	DiceValues         [2]int          `json:"dice_values"`
	TurnPhase          TurnPhase       `json:"turn_phase"`
	Properties         []*PropertyTile `json:"properties"`
	ChanceCardsLeft    int             `json:"chance_cards"`
	CommunityCardsLeft int             `json:"community_chest_cards"`
	GameLog            []string        `json:"game_log"`
	Winner             string          `json:"winner,omitempty"`
	GameStarted        bool            `json:"game_started"`
	GameEnded          bool            `json:"game_ended"`
	HousesRemaining    int             `json:"houses_remaining"`
	HotelsRemaining    int             `json:"hotels_remaining"`
	PendingTrades      []*TradeOffer   `json:"pending_trades"`
	CreatedAt          time.Time       `json:"created_at"`
}

// Snapshot deep copies the session
func (g *GameSession) Snapshot() *GameSnapshot {
	s := &GameSnapshot{
		RoomCode:        g.RoomCode,
		CurrentPlayer:   g.CurrentPlayer,
		Players:         make([]*Player, 0, len(g.Players)),
		DiceValues:      g.DiceValues,
		TurnPhase:       g.Phase,
		Properties:      make([]*PropertyTile, 0, len(g.Properties)),
		GameLog:         append([]string(nil), g.Log...),
		Winner:          g.Winner,
		GameStarted:     true,
		GameEnded:       g.Ended,
		HousesRemaining: g.HousesRemaining,
		HotelsRemaining: g.HotelsRemaining,
		PendingTrades:   make([]*TradeOffer, 0, len(g.Trades)),
		CreatedAt:       g.CreatedAt,
	}

	if current := g.Current(); current != nil {
		s.CurrentPlayerID = current.ID
	}
	for _, p := range g.Players {
		s.Players = append(s.Players, p.Clone())
	}
	for _, t := range g.Properties {
		s.Properties = append(s.Properties, t.Clone())
	}
	if g.ChanceDeck != nil {
		s.ChanceCardsLeft = g.ChanceDeck.Len()
	}
	if g.CommunityDeck != nil {
		s.CommunityCardsLeft = g.CommunityDeck.Len()
	}
	for _, t := range g.Trades {
		if t.Status == TradeStatusPending {
			s.PendingTrades = append(s.PendingTrades, t.Clone())
		}
	}
	SortTrades(s.PendingTrades)

	return s
}
