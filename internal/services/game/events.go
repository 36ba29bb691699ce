package game

import "github.com/KirkDiggler/monopoly/internal/models"

// EventType names an outbound game event on the wire
type EventType string

const (
	EventGameStarted         EventType = "game-started"
	EventDiceRolled          EventType = "dice-rolled"
	EventPlayerMoved         EventType = "player-moved"
	EventPropertyBought      EventType = "property-bought"
	EventRentPaid            EventType = "rent-paid"
	EventTaxPaid             EventType = "tax-paid"
	EventCardDrawn           EventType = "card-drawn"
	EventPlayerJailed        EventType = "player-jailed"
	EventPlayerReleased      EventType = "player-released"
	EventHouseBuilt          EventType = "house-built"
	EventPropertyMortgaged   EventType = "property-mortgaged"
	EventPropertyUnmortgaged EventType = "property-unmortgaged"
	EventTradeProposed       EventType = "trade-proposed"
	EventTradeResolved       EventType = "trade-resolved"
	EventPlayerBankrupt      EventType = "player-bankrupt"
	EventGameOver            EventType = "game-over"
	EventTurnEnded           EventType = "turn-ended"
)

// Event is one state change, in the order it happened
type Event struct {
	Type EventType
	Data any
}

type GameStartedData struct {
	Game *models.GameSnapshot `json:"game_state"`
}

type DiceRolledData struct {
	PlayerID string `json:"player_id"`
	Dice     [2]int `json:"dice"`
	Total    int    `json:"total"`
	Doubles  bool   `json:"is_doubles"`
}

type PlayerMovedData struct {
	PlayerID    string `json:"player_id"`
	From        int    `json:"from"`
	To          int    `json:"to"`
	PassedStart bool   `json:"passed_go"`
	Bonus       int    `json:"bonus,omitempty"`
}

type PropertyBoughtData struct {
	PlayerID   string `json:"player_id"`
	PropertyID int    `json:"property_id"`
	Name       string `json:"property_name"`
	Price      int    `json:"price"`
}

type RentPaidData struct {
	FromPlayerID string `json:"from_player_id"`
	ToPlayerID   string `json:"to_player_id"`
	PropertyID   int    `json:"property_id"`
	Amount       int    `json:"amount"`
}

type TaxPaidData struct {
	PlayerID   string `json:"player_id"`
	PropertyID int    `json:"property_id"`
	Amount     int    `json:"amount"`
}

type CardDrawnData struct {
	PlayerID string      `json:"player_id"`
	Deck     string      `json:"deck"`
	Card     models.Card `json:"card"`
}

type PlayerJailedData struct {
	PlayerID string `json:"player_id"`
	Reason   string `json:"reason"`
}

type PlayerReleasedData struct {
	PlayerID string `json:"player_id"`
	Reason   string `json:"reason"`
}

type HouseBuiltData struct {
	PlayerID     string `json:"player_id"`
	PropertyID   int    `json:"property_id"`
	Improvements int    `json:"houses"`
	Cost         int    `json:"cost"`
}

type MortgageData struct {
	PlayerID   string `json:"player_id"`
	PropertyID int    `json:"property_id"`
	Amount     int    `json:"amount"`
}

type TradeData struct {
	Trade *models.TradeOffer `json:"trade"`
}

type PlayerBankruptData struct {
	PlayerID string `json:"player_id"`

	// CreditorID is empty when the bank is the creditor
	CreditorID string `json:"creditor_id,omitempty"`
}

type GameOverData struct {
	WinnerID   string `json:"winner_id"`
	WinnerName string `json:"winner_name"`
}

type TurnEndedData struct {
	PlayerID     string `json:"player_id"`
	NextPlayerID string `json:"next_player_id"`
	ExtraTurn    bool   `json:"extra_turn"`
}

// jail and release reasons
const (
	reasonThreeDoubles = "three doubles"
	reasonGoToJail     = "go to jail"
	reasonCard         = "card"
	reasonDoubles      = "doubles"
	reasonFine         = "fine"
	reasonForcedFine   = "third failed roll"
)
