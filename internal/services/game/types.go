package game

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/monopoly/internal/board"
	"github.com/KirkDiggler/monopoly/internal/common/clock"
	"github.com/KirkDiggler/monopoly/internal/common/uuid"
	"github.com/KirkDiggler/monopoly/internal/dice"
	"github.com/KirkDiggler/monopoly/internal/models"
)

const (
	defaultStartingMoney  = 15000
	defaultPassStartBonus = 2000
	defaultJailFine       = 500
	defaultMaxJailTurns   = 3
	defaultMaxDoubles     = 3
	minPlayers            = 2
	diceSides             = 6
)

// Bank stock of buildings when a Config leaves it unset
const (
	DefaultHouseStock = 32
	DefaultHotelStock = 12
)

// Config holds configuration for the game service
type Config struct {
	// StartingMoney is every player's opening balance
	StartingMoney int

	// PassStartBonus is paid when passing or leaving the start tile
	PassStartBonus int

	// JailFine buys a release from jail
	JailFine int

	// MaxJailTurns is the number of failed rolls after which the fine is forced
	MaxJailTurns int

	// MaxDoubles consecutive doubles send the roller to jail
	MaxDoubles int

	// HouseStock and HotelStock are the bank's buildings per game
	HouseStock int
	HotelStock int

	Board         *board.Board
	DiceRoller    dice.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        *zap.SugaredLogger
}

// CreateGameInput defines the input for creating a game
type CreateGameInput struct {
	RoomCode string
	Players  []*models.RoomPlayer
}

// CreateGameOutput defines the output for creating a game
type CreateGameOutput struct {
	Game   *models.GameSnapshot
	Events []Event
}

// GetGameInput defines the input for reading a game
type GetGameInput struct {
	RoomCode string
}

// GetGameOutput defines the output for reading a game
type GetGameOutput struct {
	Game *models.GameSnapshot
}

// DeleteGameInput defines the input for dropping a game
type DeleteGameInput struct {
	RoomCode string
}

// DeleteGameOutput defines the output for dropping a game
type DeleteGameOutput struct {
	Success bool
}

// RollDiceInput defines the input for rolling the dice
type RollDiceInput struct {
	RoomCode string
	PlayerID string
}

// RollDiceOutput defines the output for rolling the dice
type RollDiceOutput struct {
	Dice    [2]int
	Doubles bool

	// MustMove is set when the token should move by the roll next
	MustMove bool

	Events []Event
}

// MovePlayerInput defines the input for moving the current player
type MovePlayerInput struct {
	RoomCode string
	PlayerID string
}

// MovePlayerOutput defines the output for moving the current player
type MovePlayerOutput struct {
	From        int
	To          int
	PassedStart bool

	// CanBuy is set when the player landed on an unowned tile it can afford
	CanBuy bool

	Events []Event
}

// BuyPropertyInput defines the input for buying a tile
type BuyPropertyInput struct {
	RoomCode   string
	PlayerID   string
	PropertyID int
}

// BuyPropertyOutput defines the output for buying a tile
type BuyPropertyOutput struct {
	Property *models.PropertyTile
	Events   []Event
}

// EndTurnInput defines the input for ending a turn
type EndTurnInput struct {
	RoomCode string
	PlayerID string
}

// EndTurnOutput defines the output for ending a turn
type EndTurnOutput struct {
	NextPlayerID string
	ExtraTurn    bool
	Events       []Event
}

// PayJailFineInput defines the input for buying a release from jail
type PayJailFineInput struct {
	RoomCode string
	PlayerID string
}

// PayJailFineOutput defines the output for buying a release from jail
type PayJailFineOutput struct {
	Events []Event
}

// UseJailFreeCardInput defines the input for playing a get-out-of-jail-free card
type UseJailFreeCardInput struct {
	RoomCode string
	PlayerID string
}

// UseJailFreeCardOutput defines the output for playing a get-out-of-jail-free card
type UseJailFreeCardOutput struct {
	Events []Event
}

// BuildHouseInput defines the input for improving a tile
type BuildHouseInput struct {
	RoomCode   string
	PlayerID   string
	PropertyID int
}

// BuildHouseOutput defines the output for improving a tile
type BuildHouseOutput struct {
	Property *models.PropertyTile
	Events   []Event
}

// MortgagePropertyInput defines the input for mortgaging a tile
type MortgagePropertyInput struct {
	RoomCode   string
	PlayerID   string
	PropertyID int
}

// MortgagePropertyOutput defines the output for mortgaging a tile
type MortgagePropertyOutput struct {
	Property *models.PropertyTile
	Events   []Event
}

// UnmortgagePropertyInput defines the input for lifting a mortgage
type UnmortgagePropertyInput struct {
	RoomCode   string
	PlayerID   string
	PropertyID int
}

// UnmortgagePropertyOutput defines the output for lifting a mortgage
type UnmortgagePropertyOutput struct {
	Property *models.PropertyTile
	Events   []Event
}

// ProposeTradeInput defines the input for offering a trade
type ProposeTradeInput struct {
	RoomCode            string
	FromPlayerID        string
	ToPlayerID          string
	OfferedProperties   []int
	RequestedProperties []int
	OfferedMoney        int
	RequestedMoney      int
}

// ProposeTradeOutput defines the output for offering a trade
type ProposeTradeOutput struct {
	Trade  *models.TradeOffer
	Events []Event
}

// RespondTradeInput defines the input for answering a trade offer
type RespondTradeInput struct {
	RoomCode string
	PlayerID string
	TradeID  string
	Accept   bool
}

// RespondTradeOutput defines the output for answering a trade offer
type RespondTradeOutput struct {
	Trade  *models.TradeOffer
	Events []Event
}

// RemovePlayerInput defines the input for forfeiting a player
type RemovePlayerInput struct {
	RoomCode string
	PlayerID string
}

// RemovePlayerOutput defines the output for forfeiting a player
type RemovePlayerOutput struct {
	// NextPlayerID is whose turn it is afterwards, empty when nobody is left
	NextPlayerID string
	Events       []Event
}
