package game

import (
	"github.com/KirkDiggler/monopoly/internal/common/errs"
	"github.com/KirkDiggler/monopoly/internal/ledger"
)

// GameError is returned when the service is wired incorrectly
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

const (
	ErrNilConfig        GameError = "config cannot be nil"
	ErrNilBoard         GameError = "board cannot be nil"
	ErrNilDiceRoller    GameError = "dice roller cannot be nil"
	ErrNilClock         GameError = "clock cannot be nil"
	ErrNilUUIDGenerator GameError = "UUID generator cannot be nil"
)

const (
	ErrGameNotFound     errs.NotFound = "game not found"
	ErrPlayerNotFound   errs.NotFound = "player not found"
	ErrPropertyNotFound errs.NotFound = "property not found"
	ErrTradeNotFound    errs.NotFound = "trade not found"
)

const (
	ErrGameAlreadyExists errs.IllegalAction = "game already exists for this room"
	ErrNotEnoughPlayers  errs.IllegalAction = "at least 2 players are required"
	ErrGameOver          errs.IllegalAction = "game is over"
	ErrNotYourTurn       errs.IllegalAction = "not your turn"
	ErrWrongPhase        errs.IllegalAction = "action not allowed in this phase"
	ErrInsufficientFunds                    = ledger.ErrInsufficientFunds

	ErrNotOnProperty  errs.IllegalAction = "you are not on this property"
	ErrNotForSale     errs.IllegalAction = "property is not for sale"
	ErrAlreadyOwned   errs.IllegalAction = "property already owned"
	ErrNotOwner       errs.IllegalAction = "you do not own this property"
	ErrNotInJail      errs.IllegalAction = "you are not in jail"
	ErrNoJailFreeCard errs.IllegalAction = "you have no get out of jail free card"

	ErrNotImprovable    errs.IllegalAction = "property cannot be improved"
	ErrIncompleteGroup  errs.IllegalAction = "you must own the whole color group"
	ErrGroupMortgaged   errs.IllegalAction = "a property in the group is mortgaged"
	ErrMaxImprovements  errs.IllegalAction = "property already has a hotel"
	ErrNoHousesLeft     errs.IllegalAction = "the bank has no houses left"
	ErrNoHotelsLeft     errs.IllegalAction = "the bank has no hotels left"
	ErrAlreadyMortgaged errs.IllegalAction = "property is already mortgaged"
	ErrNotMortgaged     errs.IllegalAction = "property is not mortgaged"
	ErrHasImprovements  errs.IllegalAction = "sell the buildings in the group first"

	ErrTradeWithSelf   errs.IllegalAction = "cannot trade with yourself"
	ErrEmptyTrade      errs.IllegalAction = "trade must exchange something"
	ErrInvalidTrade    errs.IllegalAction = "trade is no longer valid"
	ErrNotTradeTarget  errs.IllegalAction = "only the receiving player can respond to a trade"
	ErrNegativeAmount  errs.IllegalAction = "amounts must not be negative"
	ErrDuplicateTiles  errs.IllegalAction = "a property appears twice in the trade"
	ErrImprovedInTrade errs.IllegalAction = "improved properties cannot be traded"
)
