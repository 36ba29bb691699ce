package game

import "context"

// Service runs the turn state machine of every active game.
//
// Sessions are not locked internally: callers serialize operations per room.
type Service interface {
	// CreateGame starts a game for a room from its seated players
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)

	// GetGame returns a snapshot of a room's game
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// DeleteGame drops a room's game
	DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error)

	// RollDice rolls for the current player, handling doubles and jail
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)

	// MovePlayer moves the current player by the last roll and resolves the landed tile
	MovePlayer(ctx context.Context, input *MovePlayerInput) (*MovePlayerOutput, error)

	// BuyProperty buys the unowned tile the current player stands on
	BuyProperty(ctx context.Context, input *BuyPropertyInput) (*BuyPropertyOutput, error)

	// EndTurn hands the turn to the next player, or back to the same one after doubles
	EndTurn(ctx context.Context, input *EndTurnInput) (*EndTurnOutput, error)

	// PayJailFine releases the current player from jail for the fine
	PayJailFine(ctx context.Context, input *PayJailFineInput) (*PayJailFineOutput, error)

	// UseJailFreeCard releases the current player from jail with a held card
	UseJailFreeCard(ctx context.Context, input *UseJailFreeCardInput) (*UseJailFreeCardOutput, error)

	// BuildHouse adds one improvement to a tile of a fully owned group
	BuildHouse(ctx context.Context, input *BuildHouseInput) (*BuildHouseOutput, error)

	// MortgageProperty mortgages an unimproved tile for half its price
	MortgageProperty(ctx context.Context, input *MortgagePropertyInput) (*MortgagePropertyOutput, error)

	// UnmortgageProperty lifts a mortgage for half the price plus interest
	UnmortgageProperty(ctx context.Context, input *UnmortgagePropertyInput) (*UnmortgagePropertyOutput, error)

	// ProposeTrade offers tiles and money to another player
	ProposeTrade(ctx context.Context, input *ProposeTradeInput) (*ProposeTradeOutput, error)

	// RespondTrade accepts or rejects a pending offer
	RespondTrade(ctx context.Context, input *RespondTradeInput) (*RespondTradeOutput, error)

	// RemovePlayer forfeits a player who left mid-game
	RemovePlayer(ctx context.Context, input *RemovePlayerInput) (*RemovePlayerOutput, error)
}
