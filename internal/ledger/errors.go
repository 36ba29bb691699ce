package ledger

import "github.com/KirkDiggler/monopoly/internal/common/errs"

const (
	// ErrInsufficientFunds is returned when a debit would leave a negative balance
	ErrInsufficientFunds errs.IllegalAction = "insufficient funds"

	// ErrInvalidAmount is returned for negative amounts
	ErrInvalidAmount errs.IllegalAction = "amount must not be negative"

	// ErrPlayerNotFound is returned when the player is not in the game
	ErrPlayerNotFound errs.NotFound = "player not found"

	// ErrTileNotFound is returned for positions off the board
	ErrTileNotFound errs.NotFound = "property not found"

	// ErrNotPurchasable is returned when assigning a tile that cannot be owned
	ErrNotPurchasable errs.IllegalAction = "property cannot be owned"
)
