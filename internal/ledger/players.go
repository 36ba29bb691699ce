package ledger

import (
	"fmt"

	"github.com/KirkDiggler/monopoly/internal/models"
)

// PlayerLedger owns wallets, positions and jail state of a game's players.
// It does no locking; callers hold the room lock.
type PlayerLedger struct {
	game *models.GameSession
}

// NewPlayerLedger wraps the players of a game
func NewPlayerLedger(game *models.GameSession) *PlayerLedger {
	return &PlayerLedger{game: game}
}

// Find returns the player and its turn-order index
func (l *PlayerLedger) Find(playerID string) (*models.Player, int, error) {
	for i, p := range l.game.Players {
		if p.ID == playerID {
			return p, i, nil
		}
	}
	return nil, -1, ErrPlayerNotFound
}

// Others returns every player except the given one, in turn order
func (l *PlayerLedger) Others(playerID string) []*models.Player {
	others := make([]*models.Player, 0, len(l.game.Players))
	for _, p := range l.game.Players {
		if p.ID != playerID {
			others = append(others, p)
		}
	}
	return others
}

// Credit pays the player from the bank
func (l *PlayerLedger) Credit(p *models.Player, amount int) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	p.Money += amount
	return nil
}

// Debit pays the bank. The balance is left untouched when it cannot cover the amount.
func (l *PlayerLedger) Debit(p *models.Player, amount int) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if p.Money < amount {
		return ErrInsufficientFunds
	}
	p.Money -= amount
	return nil
}

// Transfer moves money between two players, refusing to overdraw the payer
func (l *PlayerLedger) Transfer(from, to *models.Player, amount int) error {
	if err := l.Debit(from, amount); err != nil {
		return err
	}
	to.Money += amount
	return nil
}

// Advance moves the player forward, wrapping at the board size, and credits bonus when the
// move passes or leaves the start tile. It reports whether the bonus was paid.
func (l *PlayerLedger) Advance(p *models.Player, spaces, bonus int) bool {
	old := p.Position
	p.Position = (old + spaces) % models.BoardSize

	if p.Position < old || (old == models.StartPosition && spaces > 0) {
		p.Money += bonus
		return true
	}
	return false
}

// Teleport places the player on a tile; bonus is paid when collect is set and the
// destination lies behind the current position
func (l *PlayerLedger) Teleport(p *models.Player, position int, collect bool, bonus int) (bool, error) {
	if position < 0 || position >= models.BoardSize {
		return false, fmt.Errorf("teleport to %d: %w", position, ErrTileNotFound)
	}

	passed := collect && position < p.Position
	p.Position = position
	if passed {
		p.Money += bonus
	}
	return passed, nil
}

// SendToJail moves the player to jail without passing start
func (l *PlayerLedger) SendToJail(p *models.Player) {
	p.Position = models.JailPosition
	p.InJail = true
	p.JailTurns = 0
	p.DoublesCount = 0
}

// Release lets the player out of jail
func (l *PlayerLedger) Release(p *models.Player) {
	p.InJail = false
	p.JailTurns = 0
}

// Remove drops the player from the turn order and returns its former index.
// Tiles are not touched; settle them first.
func (l *PlayerLedger) Remove(playerID string) (int, error) {
	_, idx, err := l.Find(playerID)
	if err != nil {
		return -1, err
	}

	l.game.Players = append(l.game.Players[:idx], l.game.Players[idx+1:]...)
	return idx, nil
}
