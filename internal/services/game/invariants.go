package game

import (
	"fmt"

	"github.com/KirkDiggler/monopoly/internal/common/errs"
	"github.com/KirkDiggler/monopoly/internal/models"
)

// checkInvariants verifies the state every operation must leave behind
func checkInvariants(game *models.GameSession) error {
	if n := len(game.Players); n > 0 && (game.CurrentPlayer < 0 || game.CurrentPlayer >= n) {
		return violation("current player %d out of range for %d players", game.CurrentPlayer, n)
	}

	owners := make(map[string]*models.Player, len(game.Players))
	for _, p := range game.Players {
		if p.Money < 0 {
			return violation("player %s has negative balance %d", p.ID, p.Money)
		}
		if p.Position < 0 || p.Position >= models.BoardSize {
			return violation("player %s is off the board at %d", p.ID, p.Position)
		}
		owners[p.ID] = p
	}

	owned := 0
	for _, tile := range game.Properties {
		if tile.Owner == "" {
			if tile.Improvements != 0 || tile.Mortgaged {
				return violation("bank tile %d carries improvements or a mortgage", tile.ID)
			}
			continue
		}

		owner, ok := owners[tile.Owner]
		if !ok {
			return violation("tile %d owned by %s who left the game", tile.ID, tile.Owner)
		}
		if !tile.Category.Purchasable() {
			return violation("tile %d of type %s has an owner", tile.ID, tile.Category)
		}
		if !owner.Owns(tile.ID) {
			return violation("tile %d missing from %s's properties", tile.ID, owner.ID)
		}
		if tile.Improvements < 0 || tile.Improvements > models.MaxImprovements {
			return violation("tile %d has %d improvements", tile.ID, tile.Improvements)
		}
		owned++
	}

	listed := 0
	for _, p := range game.Players {
		listed += len(p.Properties)
	}
	if listed != owned {
		return violation("players list %d tiles but %d are owned", listed, owned)
	}

	if game.HousesRemaining < 0 || game.HotelsRemaining < 0 {
		return violation("bank stock went negative: %d houses, %d hotels", game.HousesRemaining, game.HotelsRemaining)
	}
	if game.Ended && game.Winner == "" {
		return violation("game ended without a winner")
	}

	return nil
}

func violation(format string, args ...any) error {
	return errs.InvariantViolation(fmt.Sprintf(format, args...))
}
