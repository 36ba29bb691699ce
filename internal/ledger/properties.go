package ledger

import (
	"github.com/KirkDiggler/monopoly/internal/models"
)

// utility rent multipliers by utilities owned
const (
	utilityMultiplierOne  = 4
	utilityMultiplierBoth = 10
)

// PropertyLedger owns tile ownership, improvements and mortgages of a game.
// It does no locking; callers hold the room lock.
type PropertyLedger struct {
	game *models.GameSession
}

// NewPropertyLedger wraps the tiles of a game
func NewPropertyLedger(game *models.GameSession) *PropertyLedger {
	return &PropertyLedger{game: game}
}

// Tile returns the tile at a board position
func (l *PropertyLedger) Tile(id int) (*models.PropertyTile, error) {
	if id < 0 || id >= len(l.game.Properties) {
		return nil, ErrTileNotFound
	}
	return l.game.Properties[id], nil
}

// Group returns every ordinary property of a color group
func (l *PropertyLedger) Group(group string) []*models.PropertyTile {
	var tiles []*models.PropertyTile
	for _, t := range l.game.Properties {
		if t.Category == models.TileCategoryProperty && t.Group == group {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// OwnsGroup reports whether the owner holds every property of the group
func (l *PropertyLedger) OwnsGroup(owner, group string) bool {
	tiles := l.Group(group)
	if owner == "" || len(tiles) == 0 {
		return false
	}
	for _, t := range tiles {
		if t.Owner != owner {
			return false
		}
	}
	return true
}

// CountOwned counts the owner's tiles of a category
func (l *PropertyLedger) CountOwned(owner string, category models.TileCategory) int {
	n := 0
	for _, t := range l.game.Properties {
		if t.Category == category && t.Owner == owner {
			n++
		}
	}
	return n
}

// OwnedBy returns the owner's tiles in board order
func (l *PropertyLedger) OwnedBy(owner string) []*models.PropertyTile {
	var tiles []*models.PropertyTile
	for _, t := range l.game.Properties {
		if owner != "" && t.Owner == owner {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// Rent computes what a visitor owes the owner of the tile. Unowned and mortgaged tiles
// collect nothing.
func (l *PropertyLedger) Rent(t *models.PropertyTile, diceTotal int) int {
	if t.Owner == "" || t.Mortgaged {
		return 0
	}

	switch t.Category {
	case models.TileCategoryRailroad:
		owned := l.CountOwned(t.Owner, models.TileCategoryRailroad)
		if owned < 1 || len(t.Rent) == 0 {
			return 0
		}
		if owned > len(t.Rent) {
			owned = len(t.Rent)
		}
		return t.Rent[owned-1]

	case models.TileCategoryUtility:
		if l.CountOwned(t.Owner, models.TileCategoryUtility) >= 2 {
			return diceTotal * utilityMultiplierBoth
		}
		return diceTotal * utilityMultiplierOne

	case models.TileCategoryProperty:
		if len(t.Rent) == 0 {
			return 0
		}
		if t.Improvements > 0 {
			idx := t.Improvements
			if idx >= len(t.Rent) {
				idx = len(t.Rent) - 1
			}
			return t.Rent[idx]
		}
		if l.OwnsGroup(t.Owner, t.Group) {
			return t.Rent[0] * 2
		}
		return t.Rent[0]
	}

	return 0
}

// Assign gives an unowned tile to a player
func (l *PropertyLedger) Assign(t *models.PropertyTile, to *models.Player) error {
	if !t.Category.Purchasable() {
		return ErrNotPurchasable
	}
	t.Owner = to.ID
	to.Properties = append(to.Properties, t.ID)
	return nil
}

// Transfer hands a tile over as-is, keeping improvements and mortgage
func (l *PropertyLedger) Transfer(t *models.PropertyTile, from, to *models.Player) {
	removeTile(from, t.ID)
	t.Owner = to.ID
	to.Properties = append(to.Properties, t.ID)
}

// Release returns a tile to the bank: unowned, unimproved and unmortgaged.
// It returns the number of improvements that went back to the bank.
func (l *PropertyLedger) Release(t *models.PropertyTile, from *models.Player) int {
	if from != nil {
		removeTile(from, t.ID)
	}
	improvements := t.Improvements
	t.Owner = ""
	t.Improvements = 0
	t.Mortgaged = false
	return improvements
}

func removeTile(p *models.Player, tileID int) {
	for i, id := range p.Properties {
		if id == tileID {
			p.Properties = append(p.Properties[:i], p.Properties[i+1:]...)
			return
		}
	}
}
