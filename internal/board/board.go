// Package board holds the static board definition: 40 tiles plus the chance and community
// chest cards. It is loaded once at startup and shared read-only by every game.
package board

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/KirkDiggler/monopoly/internal/models"
)

//go:embed data/*.json
var data embed.FS

// Board is the immutable board definition
type Board struct {
	tiles     []models.TileSpec
	chance    []models.Card
	community []models.Card
	groups    map[string][]int
}

// Load parses and validates the embedded board data
func Load() (*Board, error) {
	b := &Board{groups: make(map[string][]int)}

	if err := decode("data/tiles.json", &b.tiles); err != nil {
		return nil, err
	}
	if err := decode("data/chance.json", &b.chance); err != nil {
		return nil, err
	}
	if err := decode("data/community.json", &b.community); err != nil {
		return nil, err
	}

	sort.Slice(b.tiles, func(i, j int) bool { return b.tiles[i].ID < b.tiles[j].ID })
	if err := b.validate(); err != nil {
		return nil, err
	}

	for _, t := range b.tiles {
		switch t.Category {
		case models.TileCategoryProperty:
			b.groups[t.Group] = append(b.groups[t.Group], t.ID)
		case models.TileCategoryRailroad, models.TileCategoryUtility:
			b.groups[string(t.Category)] = append(b.groups[string(t.Category)], t.ID)
		}
	}

	return b, nil
}

// MustLoad is Load for program start, it panics on broken embedded data
func MustLoad() *Board {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

func decode(name string, v any) error {
	raw, err := data.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (b *Board) validate() error {
	if len(b.tiles) != models.BoardSize {
		return fmt.Errorf("board has %d tiles, want %d", len(b.tiles), models.BoardSize)
	}

	for i, t := range b.tiles {
		if t.ID != i {
			return fmt.Errorf("tile at index %d has id %d", i, t.ID)
		}

		switch t.Category {
		case models.TileCategoryProperty:
			if len(t.Rent) != models.MaxImprovements+1 || t.Group == "" || t.HouseCost <= 0 {
				return fmt.Errorf("property %d (%s) is incomplete", t.ID, t.Name)
			}
		case models.TileCategoryRailroad:
			if len(t.Rent) != 4 {
				return fmt.Errorf("railroad %d (%s) needs 4 rent entries", t.ID, t.Name)
			}
		case models.TileCategoryTax:
			if t.TaxAmount <= 0 {
				return fmt.Errorf("tax tile %d has no amount", t.ID)
			}
		}

		if t.Category.Purchasable() && t.Price <= 0 {
			return fmt.Errorf("tile %d (%s) is purchasable without a price", t.ID, t.Name)
		}
	}

	if b.tiles[models.GoToJailPosition].Category != models.TileCategoryCorner ||
		b.tiles[models.JailPosition].Category != models.TileCategoryCorner {
		return fmt.Errorf("jail corners are misplaced")
	}

	if len(b.chance) == 0 || len(b.community) == 0 {
		return fmt.Errorf("card decks must not be empty")
	}

	return nil
}

// Tile returns the spec of one position
func (b *Board) Tile(id int) (models.TileSpec, bool) {
	if id < 0 || id >= len(b.tiles) {
		return models.TileSpec{}, false
	}
	return b.tiles[id], true
}

// Tiles returns fresh mutable tiles for a new game: unowned, unimproved, unmortgaged
func (b *Board) Tiles() []*models.PropertyTile {
	tiles := make([]*models.PropertyTile, 0, len(b.tiles))
	for _, spec := range b.tiles {
		spec.Rent = append([]int(nil), spec.Rent...)
		tiles = append(tiles, &models.PropertyTile{TileSpec: spec})
	}
	return tiles
}

// ChanceCards returns the chance cards in definition order
func (b *Board) ChanceCards() []models.Card {
	return append([]models.Card(nil), b.chance...)
}

// CommunityCards returns the community chest cards in definition order
func (b *Board) CommunityCards() []models.Card {
	return append([]models.Card(nil), b.community...)
}

// Group returns the tile ids of a color group, or of all railroads / utilities when
// group is "railroad" / "utility"
func (b *Board) Group(group string) []int {
	return append([]int(nil), b.groups[group]...)
}
