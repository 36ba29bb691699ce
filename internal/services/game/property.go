package game

import (
	"context"

	"github.com/KirkDiggler/monopoly/internal/models"
)

// BuyProperty buys the unowned tile the current player stands on
func (s *service) BuyProperty(ctx context.Context, input *BuyPropertyInput) (*BuyPropertyOutput, error) {
	t, p, err := s.beginTurn(input.RoomCode, input.PlayerID, models.TurnPhaseAction, models.TurnPhaseTrade)
	if err != nil {
		return nil, err
	}

	tile, err := t.properties.Tile(input.PropertyID)
	if err != nil {
		return nil, ErrPropertyNotFound
	}
	if tile.ID != p.Position {
		return nil, ErrNotOnProperty
	}
	if !tile.Category.Purchasable() {
		return nil, ErrNotForSale
	}
	if tile.Owner != "" {
		return nil, ErrAlreadyOwned
	}
	if err := t.players.Debit(p, tile.Price); err != nil {
		return nil, err
	}
	if err := t.properties.Assign(tile, p); err != nil {
		return nil, err
	}

	t.emit(EventPropertyBought, PropertyBoughtData{PlayerID: p.ID, PropertyID: tile.ID, Name: tile.Name, Price: tile.Price})
	t.logf("%s bought %s for %d", p.Name, tile.Name, tile.Price)

	events, err := t.finish()
	if err != nil {
		return nil, err
	}
	return &BuyPropertyOutput{Property: tile.Clone(), Events: events}, nil
}

// BuildHouse adds one improvement to a tile of a fully owned group
func (s *service) BuildHouse(ctx context.Context, input *BuildHouseInput) (*BuildHouseOutput, error) {
	t, p, err := s.beginTurn(input.RoomCode, input.PlayerID,
		models.TurnPhaseRoll, models.TurnPhaseAction, models.TurnPhaseTrade)
	if err != nil {
		return nil, err
	}

	tile, err := t.ownedTile(p, input.PropertyID)
	if err != nil {
		return nil, err
	}
	if tile.Category != models.TileCategoryProperty || tile.HouseCost <= 0 {
		return nil, ErrNotImprovable
	}
	if !t.properties.OwnsGroup(p.ID, tile.Group) {
		return nil, ErrIncompleteGroup
	}
	for _, member := range t.properties.Group(tile.Group) {
		if member.Mortgaged {
			return nil, ErrGroupMortgaged
		}
	}
	if tile.Improvements >= models.MaxImprovements {
		return nil, ErrMaxImprovements
	}

	hotel := tile.Improvements == models.MaxImprovements-1
	if hotel && t.game.HotelsRemaining < 1 {
		return nil, ErrNoHotelsLeft
	}
	if !hotel && t.game.HousesRemaining < 1 {
		return nil, ErrNoHousesLeft
	}
	if err := t.players.Debit(p, tile.HouseCost); err != nil {
		return nil, err
	}

	if hotel {
		t.game.HotelsRemaining--
		t.game.HousesRemaining += models.MaxImprovements - 1
		t.logf("%s built a hotel on %s", p.Name, tile.Name)
	} else {
		t.game.HousesRemaining--
		t.logf("%s built a house on %s", p.Name, tile.Name)
	}
	tile.Improvements++

	t.emit(EventHouseBuilt, HouseBuiltData{PlayerID: p.ID, PropertyID: tile.ID, Improvements: tile.Improvements, Cost: tile.HouseCost})

	events, err := t.finish()
	if err != nil {
		return nil, err
	}
	return &BuildHouseOutput{Property: tile.Clone(), Events: events}, nil
}

// MortgageProperty mortgages an unimproved tile for half its price
func (s *service) MortgageProperty(ctx context.Context, input *MortgagePropertyInput) (*MortgagePropertyOutput, error) {
	t, p, err := s.beginOwner(input.RoomCode, input.PlayerID)
	if err != nil {
		return nil, err
	}

	tile, err := t.ownedTile(p, input.PropertyID)
	if err != nil {
		return nil, err
	}
	if tile.Mortgaged {
		return nil, ErrAlreadyMortgaged
	}
	if tile.Category == models.TileCategoryProperty {
		for _, member := range t.properties.Group(tile.Group) {
			if member.Improvements > 0 {
				return nil, ErrHasImprovements
			}
		}
	}

	value := tile.MortgageValue()
	tile.Mortgaged = true
	p.Money += value

	t.emit(EventPropertyMortgaged, MortgageData{PlayerID: p.ID, PropertyID: tile.ID, Amount: value})
	t.logf("%s mortgaged %s for %d", p.Name, tile.Name, value)

	events, err := t.finish()
	if err != nil {
		return nil, err
	}
	return &MortgagePropertyOutput{Property: tile.Clone(), Events: events}, nil
}

// UnmortgageProperty lifts a mortgage for half the price plus interest
func (s *service) UnmortgageProperty(ctx context.Context, input *UnmortgagePropertyInput) (*UnmortgagePropertyOutput, error) {
	t, p, err := s.beginOwner(input.RoomCode, input.PlayerID)
	if err != nil {
		return nil, err
	}

	tile, err := t.ownedTile(p, input.PropertyID)
	if err != nil {
		return nil, err
	}
	if !tile.Mortgaged {
		return nil, ErrNotMortgaged
	}

	cost := tile.UnmortgageCost()
	if err := t.players.Debit(p, cost); err != nil {
		return nil, err
	}
	tile.Mortgaged = false

	t.emit(EventPropertyUnmortgaged, MortgageData{PlayerID: p.ID, PropertyID: tile.ID, Amount: cost})
	t.logf("%s paid %d to unmortgage %s", p.Name, cost, tile.Name)

	events, err := t.finish()
	if err != nil {
		return nil, err
	}
	return &UnmortgagePropertyOutput{Property: tile.Clone(), Events: events}, nil
}

// beginOwner loads the game for an operation any player may take outside their turn
func (s *service) beginOwner(roomCode, playerID string) (*turn, *models.Player, error) {
	t, err := s.begin(roomCode)
	if err != nil {
		return nil, nil, err
	}
	if t.game.Ended {
		return nil, nil, ErrGameOver
	}

	p, _, err := t.players.Find(playerID)
	if err != nil {
		return nil, nil, ErrPlayerNotFound
	}
	return t, p, nil
}

func (t *turn) ownedTile(p *models.Player, id int) (*models.PropertyTile, error) {
	tile, err := t.properties.Tile(id)
	if err != nil {
		return nil, ErrPropertyNotFound
	}
	if tile.Owner != p.ID {
		return nil, ErrNotOwner
	}
	return tile, nil
}
