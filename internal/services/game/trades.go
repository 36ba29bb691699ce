package game

import (
	"context"

	"github.com/KirkDiggler/monopoly/internal/models"
)

// ProposeTrade offers tiles and money to another player
func (s *service) ProposeTrade(ctx context.Context, input *ProposeTradeInput) (*ProposeTradeOutput, error) {
	t, from, err := s.beginOwner(input.RoomCode, input.FromPlayerID)
	if err != nil {
		return nil, err
	}
	if input.FromPlayerID == input.ToPlayerID {
		return nil, ErrTradeWithSelf
	}
	to, _, err := t.players.Find(input.ToPlayerID)
	if err != nil {
		return nil, ErrPlayerNotFound
	}
	if len(input.OfferedProperties)+len(input.RequestedProperties) == 0 && input.OfferedMoney == 0 && input.RequestedMoney == 0 {
		return nil, ErrEmptyTrade
	}

	offer := &models.TradeOffer{
		ID:             s.uuidGenerator.NewUUID(),
		FromPlayerID:   from.ID,
		ToPlayerID:     to.ID,
		FromProperties: append([]int{}, input.OfferedProperties...),
		ToProperties:   append([]int{}, input.RequestedProperties...),
		FromMoney:      input.OfferedMoney,
		ToMoney:        input.RequestedMoney,
		Status:         models.TradeStatusPending,
		CreatedAt:      s.clock.Now(),
	}
	if err := t.validateTrade(offer, from, to); err != nil {
		return nil, err
	}

	t.game.Trades[offer.ID] = offer
	if current := t.game.Current(); current != nil && current.ID == from.ID && t.game.Phase == models.TurnPhaseAction {
		t.game.Phase = models.TurnPhaseTrade
	}

	t.emit(EventTradeProposed, TradeData{Trade: offer.Clone()})
	t.logf("%s proposed a trade to %s", from.Name, to.Name)

	events, err := t.finish()
	if err != nil {
		return nil, err
	}
	return &ProposeTradeOutput{Trade: offer.Clone(), Events: events}, nil
}

// RespondTrade accepts or rejects a pending offer
func (s *service) RespondTrade(ctx context.Context, input *RespondTradeInput) (*RespondTradeOutput, error) {
	t, err := s.begin(input.RoomCode)
	if err != nil {
		return nil, err
	}
	if t.game.Ended {
		return nil, ErrGameOver
	}

	offer, ok := t.game.Trades[input.TradeID]
	if !ok || offer.Status != models.TradeStatusPending {
		return nil, ErrTradeNotFound
	}
	if offer.ToPlayerID != input.PlayerID {
		return nil, ErrNotTradeTarget
	}

	from, _, err := t.players.Find(offer.FromPlayerID)
	if err != nil {
		return nil, ErrPlayerNotFound
	}
	to, _, err := t.players.Find(offer.ToPlayerID)
	if err != nil {
		return nil, ErrPlayerNotFound
	}

	if input.Accept {
		if err := t.validateTrade(offer, from, to); err != nil {
			return nil, ErrInvalidTrade
		}
		t.swap(offer, from, to)
		offer.Status = models.TradeStatusAccepted
		t.logf("%s accepted %s's trade", to.Name, from.Name)
	} else {
		offer.Status = models.TradeStatusRejected
		t.logf("%s rejected %s's trade", to.Name, from.Name)
	}

	delete(t.game.Trades, offer.ID)
	if current := t.game.Current(); t.game.Phase == models.TurnPhaseTrade && !t.hasPendingFrom(current.ID) {
		t.game.Phase = models.TurnPhaseAction
	}

	t.emit(EventTradeResolved, TradeData{Trade: offer.Clone()})

	events, err := t.finish()
	if err != nil {
		return nil, err
	}
	return &RespondTradeOutput{Trade: offer.Clone(), Events: events}, nil
}

func (t *turn) validateTrade(offer *models.TradeOffer, from, to *models.Player) error {
	if offer.FromMoney < 0 || offer.ToMoney < 0 {
		return ErrNegativeAmount
	}
	if from.Money < offer.FromMoney || to.Money < offer.ToMoney {
		return ErrInsufficientFunds
	}

	seen := make(map[int]bool)
	check := func(ids []int, owner *models.Player) error {
		for _, id := range ids {
			if seen[id] {
				return ErrDuplicateTiles
			}
			seen[id] = true

			tile, err := t.properties.Tile(id)
			if err != nil {
				return ErrPropertyNotFound
			}
			if tile.Owner != owner.ID {
				return ErrNotOwner
			}
			if tile.Improvements > 0 {
				return ErrImprovedInTrade
			}
		}
		return nil
	}

	if err := check(offer.FromProperties, from); err != nil {
		return err
	}
	return check(offer.ToProperties, to)
}

// swap executes a validated trade
func (t *turn) swap(offer *models.TradeOffer, from, to *models.Player) {
	for _, id := range offer.FromProperties {
		tile, _ := t.properties.Tile(id)
		t.properties.Transfer(tile, from, to)
	}
	for _, id := range offer.ToProperties {
		tile, _ := t.properties.Tile(id)
		t.properties.Transfer(tile, to, from)
	}

	from.Money += offer.ToMoney - offer.FromMoney
	to.Money += offer.FromMoney - offer.ToMoney
}

func (t *turn) hasPendingFrom(playerID string) bool {
	for _, offer := range t.game.Trades {
		if offer.FromPlayerID == playerID && offer.Status == models.TradeStatusPending {
			return true
		}
	}
	return false
}

// RemovePlayer forfeits a player who left mid-game
func (s *service) RemovePlayer(ctx context.Context, input *RemovePlayerInput) (*RemovePlayerOutput, error) {
	t, err := s.begin(input.RoomCode)
	if err != nil {
		return nil, err
	}

	p, _, err := t.players.Find(input.PlayerID)
	if err != nil {
		return nil, ErrPlayerNotFound
	}

	t.forfeit(p)

	events, err := t.finish()
	if err != nil {
		return nil, err
	}

	out := &RemovePlayerOutput{Events: events}
	if current := t.game.Current(); current != nil {
		out.NextPlayerID = current.ID
	}
	return out, nil
}
