package game

import (
	"github.com/KirkDiggler/monopoly/internal/deck"
	"github.com/KirkDiggler/monopoly/internal/models"
)

const (
	deckChance    = "chance"
	deckCommunity = "community_chest"
)

// land resolves the tile the player stands on
func (t *turn) land(p *models.Player) {
	tile, err := t.properties.Tile(p.Position)
	if err != nil {
		return
	}

	switch tile.Category {
	case models.TileCategoryProperty, models.TileCategoryRailroad, models.TileCategoryUtility:
		t.payRent(p, tile)

	case models.TileCategoryTax:
		if !t.charge(p, nil, tile.TaxAmount) {
			return
		}
		t.emit(EventTaxPaid, TaxPaidData{PlayerID: p.ID, PropertyID: tile.ID, Amount: tile.TaxAmount})
		t.logf("%s paid %d %s", p.Name, tile.TaxAmount, tile.Name)

	case models.TileCategoryChance:
		t.drawCard(p, deckChance, t.game.ChanceDeck)

	case models.TileCategoryCommunity:
		t.drawCard(p, deckCommunity, t.game.CommunityDeck)

	case models.TileCategoryCorner:
		if tile.ID == models.GoToJailPosition {
			t.jail(p, reasonGoToJail)
		}
	}
}

func (t *turn) payRent(p *models.Player, tile *models.PropertyTile) {
	if tile.Owner == "" || tile.Owner == p.ID {
		return
	}

	owner, _, err := t.players.Find(tile.Owner)
	if err != nil {
		return
	}

	rent := t.properties.Rent(tile, t.game.DiceTotal())
	if rent == 0 {
		return
	}
	if !t.charge(p, owner, rent) {
		return
	}

	t.emit(EventRentPaid, RentPaidData{FromPlayerID: p.ID, ToPlayerID: owner.ID, PropertyID: tile.ID, Amount: rent})
	t.logf("%s paid %d rent to %s for %s", p.Name, rent, owner.Name, tile.Name)
}

func (t *turn) drawCard(p *models.Player, name string, d *deck.Deck[models.Card]) {
	if d == nil {
		return
	}
	card, err := d.Draw()
	if err != nil {
		return
	}

	t.emit(EventCardDrawn, CardDrawnData{PlayerID: p.ID, Deck: name, Card: card})
	t.logf("%s drew %q", p.Name, card.Title)
	t.applyCard(p, card)
}

func (t *turn) applyCard(p *models.Player, card models.Card) {
	switch effect := card.Effect.(type) {
	case models.CollectEffect:
		p.Money += effect.Amount

	case models.PayEffect:
		t.charge(p, nil, effect.Amount)

	case models.MoveEffect:
		from := p.Position
		passed, err := t.players.Teleport(p, effect.Position, effect.CollectOnPass, t.svc.passStartBonus)
		if err != nil {
			return
		}
		moved := PlayerMovedData{PlayerID: p.ID, From: from, To: p.Position, PassedStart: passed}
		if passed {
			moved.Bonus = t.svc.passStartBonus
		}
		t.emit(EventPlayerMoved, moved)
		t.land(p)

	case models.GoToJailEffect:
		t.jail(p, reasonCard)

	case models.JailFreeEffect:
		p.JailFreeCards++

	case models.CollectFromAllEffect:
		for _, other := range t.players.Others(p.ID) {
			t.charge(other, p, effect.Amount)
		}
	}
}
