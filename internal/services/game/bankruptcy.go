package game

import (
	"github.com/KirkDiggler/monopoly/internal/models"
)

// charge moves amount from the debtor to the creditor, or to the bank when creditor is nil.
// A debtor who cannot pay goes bankrupt; charge then reports false.
func (t *turn) charge(debtor, creditor *models.Player, amount int) bool {
	if amount <= 0 {
		return true
	}

	var err error
	if creditor == nil {
		err = t.players.Debit(debtor, amount)
	} else {
		err = t.players.Transfer(debtor, creditor, amount)
	}
	if err == nil {
		return true
	}

	t.bankrupt(debtor, creditor)
	return false
}

// bankrupt settles the debtor with the creditor and removes the debtor from the game.
// The bank releases tiles it receives; a player takes them as they are.
func (t *turn) bankrupt(debtor, creditor *models.Player) {
	for _, tile := range t.properties.OwnedBy(debtor.ID) {
		if creditor != nil {
			t.properties.Transfer(tile, debtor, creditor)
			continue
		}
		t.returnBuildings(tile.Improvements)
		t.properties.Release(tile, debtor)
	}

	data := PlayerBankruptData{PlayerID: debtor.ID}
	if creditor != nil {
		creditor.Money += debtor.Money
		data.CreditorID = creditor.ID
		t.logf("%s went bankrupt to %s", debtor.Name, creditor.Name)
	} else {
		t.logf("%s went bankrupt to the bank", debtor.Name)
	}
	debtor.Money = 0

	t.leave(debtor)
	t.emit(EventPlayerBankrupt, data)
	t.svc.log.Infow("player bankrupt", "room", t.game.RoomCode, "player", debtor.ID, "creditor", data.CreditorID)

	t.checkWinner()
}

// forfeit hands the player's tiles back to the bank and removes the player
func (t *turn) forfeit(p *models.Player) {
	for _, tile := range t.properties.OwnedBy(p.ID) {
		t.returnBuildings(tile.Improvements)
		t.properties.Release(tile, p)
	}
	t.logf("%s left the game", p.Name)

	t.leave(p)
	t.checkWinner()
}

// leave drops the player from the turn order, keeping the turn with whoever had it.
// When the leaving player had the turn, it passes to the next player.
func (t *turn) leave(p *models.Player) {
	for id, trade := range t.game.Trades {
		if trade.Involves(p.ID) {
			delete(t.game.Trades, id)
		}
	}

	idx, err := t.players.Remove(p.ID)
	if err != nil {
		return
	}

	switch {
	case len(t.game.Players) == 0:
		t.game.CurrentPlayer = 0
	case idx < t.game.CurrentPlayer:
		t.game.CurrentPlayer--
	case idx == t.game.CurrentPlayer:
		if t.game.CurrentPlayer >= len(t.game.Players) {
			t.game.CurrentPlayer = 0
		}
		t.game.Current().DoublesCount = 0
		if !t.game.Ended {
			t.game.Phase = models.TurnPhaseRoll
		}
	}
}

// returnBuildings puts a tile's improvements back into the bank's stock
func (t *turn) returnBuildings(improvements int) {
	if improvements == models.MaxImprovements {
		t.game.HotelsRemaining++
		return
	}
	t.game.HousesRemaining += improvements
}

func (t *turn) checkWinner() {
	if t.game.Ended || len(t.game.Players) != 1 {
		return
	}

	winner := t.game.Players[0]
	t.game.Winner = winner.ID
	t.game.Ended = true
	t.game.Phase = models.TurnPhaseGameOver
	t.emit(EventGameOver, GameOverData{WinnerID: winner.ID, WinnerName: winner.Name})
	t.logf("%s wins the game", winner.Name)
	t.svc.log.Infow("game over", "room", t.game.RoomCode, "winner", winner.ID)
}
