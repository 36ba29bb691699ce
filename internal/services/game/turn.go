package game

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/monopoly/internal/ledger"
	"github.com/KirkDiggler/monopoly/internal/models"
)

// turn collects the effects of one operation on a game
type turn struct {
	svc        *service
	game       *models.GameSession
	players    *ledger.PlayerLedger
	properties *ledger.PropertyLedger
	events     []Event
}

func (t *turn) emit(eventType EventType, data any) {
	t.events = append(t.events, Event{Type: eventType, Data: data})
}

func (t *turn) logf(format string, args ...any) {
	t.game.AddLog(fmt.Sprintf(format, args...))
}

// finish re-checks the game invariants after a mutation.
// A broken invariant is a fault, not a rejection: the mutation is not rolled back.
func (t *turn) finish() ([]Event, error) {
	if err := checkInvariants(t.game); err != nil {
		t.svc.log.Errorw("game invariant broken", "room", t.game.RoomCode, "error", err)
		return nil, err
	}
	return t.events, nil
}

// RollDice rolls for the current player, handling doubles and jail
func (s *service) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	t, p, err := s.beginTurn(input.RoomCode, input.PlayerID, models.TurnPhaseRoll)
	if err != nil {
		return nil, err
	}

	d1, d2 := s.diceRoller.Roll(diceSides), s.diceRoller.Roll(diceSides)
	doubles := d1 == d2
	t.game.DiceValues = [2]int{d1, d2}
	t.emit(EventDiceRolled, DiceRolledData{PlayerID: p.ID, Dice: t.game.DiceValues, Total: d1 + d2, Doubles: doubles})
	t.logf("%s rolled %d and %d", p.Name, d1, d2)

	if p.InJail {
		t.rollInJail(p, doubles)
	} else {
		t.rollFree(p, doubles)
	}

	events, err := t.finish()
	if err != nil {
		return nil, err
	}

	return &RollDiceOutput{
		Dice:     t.game.DiceValues,
		Doubles:  doubles,
		MustMove: !t.game.Ended && t.game.Phase == models.TurnPhaseMove,
		Events:   events,
	}, nil
}

func (t *turn) rollFree(p *models.Player, doubles bool) {
	if !doubles {
		p.DoublesCount = 0
		t.game.Phase = models.TurnPhaseMove
		return
	}

	p.DoublesCount++
	if p.DoublesCount >= t.svc.maxDoubles {
		t.jail(p, reasonThreeDoubles)
		return
	}
	t.game.Phase = models.TurnPhaseMove
}

func (t *turn) rollInJail(p *models.Player, doubles bool) {
	if doubles {
		t.players.Release(p)
		t.emit(EventPlayerReleased, PlayerReleasedData{PlayerID: p.ID, Reason: reasonDoubles})
		t.logf("%s rolled doubles and left jail", p.Name)
		t.game.Phase = models.TurnPhaseMove
		return
	}

	p.JailTurns++
	if p.JailTurns < t.svc.maxJailTurns {
		t.logf("%s stays in jail", p.Name)
		t.game.Phase = models.TurnPhaseEndTurn
		return
	}

	if !t.charge(p, nil, t.svc.jailFine) {
		return
	}
	t.players.Release(p)
	t.emit(EventPlayerReleased, PlayerReleasedData{PlayerID: p.ID, Reason: reasonForcedFine})
	t.logf("%s paid %d and left jail", p.Name, t.svc.jailFine)
	t.game.Phase = models.TurnPhaseMove
}

// MovePlayer moves the current player by the last roll and resolves the landed tile
func (s *service) MovePlayer(ctx context.Context, input *MovePlayerInput) (*MovePlayerOutput, error) {
	t, p, err := s.beginTurn(input.RoomCode, input.PlayerID, models.TurnPhaseMove)
	if err != nil {
		return nil, err
	}

	from := p.Position
	passed := t.players.Advance(p, t.game.DiceTotal(), s.passStartBonus)
	moved := PlayerMovedData{PlayerID: p.ID, From: from, To: p.Position, PassedStart: passed}
	if passed {
		moved.Bonus = s.passStartBonus
		t.logf("%s passed GO and collected %d", p.Name, s.passStartBonus)
	}
	t.emit(EventPlayerMoved, moved)
	t.game.Phase = models.TurnPhaseAction

	t.land(p)

	events, err := t.finish()
	if err != nil {
		return nil, err
	}

	out := &MovePlayerOutput{From: from, To: p.Position, PassedStart: passed, Events: events}
	if tile, err := t.properties.Tile(p.Position); err == nil && t.present(p) {
		out.CanBuy = tile.Category.Purchasable() && tile.Owner == "" && p.Money >= tile.Price
	}
	return out, nil
}

// EndTurn hands the turn to the next player, or back to the same one after doubles
func (s *service) EndTurn(ctx context.Context, input *EndTurnInput) (*EndTurnOutput, error) {
	t, p, err := s.beginTurn(input.RoomCode, input.PlayerID,
		models.TurnPhaseAction, models.TurnPhaseTrade, models.TurnPhaseEndTurn)
	if err != nil {
		return nil, err
	}

	extra := p.DoublesCount > 0 && !p.InJail
	if !extra {
		p.DoublesCount = 0
		t.game.CurrentPlayer = (t.game.CurrentPlayer + 1) % len(t.game.Players)
	}
	t.game.Phase = models.TurnPhaseRoll

	next := t.game.Current()
	t.emit(EventTurnEnded, TurnEndedData{PlayerID: p.ID, NextPlayerID: next.ID, ExtraTurn: extra})
	if extra {
		t.logf("%s rolled doubles and goes again", p.Name)
	} else {
		t.logf("It is now %s's turn", next.Name)
	}

	events, err := t.finish()
	if err != nil {
		return nil, err
	}
	return &EndTurnOutput{NextPlayerID: next.ID, ExtraTurn: extra, Events: events}, nil
}

// PayJailFine releases the current player from jail for the fine
func (s *service) PayJailFine(ctx context.Context, input *PayJailFineInput) (*PayJailFineOutput, error) {
	t, p, err := s.beginTurn(input.RoomCode, input.PlayerID, models.TurnPhaseRoll)
	if err != nil {
		return nil, err
	}
	if !p.InJail {
		return nil, ErrNotInJail
	}
	if err := t.players.Debit(p, s.jailFine); err != nil {
		return nil, err
	}

	t.players.Release(p)
	t.emit(EventPlayerReleased, PlayerReleasedData{PlayerID: p.ID, Reason: reasonFine})
	t.logf("%s paid %d to leave jail", p.Name, s.jailFine)

	events, err := t.finish()
	if err != nil {
		return nil, err
	}
	return &PayJailFineOutput{Events: events}, nil
}

// UseJailFreeCard releases the current player from jail with a held card
func (s *service) UseJailFreeCard(ctx context.Context, input *UseJailFreeCardInput) (*UseJailFreeCardOutput, error) {
	t, p, err := s.beginTurn(input.RoomCode, input.PlayerID, models.TurnPhaseRoll)
	if err != nil {
		return nil, err
	}
	if !p.InJail {
		return nil, ErrNotInJail
	}
	if p.JailFreeCards < 1 {
		return nil, ErrNoJailFreeCard
	}

	p.JailFreeCards--
	t.players.Release(p)
	t.emit(EventPlayerReleased, PlayerReleasedData{PlayerID: p.ID, Reason: reasonCard})
	t.logf("%s used a Get Out of Jail Free card", p.Name)

	events, err := t.finish()
	if err != nil {
		return nil, err
	}
	return &UseJailFreeCardOutput{Events: events}, nil
}

// jail locks the player up and forces the end of the turn
func (t *turn) jail(p *models.Player, reason string) {
	t.players.SendToJail(p)
	t.emit(EventPlayerJailed, PlayerJailedData{PlayerID: p.ID, Reason: reason})
	t.logf("%s went to jail (%s)", p.Name, reason)
	if current := t.game.Current(); current != nil && current.ID == p.ID {
		t.game.Phase = models.TurnPhaseEndTurn
	}
}

// present reports whether the player is still in the game
func (t *turn) present(p *models.Player) bool {
	_, _, err := t.players.Find(p.ID)
	return err == nil
}
