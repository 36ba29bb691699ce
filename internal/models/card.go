package models

import (
	"encoding/json"
	"fmt"
)

// CardKind names a card effect on the wire
type CardKind string

const (
	CardKindCollect        CardKind = "collect"
	CardKindPay            CardKind = "pay"
	CardKindMove           CardKind = "move"
	CardKindGoToJail       CardKind = "goToJail"
	CardKindJailFree       CardKind = "jailFree"
	CardKindCollectFromAll CardKind = "collectFromAll"
)

// CardEffect is implemented by exactly the effect types below
type CardEffect interface {
	Kind() CardKind
	cardEffect()
}

// CollectEffect pays the drawer from the bank
type CollectEffect struct {
	Amount int
}

// PayEffect charges the drawer, paid to the bank
type PayEffect struct {
	Amount int
}

// MoveEffect teleports the drawer
type MoveEffect struct {
	Position int

	// CollectOnPass credits the pass-start bonus when the destination is behind the drawer
	CollectOnPass bool
}

// GoToJailEffect sends the drawer straight to jail
type GoToJailEffect struct{}

// JailFreeEffect hands the drawer a get-out-of-jail-free card
type JailFreeEffect struct{}

// CollectFromAllEffect makes every other player pay the drawer
type CollectFromAllEffect struct {
	Amount int
}

func (CollectEffect) Kind() CardKind        { return CardKindCollect }
func (PayEffect) Kind() CardKind            { return CardKindPay }
func (MoveEffect) Kind() CardKind           { return CardKindMove }
func (GoToJailEffect) Kind() CardKind       { return CardKindGoToJail }
func (JailFreeEffect) Kind() CardKind       { return CardKindJailFree }
func (CollectFromAllEffect) Kind() CardKind { return CardKindCollectFromAll }

func (CollectEffect) cardEffect()        {}
func (PayEffect) cardEffect()            {}
func (MoveEffect) cardEffect()           {}
func (GoToJailEffect) cardEffect()       {}
func (JailFreeEffect) cardEffect()       {}
func (CollectFromAllEffect) cardEffect() {}

// Card is an immutable chance or community chest card
type Card struct {
	ID          int
	Title       string
	Description string
	Effect      CardEffect
}

// cardJSON is the flat wire shape shared with the board data file and clients
type cardJSON struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        CardKind `json:"type"`
	Amount      *int     `json:"amount,omitempty"`
	Position    *int     `json:"position,omitempty"`
	CollectGo   *bool    `json:"collect_go,omitempty"`
}

// MarshalJSON flattens the effect into the card
func (c Card) MarshalJSON() ([]byte, error) {
	if c.Effect == nil {
		return nil, fmt.Errorf("card %d has no effect", c.ID)
	}

	out := cardJSON{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Type:        c.Effect.Kind(),
	}

	switch e := c.Effect.(type) {
	case CollectEffect:
		out.Amount = &e.Amount
	case PayEffect:
		out.Amount = &e.Amount
	case CollectFromAllEffect:
		out.Amount = &e.Amount
	case MoveEffect:
		out.Position = &e.Position
		out.CollectGo = &e.CollectOnPass
	}

	return json.Marshal(out)
}

// UnmarshalJSON rejects field combinations that do not match the card type
func (c *Card) UnmarshalJSON(data []byte) error {
	var in cardJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	amount := func() (int, error) {
		if in.Amount == nil || *in.Amount < 0 {
			return 0, fmt.Errorf("card %d (%s) needs a non-negative amount", in.ID, in.Type)
		}
		return *in.Amount, nil
	}

	var effect CardEffect
	switch in.Type {
	case CardKindCollect:
		a, err := amount()
		if err != nil {
			return err
		}
		effect = CollectEffect{Amount: a}
	case CardKindPay:
		a, err := amount()
		if err != nil {
			return err
		}
		effect = PayEffect{Amount: a}
	case CardKindCollectFromAll:
		a, err := amount()
		if err != nil {
			return err
		}
		effect = CollectFromAllEffect{Amount: a}
	case CardKindMove:
		if in.Position == nil || *in.Position < 0 || *in.Position >= BoardSize {
			return fmt.Errorf("card %d (move) needs a position on the board", in.ID)
		}
		effect = MoveEffect{Position: *in.Position, CollectOnPass: in.CollectGo != nil && *in.CollectGo}
	case CardKindGoToJail:
		effect = GoToJailEffect{}
	case CardKindJailFree:
		effect = JailFreeEffect{}
	default:
		return fmt.Errorf("card %d has unknown type %q", in.ID, in.Type)
	}

	*c = Card{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Effect:      effect,
	}
	return nil
}
