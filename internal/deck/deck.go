// Package deck implements the recyclable card decks used for chance and community chest.
//
// A draw takes the front card and puts it back at the bottom, so the deck never shrinks and
// drawing len(deck) times returns it to its original order.
package deck

import "github.com/KirkDiggler/monopoly/internal/common/errs"

// ErrEmptyDeck is returned when drawing from a deck without cards
const ErrEmptyDeck errs.IllegalAction = "deck is empty"

// Deck is an ordered, cyclable sequence of cards
type Deck[T any] struct {
	cards []T
}

// New creates a deck holding a copy of cards in the given order
func New[T any](cards []T) *Deck[T] {
	c := make([]T, len(cards))
	copy(c, cards)
	return &Deck[T]{cards: c}
}

// Shuffle reorders the deck with the given shuffle func, e.g. rand.Shuffle
func (d *Deck[T]) Shuffle(shuffle func(n int, swap func(i, j int))) {
	shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw returns the front card and recycles it to the back
func (d *Deck[T]) Draw() (T, error) {
	var zero T
	if len(d.cards) == 0 {
		return zero, ErrEmptyDeck
	}

	card := d.cards[0]
	copy(d.cards, d.cards[1:])
	d.cards[len(d.cards)-1] = card
	return card, nil
}

// Peek returns the card the next Draw would return
func (d *Deck[T]) Peek() (T, error) {
	var zero T
	if len(d.cards) == 0 {
		return zero, ErrEmptyDeck
	}
	return d.cards[0], nil
}

// Len returns the number of cards in the deck
func (d *Deck[T]) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the deck in draw order
func (d *Deck[T]) Cards() []T {
	c := make([]T, len(d.cards))
	copy(c, d.cards)
	return c
}

// Clone returns an independent deck with the same order
func (d *Deck[T]) Clone() *Deck[T] {
	return New(d.cards)
}
