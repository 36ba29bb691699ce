package models

import (
	"sort"
	"time"
)

// TradeStatus tracks a trade offer's lifecycle
type TradeStatus string

const (
	TradeStatusPending  TradeStatus = "pending"
	TradeStatusAccepted TradeStatus = "accepted"
	TradeStatusRejected TradeStatus = "rejected"
)

// TradeOffer proposes swapping tiles and money between two players
type TradeOffer struct {
	ID             string      `json:"id"`
	FromPlayerID   string      `json:"from_player_id"`
	ToPlayerID     string      `json:"to_player_id"`
	FromProperties []int       `json:"from_properties"`
	ToProperties   []int       `json:"to_properties"`
	FromMoney      int         `json:"from_money"`
	ToMoney        int         `json:"to_money"`
	Status         TradeStatus `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
}

// Clone returns a deep copy of the offer
func (t *TradeOffer) Clone() *TradeOffer {
	c := *t
	c.FromProperties = append([]int(nil), t.FromProperties...)
	c.ToProperties = append([]int(nil), t.ToProperties...)
	return &c
}

// Involves reports whether the player is either side of the trade
func (t *TradeOffer) Involves(playerID string) bool {
	return t.FromPlayerID == playerID || t.ToPlayerID == playerID
}

// SortTrades orders offers oldest first, by ID on ties
func SortTrades(trades []*TradeOffer) {
	sort.Slice(trades, func(i, j int) bool {
		if trades[i].CreatedAt.Equal(trades[j].CreatedAt) {
			return trades[i].ID < trades[j].ID
		}
		return trades[i].CreatedAt.Before(trades[j].CreatedAt)
	})
}
