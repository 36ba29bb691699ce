package models

import "time"

// RoomPlayer is a seat in a lobby
type RoomPlayer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	Color     string `json:"color"`
	IsHost    bool   `json:"is_host"`
	Ready     bool   `json:"ready"`
	Connected bool   `json:"connected"`
}

// RoomSettings are fixed when the room is created
type RoomSettings struct {
	StartingMoney int `json:"starting_money"`
	HouseLimit    int `json:"house_limit"`
	HotelLimit    int `json:"hotel_limit"`
}

// Room groups the players of one game
type Room struct {
	Code        string        `json:"code"`
	HostID      string        `json:"host_id"`
	Players     []*RoomPlayer `json:"players"`
	MaxPlayers  int           `json:"max_players"`
	GameStarted bool          `json:"game_started"`
	Settings    RoomSettings  `json:"settings"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Player returns the seat for the player ID, nil when not seated
func (r *Room) Player(playerID string) *RoomPlayer {
	for _, p := range r.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// AllReady reports whether every seated player is ready
func (r *Room) AllReady() bool {
	for _, p := range r.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the room
func (r *Room) Clone() *Room {
	c := *r
	c.Players = make([]*RoomPlayer, 0, len(r.Players))
	for _, p := range r.Players {
		seat := *p
		c.Players = append(c.Players, &seat)
	}
	return &c
}
