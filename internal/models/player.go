package models

// Player is a participant in a running game
type Player struct {
	// ID is the unique identifier for the player
	ID string `json:"id"`

	// Name is the display name of the player
	Name string `json:"name"`

	// Avatar is the emoji or image key picked in the lobby
	Avatar string `json:"avatar"`

	// Color is the token color assigned in the lobby
	Color string `json:"color"`

	// Money is the wallet balance
	Money int `json:"money"`

	// Position is the board position, 0-39
	Position int `json:"position"`

	// Properties holds the IDs of owned tiles in acquisition order
	Properties []int `json:"properties"`

	// InJail is set while the player is held in jail
	InJail bool `json:"in_jail"`

	// JailTurns counts failed attempts to roll out of jail
	JailTurns int `json:"jail_turns"`

	// DoublesCount counts consecutive doubles in the current turn
	DoublesCount int `json:"doubles_count"`

	// JailFreeCards counts held get-out-of-jail-free cards
	JailFreeCards int `json:"get_out_of_jail_cards"`
}

// Owns reports whether the player holds the tile
func (p *Player) Owns(tileID int) bool {
	for _, id := range p.Properties {
		if id == tileID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	c := *p
	c.Properties = append([]int(nil), p.Properties...)
	return &c
}
