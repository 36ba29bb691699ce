package models

import "time"

// ChatMessage is relayed to the room, never stored
type ChatMessage struct {
	ID         string    `json:"id"`
	RoomCode   string    `json:"room_code"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}
