package ws

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/monopoly/internal/models"
)

// Inbound message types
const (
	MessagePlayerReady        = "player-ready"
	MessageStartGame          = "start-game"
	MessageRollDice           = "roll-dice"
	MessageBuyProperty        = "buy-property"
	MessageEndTurn            = "end-turn"
	MessageSendChat           = "send-chat"
	MessageLeaveRoom          = "leave-room"
	MessagePayJailFine        = "pay-jail-fine"
	MessageUseJailCard        = "use-jail-card"
	MessageBuildHouse         = "build-house"
	MessageMortgageProperty   = "mortgage-property"
	MessageUnmortgageProperty = "unmortgage-property"
	MessageProposeTrade       = "propose-trade"
	MessageRespondTrade       = "respond-trade"
	MessageSyncState          = "sync-state"
)

// Outbound message types that are not game events
const (
	MessageRoomUpdated        = "room-updated"
	MessageGameState          = "game-state"
	MessageChat               = "chat-message"
	MessagePlayerJoined       = "player-joined"
	MessagePlayerLeft         = "player-left"
	MessagePlayerDisconnected = "player-disconnected"
	MessagePlayerReconnected  = "player-reconnected"
	MessageError              = "error"
)

// inbound is the union of every client message; fields a type does not use stay zero
type inbound struct {
	Type string `json:"type"`

	Ready      bool   `json:"ready"`
	PropertyID int    `json:"property_id"`
	Message    string `json:"message"`

	ToPlayerID          string `json:"to_player_id"`
	OfferedProperties   []int  `json:"offered_properties"`
	RequestedProperties []int  `json:"requested_properties"`
	OfferedMoney        int    `json:"offered_money"`
	RequestedMoney      int    `json:"requested_money"`

	TradeID string `json:"trade_id"`
	Accept  bool   `json:"accept"`
}

// Envelope is an outbound message: the type plus the fields of Data, flattened into one object
type Envelope struct {
	Type string
	Data any
}

// MarshalJSON writes {"type": ..., <fields of Data>}
func (e Envelope) MarshalJSON() ([]byte, error) {
	typ, err := json.Marshal(e.Type)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	buf.Write(typ)

	if e.Data != nil {
		data, err := json.Marshal(e.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s payload: %w", e.Type, err)
		}
		if len(data) < 2 || data[0] != '{' {
			return nil, fmt.Errorf("%s payload must encode to an object", e.Type)
		}
		if body := bytes.TrimSpace(data[1 : len(data)-1]); len(body) > 0 {
			buf.WriteByte(',')
			buf.Write(body)
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type roomData struct {
	Room *models.Room `json:"room"`
}

type gameStateData struct {
	Game *models.GameSnapshot `json:"game_state"`
}

type playerData struct {
	PlayerID string `json:"player_id"`
}

type playerRoomData struct {
	PlayerID string       `json:"player_id"`
	Room     *models.Room `json:"room"`
}

type errorData struct {
	Message string `json:"message"`
}
