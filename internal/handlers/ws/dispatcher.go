package ws

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/monopoly/internal/common/clock"
	"github.com/KirkDiggler/monopoly/internal/common/errs"
	"github.com/KirkDiggler/monopoly/internal/common/keymutex"
	"github.com/KirkDiggler/monopoly/internal/common/uuid"
	"github.com/KirkDiggler/monopoly/internal/models"
	"github.com/KirkDiggler/monopoly/internal/services/game"
	"github.com/KirkDiggler/monopoly/internal/services/lobby"
	"github.com/KirkDiggler/monopoly/internal/services/registry"
)

// Dispatcher turns client messages into service calls and fans the results out to the room.
//
// Every call holds the room lock for its whole duration, broadcasts included, so all members
// of a room see messages in the order the state changed.
type Dispatcher struct {
	game          game.Service
	lobby         lobby.Service
	registry      registry.Service
	locks         *keymutex.Mutex
	announcer     Announcer
	clock         clock.Clock
	uuidGenerator uuid.UUID
	log           *zap.SugaredLogger
}

// NewDispatcher creates a dispatcher
func NewDispatcher(cfg *DispatcherConfig) (*Dispatcher, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.GameService == nil {
		return nil, ErrNilGameService
	}
	if cfg.LobbyService == nil {
		return nil, ErrNilLobbyService
	}
	if cfg.Registry == nil {
		return nil, ErrNilRegistry
	}
	if cfg.Locks == nil {
		return nil, ErrNilLocks
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	d := &Dispatcher{
		game:          cfg.GameService,
		lobby:         cfg.LobbyService,
		registry:      cfg.Registry,
		locks:         cfg.Locks,
		announcer:     cfg.Announcer,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		log:           cfg.Logger,
	}
	if d.log == nil {
		d.log = zap.NewNop().Sugar()
	}

	return d, nil
}

// Connect registers a player's connection and tells the room they are back
func (d *Dispatcher) Connect(ctx context.Context, roomCode, playerID string, conn registry.Connection) error {
	unlock := d.locks.Lock(roomCode)
	defer unlock()

	out, err := d.lobby.SetConnected(ctx, &lobby.SetConnectedInput{Code: roomCode, PlayerID: playerID, Connected: true})
	if err != nil {
		return err
	}

	connected, err := d.registry.Connect(&registry.ConnectInput{RoomCode: roomCode, PlayerID: playerID, Conn: conn})
	if err != nil {
		return err
	}
	d.log.Infow("player connected", "room", roomCode, "player", playerID, "replaced", connected.Replaced)

	d.broadcast(roomCode, Envelope{Type: MessagePlayerReconnected, Data: playerData{PlayerID: playerID}})
	d.sync(ctx, out.Room, playerID)

	return nil
}

// Disconnect forgets a connection; a connection already replaced by a newer one changes nothing
func (d *Dispatcher) Disconnect(ctx context.Context, roomCode, playerID string, conn registry.Connection) {
	unlock := d.locks.Lock(roomCode)
	defer unlock()

	if !d.registry.Disconnect(conn) {
		return
	}
	d.log.Infow("player disconnected", "room", roomCode, "player", playerID)

	_, err := d.lobby.SetConnected(ctx, &lobby.SetConnectedInput{Code: roomCode, PlayerID: playerID, Connected: false})
	if err != nil {
		// the player may have left the room before closing the socket
		if !errs.IsNotFound(err) {
			d.log.Errorw("failed to record disconnect", "room", roomCode, "player", playerID, "error", err)
		}
		return
	}

	d.broadcast(roomCode, Envelope{Type: MessagePlayerDisconnected, Data: playerData{PlayerID: playerID}})
}

// Handle processes one raw client message from playerID in roomCode
func (d *Dispatcher) Handle(ctx context.Context, roomCode, playerID string, raw []byte) {
	unlock := d.locks.Lock(roomCode)
	defer unlock()

	defer func() {
		if r := recover(); r != nil {
			d.log.Errorw("panic handling message", "room", roomCode, "player", playerID, "panic", r)
			d.sendError(roomCode, playerID, internalError)
		}
	}()

	var msg inbound
	if err := json.Unmarshal(raw, &msg); err != nil {
		d.fail(roomCode, playerID, "", ErrInvalidMessage)
		return
	}

	if err := d.dispatch(ctx, roomCode, playerID, &msg); err != nil {
		d.fail(roomCode, playerID, msg.Type, err)
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, roomCode, playerID string, msg *inbound) error {
	switch msg.Type {
	case MessagePlayerReady:
		return d.playerReady(ctx, roomCode, playerID, msg.Ready)
	case MessageStartGame:
		return d.startGame(ctx, roomCode, playerID)
	case MessageRollDice:
		return d.rollDice(ctx, roomCode, playerID)
	case MessageBuyProperty:
		out, err := d.game.BuyProperty(ctx, &game.BuyPropertyInput{RoomCode: roomCode, PlayerID: playerID, PropertyID: msg.PropertyID})
		if err != nil {
			return err
		}
		d.publish(ctx, roomCode, out.Events)
	case MessageEndTurn:
		out, err := d.game.EndTurn(ctx, &game.EndTurnInput{RoomCode: roomCode, PlayerID: playerID})
		if err != nil {
			return err
		}
		d.publish(ctx, roomCode, out.Events)
	case MessagePayJailFine:
		out, err := d.game.PayJailFine(ctx, &game.PayJailFineInput{RoomCode: roomCode, PlayerID: playerID})
		if err != nil {
			return err
		}
		d.publish(ctx, roomCode, out.Events)
	case MessageUseJailCard:
		out, err := d.game.UseJailFreeCard(ctx, &game.UseJailFreeCardInput{RoomCode: roomCode, PlayerID: playerID})
		if err != nil {
			return err
		}
		d.publish(ctx, roomCode, out.Events)
	case MessageBuildHouse:
		out, err := d.game.BuildHouse(ctx, &game.BuildHouseInput{RoomCode: roomCode, PlayerID: playerID, PropertyID: msg.PropertyID})
		if err != nil {
			return err
		}
		d.publish(ctx, roomCode, out.Events)
	case MessageMortgageProperty:
		out, err := d.game.MortgageProperty(ctx, &game.MortgagePropertyInput{RoomCode: roomCode, PlayerID: playerID, PropertyID: msg.PropertyID})
		if err != nil {
			return err
		}
		d.publish(ctx, roomCode, out.Events)
	case MessageUnmortgageProperty:
		out, err := d.game.UnmortgageProperty(ctx, &game.UnmortgagePropertyInput{RoomCode: roomCode, PlayerID: playerID, PropertyID: msg.PropertyID})
		if err != nil {
			return err
		}
		d.publish(ctx, roomCode, out.Events)
	case MessageProposeTrade:
		out, err := d.game.ProposeTrade(ctx, &game.ProposeTradeInput{
			RoomCode:            roomCode,
			FromPlayerID:        playerID,
			ToPlayerID:          msg.ToPlayerID,
			OfferedProperties:   msg.OfferedProperties,
			RequestedProperties: msg.RequestedProperties,
			OfferedMoney:        msg.OfferedMoney,
			RequestedMoney:      msg.RequestedMoney,
		})
		if err != nil {
			return err
		}
		d.publish(ctx, roomCode, out.Events)
	case MessageRespondTrade:
		out, err := d.game.RespondTrade(ctx, &game.RespondTradeInput{RoomCode: roomCode, PlayerID: playerID, TradeID: msg.TradeID, Accept: msg.Accept})
		if err != nil {
			return err
		}
		d.publish(ctx, roomCode, out.Events)
	case MessageSendChat:
		return d.sendChat(ctx, roomCode, playerID, msg.Message)
	case MessageLeaveRoom:
		return d.leaveRoom(ctx, roomCode, playerID)
	case MessageSyncState:
		out, err := d.lobby.GetRoom(ctx, &lobby.GetRoomInput{Code: roomCode})
		if err != nil {
			return err
		}
		d.sync(ctx, out.Room, playerID)
	default:
		return ErrUnknownMessage
	}

	return nil
}

func (d *Dispatcher) playerReady(ctx context.Context, roomCode, playerID string, ready bool) error {
	out, err := d.lobby.SetReady(ctx, &lobby.SetReadyInput{Code: roomCode, PlayerID: playerID, Ready: ready})
	if err != nil {
		return err
	}

	d.broadcast(roomCode, Envelope{Type: MessageRoomUpdated, Data: roomData{Room: out.Room}})
	return nil
}

func (d *Dispatcher) startGame(ctx context.Context, roomCode, playerID string) error {
	valid, err := d.lobby.ValidateStart(ctx, &lobby.ValidateStartInput{Code: roomCode, PlayerID: playerID})
	if err != nil {
		return err
	}

	created, err := d.game.CreateGame(ctx, &game.CreateGameInput{RoomCode: roomCode, Players: valid.Room.Players})
	if err != nil {
		return err
	}

	started, err := d.lobby.MarkStarted(ctx, &lobby.MarkStartedInput{Code: roomCode})
	if err != nil {
		if _, delErr := d.game.DeleteGame(ctx, &game.DeleteGameInput{RoomCode: roomCode}); delErr != nil {
			d.log.Errorw("failed to drop game after start failed", "room", roomCode, "error", delErr)
		}
		return err
	}
	d.log.Infow("game started", "room", roomCode, "players", len(started.Room.Players))

	d.broadcast(roomCode, Envelope{Type: MessageRoomUpdated, Data: roomData{Room: started.Room}})
	d.publish(ctx, roomCode, created.Events)

	if d.announcer != nil {
		room := started.Room.Clone()
		go d.announce(roomCode, func(ctx context.Context) error {
			return d.announcer.GameStarted(ctx, room)
		})
	}

	return nil
}

// rollDice rolls and, unless the roll left the player in jail, moves them straight away
func (d *Dispatcher) rollDice(ctx context.Context, roomCode, playerID string) error {
	rolled, err := d.game.RollDice(ctx, &game.RollDiceInput{RoomCode: roomCode, PlayerID: playerID})
	if err != nil {
		return err
	}
	events := rolled.Events

	if rolled.MustMove {
		moved, err := d.game.MovePlayer(ctx, &game.MovePlayerInput{RoomCode: roomCode, PlayerID: playerID})
		if err != nil {
			d.publish(ctx, roomCode, events)
			return err
		}
		events = append(events, moved.Events...)
	}

	d.publish(ctx, roomCode, events)
	return nil
}

func (d *Dispatcher) sendChat(ctx context.Context, roomCode, playerID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	out, err := d.lobby.GetRoom(ctx, &lobby.GetRoomInput{Code: roomCode})
	if err != nil {
		return err
	}
	seat := out.Room.Player(playerID)
	if seat == nil {
		return lobby.ErrPlayerNotFound
	}

	d.broadcast(roomCode, Envelope{Type: MessageChat, Data: &models.ChatMessage{
		ID:         d.uuidGenerator.NewUUID(),
		RoomCode:   roomCode,
		PlayerID:   playerID,
		PlayerName: seat.Name,
		Message:    text,
		Timestamp:  d.clock.Now(),
	}})
	return nil
}

// leaveRoom forfeits the player's game, if one is running, and gives up their seat
func (d *Dispatcher) leaveRoom(ctx context.Context, roomCode, playerID string) error {
	if current, err := d.game.GetGame(ctx, &game.GetGameInput{RoomCode: roomCode}); err == nil && !current.Game.GameEnded {
		removed, err := d.game.RemovePlayer(ctx, &game.RemovePlayerInput{RoomCode: roomCode, PlayerID: playerID})
		switch {
		case err == nil:
			d.publish(ctx, roomCode, removed.Events)
		case errs.IsNotFound(err):
			// already bankrupt
		default:
			return err
		}
	}

	left, err := d.lobby.LeaveRoom(ctx, &lobby.LeaveRoomInput{Code: roomCode, PlayerID: playerID})
	if err != nil {
		return err
	}
	d.log.Infow("player left", "room", roomCode, "player", playerID, "room_deleted", left.Deleted)

	// the seat is gone, so the socket goes too
	if conn := d.registry.RemovePlayer(roomCode, playerID); conn != nil {
		defer func() {
			if err := conn.Close(); err != nil {
				d.log.Debugw("closing connection of departed player", "room", roomCode, "player", playerID, "error", err)
			}
		}()
	}

	if left.Deleted {
		if _, err := d.game.DeleteGame(ctx, &game.DeleteGameInput{RoomCode: roomCode}); err != nil && !errs.IsNotFound(err) {
			return err
		}
		return nil
	}

	d.broadcast(roomCode, Envelope{Type: MessagePlayerLeft, Data: playerRoomData{PlayerID: playerID, Room: left.Room}})
	return nil
}

// sync sends the room and, when a game is running, its state to one player
func (d *Dispatcher) sync(ctx context.Context, room *models.Room, playerID string) {
	d.send(room.Code, playerID, Envelope{Type: MessageRoomUpdated, Data: roomData{Room: room}})

	out, err := d.game.GetGame(ctx, &game.GetGameInput{RoomCode: room.Code})
	if err != nil {
		if !errs.IsNotFound(err) {
			d.log.Errorw("failed to load game", "room", room.Code, "error", err)
		}
		return
	}
	d.send(room.Code, playerID, Envelope{Type: MessageGameState, Data: gameStateData{Game: out.Game}})
}

// publish broadcasts events in order followed by the resulting game state
func (d *Dispatcher) publish(ctx context.Context, roomCode string, events []game.Event) {
	for _, e := range events {
		d.broadcast(roomCode, Envelope{Type: string(e.Type), Data: e.Data})

		if over, ok := e.Data.(game.GameOverData); ok && d.announcer != nil {
			winner := over.WinnerName
			go d.announce(roomCode, func(ctx context.Context) error {
				return d.announcer.GameOver(ctx, roomCode, winner)
			})
		}
	}

	out, err := d.game.GetGame(ctx, &game.GetGameInput{RoomCode: roomCode})
	if err != nil {
		d.log.Errorw("failed to load game state", "room", roomCode, "error", err)
		return
	}
	d.broadcast(roomCode, Envelope{Type: MessageGameState, Data: gameStateData{Game: out.Game}})
}

// announce runs outside the room lock; a failed announcement never affects the game
func (d *Dispatcher) announce(roomCode string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultWriteTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		d.log.Warnw("failed to announce", "room", roomCode, "error", err)
	}
}

func (d *Dispatcher) broadcast(roomCode string, msg Envelope) {
	if err := d.registry.Broadcast(roomCode, msg, ""); err != nil {
		d.log.Errorw("failed to broadcast", "room", roomCode, "type", msg.Type, "error", err)
	}
}

func (d *Dispatcher) send(roomCode, playerID string, msg Envelope) {
	if err := d.registry.SendToPlayer(roomCode, playerID, msg); err != nil {
		d.log.Errorw("failed to send", "room", roomCode, "player", playerID, "type", msg.Type, "error", err)
	}
}

func (d *Dispatcher) sendError(roomCode, playerID, message string) {
	d.send(roomCode, playerID, Envelope{Type: MessageError, Data: errorData{Message: message}})
}

// fail reports a rejected action to the acting player only
func (d *Dispatcher) fail(roomCode, playerID, msgType string, err error) {
	if errs.IsUserError(err) {
		d.log.Debugw("action rejected", "room", roomCode, "player", playerID, "type", msgType, "error", err)
		d.sendError(roomCode, playerID, err.Error())
		return
	}

	d.log.Errorw("failed to handle message", "room", roomCode, "player", playerID, "type", msgType, "error", err)
	d.sendError(roomCode, playerID, internalError)
}
