package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/KirkDiggler/monopoly/internal/common/uuid"
	"github.com/KirkDiggler/monopoly/internal/services/lobby"
)

// Handler upgrades GET /ws/{room_code}/{player_id} and pumps the socket into the dispatcher
type Handler struct {
	dispatcher     *Dispatcher
	lobby          lobby.Service
	uuidGenerator  uuid.UUID
	upgrader       websocket.Upgrader
	writeTimeout   time.Duration
	maxMessageSize int64
	log            *zap.SugaredLogger
}

// NewHandler creates a websocket handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Dispatcher == nil {
		return nil, ErrNilDispatcher
	}
	if cfg.LobbyService == nil {
		return nil, ErrNilLobbyService
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	h := &Handler{
		dispatcher:     cfg.Dispatcher,
		lobby:          cfg.LobbyService,
		uuidGenerator:  cfg.UUIDGenerator,
		writeTimeout:   cfg.WriteTimeout,
		maxMessageSize: cfg.MaxMessageSize,
		log:            cfg.Logger,
	}
	if h.writeTimeout <= 0 {
		h.writeTimeout = defaultWriteTimeout
	}
	if h.maxMessageSize <= 0 {
		h.maxMessageSize = defaultMaxMessageSize
	}
	if h.log == nil {
		h.log = zap.NewNop().Sugar()
	}

	origins := cfg.AllowedOrigins
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if len(origins) == 0 || slices.Contains(origins, "*") {
				return true
			}
			return slices.Contains(origins, r.Header.Get("Origin"))
		},
	}

	return h, nil
}

// ServeHTTP serves one player's socket until it closes
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomCode, playerID := vars["room_code"], vars["player_id"]

	out, err := h.lobby.GetRoom(r.Context(), &lobby.GetRoomInput{Code: roomCode})
	if err != nil || out.Room.Player(playerID) == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Room or player not found"})
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("failed to upgrade websocket", "room", roomCode, "player", playerID, "error", err)
		return
	}
	ws.SetReadLimit(h.maxMessageSize)

	c := newConn(h.uuidGenerator.NewUUID(), ws, h.writeTimeout)
	defer c.Close()

	ctx := context.WithoutCancel(r.Context())
	if err := h.dispatcher.Connect(ctx, roomCode, playerID, c); err != nil {
		h.log.Warnw("failed to register connection", "room", roomCode, "player", playerID, "error", err)
		return
	}
	defer h.dispatcher.Disconnect(ctx, roomCode, playerID, c)

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warnw("websocket read failed", "room", roomCode, "player", playerID, "error", err)
			}
			return
		}

		h.dispatcher.Handle(ctx, roomCode, playerID, raw)
	}
}
