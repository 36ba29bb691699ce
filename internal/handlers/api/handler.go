package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/KirkDiggler/monopoly/internal/common/errs"
	"github.com/KirkDiggler/monopoly/internal/common/keymutex"
	"github.com/KirkDiggler/monopoly/internal/handlers/ws"
	"github.com/KirkDiggler/monopoly/internal/services/game"
	"github.com/KirkDiggler/monopoly/internal/services/lobby"
	"github.com/KirkDiggler/monopoly/internal/services/registry"
)

// Handler serves the REST routes under /api
type Handler struct {
	game     game.Service
	lobby    lobby.Service
	registry registry.Service
	locks    *keymutex.Mutex
	log      *zap.SugaredLogger
}

// New creates the query API handler
func New(cfg *Config) (*Handler, error) {
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

	h := &Handler{
		game:     cfg.GameService,
		lobby:    cfg.LobbyService,
		registry: cfg.Registry,
		locks:    cfg.Locks,
		log:      cfg.Logger,
	}
	if h.log == nil {
		h.log = zap.NewNop().Sugar()
	}

	return h, nil
}

// Register mounts the routes on router
func (h *Handler) Register(router *mux.Router) {
	r := router.PathPrefix("/api").Subrouter()
	r.HandleFunc("/", h.status).Methods(http.MethodGet)
	r.HandleFunc("/rooms", h.listRooms).Methods(http.MethodGet)
	r.HandleFunc("/rooms", h.createRoom).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{code}", h.getRoom).Methods(http.MethodGet)
	r.HandleFunc("/rooms/{code}/join", h.joinRoom).Methods(http.MethodPost)
	r.HandleFunc("/game/{code}/state", h.gameState).Methods(http.MethodGet)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, statusResponse{Message: "Indian Heritage Monopoly API", Status: "running"})
}

func (h *Handler) listRooms(w http.ResponseWriter, r *http.Request) {
	out, err := h.lobby.ListRooms(r.Context(), &lobby.ListRoomsInput{OpenOnly: true})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, roomsResponse{Rooms: out.Rooms})
}

func (h *Handler) getRoom(w http.ResponseWriter, r *http.Request) {
	out, err := h.lobby.GetRoom(r.Context(), &lobby.GetRoomInput{Code: mux.Vars(r)["code"]})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, roomResponse{Room: out.Room})
}

func (h *Handler) createRoom(w http.ResponseWriter, r *http.Request) {
	var req seatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, ErrInvalidBody)
		return
	}

	out, err := h.lobby.CreateRoom(r.Context(), &lobby.CreateRoomInput{PlayerName: req.PlayerName, Avatar: req.Avatar})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, seatResponse{
		RoomCode: out.Room.Code,
		PlayerID: out.Player.ID,
		Player:   out.Player,
		Room:     out.Room,
	})
}

// joinRoom seats a player and tells the players already connected
func (h *Handler) joinRoom(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req seatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, ErrInvalidBody)
		return
	}

	unlock := h.locks.Lock(code)
	defer unlock()

	out, err := h.lobby.JoinRoom(r.Context(), &lobby.JoinRoomInput{Code: code, PlayerName: req.PlayerName, Avatar: req.Avatar})
	if err != nil {
		h.writeError(w, err)
		return
	}

	joined := ws.Envelope{Type: ws.MessagePlayerJoined, Data: playerJoinedData{Player: out.Player, Room: out.Room}}
	if err := h.registry.Broadcast(code, joined, out.Player.ID); err != nil {
		h.log.Errorw("failed to broadcast join", "room", code, "error", err)
	}

	h.writeJSON(w, http.StatusOK, seatResponse{
		RoomCode: out.Room.Code,
		PlayerID: out.Player.ID,
		Player:   out.Player,
		Room:     out.Room,
	})
}

// gameState reads under the room lock so it never sees half an action
func (h *Handler) gameState(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	unlock := h.locks.Lock(code)
	defer unlock()

	out, err := h.game.GetGame(r.Context(), &game.GetGameInput{RoomCode: code})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, gameStateResponse{Game: out.Game})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errs.IsNotFound(err):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Detail: err.Error()})
	case errs.IsUserError(err):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	default:
		h.log.Errorw("request failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal error"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Warnw("failed to write response", "error", err)
	}
}
