package api

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/monopoly/internal/common/errs"
	"github.com/KirkDiggler/monopoly/internal/common/keymutex"
	"github.com/KirkDiggler/monopoly/internal/models"
	"github.com/KirkDiggler/monopoly/internal/services/game"
	"github.com/KirkDiggler/monopoly/internal/services/lobby"
	"github.com/KirkDiggler/monopoly/internal/services/registry"
)

// APIError is returned when the handler is wired incorrectly
type APIError string

// Error implements the error interface
func (e APIError) Error() string {
	return string(e)
}

const (
	ErrNilConfig       APIError = "config cannot be nil"
	ErrNilGameService  APIError = "game service cannot be nil"
	ErrNilLobbyService APIError = "lobby service cannot be nil"
	ErrNilRegistry     APIError = "registry cannot be nil"
	ErrNilLocks        APIError = "room locks cannot be nil"
)

const ErrInvalidBody errs.IllegalAction = "invalid request body"

// Config holds configuration for the query API
type Config struct {
	GameService  game.Service
	LobbyService lobby.Service
	Registry     registry.Service

	// Locks are shared with the websocket dispatcher
	Locks *keymutex.Mutex

	Logger *zap.SugaredLogger
}

type statusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type roomsResponse struct {
	Rooms []*models.Room `json:"rooms"`
}

type roomResponse struct {
	Room *models.Room `json:"room"`
}

type gameStateResponse struct {
	Game *models.GameSnapshot `json:"game_state"`
}

type seatRequest struct {
	PlayerName string `json:"player_name"`
	Avatar     string `json:"avatar"`
}

type seatResponse struct {
	RoomCode string             `json:"room_code"`
	PlayerID string             `json:"player_id"`
	Player   *models.RoomPlayer `json:"player"`
	Room     *models.Room       `json:"room"`
}

type playerJoinedData struct {
	Player *models.RoomPlayer `json:"player"`
	Room   *models.Room       `json:"room"`
}
