package ws

import (
	"context"
	"time"

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

// HandlerError is returned when the dispatcher or handler is wired incorrectly
type HandlerError string

// Error implements the error interface
func (e HandlerError) Error() string {
	return string(e)
}

const (
	ErrNilConfig        HandlerError = "config cannot be nil"
	ErrNilGameService   HandlerError = "game service cannot be nil"
	ErrNilLobbyService  HandlerError = "lobby service cannot be nil"
	ErrNilRegistry      HandlerError = "registry cannot be nil"
	ErrNilLocks         HandlerError = "room locks cannot be nil"
	ErrNilClock         HandlerError = "clock cannot be nil"
	ErrNilUUIDGenerator HandlerError = "UUID generator cannot be nil"
	ErrNilDispatcher    HandlerError = "dispatcher cannot be nil"
)

const (
	ErrInvalidMessage errs.IllegalAction = "invalid message"
	ErrUnknownMessage errs.IllegalAction = "unknown message type"
)

// internalError is all a client learns about a failure that is not its own
const internalError = "internal error"

const (
	defaultWriteTimeout   = 10 * time.Second
	defaultMaxMessageSize = 64 * 1024
)

//go:generate mockgen -package=mocks -destination=mocks/mock_announcer.go github.com/KirkDiggler/monopoly/internal/handlers/ws Announcer

// Announcer publishes milestones of a game outside the room, e.g. to a chat channel
type Announcer interface {
	// GameStarted announces a game that just began
	GameStarted(ctx context.Context, room *models.Room) error

	// GameOver announces the winner of a room's game
	GameOver(ctx context.Context, roomCode, winnerName string) error
}

// DispatcherConfig holds configuration for the dispatcher
type DispatcherConfig struct {
	GameService  game.Service
	LobbyService lobby.Service
	Registry     registry.Service

	// Locks serialize all work on a room; the query API shares them
	Locks *keymutex.Mutex

	// Announcer is optional
	Announcer Announcer

	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        *zap.SugaredLogger
}

// HandlerConfig holds configuration for the websocket upgrade handler
type HandlerConfig struct {
	Dispatcher    *Dispatcher
	LobbyService  lobby.Service
	UUIDGenerator uuid.UUID

	// AllowedOrigins empty or containing "*" accepts any origin
	AllowedOrigins []string

	WriteTimeout   time.Duration
	MaxMessageSize int64

	Logger *zap.SugaredLogger
}
