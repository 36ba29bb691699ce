package lobby

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/monopoly/internal/common/clock"
	"github.com/KirkDiggler/monopoly/internal/common/uuid"
	"github.com/KirkDiggler/monopoly/internal/models"
	"github.com/KirkDiggler/monopoly/internal/repositories/room"
)

const (
	roomCodePrefix  = "ROOM"
	roomCodeLength  = 6
	hostAvatar      = "👑"
	guestAvatar     = "💎"
	defaultMaxSeats = 6
	minPlayers      = 2
)

// playerColors are handed out by seat order
var playerColors = []string{"#DC2626", "#2563EB", "#059669", "#D97706", "#7C3AED", "#BE185D"}

// Config holds configuration for the lobby service
type Config struct {
	// MaxPlayers seats per room
	MaxPlayers int

	// Settings applied to new rooms
	Settings models.RoomSettings

	RoomRepo      room.Repository
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        *zap.SugaredLogger
}

// CreateRoomInput defines the input for opening a room
type CreateRoomInput struct {
	PlayerName string
	Avatar     string
}

// CreateRoomOutput defines the output for opening a room
type CreateRoomOutput struct {
	Room   *models.Room
	Player *models.RoomPlayer
}

// JoinRoomInput defines the input for taking a seat
type JoinRoomInput struct {
	Code       string
	PlayerName string
	Avatar     string
}

// JoinRoomOutput defines the output for taking a seat
type JoinRoomOutput struct {
	Room   *models.Room
	Player *models.RoomPlayer
}

// SetReadyInput defines the input for changing readiness
type SetReadyInput struct {
	Code     string
	PlayerID string
	Ready    bool
}

// SetReadyOutput defines the output for changing readiness
type SetReadyOutput struct {
	Room *models.Room
}

// ValidateStartInput defines the input for checking a game start
type ValidateStartInput struct {
	Code     string
	PlayerID string
}

// ValidateStartOutput defines the output for checking a game start
type ValidateStartOutput struct {
	Room *models.Room
}

// MarkStartedInput defines the input for recording a started game
type MarkStartedInput struct {
	Code string
}

// MarkStartedOutput defines the output for recording a started game
type MarkStartedOutput struct {
	Room *models.Room
}

// LeaveRoomInput defines the input for leaving a room
type LeaveRoomInput struct {
	Code     string
	PlayerID string
}

// LeaveRoomOutput defines the output for leaving a room
type LeaveRoomOutput struct {
	// Room is nil when the room was deleted
	Room *models.Room

	// Deleted is set when the last player left
	Deleted bool

	// NewHostID is set when the host role moved
	NewHostID string
}

// SetConnectedInput defines the input for recording connection status
type SetConnectedInput struct {
	Code      string
	PlayerID  string
	Connected bool
}

// SetConnectedOutput defines the output for recording connection status
type SetConnectedOutput struct {
	Room *models.Room
}

// GetRoomInput defines the input for reading a room
type GetRoomInput struct {
	Code string
}

// GetRoomOutput defines the output for reading a room
type GetRoomOutput struct {
	Room *models.Room
}

// ListRoomsInput defines the input for listing rooms
type ListRoomsInput struct {
	OpenOnly bool
}

// ListRoomsOutput defines the output for listing rooms
type ListRoomsOutput struct {
	Rooms []*models.Room
}
