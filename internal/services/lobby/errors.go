package lobby

import "github.com/KirkDiggler/monopoly/internal/common/errs"

// LobbyError is returned when the service is wired incorrectly
type LobbyError string

// Error implements the error interface
func (e LobbyError) Error() string {
	return string(e)
}

const (
	ErrNilConfig        LobbyError = "config cannot be nil"
	ErrNilRoomRepo      LobbyError = "room repository cannot be nil"
	ErrNilClock         LobbyError = "clock cannot be nil"
	ErrNilUUIDGenerator LobbyError = "UUID generator cannot be nil"
)

const (
	ErrRoomNotFound   errs.NotFound = "room not found"
	ErrPlayerNotFound errs.NotFound = "player not in room"

	ErrMissingName    errs.IllegalAction = "player name is required"
	ErrRoomFull       errs.IllegalAction = "room is full"
	ErrGameStarted    errs.IllegalAction = "game already started"
	ErrNotHost        errs.IllegalAction = "only the host can start the game"
	ErrPlayersUnready errs.IllegalAction = "all players must be ready to start"
)
