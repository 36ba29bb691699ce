package registry

import "go.uber.org/zap"

// RegistryError is a registry error
type RegistryError string

// Error implements the error interface
func (e RegistryError) Error() string {
	return string(e)
}

const (
	ErrNilConfig     RegistryError = "config cannot be nil"
	ErrNilConnection RegistryError = "connection cannot be nil"
	ErrMissingRoom   RegistryError = "room code is required"
	ErrMissingPlayer RegistryError = "player id is required"
)

// Config holds configuration for the registry
type Config struct {
	Logger *zap.SugaredLogger
}

// ConnectInput defines the input for registering a connection
type ConnectInput struct {
	RoomCode string
	PlayerID string
	Conn     Connection
}

// ConnectOutput defines the output for registering a connection
type ConnectOutput struct {
	// Replaced is set when an older connection of the same player was evicted
	Replaced bool
}

// member is where a connection is registered
type member struct {
	roomCode string
	playerID string
	conn     Connection
}
