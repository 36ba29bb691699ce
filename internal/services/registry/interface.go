package registry

//go:generate mockgen -package=mocks -destination=mocks/mock_connection.go github.com/KirkDiggler/monopoly/internal/services/registry Connection

// Connection is one live client transport
type Connection interface {
	// ID uniquely identifies the connection for its lifetime
	ID() string

	// Send writes one text frame
	Send(payload []byte) error

	// Close tears the transport down
	Close() error
}

// Service tracks live connections per room and fans messages out to them
type Service interface {
	// Connect registers the player's connection, evicting and closing an older one
	Connect(input *ConnectInput) (*ConnectOutput, error)

	// Disconnect forgets a connection; it reports whether it was registered
	Disconnect(conn Connection) bool

	// RemovePlayer forgets the player's connection in a room and returns it, nil when there is none.
	// The connection is not closed.
	RemovePlayer(roomCode, playerID string) Connection

	// SendToPlayer delivers a message to one player in a room
	SendToPlayer(roomCode, playerID string, msg any) error

	// Broadcast delivers a message to every connection of a room except excludePlayerID
	Broadcast(roomCode string, msg any, excludePlayerID string) error

	// BroadcastAll delivers a message to every connection of every room
	BroadcastAll(msg any) error

	// RoomPlayers lists the connected players of a room
	RoomPlayers(roomCode string) []string

	// IsConnected reports whether the player has a live connection in the room
	IsConnected(roomCode, playerID string) bool

	// ConnectionCount is the number of live connections in a room
	ConnectionCount(roomCode string) int

	// Rooms lists rooms with at least one live connection
	Rooms() []string
}
