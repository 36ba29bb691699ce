package lobby

import "context"

// Service manages rooms before and around a game: seats, readiness, host and connection status
type Service interface {
	// CreateRoom opens a room with its creator as host
	CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error)

	// JoinRoom seats a new player in an open room
	JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error)

	// SetReady flips a player's ready flag
	SetReady(ctx context.Context, input *SetReadyInput) (*SetReadyOutput, error)

	// ValidateStart checks that the host may start the game now
	ValidateStart(ctx context.Context, input *ValidateStartInput) (*ValidateStartOutput, error)

	// MarkStarted records that the room's game is running
	MarkStarted(ctx context.Context, input *MarkStartedInput) (*MarkStartedOutput, error)

	// LeaveRoom removes a seat, hands the host role on and deletes empty rooms
	LeaveRoom(ctx context.Context, input *LeaveRoomInput) (*LeaveRoomOutput, error)

	// SetConnected records whether a seated player has a live connection
	SetConnected(ctx context.Context, input *SetConnectedInput) (*SetConnectedOutput, error)

	// GetRoom retrieves a room
	GetRoom(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error)

	// ListRooms retrieves rooms, optionally only those still accepting players
	ListRooms(ctx context.Context, input *ListRoomsInput) (*ListRoomsOutput, error)
}
