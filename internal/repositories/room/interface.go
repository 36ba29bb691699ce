package room

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/monopoly/internal/repositories/room Repository

import (
	"context"

	"github.com/KirkDiggler/monopoly/internal/models"
)

// Repository defines the interface for room persistence
type Repository interface {
	// SaveRoom creates or replaces a room
	SaveRoom(ctx context.Context, input *SaveRoomInput) error

	// GetRoom retrieves a room by code
	GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error)

	// DeleteRoom removes a room
	DeleteRoom(ctx context.Context, input *DeleteRoomInput) error

	// ListRooms retrieves rooms ordered by creation time
	ListRooms(ctx context.Context, input *ListRoomsInput) (*ListRoomsOutput, error)
}
