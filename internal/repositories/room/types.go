package room

import (
	"github.com/KirkDiggler/monopoly/internal/common/errs"
	"github.com/KirkDiggler/monopoly/internal/models"
)

// ErrRoomNotFound is returned when a room is not found
const ErrRoomNotFound errs.NotFound = "room not found"

type SaveRoomInput struct {
	Room *models.Room
}

type GetRoomInput struct {
	Code string
}

type DeleteRoomInput struct {
	Code string
}

type ListRoomsInput struct {
	// OpenOnly skips rooms whose game has started
	OpenOnly bool
}

type ListRoomsOutput struct {
	Rooms []*models.Room
}
