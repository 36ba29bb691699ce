package room

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/KirkDiggler/monopoly/internal/models"
)

// memoryRepository keeps rooms in process memory
type memoryRepository struct {
	mu    sync.RWMutex
	rooms map[string]*models.Room
}

// NewMemory creates an in-memory room repository
func NewMemory() *memoryRepository {
	return &memoryRepository{rooms: make(map[string]*models.Room)}
}

// SaveRoom stores a copy of the room
func (r *memoryRepository) SaveRoom(ctx context.Context, input *SaveRoomInput) error {
	if input == nil || input.Room == nil {
		return errors.New("input and room cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms[input.Room.Code] = input.Room.Clone()
	return nil
}

// GetRoom returns a copy of the room
func (r *memoryRepository) GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and room code cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[input.Code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room.Clone(), nil
}

// DeleteRoom removes the room
func (r *memoryRepository) DeleteRoom(ctx context.Context, input *DeleteRoomInput) error {
	if input == nil || input.Code == "" {
		return errors.New("input and room code cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[input.Code]; !ok {
		return ErrRoomNotFound
	}
	delete(r.rooms, input.Code)
	return nil
}

// ListRooms returns copies of the rooms, oldest first
func (r *memoryRepository) ListRooms(ctx context.Context, input *ListRoomsInput) (*ListRoomsOutput, error) {
	if input == nil {
		input = &ListRoomsInput{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]*models.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		if input.OpenOnly && room.GameStarted {
			continue
		}
		rooms = append(rooms, room.Clone())
	}
	sortRooms(rooms)

	return &ListRoomsOutput{Rooms: rooms}, nil
}

func sortRooms(rooms []*models.Room) {
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].Code < rooms[j].Code
		}
		return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
	})
}
