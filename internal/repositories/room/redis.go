package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/monopoly/internal/models"
)

const (
	// Key prefixes for Redis
	roomKeyPrefix = "room:"
	roomsIndexKey = "rooms"
	openRoomsKey  = "open_rooms"
)

// Config holds configuration for the Redis room repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// TTL expires idle rooms; zero keeps them until deleted
	TTL time.Duration
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed room repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
		ttl:    cfg.TTL,
	}, nil
}

func roomKey(code string) string {
	return fmt.Sprintf("%s%s", roomKeyPrefix, code)
}

// SaveRoom persists a room and keeps the indexes in step
func (r *redisRepository) SaveRoom(ctx context.Context, input *SaveRoomInput) error {
	if input == nil || input.Room == nil {
		return errors.New("input and room cannot be nil")
	}

	roomJSON, err := json.Marshal(input.Room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, roomKey(input.Room.Code), roomJSON, r.ttl)

	// Rooms are indexed by creation time so listings come back oldest first
	pipe.ZAdd(ctx, roomsIndexKey, redis.Z{
		Score:  float64(input.Room.CreatedAt.UnixNano()),
		Member: input.Room.Code,
	})
	if input.Room.GameStarted {
		pipe.SRem(ctx, openRoomsKey, input.Room.Code)
	} else {
		pipe.SAdd(ctx, openRoomsKey, input.Room.Code)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}

	return nil
}

// GetRoom retrieves a room by code from Redis
func (r *redisRepository) GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and room code cannot be empty")
	}

	roomJSON, err := r.client.Get(ctx, roomKey(input.Code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	var room models.Room
	if err := json.Unmarshal([]byte(roomJSON), &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return &room, nil
}

// DeleteRoom removes a room and its index entries
func (r *redisRepository) DeleteRoom(ctx context.Context, input *DeleteRoomInput) error {
	if input == nil || input.Code == "" {
		return errors.New("input and room code cannot be empty")
	}

	pipe := r.client.TxPipeline()
	deleted := pipe.Del(ctx, roomKey(input.Code))
	pipe.ZRem(ctx, roomsIndexKey, input.Code)
	pipe.SRem(ctx, openRoomsKey, input.Code)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if deleted.Val() == 0 {
		return ErrRoomNotFound
	}

	return nil
}

// ListRooms retrieves rooms ordered by creation time
func (r *redisRepository) ListRooms(ctx context.Context, input *ListRoomsInput) (*ListRoomsOutput, error) {
	if input == nil {
		input = &ListRoomsInput{}
	}

	codes, err := r.client.ZRange(ctx, roomsIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	var open map[string]struct{}
	if input.OpenOnly {
		members, err := r.client.SMembers(ctx, openRoomsKey).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to list open rooms: %w", err)
		}
		open = make(map[string]struct{}, len(members))
		for _, code := range members {
			open[code] = struct{}{}
		}
	}

	rooms := make([]*models.Room, 0, len(codes))
	for _, code := range codes {
		if input.OpenOnly {
			if _, ok := open[code]; !ok {
				continue
			}
		}

		room, err := r.GetRoom(ctx, &GetRoomInput{Code: code})
		if err != nil {
			// expired rooms leave stale index entries behind
			if errors.Is(err, ErrRoomNotFound) {
				r.client.ZRem(ctx, roomsIndexKey, code)
				r.client.SRem(ctx, openRoomsKey, code)
				continue
			}
			return nil, err
		}
		rooms = append(rooms, room)
	}

	return &ListRoomsOutput{Rooms: rooms}, nil
}
