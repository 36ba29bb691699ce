package lobby

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/monopoly/internal/common/clock"
	"github.com/KirkDiggler/monopoly/internal/common/uuid"
	"github.com/KirkDiggler/monopoly/internal/models"
	"github.com/KirkDiggler/monopoly/internal/repositories/room"
)

// service implements the Service interface
type service struct {
	maxPlayers    int
	settings      models.RoomSettings
	roomRepo      room.Repository
	clock         clock.Clock
	uuidGenerator uuid.UUID
	log           *zap.SugaredLogger
}

// New creates a new lobby service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.RoomRepo == nil {
		return nil, ErrNilRoomRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	s := &service{
		maxPlayers:    cfg.MaxPlayers,
		settings:      cfg.Settings,
		roomRepo:      cfg.RoomRepo,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		log:           cfg.Logger,
	}
	if s.maxPlayers <= 0 {
		s.maxPlayers = defaultMaxSeats
	}
	if s.settings == (models.RoomSettings{}) {
		s.settings = models.RoomSettings{StartingMoney: 15000, HouseLimit: 32, HotelLimit: 12}
	}
	if s.log == nil {
		s.log = zap.NewNop().Sugar()
	}

	return s, nil
}

// CreateRoom opens a room with its creator as host
func (s *service) CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error) {
	name := strings.TrimSpace(input.PlayerName)
	if name == "" {
		return nil, ErrMissingName
	}

	host := &models.RoomPlayer{
		ID:     s.uuidGenerator.NewUUID(),
		Name:   name,
		Avatar: orDefault(input.Avatar, hostAvatar),
		Color:  playerColors[0],
		IsHost: true,
		Ready:  true,
	}
	r := &models.Room{
		Code:       roomCodePrefix + uuid.ShortCode(s.uuidGenerator.NewUUID(), roomCodeLength),
		HostID:     host.ID,
		Players:    []*models.RoomPlayer{host},
		MaxPlayers: s.maxPlayers,
		Settings:   s.settings,
		CreatedAt:  s.clock.Now(),
	}

	if err := s.save(ctx, r); err != nil {
		return nil, err
	}
	s.log.Infow("room created", "room", r.Code, "host", host.ID)

	return &CreateRoomOutput{Room: r, Player: host}, nil
}

// JoinRoom seats a new player in an open room
func (s *service) JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error) {
	name := strings.TrimSpace(input.PlayerName)
	if name == "" {
		return nil, ErrMissingName
	}

	r, err := s.load(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if r.GameStarted {
		return nil, ErrGameStarted
	}
	if len(r.Players) >= r.MaxPlayers {
		return nil, ErrRoomFull
	}

	p := &models.RoomPlayer{
		ID:     s.uuidGenerator.NewUUID(),
		Name:   name,
		Avatar: orDefault(input.Avatar, guestAvatar),
		Color:  playerColors[len(r.Players)%len(playerColors)],
	}
	r.Players = append(r.Players, p)

	if err := s.save(ctx, r); err != nil {
		return nil, err
	}
	s.log.Infow("player joined", "room", r.Code, "player", p.ID)

	return &JoinRoomOutput{Room: r, Player: p}, nil
}

// SetReady flips a player's ready flag
func (s *service) SetReady(ctx context.Context, input *SetReadyInput) (*SetReadyOutput, error) {
	r, p, err := s.loadSeat(ctx, input.Code, input.PlayerID)
	if err != nil {
		return nil, err
	}

	p.Ready = input.Ready
	if err := s.save(ctx, r); err != nil {
		return nil, err
	}

	return &SetReadyOutput{Room: r}, nil
}

// ValidateStart checks that the host may start the game now
func (s *service) ValidateStart(ctx context.Context, input *ValidateStartInput) (*ValidateStartOutput, error) {
	r, err := s.load(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if r.GameStarted {
		return nil, ErrGameStarted
	}
	if r.HostID != input.PlayerID {
		return nil, ErrNotHost
	}
	if len(r.Players) < minPlayers || !r.AllReady() {
		return nil, ErrPlayersUnready
	}

	return &ValidateStartOutput{Room: r}, nil
}

// MarkStarted records that the room's game is running
func (s *service) MarkStarted(ctx context.Context, input *MarkStartedInput) (*MarkStartedOutput, error) {
	r, err := s.load(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	r.GameStarted = true
	if err := s.save(ctx, r); err != nil {
		return nil, err
	}

	return &MarkStartedOutput{Room: r}, nil
}

// LeaveRoom removes a seat, hands the host role on and deletes empty rooms
func (s *service) LeaveRoom(ctx context.Context, input *LeaveRoomInput) (*LeaveRoomOutput, error) {
	r, _, err := s.loadSeat(ctx, input.Code, input.PlayerID)
	if err != nil {
		return nil, err
	}

	remaining := r.Players[:0]
	for _, p := range r.Players {
		if p.ID != input.PlayerID {
			remaining = append(remaining, p)
		}
	}
	r.Players = remaining

	if len(r.Players) == 0 {
		if err := s.roomRepo.DeleteRoom(ctx, &room.DeleteRoomInput{Code: r.Code}); err != nil {
			return nil, fmt.Errorf("failed to delete room: %w", err)
		}
		s.log.Infow("room deleted", "room", r.Code)
		return &LeaveRoomOutput{Deleted: true}, nil
	}

	out := &LeaveRoomOutput{Room: r}
	if r.HostID == input.PlayerID {
		r.HostID = r.Players[0].ID
		r.Players[0].IsHost = true
		out.NewHostID = r.HostID
	}

	if err := s.save(ctx, r); err != nil {
		return nil, err
	}
	return out, nil
}

// SetConnected records whether a seated player has a live connection
func (s *service) SetConnected(ctx context.Context, input *SetConnectedInput) (*SetConnectedOutput, error) {
	r, p, err := s.loadSeat(ctx, input.Code, input.PlayerID)
	if err != nil {
		return nil, err
	}

	p.Connected = input.Connected
	if err := s.save(ctx, r); err != nil {
		return nil, err
	}

	return &SetConnectedOutput{Room: r}, nil
}

// GetRoom retrieves a room
func (s *service) GetRoom(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error) {
	r, err := s.load(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	return &GetRoomOutput{Room: r}, nil
}

// ListRooms retrieves rooms, optionally only those still accepting players
func (s *service) ListRooms(ctx context.Context, input *ListRoomsInput) (*ListRoomsOutput, error) {
	out, err := s.roomRepo.ListRooms(ctx, &room.ListRoomsInput{OpenOnly: input.OpenOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return &ListRoomsOutput{Rooms: out.Rooms}, nil
}

func (s *service) load(ctx context.Context, code string) (*models.Room, error) {
	if code == "" {
		return nil, ErrRoomNotFound
	}

	r, err := s.roomRepo.GetRoom(ctx, &room.GetRoomInput{Code: code})
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room: %w", err)
	}
	return r, nil
}

func (s *service) loadSeat(ctx context.Context, code, playerID string) (*models.Room, *models.RoomPlayer, error) {
	r, err := s.load(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	p := r.Player(playerID)
	if p == nil {
		return nil, nil, ErrPlayerNotFound
	}
	return r, p, nil
}

func (s *service) save(ctx context.Context, r *models.Room) error {
	if err := s.roomRepo.SaveRoom(ctx, &room.SaveRoomInput{Room: r}); err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}
	return nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
