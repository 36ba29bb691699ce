package registry

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

type service struct {
	log *zap.SugaredLogger

	mu sync.RWMutex

	// rooms maps room code to player id to member
	rooms map[string]map[string]*member

	// conns maps connection id to member
	conns map[string]*member
}

// New creates a new registry
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &service{
		log:   log,
		rooms: make(map[string]map[string]*member),
		conns: make(map[string]*member),
	}, nil
}

// Connect registers the player's connection, evicting and closing an older one
func (s *service) Connect(input *ConnectInput) (*ConnectOutput, error) {
	if input == nil || input.Conn == nil {
		return nil, ErrNilConnection
	}
	if input.RoomCode == "" {
		return nil, ErrMissingRoom
	}
	if input.PlayerID == "" {
		return nil, ErrMissingPlayer
	}

	s.mu.Lock()
	m := &member{roomCode: input.RoomCode, playerID: input.PlayerID, conn: input.Conn}

	room, ok := s.rooms[input.RoomCode]
	if !ok {
		room = make(map[string]*member)
		s.rooms[input.RoomCode] = room
	}

	previous := room[input.PlayerID]
	if previous != nil {
		delete(s.conns, previous.conn.ID())
	}
	room[input.PlayerID] = m
	s.conns[input.Conn.ID()] = m
	s.mu.Unlock()

	if previous != nil && previous.conn.ID() != input.Conn.ID() {
		s.log.Infow("replacing connection", "room", input.RoomCode, "player", input.PlayerID)
		if err := previous.conn.Close(); err != nil {
			s.log.Debugw("closing replaced connection", "error", err)
		}
	}

	return &ConnectOutput{Replaced: previous != nil}, nil
}

// Disconnect forgets a connection; it reports whether it was registered
func (s *service) Disconnect(conn Connection) bool {
	if conn == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.remove(conn)
}

// remove must be called with mu held
func (s *service) remove(conn Connection) bool {
	m, ok := s.conns[conn.ID()]
	if !ok {
		return false
	}
	delete(s.conns, conn.ID())

	room := s.rooms[m.roomCode]
	if current, ok := room[m.playerID]; ok && current.conn.ID() == conn.ID() {
		delete(room, m.playerID)
	}
	if len(room) == 0 {
		delete(s.rooms, m.roomCode)
	}
	return true
}

// RemovePlayer forgets the player's connection in a room and returns it, nil when there is none
func (s *service) RemovePlayer(roomCode, playerID string) Connection {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.rooms[roomCode][playerID]
	if m == nil {
		return nil
	}
	s.remove(m.conn)
	return m.conn
}

// SendToPlayer delivers a message to one player in a room.
// A player without a live connection is not an error.
func (s *service) SendToPlayer(roomCode, playerID string, msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	s.mu.RLock()
	m := s.rooms[roomCode][playerID]
	s.mu.RUnlock()

	if m == nil {
		return nil
	}
	s.deliver([]*member{m}, payload)
	return nil
}

// Broadcast delivers a message to every connection of a room except excludePlayerID
func (s *service) Broadcast(roomCode string, msg any, excludePlayerID string) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	s.mu.RLock()
	targets := make([]*member, 0, len(s.rooms[roomCode]))
	for playerID, m := range s.rooms[roomCode] {
		if excludePlayerID != "" && playerID == excludePlayerID {
			continue
		}
		targets = append(targets, m)
	}
	s.mu.RUnlock()

	s.deliver(targets, payload)
	return nil
}

// BroadcastAll delivers a message to every connection of every room
func (s *service) BroadcastAll(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	s.mu.RLock()
	targets := make([]*member, 0, len(s.conns))
	for _, m := range s.conns {
		targets = append(targets, m)
	}
	s.mu.RUnlock()

	s.deliver(targets, payload)
	return nil
}

// deliver sends the payload and prunes connections that fail
func (s *service) deliver(targets []*member, payload []byte) {
	var failed []*member
	for _, m := range targets {
		if err := m.conn.Send(payload); err != nil {
			s.log.Warnw("send failed, dropping connection", "room", m.roomCode, "player", m.playerID, "error", err)
			failed = append(failed, m)
		}
	}
	if len(failed) == 0 {
		return
	}

	s.mu.Lock()
	for _, m := range failed {
		s.remove(m.conn)
	}
	s.mu.Unlock()

	for _, m := range failed {
		_ = m.conn.Close()
	}
}

// RoomPlayers lists the connected players of a room, sorted
func (s *service) RoomPlayers(roomCode string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]string, 0, len(s.rooms[roomCode]))
	for playerID := range s.rooms[roomCode] {
		players = append(players, playerID)
	}
	sort.Strings(players)
	return players
}

// IsConnected reports whether the player has a live connection in the room
func (s *service) IsConnected(roomCode, playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.rooms[roomCode][playerID]
	return ok
}

// ConnectionCount is the number of live connections in a room
func (s *service) ConnectionCount(roomCode string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.rooms[roomCode])
}

// Rooms lists rooms with at least one live connection, sorted
func (s *service) Rooms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]string, 0, len(s.rooms))
	for code := range s.rooms {
		rooms = append(rooms, code)
	}
	sort.Strings(rooms)
	return rooms
}
