package game

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/KirkDiggler/monopoly/internal/board"
	"github.com/KirkDiggler/monopoly/internal/common/clock"
	"github.com/KirkDiggler/monopoly/internal/common/uuid"
	"github.com/KirkDiggler/monopoly/internal/deck"
	"github.com/KirkDiggler/monopoly/internal/dice"
	"github.com/KirkDiggler/monopoly/internal/ledger"
	"github.com/KirkDiggler/monopoly/internal/models"
)

// service implements the Service interface
type service struct {
	startingMoney  int
	passStartBonus int
	jailFine       int
	maxJailTurns   int
	maxDoubles     int
	houseStock     int
	hotelStock     int

	board         *board.Board
	diceRoller    dice.Roller
	clock         clock.Clock
	uuidGenerator uuid.UUID
	log           *zap.SugaredLogger

	mu    sync.RWMutex
	games map[string]*models.GameSession
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Board == nil {
		return nil, ErrNilBoard
	}
	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	s := &service{
		startingMoney:  orDefault(cfg.StartingMoney, defaultStartingMoney),
		passStartBonus: orDefault(cfg.PassStartBonus, defaultPassStartBonus),
		jailFine:       orDefault(cfg.JailFine, defaultJailFine),
		maxJailTurns:   orDefault(cfg.MaxJailTurns, defaultMaxJailTurns),
		maxDoubles:     orDefault(cfg.MaxDoubles, defaultMaxDoubles),
		houseStock:     orDefault(cfg.HouseStock, DefaultHouseStock),
		hotelStock:     orDefault(cfg.HotelStock, DefaultHotelStock),
		board:          cfg.Board,
		diceRoller:     cfg.DiceRoller,
		clock:          cfg.Clock,
		uuidGenerator:  cfg.UUIDGenerator,
		log:            cfg.Logger,
		games:          make(map[string]*models.GameSession),
	}
	if s.log == nil {
		s.log = zap.NewNop().Sugar()
	}

	return s, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// CreateGame starts a game for a room from its seated players
func (s *service) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("create game: nil input")
	}
	if len(input.Players) < minPlayers {
		return nil, ErrNotEnoughPlayers
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[input.RoomCode]; exists {
		return nil, ErrGameAlreadyExists
	}

	game := &models.GameSession{
		RoomCode:        input.RoomCode,
		Players:         make([]*models.Player, 0, len(input.Players)),
		Phase:           models.TurnPhaseRoll,
		Properties:      s.board.Tiles(),
		ChanceDeck:      deck.New(s.board.ChanceCards()),
		CommunityDeck:   deck.New(s.board.CommunityCards()),
		HousesRemaining: s.houseStock,
		HotelsRemaining: s.hotelStock,
		Trades:          make(map[string]*models.TradeOffer),
		CreatedAt:       s.clock.Now(),
	}
	game.ChanceDeck.Shuffle(s.diceRoller.Shuffle)
	game.CommunityDeck.Shuffle(s.diceRoller.Shuffle)

	for _, seat := range input.Players {
		game.Players = append(game.Players, &models.Player{
			ID:         seat.ID,
			Name:       seat.Name,
			Avatar:     seat.Avatar,
			Color:      seat.Color,
			Money:      s.startingMoney,
			Position:   models.StartPosition,
			Properties: []int{},
		})
	}
	game.AddLog(fmt.Sprintf("Game started with %d players", len(game.Players)))

	s.games[input.RoomCode] = game
	s.log.Infow("game created", "room", input.RoomCode, "players", len(game.Players))

	snapshot := game.Snapshot()
	return &CreateGameOutput{
		Game:   snapshot,
		Events: []Event{{Type: EventGameStarted, Data: GameStartedData{Game: snapshot}}},
	}, nil
}

// GetGame returns a snapshot of a room's game
func (s *service) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	game, err := s.getGame(input.RoomCode)
	if err != nil {
		return nil, err
	}
	return &GetGameOutput{Game: game.Snapshot()}, nil
}

// DeleteGame drops a room's game
func (s *service) DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[input.RoomCode]; !ok {
		return nil, ErrGameNotFound
	}
	delete(s.games, input.RoomCode)
	s.log.Infow("game deleted", "room", input.RoomCode)

	return &DeleteGameOutput{Success: true}, nil
}

func (s *service) getGame(roomCode string) (*models.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[roomCode]
	if !ok {
		return nil, ErrGameNotFound
	}
	return game, nil
}

// begin loads the game for a mutating operation
func (s *service) begin(roomCode string) (*turn, error) {
	game, err := s.getGame(roomCode)
	if err != nil {
		return nil, err
	}

	return &turn{
		svc:        s,
		game:       game,
		players:    ledger.NewPlayerLedger(game),
		properties: ledger.NewPropertyLedger(game),
	}, nil
}

// beginTurn loads the game and checks that it is the player's turn in one of the phases
func (s *service) beginTurn(roomCode, playerID string, phases ...models.TurnPhase) (*turn, *models.Player, error) {
	t, err := s.begin(roomCode)
	if err != nil {
		return nil, nil, err
	}
	if t.game.Ended {
		return nil, nil, ErrGameOver
	}

	p, _, err := t.players.Find(playerID)
	if err != nil {
		return nil, nil, ErrPlayerNotFound
	}
	if current := t.game.Current(); current == nil || current.ID != playerID {
		return nil, nil, ErrNotYourTurn
	}
	if !phaseIn(t.game.Phase, phases) {
		return nil, nil, ErrWrongPhase
	}

	return t, p, nil
}

func phaseIn(phase models.TurnPhase, phases []models.TurnPhase) bool {
	for _, p := range phases {
		if p == phase {
			return true
		}
	}
	return false
}
