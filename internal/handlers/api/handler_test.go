package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/monopoly/internal/board"
	"github.com/KirkDiggler/monopoly/internal/common/clock"
	"github.com/KirkDiggler/monopoly/internal/common/keymutex"
	"github.com/KirkDiggler/monopoly/internal/common/uuid"
	diceMocks "github.com/KirkDiggler/monopoly/internal/dice/mocks"
	"github.com/KirkDiggler/monopoly/internal/models"
	"github.com/KirkDiggler/monopoly/internal/repositories/room"
	"github.com/KirkDiggler/monopoly/internal/services/game"
	"github.com/KirkDiggler/monopoly/internal/services/lobby"
	"github.com/KirkDiggler/monopoly/internal/services/registry"
	registryMocks "github.com/KirkDiggler/monopoly/internal/services/registry/mocks"
)

type HandlerTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockDiceRoller *diceMocks.MockRoller
	games          game.Service
	lobby          lobby.Service
	registry       registry.Service
	router         *mux.Router
	ctx            context.Context
}

func (s *HandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockDiceRoller = diceMocks.NewMockRoller(s.mockCtrl)
	s.ctx = context.Background()

	games, err := game.New(&game.Config{
		Board:         board.MustLoad(),
		DiceRoller:    s.mockDiceRoller,
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
	})
	s.Require().NoError(err)
	s.games = games

	l, err := lobby.New(&lobby.Config{
		RoomRepo:      room.NewMemory(),
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
	})
	s.Require().NoError(err)
	s.lobby = l

	r, err := registry.New(&registry.Config{})
	s.Require().NoError(err)
	s.registry = r

	h, err := New(&Config{
		GameService:  s.games,
		LobbyService: s.lobby,
		Registry:     s.registry,
		Locks:        keymutex.New(),
	})
	s.Require().NoError(err)

	s.router = mux.NewRouter()
	h.Register(s.router)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Equal("application/json", rec.Header().Get("Content-Type"))
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(v))
}

func (s *HandlerTestSuite) createRoom(name string) seatResponse {
	rec := s.do(http.MethodPost, "/api/rooms", seatRequest{PlayerName: name})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var out seatResponse
	s.decode(rec, &out)
	return out
}

func (s *HandlerTestSuite) TestNew() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{GameService: s.games, LobbyService: s.lobby, Registry: s.registry})
	s.ErrorIs(err, ErrNilLocks)
}

func (s *HandlerTestSuite) TestStatus() {
	rec := s.do(http.MethodGet, "/api/", nil)
	s.Equal(http.StatusOK, rec.Code)

	var out statusResponse
	s.decode(rec, &out)
	s.Equal("running", out.Status)
}

func (s *HandlerTestSuite) TestCreateAndGetRoom() {
	created := s.createRoom("Asha")
	s.NotEmpty(created.PlayerID)
	s.Equal(created.PlayerID, created.Room.HostID)
	s.Len(created.RoomCode, len("ROOM")+6)

	rec := s.do(http.MethodGet, "/api/rooms/"+created.RoomCode, nil)
	s.Equal(http.StatusOK, rec.Code)

	var out roomResponse
	s.decode(rec, &out)
	s.Equal(created.RoomCode, out.Room.Code)
	s.Equal("Asha", out.Room.Players[0].Name)
}

func (s *HandlerTestSuite) TestCreateRoomValidation() {
	rec := s.do(http.MethodPost, "/api/rooms", seatRequest{})
	s.Equal(http.StatusBadRequest, rec.Code)

	var out errorResponse
	s.decode(rec, &out)
	s.Equal(lobby.ErrMissingName.Error(), out.Detail)

	req := httptest.NewRequest(http.MethodPost, "/api/rooms", bytes.NewBufferString("{"))
	bad := httptest.NewRecorder()
	s.router.ServeHTTP(bad, req)
	s.Equal(http.StatusBadRequest, bad.Code)
}

func (s *HandlerTestSuite) TestUnknownRoomAndGame() {
	for _, path := range []string{"/api/rooms/ROOMNOPE", "/api/game/ROOMNOPE/state"} {
		rec := s.do(http.MethodGet, path, nil)
		s.Equal(http.StatusNotFound, rec.Code, path)

		var out errorResponse
		s.decode(rec, &out)
		s.NotEmpty(out.Detail)
	}
}

func (s *HandlerTestSuite) TestJoinRoomNotifiesConnectedPlayers() {
	created := s.createRoom("Asha")

	host := registryMocks.NewMockConnection(s.mockCtrl)
	host.EXPECT().ID().Return("host-conn").AnyTimes()
	_, err := s.registry.Connect(&registry.ConnectInput{RoomCode: created.RoomCode, PlayerID: created.PlayerID, Conn: host})
	s.Require().NoError(err)

	var pushed map[string]any
	host.EXPECT().Send(gomock.Any()).DoAndReturn(func(payload []byte) error {
		return json.Unmarshal(payload, &pushed)
	})

	rec := s.do(http.MethodPost, "/api/rooms/"+created.RoomCode+"/join", seatRequest{PlayerName: "Bob", Avatar: "🐯"})
	s.Require().Equal(http.StatusOK, rec.Code)

	var out seatResponse
	s.decode(rec, &out)
	s.Equal("🐯", out.Player.Avatar)
	s.Len(out.Room.Players, 2)

	s.Equal("player-joined", pushed["type"])
	s.Equal("Bob", pushed["player"].(map[string]any)["name"])
}

func (s *HandlerTestSuite) TestListRoomsSkipsStarted() {
	open := s.createRoom("Asha")
	started := s.createRoom("Bob")

	_, err := s.lobby.MarkStarted(s.ctx, &lobby.MarkStartedInput{Code: started.RoomCode})
	s.Require().NoError(err)

	rec := s.do(http.MethodGet, "/api/rooms", nil)
	s.Equal(http.StatusOK, rec.Code)

	var out roomsResponse
	s.decode(rec, &out)
	s.Require().Len(out.Rooms, 1)
	s.Equal(open.RoomCode, out.Rooms[0].Code)
}

func (s *HandlerTestSuite) TestGameState() {
	s.mockDiceRoller.EXPECT().Shuffle(12, gomock.Any()).Times(2)

	_, err := s.games.CreateGame(s.ctx, &game.CreateGameInput{
		RoomCode: "ROOMGAME01",
		Players:  []*models.RoomPlayer{{ID: "a", Name: "Asha"}, {ID: "b", Name: "Bob"}},
	})
	s.Require().NoError(err)

	rec := s.do(http.MethodGet, "/api/game/ROOMGAME01/state", nil)
	s.Equal(http.StatusOK, rec.Code)

	var out gameStateResponse
	s.decode(rec, &out)
	s.Equal("a", out.Game.CurrentPlayerID)
	s.Len(out.Game.Properties, models.BoardSize)
	s.Equal(15000, out.Game.Players[1].Money)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
