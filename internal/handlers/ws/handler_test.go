package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/monopoly/internal/common/uuid"
	"github.com/KirkDiggler/monopoly/internal/services/lobby"
)

func (s *DispatcherTestSuite) serve() (*httptest.Server, string) {
	h, err := NewHandler(&HandlerConfig{
		Dispatcher:    s.dispatcher,
		LobbyService:  s.lobby,
		UUIDGenerator: uuid.New(),
	})
	s.Require().NoError(err)

	router := mux.NewRouter()
	router.Handle("/ws/{room_code}/{player_id}", h)
	server := httptest.NewServer(router)

	return server, "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/"
}

func (s *DispatcherTestSuite) readFrame(c *websocket.Conn) map[string]any {
	s.Require().NoError(c.SetReadDeadline(time.Now().Add(2 * time.Second)))

	_, raw, err := c.ReadMessage()
	s.Require().NoError(err)

	var frame map[string]any
	s.Require().NoError(json.Unmarshal(raw, &frame))
	return frame
}

func (s *DispatcherTestSuite) TestNewHandler() {
	_, err := NewHandler(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = NewHandler(&HandlerConfig{LobbyService: s.lobby})
	s.ErrorIs(err, ErrNilDispatcher)
}

func (s *DispatcherTestSuite) TestWebsocketRejectsUnknownSeat() {
	server, base := s.serve()
	defer server.Close()

	_, resp, err := websocket.DefaultDialer.Dial(base+s.roomCode+"/stranger", nil)
	s.Require().Error(err)
	s.Require().NotNil(resp)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(base+"NOROOM/"+s.hostID, nil)
	s.Require().Error(err)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *DispatcherTestSuite) TestWebsocketRoundTrip() {
	server, base := s.serve()
	defer server.Close()

	c, _, err := websocket.DefaultDialer.Dial(base+s.roomCode+"/"+s.guestID, nil)
	s.Require().NoError(err)

	s.Equal(MessagePlayerReconnected, s.readFrame(c)["type"])
	synced := s.readFrame(c)
	s.Equal(MessageRoomUpdated, synced["type"])
	s.Equal(s.roomCode, synced["room"].(map[string]any)["code"])

	s.Require().NoError(c.WriteJSON(map[string]any{"type": MessageSendChat, "message": "hello"}))
	chat := s.readFrame(c)
	s.Equal(MessageChat, chat["type"])
	s.Equal("hello", chat["message"])
	s.Eventually(func() bool {
		return s.hostConn.last(MessageChat) != nil
	}, 2*time.Second, 10*time.Millisecond)

	s.Require().NoError(c.Close())

	s.Eventually(func() bool {
		return s.hostConn.last(MessagePlayerDisconnected) != nil
	}, 2*time.Second, 10*time.Millisecond)

	out, err := s.lobby.GetRoom(s.ctx, &lobby.GetRoomInput{Code: s.roomCode})
	s.Require().NoError(err)
	s.False(out.Room.Player(s.guestID).Connected)
}
