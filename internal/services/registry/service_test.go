package registry

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/monopoly/internal/services/registry/mocks"
)

type RegistryTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	registry *service
}

func (s *RegistryTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())

	r, err := New(&Config{})
	s.Require().NoError(err)
	s.registry = r
}

func (s *RegistryTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *RegistryTestSuite) conn(id string) *mocks.MockConnection {
	c := mocks.NewMockConnection(s.mockCtrl)
	c.EXPECT().ID().Return(id).AnyTimes()
	return c
}

func (s *RegistryTestSuite) connect(room, player string, c Connection) *ConnectOutput {
	out, err := s.registry.Connect(&ConnectInput{RoomCode: room, PlayerID: player, Conn: c})
	s.Require().NoError(err)
	return out
}

func (s *RegistryTestSuite) TestNew() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)
}

func (s *RegistryTestSuite) TestConnectValidation() {
	_, err := s.registry.Connect(&ConnectInput{RoomCode: "R", PlayerID: "p"})
	s.ErrorIs(err, ErrNilConnection)

	_, err = s.registry.Connect(&ConnectInput{PlayerID: "p", Conn: s.conn("c1")})
	s.ErrorIs(err, ErrMissingRoom)

	_, err = s.registry.Connect(&ConnectInput{RoomCode: "R", Conn: s.conn("c2")})
	s.ErrorIs(err, ErrMissingPlayer)
}

func (s *RegistryTestSuite) TestBroadcastReachesRoomOnly() {
	a := s.conn("a")
	b := s.conn("b")
	other := s.conn("other")
	s.connect("R1", "alice", a)
	s.connect("R1", "bob", b)
	s.connect("R2", "carol", other)

	payload := []byte(`{"type":"turn-ended"}`)
	a.EXPECT().Send(payload).Return(nil)
	b.EXPECT().Send(payload).Return(nil)

	s.NoError(s.registry.Broadcast("R1", map[string]string{"type": "turn-ended"}, ""))
}

func (s *RegistryTestSuite) TestBroadcastExcludesPlayer() {
	a := s.conn("a")
	b := s.conn("b")
	s.connect("R1", "alice", a)
	s.connect("R1", "bob", b)

	b.EXPECT().Send(gomock.Any()).Return(nil)

	s.NoError(s.registry.Broadcast("R1", map[string]string{"type": "chat-message"}, "alice"))
}

func (s *RegistryTestSuite) TestSendToPlayer() {
	a := s.conn("a")
	b := s.conn("b")
	s.connect("R1", "alice", a)
	s.connect("R1", "bob", b)

	a.EXPECT().Send([]byte(`{"type":"error"}`)).Return(nil)

	s.NoError(s.registry.SendToPlayer("R1", "alice", map[string]string{"type": "error"}))
	s.NoError(s.registry.SendToPlayer("R1", "nobody", map[string]string{"type": "error"}))
}

func (s *RegistryTestSuite) TestDisconnectDropsConnection() {
	a := s.conn("a")
	b := s.conn("b")
	s.connect("R1", "alice", a)
	s.connect("R1", "bob", b)

	s.True(s.registry.Disconnect(b))
	s.False(s.registry.Disconnect(b))
	s.False(s.registry.IsConnected("R1", "bob"))
	s.Equal(1, s.registry.ConnectionCount("R1"))

	a.EXPECT().Send(gomock.Any()).Return(nil)
	s.NoError(s.registry.Broadcast("R1", map[string]string{"type": "player-disconnected"}, ""))
}

func (s *RegistryTestSuite) TestRemovePlayer() {
	a := s.conn("a")
	b := s.conn("b")
	s.connect("R1", "alice", a)
	s.connect("R1", "bob", b)

	s.Nil(s.registry.RemovePlayer("R1", "nobody"))
	s.Nil(s.registry.RemovePlayer("R9", "alice"))

	s.Equal(Connection(a), s.registry.RemovePlayer("R1", "alice"))
	s.False(s.registry.IsConnected("R1", "alice"))
	s.False(s.registry.Disconnect(a), "already forgotten")

	b.EXPECT().Send(gomock.Any()).Return(nil)
	s.NoError(s.registry.Broadcast("R1", map[string]string{"type": "chat-message"}, ""))

	s.Equal(Connection(b), s.registry.RemovePlayer("R1", "bob"))
	s.Empty(s.registry.Rooms())
}

func (s *RegistryTestSuite) TestEmptyRoomIsRemoved() {
	a := s.conn("a")
	s.connect("R1", "alice", a)
	s.Equal([]string{"R1"}, s.registry.Rooms())

	s.registry.Disconnect(a)
	s.Empty(s.registry.Rooms())
	s.Zero(s.registry.ConnectionCount("R1"))
}

func (s *RegistryTestSuite) TestReconnectEvictsOldConnection() {
	old := s.conn("old")
	fresh := s.conn("fresh")
	s.connect("R1", "alice", old)

	old.EXPECT().Close().Return(nil)
	out := s.connect("R1", "alice", fresh)
	s.True(out.Replaced)
	s.Equal(1, s.registry.ConnectionCount("R1"))

	s.False(s.registry.Disconnect(old), "evicted connection is already gone")
	s.True(s.registry.IsConnected("R1", "alice"))

	fresh.EXPECT().Send(gomock.Any()).Return(nil)
	s.NoError(s.registry.SendToPlayer("R1", "alice", "hi"))
}

func (s *RegistryTestSuite) TestSendFailurePrunes() {
	a := s.conn("a")
	broken := s.conn("broken")
	s.connect("R1", "alice", a)
	s.connect("R1", "bob", broken)

	a.EXPECT().Send(gomock.Any()).Return(nil).Times(2)
	broken.EXPECT().Send(gomock.Any()).Return(errors.New("broken pipe"))
	broken.EXPECT().Close().Return(nil)

	s.NoError(s.registry.Broadcast("R1", "first", ""))
	s.Equal([]string{"alice"}, s.registry.RoomPlayers("R1"))

	s.NoError(s.registry.Broadcast("R1", "second", ""))
}

func (s *RegistryTestSuite) TestBroadcastAll() {
	a := s.conn("a")
	b := s.conn("b")
	s.connect("R1", "alice", a)
	s.connect("R2", "bob", b)

	a.EXPECT().Send([]byte(`"shutdown"`)).Return(nil)
	b.EXPECT().Send([]byte(`"shutdown"`)).Return(nil)

	s.NoError(s.registry.BroadcastAll("shutdown"))
}

func (s *RegistryTestSuite) TestEncodeErrorIsReturned() {
	s.Error(s.registry.Broadcast("R1", make(chan int), ""))
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

type countingConn struct {
	id string
	mu sync.Mutex
	n  int
}

func (c *countingConn) ID() string { return c.id }

func (c *countingConn) Send([]byte) error {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
	return nil
}

func (c *countingConn) Close() error { return nil }

func TestConcurrentConnectBroadcastDisconnect(t *testing.T) {
	r, err := New(&Config{})
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := &countingConn{id: fmt.Sprintf("c%d", i)}
			room := fmt.Sprintf("R%d", i%3)
			if _, err := r.Connect(&ConnectInput{RoomCode: room, PlayerID: c.id, Conn: c}); err != nil {
				t.Error(err)
				return
			}
			for j := 0; j < 10; j++ {
				_ = r.Broadcast(room, j, "")
			}
			r.Disconnect(c)
		}(i)
	}
	wg.Wait()

	if rooms := r.Rooms(); len(rooms) != 0 {
		t.Fatalf("expected no rooms, got %v", rooms)
	}
}
