package room

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/monopoly/internal/common/errs"
	"github.com/KirkDiggler/monopoly/internal/models"
)

// RepositoryTestSuite runs the same behaviour checks against every implementation
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func(s *RepositoryTestSuite) Repository
	cleanup []func()
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	s.repo = s.newRepo(s)
}

func (s *RepositoryTestSuite) TearDownTest() {
	for _, fn := range s.cleanup {
		fn()
	}
	s.cleanup = nil
}

func (s *RepositoryTestSuite) room(code string, offset time.Duration, started bool) *models.Room {
	return &models.Room{
		Code:        code,
		HostID:      "host-" + code,
		MaxPlayers:  6,
		GameStarted: started,
		Players: []*models.RoomPlayer{
			{ID: "host-" + code, Name: "Host", IsHost: true, Connected: true},
		},
		Settings:  models.RoomSettings{StartingMoney: 15000, HouseLimit: 32, HotelLimit: 12},
		CreatedAt: s.testNow.Add(offset),
	}
}

func (s *RepositoryTestSuite) TestSaveAndGetRoom() {
	room := s.room("ROOMAAAAAA", 0, false)
	s.Require().NoError(s.repo.SaveRoom(s.ctx, &SaveRoomInput{Room: room}))

	got, err := s.repo.GetRoom(s.ctx, &GetRoomInput{Code: "ROOMAAAAAA"})
	s.Require().NoError(err)
	s.Equal(room.HostID, got.HostID)
	s.Equal(room.Settings, got.Settings)
	s.Require().Len(got.Players, 1)
	s.True(got.Players[0].IsHost)
	s.True(room.CreatedAt.Equal(got.CreatedAt))
}

func (s *RepositoryTestSuite) TestGetMissingRoom() {
	_, err := s.repo.GetRoom(s.ctx, &GetRoomInput{Code: "NOPE"})
	s.ErrorIs(err, ErrRoomNotFound)
	s.True(errs.IsNotFound(err))

	_, err = s.repo.GetRoom(s.ctx, &GetRoomInput{})
	s.Error(err)
}

func (s *RepositoryTestSuite) TestSaveReplaces() {
	room := s.room("ROOMAAAAAA", 0, false)
	s.Require().NoError(s.repo.SaveRoom(s.ctx, &SaveRoomInput{Room: room}))

	room.Players = append(room.Players, &models.RoomPlayer{ID: "guest", Name: "Guest"})
	s.Require().NoError(s.repo.SaveRoom(s.ctx, &SaveRoomInput{Room: room}))

	got, err := s.repo.GetRoom(s.ctx, &GetRoomInput{Code: "ROOMAAAAAA"})
	s.Require().NoError(err)
	s.Len(got.Players, 2)
}

func (s *RepositoryTestSuite) TestDeleteRoom() {
	s.Require().NoError(s.repo.SaveRoom(s.ctx, &SaveRoomInput{Room: s.room("ROOMAAAAAA", 0, false)}))

	s.Require().NoError(s.repo.DeleteRoom(s.ctx, &DeleteRoomInput{Code: "ROOMAAAAAA"}))
	_, err := s.repo.GetRoom(s.ctx, &GetRoomInput{Code: "ROOMAAAAAA"})
	s.ErrorIs(err, ErrRoomNotFound)

	s.ErrorIs(s.repo.DeleteRoom(s.ctx, &DeleteRoomInput{Code: "ROOMAAAAAA"}), ErrRoomNotFound)

	out, err := s.repo.ListRooms(s.ctx, &ListRoomsInput{})
	s.Require().NoError(err)
	s.Empty(out.Rooms)
}

func (s *RepositoryTestSuite) TestListRooms() {
	s.Require().NoError(s.repo.SaveRoom(s.ctx, &SaveRoomInput{Room: s.room("ROOMCCCCCC", 2*time.Minute, false)}))
	s.Require().NoError(s.repo.SaveRoom(s.ctx, &SaveRoomInput{Room: s.room("ROOMAAAAAA", 0, false)}))
	s.Require().NoError(s.repo.SaveRoom(s.ctx, &SaveRoomInput{Room: s.room("ROOMBBBBBB", time.Minute, true)}))

	all, err := s.repo.ListRooms(s.ctx, &ListRoomsInput{})
	s.Require().NoError(err)
	s.Equal([]string{"ROOMAAAAAA", "ROOMBBBBBB", "ROOMCCCCCC"}, codes(all.Rooms))

	open, err := s.repo.ListRooms(s.ctx, &ListRoomsInput{OpenOnly: true})
	s.Require().NoError(err)
	s.Equal([]string{"ROOMAAAAAA", "ROOMCCCCCC"}, codes(open.Rooms))
}

func (s *RepositoryTestSuite) TestStartedRoomLeavesOpenList() {
	room := s.room("ROOMAAAAAA", 0, false)
	s.Require().NoError(s.repo.SaveRoom(s.ctx, &SaveRoomInput{Room: room}))

	room.GameStarted = true
	s.Require().NoError(s.repo.SaveRoom(s.ctx, &SaveRoomInput{Room: room}))

	open, err := s.repo.ListRooms(s.ctx, &ListRoomsInput{OpenOnly: true})
	s.Require().NoError(err)
	s.Empty(open.Rooms)
}

func codes(rooms []*models.Room) []string {
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Code)
	}
	return out
}

func TestMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(s *RepositoryTestSuite) Repository {
			return NewMemory()
		},
	})
}

func TestMemoryRepositoryCopies(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()
	room := &models.Room{Code: "ROOM", Players: []*models.RoomPlayer{{ID: "a"}}}

	if err := repo.SaveRoom(ctx, &SaveRoomInput{Room: room}); err != nil {
		t.Fatal(err)
	}
	room.Players[0].Ready = true

	got, err := repo.GetRoom(ctx, &GetRoomInput{Code: "ROOM"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Players[0].Ready {
		t.Fatal("stored room shares players with the caller")
	}
}
