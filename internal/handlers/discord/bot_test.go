package discord

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/monopoly/internal/common/clock"
	"github.com/KirkDiggler/monopoly/internal/common/uuid"
	"github.com/KirkDiggler/monopoly/internal/handlers/discord/mocks"
	"github.com/KirkDiggler/monopoly/internal/models"
	"github.com/KirkDiggler/monopoly/internal/repositories/room"
	"github.com/KirkDiggler/monopoly/internal/services/lobby"
)

type BotTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockSession *mocks.MockSession
	lobby       lobby.Service
	ctx         context.Context

	handler func(*discordgo.Session, *discordgo.InteractionCreate)
}

func (s *BotTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSession = mocks.NewMockSession(s.mockCtrl)
	s.ctx = context.Background()

	l, err := lobby.New(&lobby.Config{
		RoomRepo:      room.NewMemory(),
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
	})
	s.Require().NoError(err)
	s.lobby = l

	s.mockSession.EXPECT().AddHandler(gomock.Any()).DoAndReturn(func(h any) func() {
		s.handler = h.(func(*discordgo.Session, *discordgo.InteractionCreate))
		return func() {}
	}).AnyTimes()
}

func (s *BotTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *BotTestSuite) newBot(channelID string) *Bot {
	bot, err := New(&Config{
		ApplicationID: "app-1",
		GuildID:       "guild-1",
		ChannelID:     channelID,
		LobbyService:  s.lobby,
		Session:       s.mockSession,
	})
	s.Require().NoError(err)
	return bot
}

func (s *BotTestSuite) start(bot *Bot) {
	s.mockSession.EXPECT().Open().Return(nil)
	s.mockSession.EXPECT().ApplicationCommandCreate("app-1", "guild-1", gomock.Any(), gomock.Any()).
		Return(&discordgo.ApplicationCommand{ID: "cmd-1"}, nil)

	s.Require().NoError(bot.Start())
}

func (s *BotTestSuite) interact(options ...*discordgo.ApplicationCommandInteractionDataOption) {
	s.Require().NotNil(s.handler, "interaction handler registered")
	s.handler(nil, &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: "monopoly", Options: options},
	}})
}

// respondedWith captures the interaction response
func (s *BotTestSuite) respondedWith() *discordgo.InteractionResponse {
	got := &discordgo.InteractionResponse{}
	s.mockSession.EXPECT().InteractionRespond(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
			*got = *resp
			return nil
		})
	return got
}

func (s *BotTestSuite) TestNew() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Session: s.mockSession})
	s.ErrorIs(err, ErrNilLobbyService)

	_, err = New(&Config{LobbyService: s.lobby})
	s.ErrorIs(err, ErrEmptyToken)
}

func (s *BotTestSuite) TestStartAndStop() {
	bot := s.newBot("")
	s.start(bot)

	s.mockSession.EXPECT().ApplicationCommandDelete("app-1", "guild-1", "cmd-1", gomock.Any()).Return(nil)
	s.mockSession.EXPECT().Close().Return(nil)
	s.NoError(bot.Stop())
}

func (s *BotTestSuite) TestAnnouncements() {
	bot := s.newBot("chan-1")

	var titles []string
	s.mockSession.EXPECT().ChannelMessageSendEmbed("chan-1", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
			titles = append(titles, embed.Title)
			return &discordgo.Message{}, nil
		}).Times(2)

	r := &models.Room{
		Code:     "ROOMABC123",
		Players:  []*models.RoomPlayer{{Name: "Asha", Avatar: "👑"}, {Name: "Bob", Avatar: "💎"}},
		Settings: models.RoomSettings{StartingMoney: 15000},
	}
	s.Require().NoError(bot.GameStarted(s.ctx, r))
	s.Require().NoError(bot.GameOver(s.ctx, "ROOMABC123", "Asha"))

	s.Equal([]string{"🎲 Game started in ROOMABC123", "🏆 Asha wins!"}, titles)
}

func (s *BotTestSuite) TestAnnouncementsNeedChannel() {
	bot := s.newBot("")

	s.NoError(bot.GameOver(s.ctx, "ROOMABC123", "Asha"))
}

func (s *BotTestSuite) TestRoomsCommand() {
	created, err := s.lobby.CreateRoom(s.ctx, &lobby.CreateRoomInput{PlayerName: "Asha"})
	s.Require().NoError(err)

	s.start(s.newBot(""))
	resp := s.respondedWith()

	s.interact(&discordgo.ApplicationCommandInteractionDataOption{
		Name: "rooms",
		Type: discordgo.ApplicationCommandOptionSubCommand,
	})

	s.Require().NotNil(resp.Data)
	s.Require().Len(resp.Data.Embeds, 1)
	fields := resp.Data.Embeds[0].Fields
	s.Require().Len(fields, 1)
	s.Equal(created.Room.Code, fields[0].Name)
	s.Equal("hosted by Asha, 1/6 seats", fields[0].Value)
}

func (s *BotTestSuite) TestRoomCommandUnknownRoom() {
	s.start(s.newBot(""))
	resp := s.respondedWith()

	s.interact(&discordgo.ApplicationCommandInteractionDataOption{
		Name: "room",
		Type: discordgo.ApplicationCommandOptionSubCommand,
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "code", Type: discordgo.ApplicationCommandOptionString, Value: "ROOMNOPE"},
		},
	})

	s.Require().NotNil(resp.Data)
	s.Equal("No room ROOMNOPE", resp.Data.Content)
	s.Equal(discordgo.MessageFlagsEphemeral, resp.Data.Flags)
}

func TestBotSuite(t *testing.T) {
	suite.Run(t, new(BotTestSuite))
}
