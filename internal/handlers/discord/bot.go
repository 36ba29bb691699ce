package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/KirkDiggler/monopoly/internal/models"
	"github.com/KirkDiggler/monopoly/internal/services/lobby"
)

// BotError is returned when the bot is configured incorrectly
type BotError string

// Error implements the error interface
func (e BotError) Error() string {
	return string(e)
}

const (
	ErrNilConfig       BotError = "config cannot be nil"
	ErrEmptyToken      BotError = "token cannot be empty"
	ErrNilLobbyService BotError = "lobby service cannot be nil"
	ErrNoApplicationID BotError = "application ID is unknown"
)

// Bot announces games in a Discord channel and answers the /monopoly command
type Bot struct {
	session    Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	lobby      lobby.Service
	config     *Config
	log        *zap.SugaredLogger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token, unused when Session is set
	Token string

	// Application ID for the bot; defaults to the logged in user
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// ChannelID receives game announcements; empty disables them
	ChannelID string

	LobbyService lobby.Service

	// Session overrides the session built from Token
	Session Session

	Logger *zap.SugaredLogger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.LobbyService == nil {
		return nil, ErrNilLobbyService
	}

	session := cfg.Session
	if session == nil {
		if cfg.Token == "" {
			return nil, ErrEmptyToken
		}

		s, err := discordgo.New("Bot " + cfg.Token)
		if err != nil {
			return nil, fmt.Errorf("failed to create Discord session: %w", err)
		}
		session = s
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		lobby:      cfg.LobbyService,
		config:     cfg,
		log:        cfg.Logger,
	}
	if bot.log == nil {
		bot.log = zap.NewNop().Sugar()
	}

	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start opens the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(NewMonopolyCommand(b.lobby)); err != nil {
		return fmt.Errorf("failed to register monopoly command: %w", err)
	}

	b.log.Infow("discord bot running", "announce_channel", b.config.ChannelID)
	return nil
}

// Stop removes registered commands and closes the connection
func (b *Bot) Stop() error {
	appID, err := b.applicationID()
	if err == nil {
		for name, id := range b.commandIDs {
			if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, id); err != nil {
				b.log.Warnw("failed to delete command", "command", name, "id", id, "error", err)
			}
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID, err := b.applicationID()
	if err != nil {
		return err
	}

	created, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = created.ID
	b.log.Infow("registered command", "command", cmd.GetName(), "id", created.ID, "guild", b.config.GuildID)

	return nil
}

// GameStarted posts the seating of a game that just began
func (b *Bot) GameStarted(ctx context.Context, room *models.Room) error {
	return b.announce(ctx, renderGameStarted(room))
}

// GameOver posts the winner of a room's game
func (b *Bot) GameOver(ctx context.Context, roomCode, winnerName string) error {
	return b.announce(ctx, renderGameOver(roomCode, winnerName))
}

func (b *Bot) announce(ctx context.Context, embed *discordgo.MessageEmbed) error {
	if b.config.ChannelID == "" {
		return nil
	}

	if _, err := b.session.ChannelMessageSendEmbed(b.config.ChannelID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send announcement: %w", err)
	}
	return nil
}

// applicationID falls back to the logged in user when none is configured
func (b *Bot) applicationID() (string, error) {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID, nil
	}
	if s, ok := b.session.(*discordgo.Session); ok && s.State != nil && s.State.User != nil {
		return s.State.User.ID, nil
	}
	return "", ErrNoApplicationID
}

// handleInteraction routes slash commands to their handlers
func (b *Bot) handleInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	h, ok := b.commands[name]
	if !ok {
		return
	}
	if err := h.Handle(b.session, i); err != nil {
		b.log.Errorw("failed to handle command", "command", name, "error", err)
	}
}
