package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/monopoly/internal/common/errs"
	"github.com/KirkDiggler/monopoly/internal/services/lobby"
)

// MonopolyCommand handles the /monopoly command
type MonopolyCommand struct {
	BaseCommand
	lobby lobby.Service
}

// NewMonopolyCommand creates a new monopoly command handler
func NewMonopolyCommand(lobbyService lobby.Service) *MonopolyCommand {
	return &MonopolyCommand{
		BaseCommand: BaseCommand{
			Name:        "monopoly",
			Description: "Indian Heritage Monopoly rooms",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "rooms",
					Description: "List rooms waiting for players",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "room",
					Description: "Show one room",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "code",
							Description: "Room code, e.g. ROOM1A2B3C",
							Required:    true,
						},
					},
				},
			},
		},
		lobby: lobbyService,
	}
}

// Handle processes a Discord interaction for the monopoly command
func (c *MonopolyCommand) Handle(s Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx := context.Background()
	sub := data.Options[0]

	switch sub.Name {
	case "rooms":
		out, err := c.lobby.ListRooms(ctx, &lobby.ListRoomsInput{OpenOnly: true})
		if err != nil {
			return fmt.Errorf("failed to list rooms: %w", err)
		}
		return RespondWithEmbed(s, i, renderRooms(out.Rooms))
	case "room":
		code := ""
		for _, opt := range sub.Options {
			if opt.Name == "code" {
				code = opt.StringValue()
			}
		}

		out, err := c.lobby.GetRoom(ctx, &lobby.GetRoomInput{Code: code})
		if errs.IsNotFound(err) {
			return RespondWithEphemeralMessage(s, i, fmt.Sprintf("No room %s", code))
		}
		if err != nil {
			return fmt.Errorf("failed to get room: %w", err)
		}
		return RespondWithEmbed(s, i, renderRoom(out.Room))
	default:
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Unknown subcommand: %s", sub.Name))
	}
}
