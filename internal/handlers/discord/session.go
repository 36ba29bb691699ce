package discord

import "github.com/bwmarrin/discordgo"

//go:generate mockgen -package=mocks -destination=mocks/mock_session.go github.com/KirkDiggler/monopoly/internal/handlers/discord Session

// Session is the subset of *discordgo.Session the bot talks to
type Session interface {
	Open() error
	Close() error
	AddHandler(handler interface{}) func()
	ApplicationCommandCreate(appID string, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}
