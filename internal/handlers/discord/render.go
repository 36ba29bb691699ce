package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/monopoly/internal/models"
)

const (
	colorStarted = 0x059669
	colorWinner  = 0xD97706
	colorLobby   = 0x2563EB
)

// maxListedRooms keeps the rooms embed under Discord's field limit
const maxListedRooms = 10

func renderGameStarted(room *models.Room) *discordgo.MessageEmbed {
	names := make([]string, 0, len(room.Players))
	for _, p := range room.Players {
		names = append(names, fmt.Sprintf("%s %s", p.Avatar, p.Name))
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎲 Game started in %s", room.Code),
		Description: strings.Join(names, "\n"),
		Color:       colorStarted,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Players", Value: fmt.Sprintf("%d", len(room.Players)), Inline: true},
			{Name: "Starting money", Value: fmt.Sprintf("₹%d", room.Settings.StartingMoney), Inline: true},
		},
	}
}

func renderGameOver(roomCode, winnerName string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🏆 %s wins!", winnerName),
		Description: fmt.Sprintf("The game in %s is over.", roomCode),
		Color:       colorWinner,
	}
}

func renderRooms(rooms []*models.Room) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Open rooms",
		Color: colorLobby,
	}
	if len(rooms) == 0 {
		embed.Description = "No rooms are waiting for players."
		return embed
	}

	for i, r := range rooms {
		if i == maxListedRooms {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("and %d more", len(rooms)-maxListedRooms)}
			break
		}
		embed.Fields = append(embed.Fields, renderRoomField(r))
	}
	return embed
}

func renderRoom(room *models.Room) *discordgo.MessageEmbed {
	status := "waiting for players"
	if room.GameStarted {
		status = "in progress"
	}

	lines := make([]string, 0, len(room.Players))
	for _, p := range room.Players {
		line := fmt.Sprintf("%s %s", p.Avatar, p.Name)
		if p.IsHost {
			line += " (host)"
		}
		if p.Ready {
			line += " ✅"
		}
		lines = append(lines, line)
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Room %s", room.Code),
		Description: strings.Join(lines, "\n"),
		Color:       colorLobby,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Status", Value: status, Inline: true},
			{Name: "Seats", Value: fmt.Sprintf("%d/%d", len(room.Players), room.MaxPlayers), Inline: true},
		},
	}
}

func renderRoomField(room *models.Room) *discordgo.MessageEmbedField {
	host := ""
	if p := room.Player(room.HostID); p != nil {
		host = p.Name
	}

	return &discordgo.MessageEmbedField{
		Name:  room.Code,
		Value: fmt.Sprintf("hosted by %s, %d/%d seats", host, len(room.Players), room.MaxPlayers),
	}
}
