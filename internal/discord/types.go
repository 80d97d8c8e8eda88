package discord

import (
	"gameinfo-discord-bot/internal/commands"
	"gameinfo-discord-bot/internal/refresh"

	"github.com/bwmarrin/discordgo"
)

// BotConfig configuration of the bot
type BotConfig struct {
	Token string
	Debug bool

	// GuildID scopes slash-command registration during development; empty
	// registers globally.
	GuildID string

	Refresh refresh.Config
}

// Bot discord interaction client
type Bot struct {
	Session  *discordgo.Session
	Config   BotConfig
	Commands *commands.Commands

	// OnCommand is invoked for every dispatched slash command; main uses it
	// to feed the metrics counters.
	OnCommand func(name string)

	registered []*discordgo.ApplicationCommand
}
