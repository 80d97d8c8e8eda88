package commands

import (
	"time"

	"gameinfo-discord-bot/internal/cache"
	"gameinfo-discord-bot/lib/translation"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CommandWTInvite reads the hand-maintained invite link from the shared cache
// document and renders it behind a link button. The bot never writes this key.
func (c *Commands) CommandWTInvite() (*discordgo.MessageEmbed, []discordgo.MessageComponent, error) {
	log.Debug("processing command /wtinv")

	link, ok := c.Store.GetLink(cache.WTInfoKey)
	if !ok {
		return nil, nil, errors.New("invite link missing from cache document")
	}

	embed := &discordgo.MessageEmbed{
		Title:     translation.Translate("Join War Thunder Now"),
		Color:     ColorSuccess,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	row := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label: "JOIN",
				Style: discordgo.LinkButton,
				URL:   link,
			},
		},
	}

	return embed, []discordgo.MessageComponent{row}, nil
}
