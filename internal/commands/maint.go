package commands

import (
	"context"
	"fmt"
	"time"

	"gameinfo-discord-bot/lib/translation"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// CommandMaint renders the current maintenance window, or the fixed
// "no maintenance info" embed when neither the feed nor the cache can help.
func (c *Commands) CommandMaint(ctx context.Context) *discordgo.MessageEmbed {
	log.Debug("processing command /maint")

	entry, err := c.maintPolicy.Resolve(ctx)
	if err != nil {
		return maintUnavailableEmbed()
	}

	title := entry.TitleKR
	if title == "" {
		title = entry.Title
	}

	return &discordgo.MessageEmbed{
		Title: title,
		URL:   entry.URL,
		Color: ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: translation.Translate("Begin"), Value: fmt.Sprintf("<t:%d:F>", entry.StartStamp)},
			{Name: translation.Translate("End"), Value: fmt.Sprintf("<t:%d:F>", entry.EndStamp)},
			{Name: translation.Translate("Until End"), Value: fmt.Sprintf("<t:%d:R>", entry.EndStamp)},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func maintUnavailableEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       translation.Translate("No Maintenance Info"),
		Description: translation.Translate("There is no maintenance information available."),
		URL:         lodestoneURL,
		Color:       ColorError,
	}
}
