package commands

import (
	"context"
	"fmt"
	"time"

	"gameinfo-discord-bot/lib/translation"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// CommandPLL renders the next Producer Letter Live broadcast.
func (c *Commands) CommandPLL(ctx context.Context) *discordgo.MessageEmbed {
	log.Debug("processing command /pll")

	entry, err := c.pllPolicy.Resolve(ctx)
	if err != nil {
		return pllUnavailableEmbed()
	}

	timeValue := translation.Translate("Unconfirmed")
	relativeValue := timeValue
	if entry.StartStamp > 0 {
		timeValue = fmt.Sprintf("<t:%d:F>", entry.StartStamp)
		relativeValue = fmt.Sprintf("<t:%d:R>", entry.StartStamp)
	}

	return &discordgo.MessageEmbed{
		Title: entry.TitleKR,
		URL:   entry.URL,
		Color: ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: translation.Translate("Broadcast Start"), Value: timeValue},
			{Name: translation.Translate("Time Until Start"), Value: relativeValue},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "From Lodestone News"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func pllUnavailableEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       translation.Translate("No PLL Info"),
		Description: translation.Translate("No Letter Live information was found."),
		URL:         lodestoneURL,
		Color:       ColorError,
	}
}
