package commands

import (
	"context"
	"fmt"
	"time"

	"gameinfo-discord-bot/internal/quote"
	"gameinfo-discord-bot/lib/helpers"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultStockSymbol is used when the command is invoked without one.
const DefaultStockSymbol = "NVDA"

// CommandStock renders a quote embed for one symbol. The returned market
// state tells the caller whether to start the refresh driver.
func (c *Commands) CommandStock(ctx context.Context, symbol string, count, total int) (*discordgo.MessageEmbed, quote.MarketState, error) {
	log.Debugf("processing command /stock with symbol: %s", symbol)

	q, err := c.Quotes.Get(ctx, symbol)
	if err != nil {
		return nil, quote.StateUnknown, errors.Wrap(err, "command /stock")
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s / [%s]", q.LongName, q.Symbol),
		URL:   fmt.Sprintf("https://finance.yahoo.com/quote/%s", q.Symbol),
		Color: changeColor(q.Change),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Market State", Value: fmt.Sprintf("%s %s", q.State, stateEmoji(q.State))},
			{Name: "Price", Value: helpers.FormatPrice(q.CurrencySymbol, q.Price), Inline: true},
			{Name: "Change", Value: changeField(q.Change, q.ChangePercent), Inline: true},
		},
		Footer:    updateFooter(count, total),
		Timestamp: time.Now().Format(time.RFC3339),
	}

	switch q.State {
	case quote.StatePre:
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Pre - Price", Value: helpers.FormatPrice(q.CurrencySymbol, q.SessionPrice), Inline: true},
			&discordgo.MessageEmbedField{Name: "Pre - Change", Value: changeField(q.SessionChange, q.SessionChangePercent), Inline: true},
		)
	case quote.StatePost:
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Post - Price", Value: helpers.FormatPrice(q.CurrencySymbol, q.SessionPrice), Inline: true},
			&discordgo.MessageEmbedField{Name: "Post - Change", Value: changeField(q.SessionChange, q.SessionChangePercent), Inline: true},
		)
	}

	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "Day High", Value: helpers.FormatPrice(q.CurrencySymbol, q.DayHigh), Inline: true},
		&discordgo.MessageEmbedField{Name: "Day Low", Value: helpers.FormatPrice(q.CurrencySymbol, q.DayLow), Inline: true},
		&discordgo.MessageEmbedField{Name: "Volume", Value: helpers.FormatVolume(q.Volume), Inline: true},
	)

	return embed, q.State, nil
}

func updateFooter(count, total int) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Data from Yahoo Finance. #Update %d/%d.", count, total),
	}
}

func stateEmoji(s quote.MarketState) string {
	switch s {
	case quote.StateRegular:
		return "🟢"
	case quote.StatePre:
		return "🟠"
	default:
		return "🔴"
	}
}

func changeField(change, changePercent float64) string {
	emoji := ""
	if change > 0 {
		emoji = " 📈"
	} else if change < 0 {
		emoji = " 📉"
	}
	return helpers.FormatChange(change, changePercent) + emoji
}

func changeColor(change float64) int {
	if change > 0 {
		return ColorUpward
	}
	if change < 0 {
		return ColorDownward
	}
	return ColorBot
}
