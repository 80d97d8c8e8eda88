package commands

import (
	"context"
	"fmt"
	"time"

	"gameinfo-discord-bot/lib/helpers"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CurrencyChoices lists the codes offered by /exchange options.
var CurrencyChoices = []string{
	"USD", "KRW", "EUR", "GBP", "JPY", "CAD", "CHF", "HKD", "TWD",
	"AUD", "NZD", "INR", "BRL", "PLN", "RUB", "TRY", "CNY",
}

// rateTargets is the fixed /rate list, in render order.
var rateTargets = []string{"USD", "KRW", "JPY", "EUR", "TRY", "UAH"}

var currencyFlags = map[string]string{
	"USD": "🇺🇸",
	"KRW": "🇰🇷",
	"JPY": "🇯🇵",
	"EUR": "🇪🇺",
	"TRY": "🇹🇷",
	"UAH": "🇺🇦",
}

// CommandExchange renders a single conversion between two currencies.
func (c *Commands) CommandExchange(ctx context.Context, from, to string, amount float64) (*discordgo.MessageEmbed, error) {
	log.Debugf("processing command /exchange %s -> %s (%g)", from, to, amount)

	value, err := c.Exchange.Convert(ctx, from, to, amount)
	if err != nil {
		return nil, errors.Wrap(err, "command /exchange")
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Exchange rate from %s to %s", from, to),
		Color: ColorBot,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "From", Value: fmt.Sprintf("%s %s", helpers.FormatAmountUS(amount), from)},
			{Name: "To", Value: fmt.Sprintf("%s %s", helpers.FormatAmountUS(value), to)},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Data from ExchangeRate-API."},
		Timestamp: time.Now().Format(time.RFC3339),
	}, nil
}

// CommandRate renders the fixed target list. Failed conversions keep their
// row with a failure marker; one dead currency never hides the rest.
func (c *Commands) CommandRate(ctx context.Context, from string, amount float64) *discordgo.MessageEmbed {
	log.Debugf("processing command /rate from %s (%g)", from, amount)

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("Exchange rate from %s %s", helpers.FormatAmountUS(amount), from),
		Color:     ColorBot,
		Footer:    &discordgo.MessageEmbedFooter{Text: "Data from ExchangeRate-API."},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	for _, conv := range c.Exchange.ConvertMany(ctx, from, amount, rateTargets) {
		name := fmt.Sprintf("%s %s", currencyFlags[conv.Currency], conv.Currency)
		value := "Failed to fetch"
		if conv.Err == nil {
			value = helpers.FormatAmountUS(conv.Value)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  value,
			Inline: true,
		})
	}

	return embed
}
