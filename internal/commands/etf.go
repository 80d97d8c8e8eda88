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
	"golang.org/x/sync/errgroup"
)

// ETFSymbols is the fixed watch list rendered by /etf.
var ETFSymbols = []string{"SOXL", "SOXS", "TQQQ", "SQQQ", "UPRO", "SPY", "TLT"}

// bellwetherSymbol determines the shared market state for the list.
const bellwetherSymbol = DefaultStockSymbol

// CommandETF renders the ETF list. Symbols are fetched concurrently and
// joined when all are done; a failed symbol keeps its row with a failure
// marker so the list always has one row per symbol.
func (c *Commands) CommandETF(ctx context.Context, count, total int) (*discordgo.MessageEmbed, quote.MarketState, error) {
	log.Debug("processing command /etf")

	bellwether, err := c.Quotes.Get(ctx, bellwetherSymbol)
	if err != nil {
		return nil, quote.StateUnknown, errors.Wrap(err, "command /etf")
	}
	state := bellwether.State

	embed := &discordgo.MessageEmbed{
		Title: "ETF Lists",
		Color: ColorBot,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Market State", Value: fmt.Sprintf("%s %s", state, stateEmoji(state))},
		},
		Footer:    updateFooter(count, total),
		Timestamp: time.Now().Format(time.RFC3339),
	}

	quotes := make([]*quote.Quote, len(ETFSymbols))
	var g errgroup.Group
	for i, symbol := range ETFSymbols {
		i, symbol := i, symbol
		g.Go(func() error {
			q, err := c.Quotes.Get(ctx, symbol)
			if err != nil {
				log.Errorf("failed to fetch data for %s: %v", symbol, err)
				return nil
			}
			quotes[i] = q
			return nil
		})
	}
	g.Wait()

	for i, q := range quotes {
		if q == nil {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  ETFSymbols[i],
				Value: "Failed to fetch data",
			})
			continue
		}

		price, change, changePct := q.Price, q.Change, q.ChangePercent
		if (state == quote.StatePre || state == quote.StatePost) && q.SessionPrice != 0 {
			price, change, changePct = q.SessionPrice, q.SessionChange, q.SessionChangePercent
		}

		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: q.Symbol, Value: helpers.FormatPrice(q.CurrencySymbol, price), Inline: true},
			&discordgo.MessageEmbedField{Name: "Change", Value: changeField(change, changePct), Inline: true},
		)
	}

	return embed, state, nil
}
