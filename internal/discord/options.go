package discord

import (
	"gameinfo-discord-bot/internal/commands"

	"github.com/bwmarrin/discordgo"
)

func optionString(data discordgo.ApplicationCommandInteractionData, name, fallback string) string {
	for _, opt := range data.Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return fallback
}

func optionInt(data discordgo.ApplicationCommandInteractionData, name string, fallback int) int {
	for _, opt := range data.Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionInteger {
			return int(opt.IntValue())
		}
	}
	return fallback
}

func optionFloat(data discordgo.ApplicationCommandInteractionData, name string, fallback float64) float64 {
	for _, opt := range data.Options {
		if opt.Name != name {
			continue
		}
		switch opt.Type {
		case discordgo.ApplicationCommandOptionNumber:
			return opt.FloatValue()
		case discordgo.ApplicationCommandOptionInteger:
			return float64(opt.IntValue())
		}
	}
	return fallback
}

func currencyChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(commands.CurrencyChoices))
	for _, code := range commands.CurrencyChoices {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: code, Value: code})
	}
	return choices
}

func timezoneChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(commands.TimezoneChoices))
	for _, tz := range commands.TimezoneChoices {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: tz, Value: tz})
	}
	return choices
}

func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "maint",
			Description: "Shows the FFXIV maintenance information",
		},
		{
			Name:        "pll",
			Description: "Shows the FFXIV Producer Letter Live info",
		},
		{
			Name:        "wtinv",
			Description: "Shows the War Thunder invite link",
		},
		{
			Name:        "stock",
			Description: "Print stock data for the given symbol",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "symbol",
					Description: "Symbol of the stock",
					Type:        discordgo.ApplicationCommandOptionString,
				},
			},
		},
		{
			Name:        "etf",
			Description: "Print ETF data list",
		},
		{
			Name:        "exchange",
			Description: "Shows the exchange rate for a given currency",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "from",
					Description: "The currency to convert from (default: USD)",
					Type:        discordgo.ApplicationCommandOptionString,
					Choices:     currencyChoices(),
				},
				{
					Name:        "to",
					Description: "The currency to convert to (default: KRW)",
					Type:        discordgo.ApplicationCommandOptionString,
					Choices:     currencyChoices(),
				},
				{
					Name:        "amount",
					Description: "The amount of currency (default: 1.0)",
					Type:        discordgo.ApplicationCommandOptionNumber,
					MinValue:    floatPtr(0),
				},
			},
		},
		{
			Name:        "rate",
			Description: "Shows the exchange rate list",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "from",
					Description: "The currency to convert from (default: USD)",
					Type:        discordgo.ApplicationCommandOptionString,
					Choices:     currencyChoices(),
				},
				{
					Name:        "amount",
					Description: "The amount of currency (default: 1.0)",
					Type:        discordgo.ApplicationCommandOptionNumber,
					MinValue:    floatPtr(0),
				},
			},
		},
		{
			Name:        "convertstamp",
			Description: "Converts a UTC timestamp to a local time format",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "timestamp",
					Description: "The UTC timestamp to convert (e.g., 1720303200)",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
				{
					Name:        "timezone",
					Description: "The timezone",
					Type:        discordgo.ApplicationCommandOptionString,
					Choices:     timezoneChoices(),
				},
			},
		},
		{
			Name:        "converttime",
			Description: "Converts a given time to a UTC timestamp",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "month",
					Description: "The month (1-12)",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
				{
					Name:        "day",
					Description: "The day (1-31)",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
				{
					Name:        "hour",
					Description: "The hour (0-23)",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
				{
					Name:        "minute",
					Description: "The minute (0-59)",
					Type:        discordgo.ApplicationCommandOptionInteger,
				},
				{
					Name:        "second",
					Description: "The second (0-59)",
					Type:        discordgo.ApplicationCommandOptionInteger,
				},
				{
					Name:        "year",
					Description: "The year",
					Type:        discordgo.ApplicationCommandOptionInteger,
				},
				{
					Name:        "timezone",
					Description: "The timezone",
					Type:        discordgo.ApplicationCommandOptionString,
					Choices:     timezoneChoices(),
				},
			},
		},
	}
}

func floatPtr(v float64) *float64 { return &v }
