package discord

import (
	"bytes"
	"context"
	"runtime"

	"gameinfo-discord-bot/internal/commands"
	"gameinfo-discord-bot/internal/refresh"
	"gameinfo-discord-bot/lib/translation"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// NewBot creates a new discord bot
func NewBot(c BotConfig, cmds *commands.Commands) (*Bot, error) {
	session, err := discordgo.New("Bot " + c.Token)
	if err != nil {
		return nil, errors.Wrap(err, "could not create discord session")
	}

	session.LogLevel = discordgo.LogWarning
	if c.Debug {
		session.LogLevel = discordgo.LogDebug
	}

	return &Bot{
		Session:  session,
		Config:   c,
		Commands: cmds,
	}, nil
}

// Start opens the gateway connection and registers the slash commands.
func (b *Bot) Start() error {
	b.Session.AddHandler(b.handleInteraction)
	b.Session.Identify.Intents = discordgo.IntentsGuilds

	if err := b.Session.Open(); err != nil {
		return errors.Wrap(err, "could not open discord session")
	}

	for _, def := range commandDefinitions() {
		created, err := b.Session.ApplicationCommandCreate(b.Session.State.User.ID, b.Config.GuildID, def)
		if err != nil {
			return errors.Wrapf(err, "could not register command /%s", def.Name)
		}
		b.registered = append(b.registered, created)
	}

	log.Infof("discord bot connected as %s, %d commands registered",
		b.Session.State.User.Username, len(b.registered))
	return nil
}

// Close shuts the gateway connection down.
func (b *Bot) Close() {
	if err := b.Session.Close(); err != nil {
		log.Errorf("failed to close discord session: %v", err)
	}
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			stackBuf := make([]byte, 1024)
			stackSize := runtime.Stack(stackBuf, false)
			stackTrace := bytes.TrimRight(stackBuf[:stackSize], "\x00")
			log.Errorf("Recovered from panic: %v\nStack trace: %s", r, stackTrace)
			b.followUpText(i, translation.Translate("An error occurred while processing your request."))
		}
	}()

	data := i.ApplicationCommandData()
	log.Debugf("received command: /%s", data.Name)

	// Every command talks to an upstream; acknowledge first so the 3 second
	// interaction deadline never bites.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		log.Errorf("failed to defer interaction: %v", err)
		return
	}

	if b.OnCommand != nil {
		b.OnCommand(data.Name)
	}

	ctx := context.Background()

	switch data.Name {
	case "maint":
		b.followUpEmbed(i, b.Commands.CommandMaint(ctx), nil)
	case "pll":
		b.followUpEmbed(i, b.Commands.CommandPLL(ctx), nil)
	case "wtinv":
		embed, buttons, err := b.Commands.CommandWTInvite()
		if err != nil {
			log.Error(err)
			b.followUpText(i, translation.Translate("An error occurred while processing your request."))
			return
		}
		b.followUpEmbed(i, embed, buttons)
	case "stock":
		b.runStock(ctx, i, optionString(data, "symbol", commands.DefaultStockSymbol))
	case "etf":
		b.runETF(ctx, i)
	case "exchange":
		embed, err := b.Commands.CommandExchange(ctx,
			optionString(data, "from", "USD"),
			optionString(data, "to", "KRW"),
			optionFloat(data, "amount", 1))
		if err != nil {
			log.Error(err)
			b.followUpText(i, translation.Translate("Failed to fetch rate data. Please try again later."))
			return
		}
		b.followUpEmbed(i, embed, nil)
	case "rate":
		b.followUpEmbed(i, b.Commands.CommandRate(ctx,
			optionString(data, "from", "USD"),
			optionFloat(data, "amount", 1)), nil)
	case "convertstamp":
		embed, err := b.Commands.CommandConvertStamp(
			optionString(data, "timestamp", ""),
			optionString(data, "timezone", commands.DefaultTimezone))
		if err != nil {
			log.Error(err)
			b.followUpText(i, translation.Translate("An error occurred while converting the timestamp."))
			return
		}
		b.followUpEmbed(i, embed, nil)
	case "converttime":
		embed, err := b.Commands.CommandConvertTime(
			optionInt(data, "year", 0),
			optionInt(data, "month", 1),
			optionInt(data, "day", 1),
			optionInt(data, "hour", 0),
			optionInt(data, "minute", 0),
			optionInt(data, "second", 0),
			optionString(data, "timezone", commands.DefaultTimezone))
		if err != nil {
			log.Error(err)
			b.followUpText(i, translation.Translate("An error occurred while converting the time."))
			return
		}
		b.followUpEmbed(i, embed, nil)
	default:
		b.followUpText(i, translation.Translate("Unknown command."))
	}
}

// runStock sends the first quote embed and, while the market is open, keeps
// editing the reply in place on the configured cadence.
func (b *Bot) runStock(ctx context.Context, i *discordgo.InteractionCreate, symbol string) {
	total := b.Config.Refresh.TotalUpdates()

	embed, state, err := b.Commands.CommandStock(ctx, symbol, 0, total)
	if err != nil {
		log.Error(err)
		b.followUpText(i, translation.Translate("Failed to fetch stock data. Please try again later."))
		return
	}
	b.followUpEmbed(i, embed, nil)

	if state.Terminal() {
		return
	}

	go refresh.Run(context.Background(), b.Config.Refresh, func(ctx context.Context, count, total int) bool {
		embed, state, err := b.Commands.CommandStock(ctx, symbol, count, total)
		if err != nil {
			// Degraded tick: keep the previous content, try again next tick.
			log.Errorf("stock refresh tick failed: %v", err)
			return false
		}
		b.editReplyEmbed(i, embed)
		return state.Terminal()
	})
}

func (b *Bot) runETF(ctx context.Context, i *discordgo.InteractionCreate) {
	total := b.Config.Refresh.TotalUpdates()

	embed, state, err := b.Commands.CommandETF(ctx, 0, total)
	if err != nil {
		log.Error(err)
		b.followUpText(i, translation.Translate("Failed to fetch ETF data. Please try again later."))
		return
	}
	b.followUpEmbed(i, embed, nil)

	if state.Terminal() {
		return
	}

	go refresh.Run(context.Background(), b.Config.Refresh, func(ctx context.Context, count, total int) bool {
		embed, state, err := b.Commands.CommandETF(ctx, count, total)
		if err != nil {
			log.Errorf("etf refresh tick failed: %v", err)
			return false
		}
		b.editReplyEmbed(i, embed)
		return state.Terminal()
	})
}

func (b *Bot) followUpEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	_, err := b.Session.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		log.Errorf("failed to send follow-up: %v", err)
	}
}

func (b *Bot) followUpText(i *discordgo.InteractionCreate, text string) {
	_, err := b.Session.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: text,
	})
	if err != nil {
		log.Errorf("failed to send follow-up: %v", err)
	}
}

func (b *Bot) editReplyEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	_, err := b.Session.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		log.Errorf("failed to edit reply: %v", err)
	}
}
