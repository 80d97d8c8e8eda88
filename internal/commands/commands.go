// Package commands implements the bot's slash commands. Each command runs the
// fetch/cache/render pipeline for its source and always produces an embed,
// falling back to a fixed "unavailable" presentation instead of surfacing
// errors to the chat layer.
package commands

import (
	"gameinfo-discord-bot/config"
	"gameinfo-discord-bot/internal/cache"
	"gameinfo-discord-bot/internal/exchange"
	"gameinfo-discord-bot/internal/feed"
	"gameinfo-discord-bot/internal/lodestone"
	"gameinfo-discord-bot/internal/maintapi"
	"gameinfo-discord-bot/internal/quote"
	"gameinfo-discord-bot/internal/translate"
)

// Embed colors, matching the palette of the original bot config.
const (
	ColorSuccess  = 0x43B581
	ColorError    = 0xED4245
	ColorBot      = 0x5865F2
	ColorUpward   = 0xE74C3C
	ColorDownward = 0x3498DB
)

const lodestoneURL = "https://jp.finalfantasyxiv.com/lodestone"

// Commands bundles the upstream clients and cache policies behind the
// command handlers.
type Commands struct {
	Store    *cache.Store
	Quotes   *quote.Client
	Exchange *exchange.Client

	maintPolicy *cache.Policy
	pllPolicy   *cache.Policy
}

// New wires the command set from configuration.
func New() *Commands {
	store := cache.NewStore(config.GetString("cache_file"))
	feeds := feed.NewClient()
	translator := translate.NewClient(config.GetString("translate_api_url"))

	var maintSource cache.Source
	if config.GetString("maint_source") == "api" {
		maintSource = maintapi.NewSource(config.GetString("maint_api_url"), translator)
	} else {
		maintSource = &lodestone.MaintSource{Feed: feeds, Translator: translator}
	}

	return &Commands{
		Store:    store,
		Quotes:   quote.NewClient(),
		Exchange: exchange.NewClient(config.GetString("exchange_api_key")),
		maintPolicy: &cache.Policy{
			Store:  store,
			Key:    cache.MaintInfoKey,
			Source: maintSource,
		},
		pllPolicy: &cache.Policy{
			Store: store,
			Key:   cache.PLLInfoKey,
			Source: &lodestone.PLLSource{
				Feed: feeds,
				TTL:  config.CacheTTL(),
			},
			CacheFirst: true,
		},
	}
}
