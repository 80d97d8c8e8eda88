package config

import (
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var once sync.Once

func InitConfig() {
	once.Do(func() {
		// .env is optional; real deployments use plain environment variables.
		_ = godotenv.Load()

		viper.AutomaticEnv()

		viper.BindEnv("metrics_port", "METRICS_PORT")
		viper.BindEnv("discord_bot_token", "DISCORD_BOT_TOKEN")
		viper.BindEnv("discord_guild_id", "DISCORD_GUILD_ID")
		viper.BindEnv("exchange_api_key", "EXCHANGE_API_KEY")
		viper.BindEnv("translate_api_url", "TRANSLATE_API_URL")
		viper.BindEnv("maint_source", "MAINT_SOURCE")
		viper.BindEnv("maint_api_url", "MAINT_API_URL")
		viper.BindEnv("cache_file", "CACHE_FILE")
		viper.BindEnv("cache_ttl_seconds", "CACHE_TTL_SECONDS")
		viper.BindEnv("refresh_interval_ms", "REFRESH_INTERVAL_MS")
		viper.BindEnv("max_refresh_duration_ms", "MAX_REFRESH_DURATION_MS")
		viper.BindEnv("debug", "DEBUG")
		viper.BindEnv("lang", "BOT_LANG")

		viper.SetDefault("metrics_port", 9090)
		viper.SetDefault("maint_source", "feed")
		viper.SetDefault("cache_file", "data/data.json")
		viper.SetDefault("cache_ttl_seconds", 12*60*60)
		viper.SetDefault("refresh_interval_ms", 20000)
		viper.SetDefault("max_refresh_duration_ms", 600000)
		viper.SetDefault("debug", false)
		viper.SetDefault("lang", "en")
	})
}

func GetString(key string) string {
	InitConfig()
	return viper.GetString(key)
}

func GetInt(key string) int {
	InitConfig()
	return viper.GetInt(key)
}

func GetBool(key string) bool {
	InitConfig()
	return viper.GetBool(key)
}

// RefreshInterval returns the live-update cadence for stock replies.
func RefreshInterval() time.Duration {
	return time.Duration(GetInt("refresh_interval_ms")) * time.Millisecond
}

// MaxRefreshDuration bounds how long a reply keeps self-updating.
func MaxRefreshDuration() time.Duration {
	return time.Duration(GetInt("max_refresh_duration_ms")) * time.Millisecond
}

// CacheTTL is the validity window for announcement caches with no natural end.
func CacheTTL() time.Duration {
	return time.Duration(GetInt("cache_ttl_seconds")) * time.Second
}
