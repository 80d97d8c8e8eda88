package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"gameinfo-discord-bot/config"
	"gameinfo-discord-bot/internal/commands"
	"gameinfo-discord-bot/internal/database"
	"gameinfo-discord-bot/internal/discord"
	"gameinfo-discord-bot/internal/refresh"

	"github.com/leonelquinteros/gotext"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	log "github.com/sirupsen/logrus"
)

type BotMetrics struct {
	CommandsProcessed prometheus.Counter
	CommandsPerName   *prometheus.CounterVec
	CacheFileReloads  prometheus.Counter
	Mutex             sync.Mutex
}

var (
	metrics = NewBotMetrics()
)

func init() {
	config.InitConfig()
	setupLogging()
}

func NewBotMetrics() *BotMetrics {
	metrics := &BotMetrics{
		CommandsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gameinfo",
			Subsystem: "discord_bot",
			Name:      "commands_processed",
			Help:      "The total number of processed commands",
		}),
		CommandsPerName: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gameinfo",
				Subsystem: "discord_bot",
				Name:      "commands_per_name",
				Help:      "The total number of commands handled per command name",
			},
			[]string{"command"},
		),
		CacheFileReloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gameinfo",
			Subsystem: "discord_bot",
			Name:      "cache_file_external_edits",
			Help:      "The number of observed external edits of the cache file",
		}),
	}

	prometheus.MustRegister(metrics.CommandsProcessed)
	prometheus.MustRegister(metrics.CommandsPerName)
	prometheus.MustRegister(metrics.CacheFileReloads)

	return metrics
}

func main() {
	gotext.Configure("locales", strings.ToLower(config.GetString("lang")), "default")

	err := database.InitDB("data/bot.db")
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	LoadMetricsFromDB()

	cmds := commands.New()

	bot, err := discord.NewBot(discord.BotConfig{
		Token:   config.GetString("discord_bot_token"),
		GuildID: config.GetString("discord_guild_id"),
		Debug:   config.GetBool("debug"),
		Refresh: refresh.Config{
			Interval:    config.RefreshInterval(),
			MaxDuration: config.MaxRefreshDuration(),
		},
	}, cmds)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	bot.OnCommand = func(name string) {
		metrics.CommandsProcessed.Inc()
		metrics.CommandsPerName.WithLabelValues(name).Inc()
	}

	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}
	defer bot.Close()

	// The invite-link key in the cache file is edited by hand; surface those
	// edits in the logs and metrics.
	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	err = cmds.Store.WatchFile(watchCtx, func() {
		metrics.CacheFileReloads.Inc()
		log.Info("cache file changed on disk")
	})
	if err != nil {
		log.Errorf("Failed to watch cache file: %v", err)
	}

	go func() {
		for {
			time.Sleep(5 * time.Minute)
			SaveMetricsToDB()
		}
	}()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		SaveMetricsToDB()
		log.Println("Metrics saved, shutting down...")
		os.Exit(0)
	}()

	if err := launchMetricsAndHealthServer(config.GetInt("metrics_port")); err != nil {
		log.Fatalf("Failed to start metrics and health server: %v", err)
	}
}

func setupLogging() {
	log.SetLevel(log.ErrorLevel)
	if config.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}
	log.Debug("Starting discord bot...")
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func launchMetricsAndHealthServer(port int) error {
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", healthCheckHandler)

	log.Infof("Launching metrics and health endpoint on :%d", port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), http.DefaultServeMux)
}

func LoadMetricsFromDB() {
	metrics.Mutex.Lock()
	defer metrics.Mutex.Unlock()

	commandsProcessed, _ := database.GetMetric("commands_processed")
	cacheFileReloads, _ := database.GetMetric("cache_file_external_edits")

	metrics.CommandsProcessed.Add(commandsProcessed)
	metrics.CacheFileReloads.Add(cacheFileReloads)

	perName, _ := database.GetMetricsWithLabels("commands_per_name")
	for _, labelValues := range perName {
		for command, value := range labelValues {
			metrics.CommandsPerName.WithLabelValues(command).Add(value)
		}
	}

	log.Println("Metrics loaded from database.")
}

func SaveMetricsToDB() {
	metrics.Mutex.Lock()
	defer metrics.Mutex.Unlock()

	database.SaveMetric("commands_processed", "", "", GetMetricValue(metrics.CommandsProcessed))
	database.SaveMetric("cache_file_external_edits", "", "", GetMetricValue(metrics.CacheFileReloads))

	metricChan := make(chan prometheus.Metric, 64)
	go func() {
		metrics.CommandsPerName.Collect(metricChan)
		close(metricChan)
	}()

	for metric := range metricChan {
		metricProto := &dto.Metric{}
		if err := metric.Write(metricProto); err != nil {
			log.Printf("Failed to read CommandsPerName metric: %v", err)
			continue
		}
		var command string
		for _, label := range metricProto.Label {
			if label.GetName() == "command" {
				command = label.GetValue()
			}
		}
		database.SaveMetric("commands_per_name", "command", command, metricProto.Counter.GetValue())
	}

	log.Println("Metrics saved to database.")
}

func GetMetricValue(metric prometheus.Collector) float64 {
	var metricValue float64
	metricChan := make(chan prometheus.Metric, 1)
	metric.Collect(metricChan)
	close(metricChan)

	metricProto := &dto.Metric{}
	if err := (<-metricChan).Write(metricProto); err != nil {
		log.Printf("Failed to read metric value: %v", err)
		return 0
	}

	if metricProto.Counter != nil {
		metricValue = metricProto.Counter.GetValue()
	} else if metricProto.Gauge != nil {
		metricValue = metricProto.Gauge.GetValue()
	}
	return metricValue
}
