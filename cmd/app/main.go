// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"telegram-appointment-monitor/internal/application"
	"telegram-appointment-monitor/internal/config"
	"telegram-appointment-monitor/internal/domain/model"
	"telegram-appointment-monitor/internal/domain/ports/adapter"
	tele "telegram-appointment-monitor/internal/infra/adapters/telegram"
	"telegram-appointment-monitor/internal/infra/filestore"
	"telegram-appointment-monitor/internal/infra/logging"
	"telegram-appointment-monitor/internal/infra/metrics"
	red "telegram-appointment-monitor/internal/infra/redis"
	"telegram-appointment-monitor/internal/infra/web"
	"telegram-appointment-monitor/internal/usecase"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop bot when no token is set)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Pattern store ----
	defaults := defaultPatterns(cfg.Store.DefaultPatterns, logger)
	store := filestore.NewFilePatternRepo(cfg.Store.Path, defaults, logger)

	// ---- Use cases ----
	registryUC := usecase.NewPatternRegistryUseCase(store, logger)
	hint := cfg.Monitor.AppointmentHint
	if cfg.Monitor.DisableHint {
		hint = ""
	}
	monitorUC, err := usecase.NewMonitorUseCase(store, hint, logger)
	if err != nil {
		log.Fatalf("monitor: %v", err)
	}

	// ---- Facade ----
	facade := application.NewBotFacade(registryUC, monitorUC, cfg.Monitor.Channel, cfg.Monitor.CombineAlerts, logger)

	// ---- Redis (optional, command rate limiting only) ----
	var rateLimiter *red.RateLimiter
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisClient.Close()
		rateLimiter = red.NewRateLimiter(redisClient)
	} else {
		logger.Info().Msg("redis.url not set, command rate limiting disabled")
	}

	// ---- Telegram ----
	var (
		bot     adapter.TelegramBotAdapter
		realBot *tele.RealTelegramBotAdapter
	)
	if cfg.Bot.Token == "" {
		bot = tele.NewNoopBotAdapter(logger)
		logger.Warn().Msg("no bot token configured, running noop bot (no polling)")
	} else {
		realBot, err = tele.NewRealTelegramBotAdapter(&cfg.Bot, logger)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
		bot = realBot
	}
	notifier := usecase.NewAlertNotifierUseCase(bot, cfg.Bot.OperatorIDs, logger)

	if realBot != nil {
		if strings.ToLower(cfg.Bot.Mode) != "polling" {
			logger.Warn().Str("mode", cfg.Bot.Mode).Msg("bot mode not implemented, falling back to polling")
		}
		if err := realBot.SetMenuCommands(ctx); err != nil {
			logger.Warn().Err(err).Msg("could not register bot menu commands")
		}
		poller, err := tele.NewUpdatePoller(&cfg.Bot, cfg.Monitor.Channel, realBot, facade, notifier, rateLimiter, logger)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
		go func() {
			if err := poller.StartPolling(ctx); err != nil {
				logger.Error().Err(err).Msg("telegram polling stopped")
			}
		}()
		defer poller.StopPolling()
	}

	// Announce startup to the operator chats through the bot port; with
	// the noop bot this lands in the log instead of Telegram.
	if count, err := registryUC.Count(ctx); err == nil {
		notice := fmt.Sprintf("✅ Appointment monitor online — watching @%s with %d patterns.", cfg.Monitor.Channel, count)
		if err := notifier.Broadcast(ctx, notice); err != nil {
			logger.Warn().Err(err).Msg("startup notice not delivered")
		}
	}

	// ---- Ops HTTP server ----
	opsSrv := web.NewServer(registryUC, cfg.Monitor.Channel, cfg.Admin.APIKey, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Admin.Port),
		Handler: opsSrv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("ops server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("ops server error")
		}
	}()

	logger.Info().
		Str("channel", cfg.Monitor.Channel).
		Str("patterns_file", cfg.Store.Path).
		Str("bot_token", logging.Redact(cfg.Bot.Token, cfg.Runtime.Dev)).
		Str("version", version).
		Msg("appointment monitor started")

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("ops server shutdown")
	}
}

// defaultPatterns builds the fallback list from config, skipping invalid
// entries, and uses the built-in list when config provides none.
func defaultPatterns(texts []string, logger *zerolog.Logger) []model.Pattern {
	if len(texts) == 0 {
		return filestore.DefaultPatterns
	}
	out := make([]model.Pattern, 0, len(texts))
	for _, t := range texts {
		p, err := model.NewPattern(t)
		if err != nil {
			logger.Warn().Str("entry", t).Msg("skipping invalid default pattern")
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return filestore.DefaultPatterns
	}
	return out
}
