package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/heartmarshall/postbot/internal/adapter/notion"
	"github.com/heartmarshall/postbot/internal/adapter/telegram"
	"github.com/heartmarshall/postbot/internal/config"
	"github.com/heartmarshall/postbot/internal/service/access"
	"github.com/heartmarshall/postbot/internal/transport/bot"
)

// pollRetryDelay is how long the loop backs off after a failed
// getUpdates call before polling again.
const pollRetryDelay = 3 * time.Second

// Run is the application entry point. It loads configuration,
// initializes the logger, wires the store reader, resolver, gateway
// and controller, and polls the gateway for updates until ctx is
// cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting bot",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Duration("cache_ttl", cfg.Cache.TTL()),
	)

	notionClient := notion.NewClient(cfg.Notion.Token, cfg.Notion.Timeout, logger)
	directory := notion.NewDirectory(notionClient, cfg.Notion.ChannelDatabaseID, cfg.Notion.PeopleDatabaseID, logger)
	resolver := access.NewService(directory, cfg.Cache.TTL(), cfg.Cache.UserCapacity, logger)

	gateway := telegram.NewClient(cfg.Bot.Token, cfg.Bot.PollTimeout, cfg.Bot.SendRate, cfg.Bot.SendBurst, logger)
	controller := bot.NewController(gateway, resolver, logger)

	if cfg.Ops.Addr != "" {
		go serveOps(ctx, cfg.Ops.Addr, logger)
	}

	return pollLoop(ctx, gateway, controller, logger)
}

// pollLoop long-polls the gateway and dispatches each update to the
// controller on its own goroutine; the controller serializes per
// conversation. Poll failures are logged and retried after a short
// delay, never fatal.
func pollLoop(ctx context.Context, gateway *telegram.Client, controller *bot.Controller, logger *slog.Logger) error {
	var offset int64

	for {
		updates, err := gateway.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("stopping bot")
				return nil
			}
			logger.Warn("poll failed", slog.String("error", err.Error()))
			select {
			case <-ctx.Done():
				logger.Info("stopping bot")
				return nil
			case <-time.After(pollRetryDelay):
			}
			continue
		}

		for _, upd := range updates {
			if upd.ID >= offset {
				offset = upd.ID + 1
			}
			go controller.HandleUpdate(ctx, upd)
		}

		if err := ctx.Err(); err != nil {
			logger.Info("stopping bot")
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}
