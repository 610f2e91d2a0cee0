// Command coinwatch runs a Telegram bot that looks up current crypto prices
// from CoinGecko: /price renders a ranked overview with one button per asset,
// and each button expands into a detail view served from the cached snapshot.
//
// Usage:
//
//	coinwatch --config config.yaml
//
// Required environment variables (a .env file is honored):
//
//	TELEGRAM_TOKEN — Telegram bot API token
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"coinwatch/config"
	"coinwatch/internal/clients"
	"coinwatch/internal/services/conversation"
	"coinwatch/internal/storage/session"
	"coinwatch/internal/transport/telegram"
)

func main() {
	// a missing .env is fine, credentials may come from the real environment
	_ = godotenv.Load()

	conf, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	client := clients.NewCoinGeckoClient(conf.ProviderURL, conf.FetchTimeout)
	store := session.NewStore()
	controller := conversation.NewController(client, store, conf.Assets, conf.Currency, logger)

	bot, err := telegram.NewBot(conf.TelegramToken, controller, logger)
	if err != nil {
		logger.Fatal("failed to create telegram bot", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bot.Run(ctx)
	})

	logger.Info("coinwatch started",
		zap.Int("assets", len(conf.Assets)),
		zap.String("currency", conf.Currency))

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("bot stopped", zap.Error(err))
	}

	logger.Info("shutdown complete")
}
