// Command bot runs the channel relay bot: it resolves a user's
// entitled channels from the content store and relays their requests
// into the chosen channel through the bot gateway.
//
// Configuration comes from the environment (see internal/config); a
// local .env file is loaded when present. Missing required settings
// terminate startup.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/postbot/internal/app"
)

func main() {
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("bot terminated", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
