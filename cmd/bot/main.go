package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MysticalWizard/electricalwizard/internal/config"
	"github.com/MysticalWizard/electricalwizard/internal/discord"
	"github.com/MysticalWizard/electricalwizard/internal/discord/commands"
	"github.com/MysticalWizard/electricalwizard/internal/logger"
	"github.com/MysticalWizard/electricalwizard/internal/store"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	lg := logger.New(cfg.LogLevel, cfg.LogPretty)
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	st, err := store.Connect(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
	cancel()
	if err != nil {
		lg.Fatal("connect to mongodb", logger.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			lg.Error("close mongodb", logger.Error(err))
		}
	}()
	lg.Info("connected to mongodb", logger.String("database", cfg.MongoDatabase))

	bot, err := discord.New(cfg, lg, st)
	if err != nil {
		lg.Fatal("create bot", logger.Error(err))
	}

	deps := commands.Deps{
		Log:    lg,
		Quotes: st.Quotes(),
		Chains: bot.Chains(),
		Users:  st.Users(),
		Guilds: st.Guilds(),
		Status: st.Status(),
	}
	if err := bot.Register(commands.All(deps)...); err != nil {
		lg.Fatal("register commands", logger.Error(err))
	}

	if err := bot.Start(ctx); err != nil {
		lg.Fatal("run bot", logger.Error(err))
	}
	lg.Info("bot stopped")
}
