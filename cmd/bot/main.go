// Package main contains the entrypoint for the Telegram bot application.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"tg-analyst-bot/internal/ai"
	"tg-analyst-bot/internal/artifact"
	"tg-analyst-bot/internal/bot"
	"tg-analyst-bot/internal/bot/handlers"
	"tg-analyst-bot/internal/bot/tasks"
	"tg-analyst-bot/internal/config"
	"tg-analyst-bot/internal/database"
	"tg-analyst-bot/internal/logger"
	"tg-analyst-bot/internal/report"
	"tg-analyst-bot/internal/telegram"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger,
// db, analysis client, bot, scheduler), handles graceful shutdown, and
// returns an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.New(cfg.Log.Level, cfg.Log.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	if err := store.Ping(ctx); err != nil {
		log.Error("Database health check failed", "path", cfg.Database.Path, "error", err)
		return 1
	}

	artifacts, err := artifact.New(cfg.Artifacts.Dir, log)
	if err != nil {
		log.Error("Failed to prepare artifact directory", "dir", cfg.Artifacts.Dir, "error", err)
		return 1
	}

	engine, err := ai.New(ctx, cfg.AI, log)
	if err != nil {
		log.Error("Failed to initialize analysis client", "backend", cfg.AI.Backend, "error", err)
		return 1
	}

	hDeps := handlers.HandlerDeps{
		Logger: log,
		Config: cfg,
		Store:  store,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewMessageHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	me, err := tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	cfg.Telegram.BotInfo = config.BotInfo{ID: me.ID, Username: me.Username, FirstName: me.FirstName}
	log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	sender := telegram.NewSender(tg, log)
	materializer := report.NewMaterializer(store, artifacts, log)
	dispatcher := report.NewDispatcher(artifacts, sender, log)
	hDeps.Runner = report.NewRunner(materializer, dispatcher, engine, sender, cfg.Telegram.Messages, log)

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	if err := telegram.SetCommands(ctx, tg, log); err != nil {
		log.Warn("Failed to publish bot command menu", "error", err)
	}

	tDeps := tasks.TaskDeps{
		Logger:    log,
		Store:     store,
		Artifacts: artifacts,
		Config:    cfg,
	}
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, cfg, db, store, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
