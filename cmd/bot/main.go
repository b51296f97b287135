package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/korjavin/maaqo/pkg/catalog"
	"github.com/korjavin/maaqo/pkg/commands"
	"github.com/korjavin/maaqo/pkg/config"
	"github.com/korjavin/maaqo/pkg/cookbook"
	"github.com/korjavin/maaqo/pkg/favorites"
	"github.com/korjavin/maaqo/pkg/logger"
	"github.com/korjavin/maaqo/pkg/messages"
	"github.com/korjavin/maaqo/pkg/openai"
	"github.com/korjavin/maaqo/pkg/pantry"
	"github.com/korjavin/maaqo/pkg/preferences"
	"github.com/korjavin/maaqo/pkg/state"
	"github.com/korjavin/maaqo/pkg/storage"
	"github.com/korjavin/maaqo/pkg/telegram"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.Global.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	logger.SetGlobal(logger.NewWithOutput("", logger.ParseLevel(cfg.LogLevel), os.Stdout))
	log := logger.Global
	log.Info("Starting Maaqo bot...")
	log.Info("Configuration loaded: %+v", cfg.Redacted())

	// Initialize storage
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		log.Error("Failed to initialize storage: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	// Initialize services
	catalogService := catalog.New(store, log.With("catalog"))
	if _, err := catalogService.EnsureSeeded(); err != nil {
		log.Error("Failed to seed recipe catalog: %v", err)
		os.Exit(1)
	}
	if cfg.CatalogFile != "" {
		recipes, err := catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			log.Error("Failed to load catalog file: %v", err)
			os.Exit(1)
		}
		res, err := catalogService.Merge(recipes)
		if err != nil {
			log.Error("Failed to merge catalog file: %v", err)
			os.Exit(1)
		}
		log.Info("Catalog file %s: %d added, %d updated, %d skipped", cfg.CatalogFile, res.Added, res.Updated, res.Skipped)
	}

	pantryService := pantry.New(store, log.With("pantry"))
	favoriteService := favorites.New(store, log.With("favorites"))
	preferenceService := preferences.New(store)
	cookbookService := cookbook.New(catalogService, pantryService, preferenceService, favoriteService, log.With("cookbook"))

	deps := commands.Deps{
		Cookbook:      cookbookService,
		Catalog:       catalogService,
		Pantry:        pantryService,
		Favorites:     favoriteService,
		Preferences:   preferenceService,
		State:         state.New(),
		Store:         store,
		Admins:        cfg.AdminChatIDs,
		FeaturedLimit: cfg.FeaturedLimit,
		Logger:        log.With("commands"),
	}

	// OpenAI is optional: without a key, ingredients are split locally and
	// /import is disabled.
	if cfg.OpenAIEnabled() {
		openaiClient := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIAPIBase, cfg.OpenAIModel, cfg.OpenAIRate)
		deps.Parser = openaiClient
		deps.Importer = catalog.NewImporter(catalogService, openaiClient)
		deps.Messages = messages.New(openaiClient, log.With("messages"))
	} else {
		log.Warn("OPENAI_API_KEY not set; recipe import and smart ingredient parsing are disabled")
		deps.Messages = messages.New(nil, log.With("messages"))
	}

	router := commands.New(deps)

	// Initialize Telegram bot
	bot, err := telegram.New(cfg.BotToken, router)
	if err != nil {
		log.Error("Failed to initialize Telegram bot: %v", err)
		os.Exit(1)
	}

	if err := bot.SetCommands(router.Commands()); err != nil {
		log.Warn("%v", err)
	}

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run the bot and BadgerDB garbage collection until shutdown
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return store.RunGCLoop(ctx, cfg.GCInterval) })
	g.Go(func() error { return bot.Start(ctx) })

	log.Info("Bot is now running. Press CTRL-C to exit.")
	if err := g.Wait(); err != nil {
		log.Error("Error running bot: %v", err)
	}
	log.Info("Shutting down...")
}
