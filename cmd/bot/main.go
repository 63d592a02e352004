package main

import (
	"go.uber.org/zap"

	"github.com/xaenox/guardian-bot/internal/bot"
	"github.com/xaenox/guardian-bot/internal/classifier"
	"github.com/xaenox/guardian-bot/internal/storage"
	"github.com/xaenox/guardian-bot/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize config store
	var store storage.ConfigStore
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory config store")
		store = storage.NewMemoryStore()
	} else {
		logger.Info("Using PostgreSQL config store")
		store, err = storage.NewPostgresStore(storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to initialize config store", zap.Error(err))
		}
	}
	defer store.Close()

	// Initialize classifier backend
	var clf classifier.Classifier
	switch cfg.Classifier.Provider {
	case "openai":
		logger.Info("Using OpenAI moderation backend", zap.String("model", cfg.OpenAI.Model))
		clf = classifier.NewOpenAIClassifier(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)
	default:
		logger.Info("Using Mistral moderation backend", zap.String("model", cfg.Mistral.Model))
		clf = classifier.NewMistralClassifier(cfg.Mistral.APIKey, cfg.Mistral.Model, logger)
	}

	// Initialize bot
	b, err := bot.New(bot.Options{
		Token:            cfg.Telegram.Token,
		Name:             cfg.Bot.Name,
		Version:          cfg.Bot.Version,
		Workers:          cfg.Classifier.Workers,
		ClassifyTimeout:  cfg.Classifier.Timeout,
		DefaultRoleID:    cfg.Moderation.DefaultRole(),
		DefaultChannelID: cfg.Moderation.DefaultChannel(),
	}, store, clf, logger)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	// Start the bot
	if err := b.Start(); err != nil {
		logger.Fatal("Bot error", zap.Error(err))
	}
}
