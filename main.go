package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hostel-agent/bot"
	"hostel-agent/cache"
	"hostel-agent/config"
	"hostel-agent/dashboard"
	"hostel-agent/facts"
	"hostel-agent/history"
	"hostel-agent/knowledge"
	"hostel-agent/llmclient"
	"hostel-agent/web"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	// Initialize logger with default level to load config
	tempLogger, err := config.InitLogger("info")
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// .env is optional; viper picks the values up through AutomaticEnv
	if err := godotenv.Load(); err == nil {
		tempLogger.Info("Loaded environment from .env")
	}

	cfg := config.Load(tempLogger)

	// Re-initialize logger with configured level
	logger, err := config.InitLogger(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to re-initialize logger with configured level: %v\n", err)
		os.Exit(1)
	}
	defer config.Cleanup()

	// --- Build the fact table once; any failure here is fatal ---
	client := dashboard.NewClient(cfg, logger)
	summary, err := client.FetchSummary(ctx)
	if err != nil {
		logger.Fatal("Failed to fetch dashboard summary", zap.Error(err))
	}

	table := facts.BuildTable(summary)
	embedClient := llmclient.New(cfg, logger)
	engine, err := facts.New(ctx, cfg, table, embedClient.EmbeddingFunc(), logger)
	if err != nil {
		logger.Fatal("Failed to build fact engine", zap.Error(err))
	}

	kb, err := knowledge.Load(cfg.KnowledgeBasePath, logger)
	if err != nil {
		logger.Fatal("Failed to load knowledge base", zap.Error(err))
	}

	composer := bot.NewComposer(engine, kb, buildAnswerCache(ctx, cfg, logger), logger)
	hist := history.NewManager()

	webServer := web.NewServer(composer, hist, logger, cfg)

	// Create context that listens for interrupt signals
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	port := fmt.Sprintf(":%d", cfg.WebPort)
	logger.Info("Starting hostel chat agent",
		zap.String("port", port),
		zap.Int("facts", engine.Size()))
	if err := webServer.Start(ctx, port); err != nil {
		logger.Error("Web server error", zap.Error(err))
		os.Exit(1)
	}
}

// buildAnswerCache prefers the shared Redis cache when configured and
// reachable, otherwise falls back to the in-process LRU.
func buildAnswerCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) cache.Store {
	if cfg.RedisAddr != "" {
		store := cache.NewRedis(cfg.RedisAddr, cfg.AnswerCacheTTL, logger)
		if err := store.Ping(ctx); err == nil {
			logger.Info("Using Redis answer cache", zap.String("addr", cfg.RedisAddr))
			return store
		}
		logger.Warn("Redis unreachable, using in-memory answer cache", zap.String("addr", cfg.RedisAddr))
	}

	store, err := cache.NewLRU(cfg.AnswerCacheSize)
	if err != nil {
		logger.Fatal("Failed to create answer cache", zap.Error(err))
	}
	return store
}
