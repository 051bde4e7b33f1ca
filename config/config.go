package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the application's configuration
type Config struct {
	DashboardAPIURL         string        `mapstructure:"DASHBOARD_API_URL"`
	DashboardAPIToken       string        `mapstructure:"DASHBOARD_API_TOKEN"`
	EmbeddingLLMHost        string        `mapstructure:"EMBEDDING_LLM_HOST"`
	SimilarityThreshold     float64       `mapstructure:"SIMILARITY_THRESHOLD"`
	KnowledgeBasePath       string        `mapstructure:"KNOWLEDGE_BASE_PATH"`
	WebPort                 int           `mapstructure:"WEB_PORT"`
	LogLevel                string        `mapstructure:"LOG_LEVEL"`
	HTTPTimeout             time.Duration `mapstructure:"HTTP_TIMEOUT"`
	MaxRetries              int           `mapstructure:"MAX_RETRIES"`
	RetryDelaySeconds       time.Duration `mapstructure:"RETRY_DELAY_SECONDS"`
	RedisAddr               string        `mapstructure:"REDIS_ADDR"`
	AnswerCacheSize         int           `mapstructure:"ANSWER_CACHE_SIZE"`
	AnswerCacheTTL          time.Duration `mapstructure:"ANSWER_CACHE_TTL"`
	RateLimitMessagesPerMin int           `mapstructure:"RATE_LIMIT_MESSAGES_PER_MIN"`
	RateLimitBurstSize      int           `mapstructure:"RATE_LIMIT_BURST_SIZE"`
}

func Load(logger *zap.Logger) *Config {
	var config Config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("DASHBOARD_API_URL", "https://api.hostelconfig.impreserp.co.in/hostelapi/api/HostelBasic/DashboardSummary")
	viper.SetDefault("DASHBOARD_API_TOKEN", "")
	viper.SetDefault("EMBEDDING_LLM_HOST", "http://localhost:8081")
	viper.SetDefault("SIMILARITY_THRESHOLD", 0.60)
	viper.SetDefault("KNOWLEDGE_BASE_PATH", "knowledge.yaml")
	viper.SetDefault("WEB_PORT", 8080)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("HTTP_TIMEOUT", 30)
	viper.SetDefault("MAX_RETRIES", 5)
	viper.SetDefault("RETRY_DELAY_SECONDS", 2)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("ANSWER_CACHE_SIZE", 256)
	viper.SetDefault("ANSWER_CACHE_TTL", 24)
	viper.SetDefault("RATE_LIMIT_MESSAGES_PER_MIN", 20)
	viper.SetDefault("RATE_LIMIT_BURST_SIZE", 5)

	if err := viper.ReadInConfig(); err != nil {
		if logger != nil {
			logger.Warn("Could not read config file, using defaults/env vars", zap.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		// Config unmarshaling is critical - fail fast during bootstrap
		if logger != nil {
			logger.Fatal("Unable to decode config into struct", zap.Error(err))
		} else {
			fmt.Fprintf(os.Stderr, "FATAL: Unable to decode config into struct: %v\n", err)
			os.Exit(1)
		}
	}

	// Convert seconds/hours to proper time.Duration
	config.HTTPTimeout = config.HTTPTimeout * time.Second
	config.RetryDelaySeconds = config.RetryDelaySeconds * time.Second
	config.AnswerCacheTTL = config.AnswerCacheTTL * time.Hour

	return &config
}
