package setup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/analysis"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/config"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/executor"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/store"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/stream/redis"
	"github.com/rs/zerolog"
)

type Config struct {
	LogLevel      string
	APIPort       string
	Database      store.Config
	RedisAddr     string
	RedisPassword string
	Stream        string
	StreamGroup   string
	ConsumerName  string
	SweepInterval time.Duration
	SweepWorkers  int
	LexiconPath   string
}

type Dependencies struct {
	Store    *store.DB
	Analyzer *analysis.Analyzer
	Executor *executor.Executor
	Logger   *zerolog.Logger
}

// Close releases the database pool.
func (d *Dependencies) Close() {
	if d.Store != nil {
		d.Store.Close()
	}
}

func LoadConfig() *Config {
	return &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),
		APIPort:  getEnv("API_PORT", "18081"),
		Database: store.Config{
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnv("DATABASE_PORT", "5432"),
			User:     getEnv("DATABASE_USER", "postgres"),
			Password: getEnv("DATABASE_PASSWORD", "postgres"),
			Database: getEnv("DATABASE_NAME", "conversations"),
			SSLMode:  getEnv("DATABASE_SSLMODE", "disable"),
		},
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		Stream:        getEnv("ANALYSIS_STREAM", redis.DefaultStream),
		StreamGroup:   getEnv("ANALYSIS_GROUP", redis.DefaultGroup),
		ConsumerName:  getEnv("HOSTNAME", "analyzer"),
		SweepInterval: getEnvDuration("SWEEP_INTERVAL", 24*time.Hour),
		SweepWorkers:  getEnvInt("SWEEP_WORKERS", executor.DefaultWorkers),
		LexiconPath:   getEnv(config.LexiconPathEnv, config.DefaultLexiconPath),
	}
}

// NewAnalyzer builds the scoring engine from the lexicon file. A missing file
// falls back to the bundled lexicon; an invalid one is an error.
func NewAnalyzer(cfg *Config, logger *zerolog.Logger) (*analysis.Analyzer, error) {
	lexiconCfg, err := config.LoadLexiconFile(cfg.LexiconPath)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn().Str("path", cfg.LexiconPath).Msg("Lexicon file not found, using bundled lexicon")
		return analysis.NewAnalyzer(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}

	logger.Info().Str("path", cfg.LexiconPath).Msg("Lexicon loaded")
	return analysis.NewAnalyzer(analysis.WithLexicon(lexiconCfg.Lexicon)), nil
}

// Wire connects to PostgreSQL, applies the schema and builds the executor.
func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	analyzer, err := NewAnalyzer(cfg, logger)
	if err != nil {
		return nil, err
	}

	db, err := store.New(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Database).
		Msg("Database connected")

	exec := executor.NewExecutor(db, analyzer, cfg.SweepWorkers, logger)

	return &Dependencies{
		Store:    db,
		Analyzer: analyzer,
		Executor: exec,
		Logger:   logger,
	}, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		value = defaultValue
	}

	return value
}
