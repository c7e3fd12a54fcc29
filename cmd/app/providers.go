package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/adampierre-jpg/kettlebell-vbt/internal/domain/analysis"
	"github.com/adampierre-jpg/kettlebell-vbt/internal/infra/config"
	"github.com/adampierre-jpg/kettlebell-vbt/internal/infra/historyrepo"
	"github.com/adampierre-jpg/kettlebell-vbt/internal/infra/llm/gemini"
	"github.com/adampierre-jpg/kettlebell-vbt/internal/infra/resultcache"
	"github.com/adampierre-jpg/kettlebell-vbt/internal/infra/videostore"
)

func provideAnalysisConfig(cfg *config.Config) analysis.Config {
	return analysis.Config{
		Model:         cfg.LLM.Model,
		Temperature:   cfg.LLM.Temperature,
		JSONHint:      cfg.LLM.JSONHint,
		MaxVideoBytes: cfg.Analysis.MaxVideoBytes,
		CacheTTL:      cfg.Analysis.CacheTTL,
		HistoryLimit:  cfg.Analysis.HistoryLimit,
	}
}

func provideGeminiClient(cfg *config.Config) (*gemini.Client, error) {
	return gemini.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
}

func provideHistoryRepository(cfg *config.Config, logger *slog.Logger) analysis.HistoryRepository {
	fallback := historyrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.History.Postgres.DSN)
	if dsn == "" {
		logger.Info("history postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.History.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.History.Postgres.MaxConns
	}
	if cfg.History.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.History.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("history postgres repository enabled")
	return historyrepo.NewPostgresRepository(pool)
}

func provideResultCache(cfg *config.Config, logger *slog.Logger) analysis.ResultCache {
	if cfg.Cache.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return resultcache.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return resultcache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		} else {
			logger.Info("valkey result cache enabled", "addr", cfg.Cache.Addr)
			return resultcache.NewValkeyStore(client, "vbt")
		}
	}
	return resultcache.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideVideoStore(cfg *config.Config, logger *slog.Logger) analysis.VideoStore {
	if !cfg.Archive.Enabled {
		return nil
	}
	store, err := videostore.NewS3Storage(
		cfg.Archive.Endpoint,
		cfg.Archive.AccessKey,
		cfg.Archive.SecretKey,
		cfg.Archive.Bucket,
		cfg.Archive.Region,
		logger,
	)
	if err != nil {
		logger.Error("failed to initialize video archive, archiving disabled", "error", err)
		return nil
	}
	logger.Info("video archive enabled", "bucket", cfg.Archive.Bucket)
	return store
}
