package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ABDULS21985/vivaexcel-sub014/internal/cache"
	"github.com/ABDULS21985/vivaexcel-sub014/internal/config"
	"github.com/ABDULS21985/vivaexcel-sub014/internal/handler"
	"github.com/ABDULS21985/vivaexcel-sub014/internal/llm"
	"github.com/ABDULS21985/vivaexcel-sub014/internal/logger"
	"github.com/ABDULS21985/vivaexcel-sub014/internal/repository"
	"github.com/ABDULS21985/vivaexcel-sub014/internal/router"
	"github.com/ABDULS21985/vivaexcel-sub014/internal/service"
	"github.com/ABDULS21985/vivaexcel-sub014/seeds"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	ctx := context.Background()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse database config")
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("database not ready")
	}
	log.Info().Msg("connected to PostgreSQL")

	// ------------ Run Migrations ---------------
	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := runMigration(ctx, pool, "migrations/create_tables.down.sql"); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate down")
		}
		log.Info().Msg("migrations dropped")
		return
	}

	if err := runMigration(ctx, pool, "migrations/create_tables.up.sql"); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate up")
	}

	// ------------ Setup Seed Data ---------------
	if err := checkSeed(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("failed to check seed")
	}

	// ------------ Redis ---------------
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	resultCache := cache.NewCache(redisClient, cfg.SimilarCacheTTL, cfg.AICacheTTL)
	if err := resultCache.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, recommendations will always recompute")
	} else {
		log.Info().Msg("connected to Redis")
	}

	// ---------------- Service --------------------
	repo := repository.New(pool)
	completer := llm.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.LLMTimeout)
	svc := service.NewService(repo, resultCache, completer, cfg.LLMTimeout, log)
	h := handler.NewHandler(svc)

	// ---------------- Server --------------------
	log.Info().Str("addr", cfg.Addr()).Msg("server listening")
	if err := http.ListenAndServe(cfg.Addr(), router.Setup(h)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Info().Int("attempt", i+1).Msg("waiting for database")
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func runMigration(ctx context.Context, pool *pgxpool.Pool, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return fmt.Errorf("check products count: %w", err)
	}
	if count > 0 {
		log.Info().Int("products", count).Msg("database already seeded, skipping")
		return nil
	}
	return seeds.Setup(ctx, pool)
}
