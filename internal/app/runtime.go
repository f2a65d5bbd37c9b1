package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"telegram-codeforces-bot/internal/cache"
	"telegram-codeforces-bot/internal/codeforces"
	"telegram-codeforces-bot/internal/config"
	"telegram-codeforces-bot/internal/recommend"
	"telegram-codeforces-bot/internal/storage"
)

// NewLogger builds the process logger for LOG_MODE.
func NewLogger(mode string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "dev", "development":
		cfg = zap.NewDevelopmentConfig()
	default:
		cfg = zap.NewProductionConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Sugar(), nil
}

// Runtime owns the long-lived clients of one process.
type Runtime struct {
	cfg    config.Config
	logger *zap.SugaredLogger

	firestore *firestore.Client
	redis     *redis.Client

	archive *codeforces.Client
	store   *storage.Store
	engine  *recommend.Engine
}

func Open(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) (*Runtime, error) {
	fireClient, err := firestore.NewClient(ctx, cfg.FirestoreProject)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	rt := &Runtime{
		cfg:       cfg,
		logger:    logger,
		firestore: fireClient,
		archive:   codeforces.NewClient(cfg.CodeforcesAPIURL, time.Duration(cfg.CodeforcesTimeoutSec)*time.Second),
		store:     storage.NewStore(fireClient, time.Duration(cfg.CatalogCacheSec)*time.Second, logger.Named("storage")),
	}

	var solved recommend.SolvedCache
	if cfg.RedisAddr != "" {
		rt.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rt.redis.Ping(ctx).Err(); err != nil {
			logger.Warnw("redis unavailable, solved-set cache disabled", "addr", cfg.RedisAddr, "error", err)
			_ = rt.redis.Close()
			rt.redis = nil
		} else {
			solved = cache.NewSolvedCache(rt.redis, time.Duration(cfg.SolvedCacheSec)*time.Second)
			logger.Infow("solved-set cache enabled", "addr", cfg.RedisAddr)
		}
	}

	rt.engine = recommend.NewEngine(rt.store, rt.archive, solved, logger.Named("recommend"))
	return rt, nil
}

func (rt *Runtime) Close() error {
	var errs []error
	if rt.redis != nil {
		if err := rt.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis client: %w", err))
		}
	}
	if err := rt.firestore.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close firestore client: %w", err))
	}
	return errors.Join(errs...)
}
