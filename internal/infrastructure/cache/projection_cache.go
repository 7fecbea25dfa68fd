// Package cache keeps composed sale projections so receipts can be
// regenerated without another joined read of the store.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/edusabi/mobileFacul/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ProjectionCache is a projection cache with a lifecycle
type ProjectionCache interface {
	Put(ctx context.Context, p *sale.Projection) error
	Get(ctx context.Context, saleID int64) (*sale.Projection, error)
	Delete(ctx context.Context, saleID int64) error
	Close() error
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// Factory creates projection caches based on configuration
type Factory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// the in-memory cache. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a factory. ttl bounds how long a projection is kept.
func NewFactory(cfg config.RedisConfig, ttl time.Duration, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns a Redis cache when Redis is configured and reachable,
// and the in-memory cache otherwise.
func (f *Factory) Create(ctx context.Context) (ProjectionCache, error) {
	if !f.redisConfig.Enabled() {
		f.logger.Info("Redis not configured, using in-memory projection cache",
			zap.Duration("ttl", f.ttl))
		return NewMemoryProjectionCache(f.ttl), nil
	}

	c, err := NewRedisProjectionCache(ctx, RedisConfig{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, f.ttl)
	if err == nil {
		f.logger.Info("Using Redis projection cache",
			zap.String("addr", f.redisConfig.Addr()),
			zap.Duration("ttl", f.ttl))
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for projection cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory projection cache. "+
		"Receipts of sales composed by other instances will be read from the store.",
		zap.Error(err),
	)
	return NewMemoryProjectionCache(f.ttl), nil
}
