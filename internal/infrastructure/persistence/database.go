package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/edusabi/mobileFacul/internal/infrastructure/config"
	"github.com/edusabi/mobileFacul/internal/infrastructure/logger"
	"github.com/edusabi/mobileFacul/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database is the gorm handle of the sale store together with its pool
type Database struct {
	DB   *gorm.DB
	pool *sql.DB
}

// DatabaseOptions configures Connect and Open
type DatabaseOptions struct {
	// Logger receives SQL logs; nil discards them
	Logger *zap.Logger
	// Tracing installs otelgorm spans when enabled
	Tracing telemetry.DBTracingConfig
}

// Connect opens the PostgreSQL pool described by cfg
func Connect(cfg *config.DatabaseConfig, opts DatabaseOptions) (*Database, error) {
	return Open(postgres.Open(cfg.DSN()), cfg, opts)
}

// Open wraps dialector with logging, tracing and pool limits, then pings it.
// Tests pass sqlite or sqlmock dialectors.
func Open(dialector gorm.Dialector, cfg *config.DatabaseConfig, opts DatabaseOptions) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger(cfg, opts),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := telemetry.NewDBTracingPlugin(opts.Tracing, opts.Logger).Register(db); err != nil {
		return nil, fmt.Errorf("register database tracing: %w", err)
	}

	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database pool: %w", err)
	}
	tunePool(pool, cfg)
	if err := pool.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Database{DB: db, pool: pool}, nil
}

func gormLogger(cfg *config.DatabaseConfig, opts DatabaseOptions) gormlogger.Interface {
	if opts.Logger == nil {
		return gormlogger.Discard
	}
	return logger.NewGormLogger(opts.Logger, logger.GormConfig{
		Level:         cfg.LogLevel,
		SlowThreshold: opts.Tracing.SlowQueryThresh,
	})
}

// tunePool applies the pool limits; zero counts keep the driver defaults
func tunePool(pool *sql.DB, cfg *config.DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		pool.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		pool.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	pool.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	pool.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
}

// Ping checks that a connection can be reached within ctx
func (d *Database) Ping(ctx context.Context) error {
	return d.pool.PingContext(ctx)
}

// Close closes the pool
func (d *Database) Close() error {
	return d.pool.Close()
}

// PoolStats is the part of sql.DBStats reported by the health endpoint
type PoolStats struct {
	MaxOpen      int           `json:"max_open_connections"`
	Open         int           `json:"open_connections"`
	InUse        int           `json:"in_use"`
	Idle         int           `json:"idle"`
	WaitCount    int64         `json:"wait_count"`
	WaitDuration time.Duration `json:"wait_duration"`
}

// Stats samples the pool
func (d *Database) Stats() PoolStats {
	s := d.pool.Stats()
	return PoolStats{
		MaxOpen:      s.MaxOpenConnections,
		Open:         s.OpenConnections,
		InUse:        s.InUse,
		Idle:         s.Idle,
		WaitCount:    s.WaitCount,
		WaitDuration: s.WaitDuration,
	}
}
