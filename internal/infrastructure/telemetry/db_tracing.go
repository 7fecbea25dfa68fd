package telemetry

import (
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const startedAtKey = "pos:query_started_at"

// DBTracingConfig controls the otelgorm spans of the sale store.
type DBTracingConfig struct {
	Enabled          bool
	SlowQueryThresh  time.Duration
	DBSystem         string
	WithoutVariables bool // keep bound values out of db.statement
}

// DefaultDBTracingConfig is disabled, postgres, 200ms slow threshold and no bound values.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThresh:  200 * time.Millisecond,
		DBSystem:         "postgresql",
		WithoutVariables: true,
	}
}

// DBTracingPlugin adds otelgorm spans and flags slow statements on them.
type DBTracingPlugin struct {
	cfg    DBTracingConfig
	logger *zap.Logger
}

func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = DefaultDBTracingConfig().SlowQueryThresh
	}
	return &DBTracingPlugin{cfg: cfg, logger: logger}
}

// Register installs the plugin on db. Disabled configs register nothing.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.cfg.Enabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.cfg.DBSystem)}
	if p.cfg.WithoutVariables {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	cb := db.Callback()
	if err := errors.Join(
		cb.Create().Before("gorm:create").Register("pos:trace_start_create", markStart),
		cb.Query().Before("gorm:query").Register("pos:trace_start_query", markStart),
		cb.Update().Before("gorm:update").Register("pos:trace_start_update", markStart),
		cb.Delete().Before("gorm:delete").Register("pos:trace_start_delete", markStart),
		cb.Row().Before("gorm:row").Register("pos:trace_start_row", markStart),
		cb.Raw().Before("gorm:raw").Register("pos:trace_start_raw", markStart),
		cb.Create().After("gorm:create").Register("pos:trace_end_create", p.annotate),
		cb.Query().After("gorm:query").Register("pos:trace_end_query", p.annotate),
		cb.Update().After("gorm:update").Register("pos:trace_end_update", p.annotate),
		cb.Delete().After("gorm:delete").Register("pos:trace_end_delete", p.annotate),
		cb.Row().After("gorm:row").Register("pos:trace_end_row", p.annotate),
		cb.Raw().After("gorm:raw").Register("pos:trace_end_raw", p.annotate),
	); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.String("db_system", p.cfg.DBSystem),
		zap.Duration("slow_query_threshold", p.cfg.SlowQueryThresh))
	return nil
}

func markStart(db *gorm.DB) {
	db.InstanceSet(startedAtKey, time.Now())
}

func (p *DBTracingPlugin) annotate(db *gorm.DB) {
	stmt := db.Statement
	if stmt.Context == nil {
		return
	}
	span := trace.SpanFromContext(stmt.Context)
	if !span.IsRecording() {
		return
	}

	attrs := []attribute.KeyValue{attribute.Int64("db.rows_affected", stmt.RowsAffected)}
	if stmt.Table != "" {
		attrs = append(attrs, attribute.String("db.sql.table", stmt.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.RecordError(db.Error)
		span.SetStatus(codes.Error, db.Error.Error())
	}

	if v, ok := db.InstanceGet(startedAtKey); ok {
		if elapsed := time.Since(v.(time.Time)); elapsed > p.cfg.SlowQueryThresh {
			attrs = append(attrs,
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()))
			p.logger.Warn("Slow query",
				zap.String("table", stmt.Table),
				zap.Duration("elapsed", elapsed),
				zap.String("trace_id", span.SpanContext().TraceID().String()))
		}
	}
	span.SetAttributes(attrs...)
}
