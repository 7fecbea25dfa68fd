package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowSQL = 200 * time.Millisecond

// GormConfig tunes the gorm adapter. Level is a gorm level name, see GormLevel.
type GormConfig struct {
	Level         string
	SlowThreshold time.Duration
	// LogNotFound logs gorm.ErrRecordNotFound as an error. Lookups by id miss
	// routinely, so it is off by default.
	LogNotFound bool
}

// GormLogger writes gorm statements to zap under the "gorm" name. Each line
// carries the request, session and trace ids of the statement context.
type GormLogger struct {
	zl    *zap.Logger
	level gormlogger.LogLevel
	slow  time.Duration
	noNF  bool
}

func NewGormLogger(zl *zap.Logger, cfg GormConfig) *GormLogger {
	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = defaultSlowSQL
	}
	return &GormLogger{
		zl:    zl.Named("gorm"),
		level: GormLevel(cfg.Level),
		slow:  slow,
		noNF:  !cfg.LogNotFound,
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Info, msg, args)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Warn, msg, args)
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Error, msg, args)
}

func (l *GormLogger) printf(ctx context.Context, at gormlogger.LogLevel, msg string, args []any) {
	if l.level < at {
		return
	}
	sugar := l.zl.With(Fields(ctx)...).Sugar()
	switch at {
	case gormlogger.Error:
		sugar.Errorf(msg, args...)
	case gormlogger.Warn:
		sugar.Warnf(msg, args...)
	default:
		sugar.Infof(msg, args...)
	}
}

// Trace logs a finished statement: failures at error, slow ones at warn and
// the rest at debug when the level is Info.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == gormlogger.Silent {
		return
	}
	if err != nil && l.noNF && errors.Is(err, gormlogger.ErrRecordNotFound) {
		err = nil
	}
	elapsed := time.Since(begin)
	slow := elapsed >= l.slow

	var (
		write func(string, ...zap.Field)
		msg   string
	)
	switch {
	case err != nil && l.level >= gormlogger.Error:
		write, msg = l.zl.Error, "sql failed"
	case slow && l.level >= gormlogger.Warn:
		write, msg = l.zl.Warn, "slow sql"
	case l.level >= gormlogger.Info:
		write, msg = l.zl.Debug, "sql"
	default:
		return
	}

	sql, rows := fc()
	fields := append(Fields(ctx),
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	)
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if slow {
		fields = append(fields, zap.Duration("slow_threshold", l.slow))
	}
	write(msg, fields...)
}

// GormLevel maps a level name to gorm's scale. Unknown names map to Warn.
func GormLevel(name string) gormlogger.LogLevel {
	switch strings.ToLower(name) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
