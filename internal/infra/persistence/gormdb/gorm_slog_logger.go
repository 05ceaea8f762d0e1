package gormdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rentease/config"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormSlogLogger routes GORM's internal logging through the application's
// slog handler so query logs share the request log format.
type gormSlogLogger struct {
	logger *slog.Logger
	level  logger.LogLevel
}

func newGormSlogLogger(baseLogger *slog.Logger, cfg *config.Config) logger.Interface {
	level := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = logger.Info
	}

	return &gormSlogLogger{
		logger: baseLogger,
		level:  level,
	}
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelInfo, logger.Info, msg, args...)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelWarn, logger.Warn, msg, args...)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelError, logger.Error, msg, args...)
}

func (l *gormSlogLogger) log(ctx context.Context, slogLevel slog.Level, minLevel logger.LogLevel, msg string, args ...any) {
	if l.logger == nil || l.level < minLevel {
		return
	}

	l.logger.LogAttrs(ctx, slogLevel, "GORM",
		slog.String("message", fmt.Sprintf(msg, args...)),
	)
}

func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.logger == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case l.shouldLogError(err):
		attrs := append(queryAttrs(sqlAndRowsFn, elapsed), slog.String("error", err.Error()))
		l.logger.LogAttrs(ctx, slog.LevelError, "GORM query failed", attrs...)
	case l.level >= logger.Warn && elapsed > slowQueryThreshold:
		attrs := append(queryAttrs(sqlAndRowsFn, elapsed), slog.Duration("slowThreshold", slowQueryThreshold))
		l.logger.LogAttrs(ctx, slog.LevelWarn, "GORM slow query", attrs...)
	case l.level >= logger.Info:
		l.logger.LogAttrs(ctx, slog.LevelInfo, "GORM query", queryAttrs(sqlAndRowsFn, elapsed)...)
	}
}

func (l *gormSlogLogger) shouldLogError(err error) bool {
	// Record-not-found is an expected lookup outcome, not a query failure.
	return err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound)
}

func queryAttrs(sqlAndRowsFn func() (string, int64), elapsed time.Duration) []slog.Attr {
	sql, rows := sqlAndRowsFn()

	return []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
}
