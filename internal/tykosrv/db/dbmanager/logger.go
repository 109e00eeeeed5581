package dbmanager

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// gormLogger sends gorm's log output to the zerolog logger of the request context.
type gormLogger struct {
	slowThreshold time.Duration
}

var _ gormlogger.Interface = (*gormLogger)(nil)

func newGormLogger() gormlogger.Interface {
	return &gormLogger{slowThreshold: 200 * time.Millisecond}
}

func (l *gormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...any) {
	log.Ctx(ctx).Info().Msgf(msg, args...)
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	log.Ctx(ctx).Warn().Msgf(msg, args...)
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...any) {
	log.Ctx(ctx).Error().Msgf(msg, args...)
}

// Trace logs failed statements at debug level, since the data layer reports them
// itself, slow statements as warnings, and every statement when tracing.
func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	logger := log.Ctx(ctx)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		logger.Debug().Err(err).Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("statement failed")
	case elapsed > l.slowThreshold:
		sql, rows := fc()
		logger.Warn().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("slow statement")
	case zerolog.GlobalLevel() <= zerolog.TraceLevel:
		sql, rows := fc()
		logger.Trace().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("statement")
	}
}
