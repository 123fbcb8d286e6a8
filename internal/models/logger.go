package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

// dbLogger routes gorm's log output through zerolog.
type dbLogger struct {
	log zerolog.Logger
}

// LogMode is a no-op, the level is controlled by zerolog.
func (l *dbLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l *dbLogger) Info(_ context.Context, msg string, args ...interface{}) {
	l.log.Info().Msgf(msg, args...)
}

func (l *dbLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	l.log.Warn().Msgf(msg, args...)
}

func (l *dbLogger) Error(_ context.Context, msg string, args ...interface{}) {
	l.log.Error().Msgf(msg, args...)
}

// Trace logs every statement with its duration. Rows that simply were not
// found are expected during normal operation and stay at debug level.
func (l *dbLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, rows := fc()

	event := l.log.Debug()
	if err != nil && !errors.Is(err, ErrResourceNotFound) {
		event = l.log.Error().Err(err)
	}

	event.
		Str("sql", sql).
		Int64("rows", rows).
		Dur("duration", time.Since(begin)).
		Msg("database query")
}
