package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medication-log/internal/platform/logger"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLogger redirige los logs de gorm a nuestro Logger.
// Las queries normales salen en debug; el filtrado final lo hace el Logger.
type gormLogger struct {
	log   logger.Logger
	level gormlogger.LogLevel
}

func newGormLogger(log logger.Logger) gormlogger.Interface {
	return &gormLogger{log: log, level: gormlogger.Info}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *l
	c.level = level
	return &c
}

func (l *gormLogger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.log.Info(fmt.Sprintf(msg, args...), map[string]any{"component": "gorm"})
	}
}

func (l *gormLogger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.log.Warn(fmt.Sprintf(msg, args...), map[string]any{"component": "gorm"})
	}
}

func (l *gormLogger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.log.Error(fmt.Sprintf(msg, args...), map[string]any{"component": "gorm"})
	}
}

func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		query, rows := fc()
		l.log.Error("sql failed", map[string]any{
			"component":   "gorm",
			"sql":         query,
			"rows":        rows,
			"duration_ms": elapsed.Milliseconds(),
			"err":         err,
		})
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		query, rows := fc()
		l.log.Warn("slow sql", map[string]any{
			"component":   "gorm",
			"sql":         query,
			"rows":        rows,
			"duration_ms": elapsed.Milliseconds(),
		})
	case l.level >= gormlogger.Info:
		query, rows := fc()
		l.log.Debug("sql", map[string]any{
			"component":   "gorm",
			"sql":         query,
			"rows":        rows,
			"duration_ms": elapsed.Milliseconds(),
		})
	}
}
