package logger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level string, slow time.Duration) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), slow, level), logs
}

func query(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestGormLogger_Trace_Levels(t *testing.T) {
	l, logs := newObservedGormLogger("debug", time.Hour)
	ctx := ContextWithRequestID(context.Background(), "req-1")

	l.Trace(ctx, time.Now(), query("SELECT 1"), nil)
	l.Trace(ctx, time.Now(), query("SELECT 2"), errors.New("no such table"))
	l.Trace(ctx, time.Now(), query("SELECT 3"), gorm.ErrRecordNotFound)

	entries := logs.All()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
		assert.Equal(t, "gorm", entries[0].LoggerName)
		assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
		assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
		assert.Equal(t, zapcore.DebugLevel, entries[2].Level)
	}
}

func TestGormLogger_Trace_Slow(t *testing.T) {
	l, logs := newObservedGormLogger("warn", time.Millisecond)

	l.Trace(context.Background(), time.Now().Add(-time.Second), query("SELECT * FROM directory_users"), nil)
	l.Trace(context.Background(), time.Now(), query("SELECT 1"), nil)

	assert.Equal(t, 1, logs.FilterMessage("gorm slow query").Len())
	assert.Equal(t, 1, logs.Len())
}

func TestGormLogger_Trace_TruncatesSQL(t *testing.T) {
	l, logs := newObservedGormLogger("info", 0)

	l.Trace(context.Background(), time.Now(), query(strings.Repeat("x", 2000)), nil)

	sql := logs.All()[0].ContextMap()["sql"].(string)
	assert.Len(t, sql, maxSQLLength+3)
}

func TestGormLogger_Silent(t *testing.T) {
	l, logs := newObservedGormLogger("silent", 0)

	l.Trace(context.Background(), time.Now(), query("SELECT 1"), errors.New("boom"))
	l.Error(context.Background(), "boom")

	assert.Equal(t, 0, logs.Len())
}

func TestGormLogger_LogMode(t *testing.T) {
	l, _ := newObservedGormLogger("warn", 0)

	changed := l.LogMode(gormlogger.Info).(*GormLogger)

	assert.Equal(t, gormlogger.Info, changed.level)
	assert.Equal(t, gormlogger.Warn, l.level)
}
