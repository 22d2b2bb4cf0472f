package logctx

import (
	"context"
	"sync"
)

var (
	globalMu sync.RWMutex
	global   Logger
)

// SetGlobal sets the global Logger used by the package-level helpers.
func SetGlobal(l Logger) {
	globalMu.Lock()
	global = l
	globalMu.Unlock()
}

// L returns the global Logger.
func L() Logger {
	globalMu.RLock()
	g := global
	globalMu.RUnlock()
	if g == nil {
		panic("logctx: global not set, call SetGlobal first")
	}
	return g
}

func getGlobal() Logger {
	globalMu.RLock()
	g := global
	globalMu.RUnlock()
	if g == nil {
		return NewLogger(Default())
	}
	return g
}

// Debug logs at debug level using the global logger.
func Debug(ctx context.Context, msg string, fields ...Field) {
	getGlobal().Debug(ctx, msg, fields...)
}

// Info logs at info level using the global logger.
func Info(ctx context.Context, msg string, fields ...Field) {
	getGlobal().Info(ctx, msg, fields...)
}

// Warn logs at warn level using the global logger.
func Warn(ctx context.Context, msg string, fields ...Field) {
	getGlobal().Warn(ctx, msg, fields...)
}

// Error logs at error level using the global logger.
func Error(ctx context.Context, msg string, err error, fields ...Field) {
	getGlobal().Error(ctx, msg, err, fields...)
}

// Sync flushes the global logger, if one is set.
func Sync() error {
	globalMu.RLock()
	g := global
	globalMu.RUnlock()
	if g == nil {
		return nil
	}
	return g.Sync()
}

// Named returns a child logger from the global logger.
func Named(name string) Logger {
	return getGlobal().Named(name)
}
