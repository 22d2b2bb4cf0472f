package logctx

import "context"

// Logger is the logging surface of the engine. Every record is assembled
// from three field sources with fixed precedence: fields passed to the
// call, fields carried by the error's context carriers, and the fields
// active on the Context found in ctx.
//
// All methods are safe for concurrent use. Logging never returns an error
// and never aborts the caller's control flow.
type Logger interface {
	// Debug logs a message at debug level.
	Debug(ctx context.Context, msg string, fields ...Field)

	// Info logs a message at info level.
	Info(ctx context.Context, msg string, fields ...Field)

	// Warn logs a message at warn level.
	Warn(ctx context.Context, msg string, fields ...Field)

	// Error logs a message at error level. Context fields attached to err
	// while it crossed scope boundaries are merged into the record.
	Error(ctx context.Context, msg string, err error, fields ...Field)

	// With returns a child logger whose fields join the event tier of
	// every subsequent record, after the call-site fields.
	With(fields ...Field) Logger

	// Named returns a sub-logger whose name appears as the zap logger name.
	Named(name string) Logger

	// Sync flushes buffered records. Call before exiting.
	Sync() error

	// SetLevel changes the level at runtime: debug, info, warn, error.
	SetLevel(level string)

	// GetLevel returns the current level as a string.
	GetLevel() string
}
