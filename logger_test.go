package logctx

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// observedLogger builds a zapLogger over an in-memory core so tests can
// inspect the records it writes.
func observedLogger() (*zapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &zapLogger{
		zap:       zap.New(core),
		config:    Default(),
		atomicLvl: zap.NewAtomicLevelAt(zap.DebugLevel),
	}, logs
}

func TestNewLogger_Default(t *testing.T) {
	ctx := context.Background()
	logger := NewLogger(Default())
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	defer func() { _ = logger.Sync() }()

	// Should not panic
	logger.Info(ctx, "test message", String("key", "value"))
}

func TestNewLogger_Development(t *testing.T) {
	ctx := context.Background()
	logger := NewLogger(Development())
	defer func() { _ = logger.Sync() }()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message", errors.New("boom"))
}

func TestLogger_MergesContextFields(t *testing.T) {
	logger, logs := observedLogger()

	lc := newTestContext(true)
	ctx := IntoContext(context.Background(), lc)

	_ = lc.Run([]Field{String("order", "O-1")}, func() error {
		logger.Info(ctx, "processing", String("step", "validate"))
		return nil
	})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 record, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["step"] != "validate" || fields["order"] != "O-1" {
		t.Errorf("unexpected fields: %v", fields)
	}
}

func TestLogger_EventFieldBeatsContextField(t *testing.T) {
	logger, logs := observedLogger()

	lc := newTestContext(true)
	ctx := IntoContext(context.Background(), lc)

	_ = lc.Run([]Field{String("k", "ctx")}, func() error {
		logger.Info(ctx, "m", String("k", "event"))
		return nil
	})

	if got := logs.All()[0].ContextMap()["k"]; got != "event" {
		t.Errorf("expected event value to win, got %v", got)
	}
}

func TestLogger_ErrorCarriesScopeFields(t *testing.T) {
	logger, logs := observedLogger()

	lc := newTestContext(true)
	ctx := IntoContext(context.Background(), lc)

	// The error leaves the scope carrying its fields; by the time it is
	// logged, the scope is gone.
	err := lc.Run([]Field{String("order", "O-1")}, func() error {
		return errors.New("inventory unavailable")
	})

	logger.Error(ctx, "order failed", err)

	fields := logs.All()[0].ContextMap()
	if fields["order"] != "O-1" {
		t.Errorf("carried field missing: %v", fields)
	}
	if fields["error"] != "inventory unavailable" {
		t.Errorf("error field missing: %v", fields)
	}
}

func TestLogger_StructuredFieldInline(t *testing.T) {
	logger, logs := observedLogger()

	logger.Info(context.Background(), "m", JSON("payload", `{"id": 1}`))

	raw, ok := logs.All()[0].ContextMap()["payload"].(json.RawMessage)
	if !ok {
		t.Fatalf("expected json.RawMessage payload, got %T", logs.All()[0].ContextMap()["payload"])
	}
	if string(raw) != `{"id":1}` {
		t.Errorf("expected minified payload, got %q", raw)
	}
}

func TestLogger_With(t *testing.T) {
	logger, logs := observedLogger()

	child := logger.With(String("component", "billing"))
	child.Info(context.Background(), "m")

	if got := logs.All()[0].ContextMap()["component"]; got != "billing" {
		t.Errorf("with-field missing: %v", got)
	}

	// Call-site fields win over With fields on duplicate keys.
	child.Info(context.Background(), "m2", String("component", "checkout"))
	if got := logs.All()[1].ContextMap()["component"]; got != "checkout" {
		t.Errorf("expected call-site value, got %v", got)
	}
}

func TestLogger_Named(t *testing.T) {
	logger, logs := observedLogger()

	logger.Named("worker").Info(context.Background(), "m")
	if got := logs.All()[0].LoggerName; got != "worker" {
		t.Errorf("logger name: %v", got)
	}
}

func TestLogger_SetLevel(t *testing.T) {
	logger, logs := observedLogger()

	logger.SetLevel("error")
	if logger.GetLevel() != "error" {
		t.Errorf("level: %s", logger.GetLevel())
	}
	logger.Info(context.Background(), "suppressed")
	if logs.Len() != 0 {
		t.Errorf("expected record suppressed, got %d", logs.Len())
	}
	logger.SetLevel("debug")
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Default()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got '%s'", cfg.Level)
	}
	if !cfg.Console.Enabled {
		t.Error("expected console enabled by default")
	}
	if cfg.Console.Format != "json" {
		t.Errorf("expected console format 'json', got '%s'", cfg.Console.Format)
	}
	if cfg.File.Enabled {
		t.Error("expected file disabled by default")
	}

	dev := Development()
	if !dev.Development || dev.Console.Format != "pretty" || dev.Level != "debug" {
		t.Errorf("unexpected development config: %+v", dev)
	}
}

func TestConfig_With(t *testing.T) {
	cfg := Default().WithLevel("warn").WithService("orders").WithFile("/tmp/app.log")
	if cfg.Level != "warn" || cfg.ServiceName != "orders" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !cfg.File.Enabled || cfg.File.Path != "/tmp/app.log" {
		t.Errorf("unexpected file config: %+v", cfg.File)
	}
}
