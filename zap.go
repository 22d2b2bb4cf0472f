package logctx

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// zapLogger implements Logger using Uber's Zap. Record fields are produced
// by the engine's assembler before they reach zap, so precedence and
// de-duplication are identical across all outputs.
type zapLogger struct {
	zap       *zap.Logger
	config    Config
	atomicLvl zap.AtomicLevel
	with      []Field
}

// NewLogger builds a Logger from the configuration. When any JSON output
// is enabled (JSON console format or file output), the structured renderer
// is registered so Contexts created afterwards keep the structured kind of
// their fields; create the logger before any Context.
func NewLogger(cfg Config) Logger {
	if cfg.File.Enabled || (cfg.Console.Enabled && consoleFormat(cfg) == "json") {
		RegisterStructuredRenderer()
	}

	atomicLevel := zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	cores := make([]zapcore.Core, 0, 3)

	if cfg.Console.Enabled {
		cores = append(cores, buildConsoleCores(cfg, atomicLevel)...)
	}
	if cfg.File.Enabled && cfg.File.Path != "" {
		if fileCore := buildFileCore(cfg, atomicLevel); fileCore != nil {
			cores = append(cores, fileCore)
		}
	}

	var core zapcore.Core
	switch len(cores) {
	case 0:
		core = zapcore.NewNopCore()
	case 1:
		core = cores[0]
	default:
		core = zapcore.NewTee(cores...)
	}

	return &zapLogger{
		zap:       zap.New(core, buildZapOptions(cfg)...),
		config:    cfg,
		atomicLvl: atomicLevel,
	}
}

// prepareFields runs the record assembler over the three field sources and
// appends trace correlation, returning zap-ready fields.
func (l *zapLogger) prepareFields(ctx context.Context, err error, fields []Field) []zap.Field {
	event := fields
	if len(l.with) > 0 {
		event = make([]Field, 0, len(fields)+len(l.with))
		event = append(event, fields...)
		event = append(event, l.with...)
	}

	lc := FromContext(ctx)
	assembled := lc.Assemble(event, err)

	// Trace correlation joins last and never displaces an explicit field.
	for _, tf := range traceFields(ctx) {
		if !fieldKeyPresent(assembled, tf.Key) {
			assembled = append(assembled, tf)
		}
	}

	return toZapFields(assembled)
}

func (l *zapLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	if !l.atomicLvl.Enabled(zapcore.DebugLevel) {
		return
	}
	l.zap.Debug(msg, l.prepareFields(ctx, nil, fields)...)
}

func (l *zapLogger) Info(ctx context.Context, msg string, fields ...Field) {
	if !l.atomicLvl.Enabled(zapcore.InfoLevel) {
		return
	}
	l.zap.Info(msg, l.prepareFields(ctx, nil, fields)...)
}

func (l *zapLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	if !l.atomicLvl.Enabled(zapcore.WarnLevel) {
		return
	}
	l.zap.Warn(msg, l.prepareFields(ctx, nil, fields)...)
}

func (l *zapLogger) Error(ctx context.Context, msg string, err error, fields ...Field) {
	if !l.atomicLvl.Enabled(zapcore.ErrorLevel) {
		return
	}
	zapFields := l.prepareFields(ctx, err, fields)
	if err != nil && !zapKeyPresent(zapFields, "error") {
		zapFields = append(zapFields, zap.Error(err))
	}
	l.zap.Error(msg, zapFields...)
}

func (l *zapLogger) With(fields ...Field) Logger {
	combined := make([]Field, 0, len(l.with)+len(fields))
	combined = append(combined, l.with...)
	combined = append(combined, fields...)
	return &zapLogger{
		zap:       l.zap,
		config:    l.config,
		atomicLvl: l.atomicLvl,
		with:      combined,
	}
}

func (l *zapLogger) Named(name string) Logger {
	return &zapLogger{
		zap:       l.zap.Named(name),
		config:    l.config,
		atomicLvl: l.atomicLvl,
		with:      l.with,
	}
}

func (l *zapLogger) Sync() error {
	return l.zap.Sync()
}

func (l *zapLogger) SetLevel(level string) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err == nil {
		l.atomicLvl.SetLevel(lvl)
	}
}

func (l *zapLogger) GetLevel() string {
	return l.atomicLvl.Level().String()
}

// --- Field conversion ---

// toZapFields converts assembled engine fields. Structured values go in as
// json.RawMessage so zap's JSON encoder inlines them unescaped; a console
// encoder prints them as-is.
func toZapFields(fields []Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	zapFields := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		if f.Structured {
			zapFields = append(zapFields, zap.Any(f.Key, json.RawMessage(f.Value)))
		} else {
			zapFields = append(zapFields, zap.String(f.Key, f.Value))
		}
	}
	return zapFields
}

func fieldKeyPresent(fields []Field, key string) bool {
	for _, f := range fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

func zapKeyPresent(fields []zap.Field, key string) bool {
	for _, f := range fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

// --- Core construction ---

func buildZapOptions(cfg Config) []zap.Option {
	opts := []zap.Option{
		zap.AddCallerSkip(1), // skip the wrapper methods
	}

	if cfg.Development {
		opts = append(opts, zap.Development())
		opts = append(opts, zap.AddCaller())
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	if cfg.ServiceName != "" {
		opts = append(opts, zap.Fields(zap.String("service", cfg.ServiceName)))
	}
	if cfg.Version != "" {
		opts = append(opts, zap.Fields(zap.String("version", cfg.Version)))
	}

	return opts
}

func consoleFormat(cfg Config) string {
	if cfg.Console.Format == "pretty" || (cfg.Development && cfg.Console.Format == "") {
		return "pretty"
	}
	return "json"
}

// buildConsoleCores creates console output cores. Returns two cores when
// ErrorsToStderr is enabled (stdout for debug/info, stderr for warn/error).
func buildConsoleCores(cfg Config, level zap.AtomicLevel) []zapcore.Core {
	encoder := buildConsoleEncoder(cfg)

	if cfg.Console.ErrorsToStderr {
		stdoutLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= level.Level() && lvl < zapcore.WarnLevel
		})
		stderrLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.WarnLevel
		})

		return []zapcore.Core{
			zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), stdoutLevel),
			zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), stderrLevel),
		}
	}

	return []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}
}

func buildConsoleEncoder(cfg Config) zapcore.Encoder {
	if consoleFormat(cfg) == "pretty" {
		encoderCfg := zap.NewDevelopmentEncoderConfig()
		if cfg.Console.Color {
			encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
			encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		} else {
			encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
			encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		}
		encoderCfg.EncodeCaller = zapcore.ShortCallerEncoder
		return zapcore.NewConsoleEncoder(encoderCfg)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.MessageKey = "msg"
	encoderCfg.LevelKey = "level"
	encoderCfg.CallerKey = "caller"
	return zapcore.NewJSONEncoder(encoderCfg)
}

// buildFileCore creates the file output core with rotation. File output is
// always JSON.
func buildFileCore(cfg Config, level zap.AtomicLevel) zapcore.Core {
	writer := newRotatingWriter(cfg.File)
	if writer == nil {
		return nil
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	return zapcore.NewCore(encoder, zapcore.AddSync(writer), level)
}

// newRotatingWriter creates a rotating file writer via lumberjack.
// Returns nil if the path is empty.
func newRotatingWriter(cfg FileConfig) io.Writer {
	if cfg.Path == "" {
		return nil
	}

	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 100
	}
	maxAge := cfg.MaxAgeDays
	if maxAge <= 0 {
		maxAge = 7
	}
	maxBackups := cfg.MaxBackups
	if maxBackups <= 0 {
		maxBackups = 5
	}

	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    maxSize,
		MaxAge:     maxAge,
		MaxBackups: maxBackups,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
