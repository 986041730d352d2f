package logger

import (
	"os"
	"sync"
	"time"

	"github.com/leandrodaf/chordie/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements contracts.Logger on top of Uber's zap.
type ZapLogger struct {
	mu      sync.RWMutex
	logger  *zap.Logger
	level   zap.AtomicLevel
	encoder zapcore.EncoderConfig
	json    bool
	console zapcore.WriteSyncer
	closer  func()
}

// NewZapLogger creates a JSON logger writing to stderr, suitable for production.
func NewZapLogger() contracts.Logger {
	return newZapLogger(zap.NewProductionEncoderConfig(), true, zapcore.Lock(os.Stderr))
}

// NewStandardLogger creates a human-readable console logger writing to stdout.
func NewStandardLogger() contracts.Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return newZapLogger(cfg, false, zapcore.Lock(os.Stdout))
}

// NewFromZap wraps an existing zap logger. The wrapped logger's core still
// applies its own level filter in addition to SetLevel.
func NewFromZap(l *zap.Logger) *ZapLogger {
	return &ZapLogger{
		logger:  l.WithOptions(zap.AddCallerSkip(2)),
		level:   zap.NewAtomicLevelAt(zapcore.InfoLevel),
		encoder: zap.NewProductionEncoderConfig(),
		json:    true,
		console: zapcore.Lock(os.Stderr),
	}
}

func newZapLogger(cfg zapcore.EncoderConfig, json bool, sink zapcore.WriteSyncer) *ZapLogger {
	z := &ZapLogger{
		level:   zap.NewAtomicLevelAt(zapcore.InfoLevel),
		encoder: cfg,
		json:    json,
		console: sink,
	}
	z.logger = z.build(sink)
	return z
}

func (z *ZapLogger) build(sink zapcore.WriteSyncer) *zap.Logger {
	var enc zapcore.Encoder
	if z.json {
		enc = zapcore.NewJSONEncoder(z.encoder)
	} else {
		enc = zapcore.NewConsoleEncoder(z.encoder)
	}
	core := zapcore.NewCore(enc, sink, z.level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2))
}

// Info logs a message at the INFO level
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.log(zapcore.InfoLevel, msg, fields...)
}

// Error logs a message at the ERROR level
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.log(zapcore.ErrorLevel, msg, fields...)
}

// Debug logs a message at the DEBUG level
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.log(zapcore.DebugLevel, msg, fields...)
}

// Warn logs a message at the WARN level
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.log(zapcore.WarnLevel, msg, fields...)
}

// Fatal logs a message at the FATAL level and terminates the application
func (z *ZapLogger) Fatal(msg string, fields ...contracts.Field) {
	z.log(zapcore.FatalLevel, msg, fields...)
}

// Field returns a field builder.
func (z *ZapLogger) Field() contracts.Field {
	return zapField{}
}

// SetLevel sets the minimum level that is written.
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.level.SetLevel(toZapLevel(level))
}

// Enabled reports whether a message at level would be written, so callers on
// hot paths can skip building fields.
func (z *ZapLogger) Enabled(level contracts.LogLevel) bool {
	zl := toZapLevel(level)
	if !z.level.Enabled(zl) {
		return false
	}
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.logger.Core().Enabled(zl)
}

// SetDestination re-targets output. FileLog requires a file path; the file is
// created or appended to. ConsoleLog returns to the sink the logger was
// created with. Any previously opened log file is closed.
func (z *ZapLogger) SetDestination(dest contracts.LogDestination, filePath ...string) {
	var (
		sink   zapcore.WriteSyncer
		closer func()
	)
	switch dest {
	case contracts.FileLog:
		if len(filePath) == 0 || filePath[0] == "" {
			z.Warn("File log destination requested without a path; keeping current destination")
			return
		}
		ws, closeFn, err := zap.Open(filePath[0])
		if err != nil {
			z.Error("Failed to open log file", z.Field().String("path", filePath[0]), z.Field().Error("error", err))
			return
		}
		sink, closer = ws, closeFn
	default:
		sink = z.console
	}

	z.mu.Lock()
	defer z.mu.Unlock()
	_ = z.logger.Sync()
	if z.closer != nil {
		z.closer()
	}
	z.logger = z.build(sink)
	z.closer = closer
}

// Sync flushes buffered log entries.
func (z *ZapLogger) Sync() error {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.logger.Sync()
}

func (z *ZapLogger) log(level zapcore.Level, msg string, fields ...contracts.Field) {
	if !z.level.Enabled(level) {
		return
	}

	z.mu.RLock()
	l := z.logger
	z.mu.RUnlock()

	if ce := l.Check(level, msg); ce != nil {
		ce.Write(toZapFields(fields)...)
	}
}

func toZapLevel(level contracts.LogLevel) zapcore.Level {
	switch level {
	case contracts.DebugLevel:
		return zapcore.DebugLevel
	case contracts.WarnLevel:
		return zapcore.WarnLevel
	case contracts.ErrorLevel:
		return zapcore.ErrorLevel
	case contracts.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZapFields(fields []contracts.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if f, ok := field.(zapField); ok && f.set {
			out = append(out, f.f)
		}
	}
	return out
}

// zapField implements contracts.Field
type zapField struct {
	f   zap.Field
	set bool
}

func (zapField) Bool(key string, val bool) contracts.Field {
	return zapField{zap.Bool(key, val), true}
}

func (zapField) Int(key string, val int) contracts.Field {
	return zapField{zap.Int(key, val), true}
}

func (zapField) Float64(key string, val float64) contracts.Field {
	return zapField{zap.Float64(key, val), true}
}

func (zapField) String(key string, val string) contracts.Field {
	return zapField{zap.String(key, val), true}
}

func (zapField) Time(key string, val time.Time) contracts.Field {
	return zapField{zap.Time(key, val), true}
}

func (zapField) Int64(key string, val int64) contracts.Field {
	return zapField{zap.Int64(key, val), true}
}

func (zapField) Error(key string, val error) contracts.Field {
	return zapField{zap.NamedError(key, val), true}
}

func (zapField) Uint64(key string, val uint64) contracts.Field {
	return zapField{zap.Uint64(key, val), true}
}

func (zapField) Uint8(key string, val uint8) contracts.Field {
	return zapField{zap.Uint8(key, val), true}
}

func (zapField) Ints(key string, val []int) contracts.Field {
	return zapField{zap.Ints(key, val), true}
}
