// Package log is a thin structured-logging facade over zap. Handlers and services
// log through it with a context so the request correlation id travels with every
// entry without threading a logger around.
package log

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Field = zap.Field

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

type initOptions struct {
	level       zapcore.Level
	development bool
	callerSkip  int
}

type InitOption func(*initOptions)

func WithLevel(level string) InitOption {
	return func(o *initOptions) {
		if l, err := zapcore.ParseLevel(level); err == nil {
			o.level = l
		}
	}
}

func WithDevelopment(dev bool) InitOption {
	return func(o *initOptions) {
		o.development = dev
	}
}

func AddCallerSkip(skip int) InitOption {
	return func(o *initOptions) {
		o.callerSkip = skip
	}
}

// Init builds the process-wide logger. Call once from setup before anything logs.
func Init(serviceName string, opts ...InitOption) {
	fOpts := &initOptions{level: zapcore.InfoLevel, callerSkip: 1}
	for _, opt := range opts {
		opt(fOpts)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	encoder := zapcore.NewJSONEncoder(encoderCfg)
	if fOpts.development {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), fOpts.level)

	mu.Lock()
	defer mu.Unlock()
	logger = zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(fOpts.callerSkip),
	).With(zap.String("service", serviceName))
}

func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = logger.Sync()
}

// InitForTest configures the logger for test binaries.
func InitForTest() {
	Init("test", WithLevel("debug"), WithDevelopment(true))
}

// Logger exposes the underlying zap logger for integrations that need one,
// such as the New Relic log forwarder.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func base(ctx context.Context) *zap.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()

	if cid := GetCorrelationID(ctx); cid != "" {
		l = l.With(zap.String("correlationId", cid))
	}
	return l
}

func Debug(ctx context.Context, msg string, fields ...Field) { base(ctx).Debug(msg, fields...) }
func Info(ctx context.Context, msg string, fields ...Field)  { base(ctx).Info(msg, fields...) }
func Warn(ctx context.Context, msg string, fields ...Field)  { base(ctx).Warn(msg, fields...) }
func Error(ctx context.Context, msg string, fields ...Field) { base(ctx).Error(msg, fields...) }
func Fatal(ctx context.Context, msg string, fields ...Field) { base(ctx).Fatal(msg, fields...) }

func Debugf(ctx context.Context, format string, args ...interface{}) {
	base(ctx).Sugar().Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	base(ctx).Sugar().Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	base(ctx).Sugar().Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	base(ctx).Sugar().Errorf(format, args...)
}

func Fatalf(ctx context.Context, format string, args ...interface{}) {
	base(ctx).Sugar().Fatalf(format, args...)
}

// Field constructors, re-exported so call sites only import this package.
var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Bool     = zap.Bool
	Any      = zap.Any
	Err      = zap.Error
	Duration = zap.Duration
	Time     = zap.Time
)
