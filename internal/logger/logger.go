package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "storefront-be"

var log *zap.Logger

// Init builds the process logger for env and tags every entry with the
// service name and environment.
func Init(env string) {
	l, err := newConfig(env).Build(
		zap.AddCaller(),
		zap.Fields(zap.String("service", serviceName), zap.String("env", env)),
	)
	if err != nil {
		panic(err)
	}
	log = l
}

// newConfig is JSON on stdout for production and colored console otherwise.
func newConfig(env string) zap.Config {
	if env != "production" {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg
	}

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.MessageKey = "message"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig = enc
	cfg.OutputPaths = []string{"stdout"}
	return cfg
}

// Replace installs l as the process logger and returns a func that puts
// the previous one back.
func Replace(l *zap.Logger) (restore func()) {
	prev := log
	log = l
	return func() { log = prev }
}

// L returns the process logger, building one from APP_ENV if Init never ran.
func L() *zap.Logger {
	if log == nil {
		Init(os.Getenv("APP_ENV"))
	}
	return log
}

func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
