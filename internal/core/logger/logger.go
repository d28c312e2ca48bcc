package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger() *zap.Logger {
	return New(false)
}

// New builds the application logger: JSON output in production, the
// development console encoder otherwise.
func New(production bool) *zap.Logger {
	loggerConfig := zap.NewDevelopmentConfig()
	if production {
		loggerConfig = zap.NewProductionConfig()
	}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := loggerConfig.Build()
	if nil != err {
		panic(err)
	}

	return logger
}
