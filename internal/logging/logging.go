package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"battkit/internal/config"
)

// New builds the diagnostic logger from configuration.
func New(cfg config.Config) (*zap.Logger, error) {
	var zc zap.Config

	if cfg.LogLevel == "debug" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	if lvl, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}

	if cfg.LogFormat == "console" {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zc.DisableStacktrace = true
	} else {
		zc.Encoding = "json"
	}

	zc.EncoderConfig.LevelKey = "level"
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.MessageKey = "message"

	return zc.Build()
}
