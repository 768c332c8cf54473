package conlang

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggingConfig selects the diagnostics of a language built from a config.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error, off
	Format string `yaml:"format"` // json, console
}

// NewLogger builds a zap logger for cfg. An empty or "off" level gives a
// no-op logger.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	if cfg.Level == "" || cfg.Level == "off" {
		return zap.NewNop(), nil
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, invalidf("logging level %q", cfg.Level)
	}
	var config zap.Config
	switch cfg.Format {
	case "", "json":
		config = zap.NewProductionConfig()
	case "console":
		config = zap.NewDevelopmentConfig()
	default:
		return nil, invalidf("logging format %q", cfg.Format)
	}
	config.Level = zap.NewAtomicLevelAt(level)
	return config.Build()
}
