package main

import (
	"go.uber.org/zap"
)

// logger is replaced by initLogger at startup; tests run with the no-op logger
var logger = zap.NewNop().Sugar()

// initLogger builds the console logger; debug enables debugLog output
func initLogger(debug bool) error {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l.Sugar()
	return nil
}

func syncLogger() {
	_ = logger.Sync()
}

func debugLog(format string, args ...any) {
	logger.Debugf(format, args...)
}
