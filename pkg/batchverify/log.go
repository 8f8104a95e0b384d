package batchverify

import "go.uber.org/zap"

var log = zap.NewNop()

// UseLogger sets the logger used by the package.
func UseLogger(logger *zap.Logger) {
	log = logger.Named("batchverify")
}

// DisableLog disables all package log output.
func DisableLog() {
	log = zap.NewNop()
}
