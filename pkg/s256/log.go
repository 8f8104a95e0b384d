package s256

import "go.uber.org/zap"

// log is the package logger.  It discards everything until UseLogger is
// called.
var log = zap.NewNop()

// UseLogger sets the logger used by the package.  It is not safe to call
// concurrently with signing or verification.
func UseLogger(logger *zap.Logger) {
	log = logger.Named("s256")
}

// DisableLog disables all package log output.
func DisableLog() {
	log = zap.NewNop()
}
