package logger

import (
	"go.uber.org/zap"
)

// Log is the process-wide sugared logger. Init must run before anything
// else touches it.
var Log *zap.SugaredLogger

func Init() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	Log = logger.Sugar()
}

// Sync flushes buffered log entries; call it on shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
