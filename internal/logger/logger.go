package logger

import (
	"os"
	"sync"
)

// Levels accepted in config log.level.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	plantLogger *Logger
	once        sync.Once
)

// Get returns the process-wide logger. Only the first call's level is used.
func Get(level string) *Logger {
	once.Do(func() {
		plantLogger = newZapLogger(level, os.Stdout)
	})
	return plantLogger
}
