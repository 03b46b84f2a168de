// Package util provides common utilities including logging helpers,
// path slugs, and pointer helpers.
package util

import (
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupFileLogging routes the standard logger to a rotating file and
// returns the writer so the caller can close it at shutdown.
func SetupFileLogging(path string) *lumberjack.Logger {
	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	}
	log.SetOutput(out)
	return out
}

// LogError logs an error with context if it is non-nil.
func LogError(context string, err error) {
	if err != nil {
		log.Printf("%s: %v", context, err)
	}
}
