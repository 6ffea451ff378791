// Package logging provides the default application.Logger
// implementation, adapted from the teacher's infrastructure/logging
// package: a thin wrapper over the standard library's log package.
package logging

import (
	"log"

	"github.com/maefall/zenet/application"
)

// StdLogger logs through the standard library's default logger.
type StdLogger struct{}

// NewStdLogger returns an application.Logger backed by package log.
func NewStdLogger() application.Logger {
	return &StdLogger{}
}

// Printf implements application.Logger.
func (StdLogger) Printf(format string, v ...any) {
	log.Printf(format, v...)
}
