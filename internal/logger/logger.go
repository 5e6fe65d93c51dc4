package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level represents the severity of a log message
type Level = logrus.Level

const (
	// LevelDebug for detailed troubleshooting
	LevelDebug = logrus.DebugLevel
	// LevelInfo for general operational entries
	LevelInfo = logrus.InfoLevel
	// LevelWarn for non-critical issues
	LevelWarn = logrus.WarnLevel
	// LevelError for errors that should be addressed
	LevelError = logrus.ErrorLevel
)

// Default logger. Writes to stderr so command output on stdout stays clean.
var logger = newLogger(os.Stderr)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(LevelInfo)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
	})
	return l
}

// Initialize sets up the logger with the specified level
func Initialize(level string) {
	setLogLevel(level)
}

// SetOutput redirects log output
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// setLogLevel sets the log level from a string, falling back to info
func setLogLevel(level string) {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = LevelInfo
	}
	logger.SetLevel(lvl)
}

// Debug logs a debug message
func Debug(format string, v ...interface{}) {
	logger.Debugf(format, v...)
}

// Info logs an info message
func Info(format string, v ...interface{}) {
	logger.Infof(format, v...)
}

// Warn logs a warning message
func Warn(format string, v ...interface{}) {
	logger.Warnf(format, v...)
}

// Error logs an error message
func Error(format string, v ...interface{}) {
	logger.Errorf(format, v...)
}
