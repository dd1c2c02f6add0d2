// Package logging holds the shared logrus logger used across the
// application. Packages grab it once at init time with GetLogger; the CLI
// reconfigures level and format through Configure before any work starts.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// GetLogger returns the shared logger.
func GetLogger() *logrus.Logger {
	return log
}

// SetLogger replaces the shared logger. Nil is ignored so tests can pass a
// conditionally-built logger without guarding.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		return
	}
	log = l
}

// Configure sets level ("debug", "info", "warn", "error") and format
// ("text" or "json") on the shared logger. Unknown levels fall back to info.
func Configure(level, format string) {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	if strings.EqualFold(format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
