// Package logger configures the structured logger for the service. Output
// is JSON in production so log aggregation can parse it, and colored text
// in development.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

// Init builds the global logger. level may be empty, in which case
// development defaults to debug and everything else to info.
func Init(level string, isDevelopment bool) *logrus.Logger {
	l := logrus.New()

	if level == "" {
		if isDevelopment {
			level = "debug"
		} else {
			level = "info"
		}
	}
	if parsed, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		l.SetLevel(parsed)
	} else {
		l.SetLevel(logrus.InfoLevel)
		l.WithField("invalid_level", level).Warn("invalid log level, using info")
	}

	if isDevelopment {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}
	l.SetOutput(os.Stdout)

	log = l
	return l
}

// Get returns the global logger, initializing a default one if Init has not
// run yet (useful in tests).
func Get() *logrus.Logger {
	if log == nil {
		return Init("info", true)
	}
	return log
}

// WithRound returns an entry tagged with the round being evaluated.
func WithRound(roundID string) *logrus.Entry {
	return Get().WithField("round_id", roundID)
}

// WithRoundPlayer returns an entry tagged with a round and one of its
// players.
func WithRoundPlayer(roundID, playerName string) *logrus.Entry {
	return Get().WithFields(logrus.Fields{
		"round_id": roundID,
		"player":   playerName,
	})
}
