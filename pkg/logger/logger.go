package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the standard logrus logger. Production uses JSON output.
func Init(level, env string) {
	logrus.SetOutput(os.Stdout)

	if env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		logrus.WithField("level", level).Warn("unknown log level, falling back to info")
	}
	logrus.SetLevel(lvl)
}

// WithComponent tags entries with the component that produced them.
func WithComponent(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}
