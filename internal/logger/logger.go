package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

func init() {
	Logger = logrus.New()
	Logger.SetOutput(os.Stdout)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	Logger.SetLevel(logrus.InfoLevel)

	// LOG_LEVEL=debug (etc.) overrides the default
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		if parsed, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
			Logger.SetLevel(parsed)
		}
	}
}

// WithComponent tags log entries with the emitting component.
func WithComponent(component string) *logrus.Entry {
	return Logger.WithField("component", component)
}

// WithResource adds component and resource fields, used by data-layer code
// that operates on a named remote resource (profile, users, orders, ...).
func WithResource(component, resource string) *logrus.Entry {
	return Logger.WithFields(logrus.Fields{
		"component": component,
		"resource":  resource,
	})
}
