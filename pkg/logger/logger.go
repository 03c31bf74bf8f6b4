// Package logger configures the process-wide logrus logger. Call Init
// once from main; library packages log through the standard logrus
// instance and inherit the configuration.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init sets level and format from the environment. LOG_LEVEL defaults
// to "info"; set LOG_FORMAT=json for machine-readable output.
func Init() {
	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetOutput(os.Stdout)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
