package helpers

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates the configured Logrus logger. Development gets readable
// text at debug level, everything else structured JSON at info.
func NewLogger(appName, env string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.WithFields(logrus.Fields{"app": appName, "env": env}).Info("logger initialized")
	return logger
}
