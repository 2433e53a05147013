package app

import "github.com/vigilohq/vigilo/pkg/logger"

// ConfigureLogging initialises the shared logger from configuration.
func ConfigureLogging(level string) error {
	if level == "" {
		level = "info"
	}
	return logger.Init(level)
}
