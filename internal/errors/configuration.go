package errors

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a missing or empty credential. It is never retried.
type ConfigurationError struct {
	Source  string // e.g. "IGDB"
	Setting string // config key, e.g. "igdb.client_id"
	EnvVar  string // environment variable that can provide the value
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("%s is not configured: set %s in config.yaml", e.Source, e.Setting)
	if e.EnvVar != "" {
		msg += " or the " + e.EnvVar + " environment variable"
	}
	return msg
}

// NewConfigurationError creates a ConfigurationError for the given source and setting.
func NewConfigurationError(source, setting, envVar string) *ConfigurationError {
	return &ConfigurationError{Source: source, Setting: setting, EnvVar: envVar}
}

// IsConfigurationError reports whether err is a ConfigurationError (even when wrapped).
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
