package lib

import (
	"errors"
	"fmt"
)

// ConfigurationError is returned for any invalid or missing startup setting.
// Key is the environment variable when known, Value the offending raw value.
type ConfigurationError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Key != "" && e.Value != "":
		return fmt.Sprintf("configuration: %s=%q: %v", e.Key, e.Value, e.Err)
	case e.Key != "":
		return fmt.Sprintf("configuration: %s: %v", e.Key, e.Err)
	case e.Value != "":
		return fmt.Sprintf("configuration: value %q: %v", e.Value, e.Err)
	default:
		return fmt.Sprintf("configuration: %v", e.Err)
	}
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// AsConfigurationError wraps err in a ConfigurationError unless it already is one.
func AsConfigurationError(err error) error {
	if err == nil {
		return nil
	}

	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return err
	}

	return &ConfigurationError{Err: err}
}

// IsConfigurationError reports whether err carries a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
