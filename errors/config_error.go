package errors

import "fmt"

// ConfigError represents misuse of the engine's configuration surface:
// a nil rules map, a nil data object, an unsupported rules entry type, or a
// nil list handed to a membership check. These indicate programmer error in
// the calling code, not bad input data, so they are returned immediately and
// are never folded into a validation failure.
type ConfigError struct {
	// Message is a human-readable description of the misuse.
	Message string

	// Err is the underlying original error, primarily for logging
	// and internal debugging. May be nil.
	Err error
}

// Error implements the standard error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ConfigError: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("ConfigError: %s", e.Message)
}

// Unwrap returns the underlying error for error chaining (e.g., with errors.Is and errors.As).
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
// 'message' describes the misuse; 'underlyingErr' is the original error, can be nil.
func NewConfigError(message string, underlyingErr error) *ConfigError {
	if message == "" {
		message = "The validator was configured or invoked incorrectly."
	}
	return &ConfigError{
		Message: message,
		Err:     underlyingErr,
	}
}
