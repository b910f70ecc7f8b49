package website

import "fmt"

// ConfigurationError is returned when a declarative website configuration is
// invalid. It fails fast, before any resource action is taken.
type ConfigurationError struct {
	// Site is the name of the website instance with the invalid config.
	Site string

	// Field is the configuration field that is invalid.
	Field string

	// Reason explains why the configuration was rejected.
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration for website %q: field %q: %s", e.Site, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid configuration for website %q: %s", e.Site, e.Reason)
}

// SequencingError is returned when an operation requires resources that have
// not been provisioned yet, such as uploading content before the first
// deploy created the bucket.
type SequencingError struct {
	// Site is the website instance the operation was attempted on.
	Site string

	// Operation is the operation that could not proceed.
	Operation string

	// Missing is the stack output that could not be resolved.
	Missing string
}

// Error implements the error interface.
func (e *SequencingError) Error() string {
	return fmt.Sprintf("%s for website %q requires output %q which is not available: deploy the stack first",
		e.Operation, e.Site, e.Missing)
}
