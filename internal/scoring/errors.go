// Package scoring implements the per-criterion scorers, their registry, and
// the fallback coordination that keeps a match computation from ever
// failing outright.
package scoring

import "fmt"

// MissingDataError signals that an input field a scorer needs is absent.
// The fallback coordinator resolves it to a lower-confidence estimate;
// it never reaches the engine's caller.
type MissingDataError struct {
	Field string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("missing data: %s", e.Field)
}

// ExternalServiceError signals that a collaborator call (distance service)
// failed or timed out. Triggers the next fallback tier for that criterion
// only.
type ExternalServiceError struct {
	Service string
	Cause   error
}

func (e *ExternalServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("external service %s failed: %v", e.Service, e.Cause)
	}
	return fmt.Sprintf("external service %s failed", e.Service)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Cause
}

// ConfigError signals an unknown or invalid algorithm parameter value, e.g.
// an unrecognized contract preference level. Resolved to a documented
// neutral default, logged, never raised to the caller.
type ConfigError struct {
	Parameter string
	Value     string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Parameter, e.Value)
}
