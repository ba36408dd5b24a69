package verif

import (
	"fmt"
)

// ConfigurationError reports a script or parameter that cannot be simulated.
// It is detected before the simulation starts.
type ConfigurationError struct {
	// Field names the offending parameter, such as "data_width_bits" or
	// "steps[3].address".
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func configError(field string, err error) *ConfigurationError {
	return &ConfigurationError{Field: field, Err: err}
}

// ExpectationMismatch records a read step that observed a different word than
// expected. Mismatches are recorded, not returned, and never stop a run.
type ExpectationMismatch struct {
	Index    int
	Address  uint64
	Expected uint64
	Observed uint64
}

func (e *ExpectationMismatch) Error() string {
	return fmt.Sprintf("step %d: read 0x%x expected 0x%x, observed 0x%x",
		e.Index, e.Address, e.Expected, e.Observed)
}
