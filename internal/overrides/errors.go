package overrides

import "fmt"

// LoadError represents an error reading or validating a verified-missions file
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("overrides load error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("overrides load error: %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
