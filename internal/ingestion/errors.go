package ingestion

import "fmt"

// ReadError represents an error extracting text from a file
type ReadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("read error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("read error: %s: %s", e.Path, e.Message)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
