package gazetteer

import "fmt"

// LoadError represents an error reading or decoding a gazetteer file
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("gazetteer load error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("gazetteer load error: %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// CompileError represents an entry that could not be turned into a matcher
type CompileError struct {
	Table   string
	Index   int
	Message string
	Cause   error
}

func (e *CompileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("gazetteer %s[%d]: %s: %v", e.Table, e.Index, e.Message, e.Cause)
	}
	return fmt.Sprintf("gazetteer %s[%d]: %s", e.Table, e.Index, e.Message)
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}
