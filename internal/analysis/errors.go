package analysis

import "fmt"

// InputError reports text that cannot be analysed at all. It is the only fatal error.
type InputError struct {
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("input error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("input error: %s", e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// ExtractionWarning reports a strategy, block or limit that cost candidates.
// Warnings go to the ProgressSink and never abort an analysis.
type ExtractionWarning struct {
	Strategy string
	Message  string
	Cause    error
}

func (e *ExtractionWarning) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction warning: %s: %s: %v", e.Strategy, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction warning: %s: %s", e.Strategy, e.Message)
}

func (e *ExtractionWarning) Unwrap() error {
	return e.Cause
}
