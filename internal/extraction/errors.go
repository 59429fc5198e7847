package extraction

import "fmt"

// BlockError reports a block or window a strategy could not parse
type BlockError struct {
	Strategy string
	Index    int
	Message  string
	Cause    error
}

func (e *BlockError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s block %d: %s: %v", e.Strategy, e.Index, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s block %d: %s", e.Strategy, e.Index, e.Message)
}

func (e *BlockError) Unwrap() error {
	return e.Cause
}
