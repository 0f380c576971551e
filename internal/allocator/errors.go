package allocator

import "fmt"

// ValidationError reports a malformed request. Nothing was selected.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AllocationError reports that the selected questions do not add up to the
// requested total.
type AllocationError struct {
	Requested int
	Generated int
}

func (e *AllocationError) Error() string {
	return "generated total does not match requested total"
}

// Detail includes both totals, for logs.
func (e *AllocationError) Detail() string {
	return fmt.Sprintf("requested %d marks, generated %d", e.Requested, e.Generated)
}
