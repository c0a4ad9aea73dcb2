package spritepal

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when an offset and tile count address
	// bytes beyond the end of a buffer.
	ErrOutOfRange = errors.New("spritepal: out of range")

	// ErrValidationFailed is returned by Inject when the validation
	// report carries Error-severity issues, or when no report was
	// supplied at all. There is no override; fix the sheet or relax the
	// validator options and re-validate.
	ErrValidationFailed = errors.New("spritepal: validation failed")
)

// ValidationError wraps the report that blocked an injection. It matches
// ErrValidationFailed under errors.Is.
type ValidationError struct {
	Report *Report
}

func (e *ValidationError) Error() string {
	if e.Report == nil {
		return "spritepal: validation failed: sheet has not been validated"
	}
	return fmt.Sprintf("spritepal: validation failed: %d error(s)", e.Report.errorCount())
}

// Unwrap returns ErrValidationFailed so callers can test with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
