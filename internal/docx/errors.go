// Package docx provides extraction of template text from Word document packages.
package docx

import "fmt"

// DocumentError represents a fatal structural defect in a .docx package.
// Linting cannot proceed past it; no partial report is produced.
type DocumentError struct {
	Message string
	Cause   error
}

func (e *DocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("document error: %s", e.Message)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}
