package model

import "fmt"

// PreconditionError reports a required compliance field missing from the
// snapshot. Generation refuses to start; the caller must complete the data
// before retrying.
type PreconditionError struct {
	Field   string
	Message string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed on %s: %s", e.Field, e.Message)
}

// NewPreconditionError creates a new precondition error
func NewPreconditionError(field, message string) *PreconditionError {
	return &PreconditionError{
		Field:   field,
		Message: message,
	}
}

// CaptureError reports that layout rendering or rasterization could not
// produce a usable bitmap. Surfaced once, never retried internally.
type CaptureError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *CaptureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("capture failed [%s]: %s (%v)", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("capture failed [%s]: %s", e.Stage, e.Message)
}

func (e *CaptureError) Unwrap() error {
	return e.Cause
}

// NewCaptureError creates a new capture error
func NewCaptureError(stage, message string, cause error) *CaptureError {
	return &CaptureError{
		Stage:   stage,
		Message: message,
		Cause:   cause,
	}
}

// ExportError reports a failed save of the final artifact. Temporary
// resources are released before the error propagates.
type ExportError struct {
	Filename string
	Message  string
	Cause    error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export failed [%s]: %s (%v)", e.Filename, e.Message, e.Cause)
	}
	return fmt.Sprintf("export failed [%s]: %s", e.Filename, e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// NewExportError creates a new export error
func NewExportError(filename, message string, cause error) *ExportError {
	return &ExportError{
		Filename: filename,
		Message:  message,
		Cause:    cause,
	}
}
