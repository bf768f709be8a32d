// Package apperror provides a structured way to handle application errors
// with specific codes, severity levels, and additional details.
package apperror

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an Error for programmatic handling.
type ErrorCode string

const (
	CodeUnknownVertex          ErrorCode = "UNKNOWN_VERTEX"
	CodeDuplicateVertex        ErrorCode = "DUPLICATE_VERTEX"
	CodeDuplicateEdge          ErrorCode = "DUPLICATE_EDGE"
	CodeEmptyArray             ErrorCode = "EMPTY_ARRAY"
	CodeToleranceNotReached    ErrorCode = "TOLERANCE_NOT_REACHED"
	CodeWrongConvention        ErrorCode = "WRONG_CONVENTION"
	CodeVertexSetMismatch      ErrorCode = "VERTEX_SET_MISMATCH"
	CodeBrokenPredecessorChain ErrorCode = "BROKEN_PREDECESSOR_CHAIN"
	CodeCancelled              ErrorCode = "CANCELLED"
	CodeInvalidFormat          ErrorCode = "INVALID_FORMAT"
	CodeIO                     ErrorCode = "IO"
	CodeInternal               ErrorCode = "INTERNAL"
)

// Severity indicates how an Error should be treated by callers and logging.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Error is the structured error type returned by sumgraph's packages.
type Error struct {
	Code     ErrorCode
	Severity Severity
	Message  string
	Field    string
	Details  map[string]any
	Cause    error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error at the default error severity.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Severity: SeverityError, Message: message}
}

// NewWithField creates an Error tied to a specific field or vertex identifier.
func NewWithField(code ErrorCode, message, field string) *Error {
	return &Error{Code: code, Severity: SeverityError, Message: message, Field: field}
}

// NewWarning creates an Error at warning severity, for conditions recovered
// internally that should not normally abort a caller.
func NewWarning(code ErrorCode, message string) *Error {
	return &Error{Code: code, Severity: SeverityWarning, Message: message}
}

// NewCritical creates an Error at critical severity.
func NewCritical(code ErrorCode, message string) *Error {
	return &Error{Code: code, Severity: SeverityCritical, Message: message}
}

// Wrap attaches a cause to a new Error of the given code.
func Wrap(cause error, code ErrorCode, message string) *Error {
	return &Error{Code: code, Severity: SeverityError, Message: message, Cause: cause}
}

// WithDetails attaches structured context to an Error and returns it.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// WithField sets Field on an Error and returns it.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// WithSeverity overrides Severity on an Error and returns it.
func (e *Error) WithSeverity(s Severity) *Error {
	e.Severity = s
	return e
}

// Is reports whether err is an *Error with the given code.
func Is(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Code returns the ErrorCode of err, or CodeInternal if err is not an *Error.
func Code(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// IsWarning reports whether err is an *Error at warning severity.
func IsWarning(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Severity == SeverityWarning
	}
	return false
}

// IsCritical reports whether err is an *Error at critical severity.
func IsCritical(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Severity == SeverityCritical
	}
	return false
}

// ValidationErrors collects multiple field-level errors from a single
// validation pass, such as parsing an accessor's input file.
type ValidationErrors struct {
	Errors []*Error
}

func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "no validation errors"
	}
	msg := fmt.Sprintf("%d validation error(s): ", len(v.Errors))
	for i, e := range v.Errors {
		if i > 0 {
			msg += "; "
		}
		msg += e.Error()
	}
	return msg
}

func (v *ValidationErrors) Add(err *Error) {
	v.Errors = append(v.Errors, err)
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// Predefined sentinel errors for common conditions raised without extra context.
var (
	ErrUnknownVertex = New(CodeUnknownVertex, "vertex not present in graph")
	ErrCancelled     = New(CodeCancelled, "operation cancelled")
)
