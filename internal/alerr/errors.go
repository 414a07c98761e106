// Package alerr provides standardized error handling for schemagen.
// All errors have stable, machine-readable codes, structured context, and proper wrapping.
package alerr

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// Code represents a stable, machine-readable error code.
// Format: E{category}{number} where category is 1-9 and number is 001-999.
type Code string

// Error codes organized by category.
const (
	// Grammar errors (E1xxx) - malformed source or annotation syntax
	ErrGrammar    Code = "E1001" // Annotation or attribute value is malformed
	ErrSyntaxTree Code = "E1002" // Source could not be parsed into a syntax tree

	// Validation errors (E2xxx) - well-formed input that breaks a rule
	ErrUnknownAttribute Code = "E2001" // Attribute name outside the recognized set
	ErrAttributeValue   Code = "E2002" // Missing required value, or value on a flag
	ErrUnsupportedType  Code = "E2003" // Declared type has no column type for the backend
	ErrDuplicateColumn  Code = "E2004" // Storage column used twice within one struct
	ErrDuplicateTable   Code = "E2005" // Two structs resolve to the same table
	ErrUnknownDialect   Code = "E2006" // Backend name is not supported

	// Run errors (E3xxx) - configuration and file boundary problems
	ErrConfig      Code = "E3001" // Configuration is missing or invalid
	ErrReadInput   Code = "E3002" // Input file could not be read
	ErrWriteOutput Code = "E3003" // Output file could not be written
	ErrStaleOutput Code = "E3004" // Generated files differ from a fresh run

	// Internal errors (E9xxx) - unexpected internal errors
	EInternalError Code = "E9001" // Internal error
)

// Error is the standard error type for schemagen.
// It provides structured error information with codes, context, and wrapping support.
type Error struct {
	code    Code           // Machine-readable error code
	message string         // Human-readable error message
	context map[string]any // Structured context data
	cause   error          // Wrapped underlying error
	stack   string         // Stack trace for debugging
}

// Error returns the formatted error string.
// Format:
//
//	[E2001] unknown attribute "primary"
//	  field: id
//	  struct: Account
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.code, e.message))

	// Context in sorted order for deterministic output
	if len(e.context) > 0 {
		keys := make([]string, 0, len(e.context))
		for k := range e.context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			b.WriteString(fmt.Sprintf("\n  %s: %v", k, e.context[k]))
		}
	}

	if e.cause != nil {
		b.WriteString(fmt.Sprintf("\n  cause: %v", e.cause))
	}

	return b.String()
}

// Unwrap returns the underlying cause error for errors.Unwrap compatibility.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether the target error matches this error.
// It matches if target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.code == targetErr.code
	}

	return false
}

// GetCode returns the error code.
func (e *Error) GetCode() Code {
	return e.code
}

// GetMessage returns the error message.
func (e *Error) GetMessage() string {
	return e.message
}

// GetContext returns the error context map.
func (e *Error) GetContext() map[string]any {
	return e.context
}

// GetCause returns the underlying cause error.
func (e *Error) GetCause() error {
	return e.cause
}

// GetStack returns the stack trace.
func (e *Error) GetStack() string {
	return e.stack
}

// With adds a key-value pair to the error context.
// Returns the error for method chaining.
func (e *Error) With(key string, value any) *Error {
	if e.context == nil {
		e.context = make(map[string]any)
	}
	e.context[key] = value
	return e
}

// WithStruct adds the owning struct name to the error context.
func (e *Error) WithStruct(name string) *Error {
	return e.With("struct", name)
}

// WithField adds the field name to the error context.
func (e *Error) WithField(name string) *Error {
	return e.With("field", name)
}

// WithAttribute adds the attribute key to the error context.
func (e *Error) WithAttribute(key string) *Error {
	return e.With("attribute", key)
}

// WithFile adds file location context to the error.
// A zero line is left out.
func (e *Error) WithFile(path string, line int) *Error {
	e.With("file", path)
	if line > 0 {
		e.With("line", line)
	}
	return e
}

// WithSource adds the source code line for display in error messages.
func (e *Error) WithSource(source string) *Error {
	return e.With("source", source)
}

// WithSpan adds the span (start, end columns, 1-based) for highlighting in error messages.
func (e *Error) WithSpan(start, end int) *Error {
	e.With("span_start", start)
	e.With("span_end", end)
	return e
}

// WithNote adds a note to the error (displayed as "note: ...").
func (e *Error) WithNote(note string) *Error {
	notes, _ := e.context["notes"].([]string)
	notes = append(notes, note)
	return e.With("notes", notes)
}

// WithHelp adds a help suggestion to the error (displayed as "help: ...").
func (e *Error) WithHelp(help string) *Error {
	helps, _ := e.context["helps"].([]string)
	helps = append(helps, help)
	return e.With("helps", helps)
}

// Location returns the file location if set.
func (e *Error) Location() (file string, line int, ok bool) {
	file, _ = e.context["file"].(string)
	line, _ = e.context["line"].(int)
	ok = file != ""
	return
}

// Notes returns all notes attached to this error.
func (e *Error) Notes() []string {
	notes, _ := e.context["notes"].([]string)
	return notes
}

// Helps returns all help suggestions attached to this error.
func (e *Error) Helps() []string {
	helps, _ := e.context["helps"].([]string)
	return helps
}

// captureStack captures a stack trace for debugging.
func captureStack(skip int) string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		// Skip runtime internals
		if strings.Contains(frame.File, "runtime/") {
			if !more {
				break
			}
			continue
		}
		b.WriteString(fmt.Sprintf("%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}
	return b.String()
}

// New creates a new Error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{
		code:    code,
		message: msg,
		context: make(map[string]any),
		stack:   captureStack(3),
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		code:    code,
		message: fmt.Sprintf(format, args...),
		context: make(map[string]any),
		stack:   captureStack(3),
	}
}

// Wrap creates a new Error that wraps an existing error.
func Wrap(code Code, err error, msg string) *Error {
	if err == nil {
		return New(code, msg)
	}
	return &Error{
		code:    code,
		message: msg,
		context: make(map[string]any),
		cause:   err,
		stack:   captureStack(3),
	}
}

// Wrapf creates a new Error that wraps an existing error with a formatted message.
func Wrapf(code Code, err error, format string, args ...any) *Error {
	return Wrap(code, err, fmt.Sprintf(format, args...))
}

// As returns the first *Error in err's chain, or nil.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// GetErrorCode extracts the error code from an error chain.
// Returns empty string if no code is found.
func GetErrorCode(err error) Code {
	if e := As(err); e != nil {
		return e.code
	}
	return ""
}

// Is checks if an error has the specified code.
func Is(err error, code Code) bool {
	return GetErrorCode(err) == code
}

// HasCode checks if an error has any error code.
func HasCode(err error) bool {
	return GetErrorCode(err) != ""
}
