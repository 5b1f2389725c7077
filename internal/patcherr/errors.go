// Package patcherr defines the error kinds shared by the patch engine.
//
// Every failure the engine reports is one of three kinds:
//   - IOError: a file could not be opened, read, written or copied
//   - FormatError: manifest or config content does not match its grammar
//   - PreconditionError: the run must not start or continue (conflicting
//     process, config too short to patch)
//
// Callers wrap these with fmt.Errorf("...: %w") freely; the Is* helpers see
// through wrapping.
package patcherr

import (
	"errors"
	"fmt"
)

// IOError represents a failed file operation.
type IOError struct {
	Op    string // "open", "read", "write", "copy", "stat"
	Path  string
	Cause error
}

func (e *IOError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s %s failed", e.Op, e.Path)
}

func (e *IOError) Unwrap() error {
	return e.Cause
}

// FormatError represents content that does not match the expected grammar.
type FormatError struct {
	Path    string // empty when parsing in-memory text
	Line    int    // 1-based, 0 when not line specific
	Message string
}

func (e *FormatError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("format error (%s:%d): %s", e.Path, e.Line, e.Message)
	case e.Path != "":
		return fmt.Sprintf("format error (%s): %s", e.Path, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("format error (line %d): %s", e.Line, e.Message)
	default:
		return "format error: " + e.Message
	}
}

// PreconditionError reports a condition that forbids the run from proceeding.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.Message
}

// IsIO reports whether err is or wraps an *IOError.
func IsIO(err error) bool {
	var target *IOError
	return errors.As(err, &target)
}

// IsFormat reports whether err is or wraps a *FormatError.
func IsFormat(err error) bool {
	var target *FormatError
	return errors.As(err, &target)
}

// IsPrecondition reports whether err is or wraps a *PreconditionError.
func IsPrecondition(err error) bool {
	var target *PreconditionError
	return errors.As(err, &target)
}
