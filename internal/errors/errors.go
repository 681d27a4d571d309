package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ParseError indicates malformed command text
	ParseError ErrorCode = "PARSE_ERROR"
	// InvalidDirection indicates an axis symbol outside the six recognized axes
	InvalidDirection ErrorCode = "INVALID_DIRECTION"
	// DuplicateKey indicates an index insert for a key that is already present.
	// Callers that resolve through the canonicalizer never see it.
	DuplicateKey ErrorCode = "DUPLICATE_KEY"
	// InvalidThreshold indicates a cluster threshold outside the accepted range
	InvalidThreshold ErrorCode = "INVALID_THRESHOLD"
	// ConfigInvalid indicates a configuration value failed validation
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// SourceUnreadable indicates a command source could not be opened or decoded
	SourceUnreadable ErrorCode = "SOURCE_UNREADABLE"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// CheckInput suggests correcting the offending input
	CheckInput FixActionType = "check-input"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Description string        `json:"description,omitempty"`
}

// Error is a radgraph error with a stable code, message, and optional details.
type Error struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates an Error with the default suggested fixes for its code.
func New(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Newf creates an Error with a formatted message and no cause.
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error carrying the same code, so callers can write
// errors.Is(err, &Error{Code: ParseError}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithDetails adds details to the error
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HasCode reports whether err's chain contains an *Error with the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && stderrors.Is(err, &Error{Code: code})
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	ParseError: {
		{
			Type:        CheckInput,
			Description: "Commands look like A2W2N5-45: axis letter and steps, repeated, then '-' and a value",
		},
		{
			Type:        RunCommand,
			Command:     "radgraph shell (then: help)",
			Description: "Show the coordinate grammar",
		},
	},
	InvalidDirection: {
		{
			Type:        CheckInput,
			Description: "Valid axes are N, S, E, W, A (ascend), D (descend)",
		},
	},
	InvalidThreshold: {
		{
			Type:        CheckInput,
			Description: "Cluster threshold must be a positive integer",
		},
	},
	ConfigInvalid: {
		{
			Type:        RunCommand,
			Command:     "radgraph config show",
			Description: "Inspect the effective configuration",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
