package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("project not found")
	ErrAlreadyExists = errors.New("project already exists")
)

// Kind classifies workflow failures.
type Kind string

const (
	KindValidation         Kind = "VALIDATION_ERROR"
	KindOracle             Kind = "ORACLE_ERROR"
	KindExtractionDegraded Kind = "EXTRACTION_DEGRADED"
	KindInvalidTransition  Kind = "INVALID_TRANSITION"
	KindBusy               Kind = "BUSY"
	KindNotFound           Kind = "NOT_FOUND"
)

// Error is the typed failure returned from workflow operations.
type Error struct {
	Kind      Kind
	Op        string
	Msg       string
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	if e.Op == "" {
		return fmt.Sprintf("%s: %s", e.Kind, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(op, msg string) *Error {
	return &Error{Kind: KindValidation, Op: op, Msg: msg}
}

func Oracle(op string, err error, retryable bool) *Error {
	return &Error{Kind: KindOracle, Op: op, Msg: "oracle call failed", Retryable: retryable, Err: err}
}

func Degraded(op, document, msg string) *Error {
	return &Error{Kind: KindExtractionDegraded, Op: op, Msg: document + ": " + msg}
}

func InvalidTransition(op string, from, to Status) *Error {
	return &Error{Kind: KindInvalidTransition, Op: op, Msg: fmt.Sprintf("cannot move from %s to %s", from, to)}
}

func Busy(op, projectID string) *Error {
	return &Error{Kind: KindBusy, Op: op, Msg: "an operation is already running for project " + projectID, Retryable: true}
}

func NotFound(op string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Err: ErrNotFound}
}

// KindOf returns the kind carried by err, or "" for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	return ""
}

// IsRetryable reports whether the caller may re-trigger the same action.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}
