package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidStateTransition indicates a lifecycle operation attempted from a status that does not permit it.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// ErrUnbalancedEntry indicates a journal entry with no lines or with debit total != credit total.
var ErrUnbalancedEntry = errors.New("unbalanced journal entry")

// ErrMissingOperand indicates a nil operand passed to money arithmetic.
var ErrMissingOperand = errors.New("missing operand")

// ErrMissingParentPath indicates a hierarchy node declared with a parent but without the parent's path.
var ErrMissingParentPath = errors.New("missing parent path")

// ErrConcurrentModification is reported by the persistence layer when the stored version no longer matches.
var ErrConcurrentModification = errors.New("concurrent modification")

// Formula evaluation errors raised by the auto-journal engine.
var (
	ErrMissingParameter   = errors.New("missing formula parameter")
	ErrUnsupportedFormula = errors.New("unsupported formula")
	ErrDivisionByZero     = errors.New("division by zero")
)

// AppError carries an HTTP-ish status code alongside the wrapped infrastructure error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError. err may be nil.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
