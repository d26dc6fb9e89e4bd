package core

import "github.com/pkg/errors"

var (
	// ErrInvalidReference is returned by repositories when a referenced record does not exist.
	ErrInvalidReference = errors.New("referenced record does not exist")
	// ErrConflict is returned by repositories when a unique constraint is violated.
	ErrConflict = errors.New("record already exists")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (err ValidationError) Unwrap() error {
	return err.Err
}

// NotFoundError marks domain "not found" sentinels so transports can map them generically.
type NotFoundError struct {
	msg string
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{msg: msg}
}

func (err NotFoundError) Error() string {
	return err.msg
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
