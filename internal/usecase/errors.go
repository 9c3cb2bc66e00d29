package usecase

import (
	"errors"

	"store-rating/pkg/utils"
)

// Error kinds. Handlers translate them to HTTP status codes.
var (
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
)

// Error is a client-facing failure: Kind selects the status, Message is safe
// to return to the caller, Fields lists failing inputs for validation errors.
type Error struct {
	Kind    error
	Message string
	Fields  []utils.FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func wrapError(kind error, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func validationError(fields []utils.FieldError) *Error {
	return &Error{
		Kind:    ErrValidation,
		Message: "Validation failed",
		Fields:  fields,
	}
}

// validate runs the struct tags and turns failures into a validation Error.
func validate(v any) error {
	if fields := utils.ValidateStruct(v); len(fields) > 0 {
		return validationError(fields)
	}
	return nil
}
