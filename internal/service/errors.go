package service

import (
	"errors"
	"fmt"

	"sprintboard/internal/validation"
)

const (
	CodeNotFound     = "NOT_FOUND"
	CodeForbidden    = "FORBIDDEN"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeConflict     = "CONFLICT"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	// Fields is set for validation failures and rendered as the errors object.
	Fields validation.Errors
	Err    error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}

	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}

	return busErr
}

func NewNotFound(resource string, id any) *BusinessError {
	return NewBusinessError(CodeNotFound, resource+" not found",
		ToDetail("resource", resource),
		ToDetail("id", id),
	)
}

func NewForbidden(message string) *BusinessError {
	return NewBusinessError(CodeForbidden, message)
}

func NewUnauthorized(message string) *BusinessError {
	return NewBusinessError(CodeUnauthorized, message)
}

func NewConflict(message string) *BusinessError {
	return NewBusinessError(CodeConflict, message)
}

func NewValidationError(field, reason string) *BusinessError {
	return FromValidation(validation.New(field, reason))
}

// FromValidation turns field errors into a VALIDATION_ERROR. The message is the
// first failure.
func FromValidation(errs validation.Errors) *BusinessError {
	message := "The given data was invalid."
	if fields := errs.Fields(); len(fields) > 0 {
		message = errs.Field(fields[0])
	}
	return &BusinessError{
		Code:    CodeValidation,
		Message: message,
		Details: map[string]any{},
		Fields:  errs,
	}
}

// asValidation converts engine errors into business errors and passes other errors through.
func asValidation(err error) error {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return FromValidation(errs)
	}
	return err
}

func IsBusinessError(err error, code string) bool {
	var busErr *BusinessError
	return errors.As(err, &busErr) && busErr.Code == code
}
