package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. AppError unwraps to one of these so callers can use errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("already exists")
	ErrPersistence  = errors.New("persistence error")
	ErrDelivery     = errors.New("delivery failure")
)

const (
	CodeBadRequest           = "BAD_REQUEST"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeNotificationNotFound = "NOTIFICATION_NOT_FOUND"
	CodePostNotFound         = "POST_NOT_FOUND"
	CodeUserNotFound         = "USER_NOT_FOUND"
	CodeCommentNotFound      = "COMMENT_NOT_FOUND"
	CodeAlreadyExists        = "ALREADY_EXISTS"
	CodeServerError          = "SERVER_ERROR"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Kind    error
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func BadRequest(message string) *AppError {
	return &AppError{Code: CodeBadRequest, Message: message, Status: http.StatusBadRequest, Kind: ErrValidation}
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message, Status: http.StatusUnauthorized, Kind: ErrUnauthorized}
}

// NotFound takes one of the *_NOT_FOUND codes.
func NotFound(code, message string) *AppError {
	return &AppError{Code: code, Message: message, Status: http.StatusNotFound, Kind: ErrNotFound}
}

func AlreadyExists(message string) *AppError {
	return &AppError{Code: CodeAlreadyExists, Message: message, Status: http.StatusConflict, Kind: ErrConflict}
}

// Persistence wraps a storage-layer failure.
func Persistence(op string, err error) *AppError {
	return &AppError{
		Code:    CodeServerError,
		Message: op + " failed",
		Status:  http.StatusInternalServerError,
		Kind:    ErrPersistence,
		Err:     err,
	}
}

// Delivery wraps a push failure. It is logged, never rendered.
func Delivery(err error) *AppError {
	return &AppError{
		Code:    CodeServerError,
		Message: "push delivery failed",
		Status:  http.StatusInternalServerError,
		Kind:    ErrDelivery,
		Err:     err,
	}
}

// AsAppError maps any error onto the catalogue. Unknown errors become SERVER_ERROR.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrValidation):
		return &AppError{Code: CodeBadRequest, Message: err.Error(), Status: http.StatusBadRequest, Kind: ErrValidation, Err: err}
	case errors.Is(err, ErrNotFound):
		return &AppError{Code: "NOT_FOUND", Message: err.Error(), Status: http.StatusNotFound, Kind: ErrNotFound, Err: err}
	case errors.Is(err, ErrUnauthorized):
		return &AppError{Code: CodeUnauthorized, Message: err.Error(), Status: http.StatusUnauthorized, Kind: ErrUnauthorized, Err: err}
	case errors.Is(err, ErrConflict):
		return &AppError{Code: CodeAlreadyExists, Message: err.Error(), Status: http.StatusConflict, Kind: ErrConflict, Err: err}
	}
	return &AppError{
		Code:    CodeServerError,
		Message: "An unexpected error occurred. Please try again later.",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}
