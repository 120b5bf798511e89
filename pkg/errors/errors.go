// Package errors maps scheduling failures onto transport-aware errors.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/limaJavier/examtabling/pkg/model"
)

// Error carries a stable code and the HTTP status it surfaces as.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches a code and status to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

var (
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrCapacityShortfall  = New("CAPACITY_SHORTFALL", http.StatusUnprocessableEntity, "insufficient slots")
	ErrUnscheduledCourses = New("UNSCHEDULED_COURSES", http.StatusUnprocessableEntity, "courses could not be scheduled")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// FromError normalises any error into an *Error, recognising the timetablers' failures.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	var invalid model.InvalidInputError
	var shortfall model.CapacityShortfallError
	var unscheduled model.UnscheduledCoursesError
	switch {
	case errors.As(err, &invalid):
		return Wrap(err, ErrValidation.Code, ErrValidation.Status, invalid.Reason)
	case errors.As(err, &shortfall):
		return Wrap(err, ErrCapacityShortfall.Code, ErrCapacityShortfall.Status, shortfall.Error())
	case errors.As(err, &unscheduled):
		return Wrap(err, ErrUnscheduledCourses.Code, ErrUnscheduledCourses.Status, unscheduled.Error())
	}

	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error with an optional message override.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
