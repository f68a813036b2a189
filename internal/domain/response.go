package domain

import (
	"time"

	"github.com/employee-api/internal/pkg/id"
)

// Canonical outcome messages. The wire-visible strings are part of the API
// contract and must not be reworded.
const (
	MsgSuccess         = "Success"
	MsgEmployeeCreated = "Employee created successfully!"
	MsgEmployeeUpdated = "Employee updated successfully!"
	MsgEmployeeDeleted = "Employee deleted successfully!"

	MsgNoEmployeeData   = "No employee data provided!"
	MsgNoEmployees      = "No employees found!"
	MsgNoEmployeeID     = "No employee id provided!"
	MsgEmployeeNotFound = "No employee found with this id!"
	MsgDuplicateCreate  = "Employee with this email already exists!"
	MsgNoUpdateData     = "No employee data is provided to update!"
	MsgDuplicateUpdate  = "Duplicated employee data is trying to be updated!"

	MsgTooManyRequests = "Too many requests. Please slow down and try again later."
	MsgInvalidCSRF     = "Invalid or missing anti-forgery token!"
	MsgUnexpectedError = "An unexpected error occurred. Please try again later."
)

// Response is the uniform envelope returned by every endpoint, success or
// failure. Clients branch solely on IsSuccess: a success carries the
// operation's output in Result; a failure carries a nil Result, a message and
// the failure timestamp.
type Response struct {
	Result            interface{} `json:"result"`
	IsSuccess         bool        `json:"isSuccess"`
	Message           string      `json:"message"`
	DateTimeOnFailure *time.Time  `json:"dateTimeOnFailure,omitempty"`
}

// ApplicationError is a structured application failure. Each instance mints a
// fresh id; it is folded into a failure Response at the failure site and then
// discarded, never persisted.
type ApplicationError struct {
	ID      string    `json:"id"`
	When    time.Time `json:"when"`
	Message string    `json:"message"`
}

// NewApplicationError constructs an error with a fresh id and the current
// wall-clock time.
func NewApplicationError(message string) ApplicationError {
	return ApplicationError{
		ID:      id.New(),
		When:    time.Now(),
		Message: message,
	}
}

// Success builds a success envelope carrying result.
func Success(result interface{}, message string) *Response {
	return &Response{
		Result:    result,
		IsSuccess: true,
		Message:   message,
	}
}

// Failure builds a failure envelope from a freshly minted ApplicationError.
func Failure(message string) *Response {
	appErr := NewApplicationError(message)
	return &Response{
		Result:            nil,
		IsSuccess:         false,
		Message:           appErr.Message,
		DateTimeOnFailure: &appErr.When,
	}
}
