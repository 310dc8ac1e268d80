package app

import (
	"errors"
	"fmt"
)

// ErrorType classifies application errors
type ErrorType int

const (
	ErrConfig ErrorType = iota
	ErrTransportOpen
	ErrTransportRead
	ErrTransportClosed
	ErrTransportWrite
	ErrLogFileOpen
	ErrLogWrite
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	types := []string{
		"config", "transport_open", "transport_read", "transport_closed",
		"transport_write", "log_file_open", "log_write",
	}

	if int(e) >= 0 && int(e) < len(types) {
		return types[e]
	}
	return "unknown"
}

// Fatal reports whether an error of this type ends the program.
// Every other type is shown in the scrollback and the session continues.
func (e ErrorType) Fatal() bool {
	switch e {
	case ErrConfig, ErrTransportOpen, ErrLogFileOpen:
		return true
	default:
		return false
	}
}

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Fatal reports whether the error ends the program
func (e *AppError) Fatal() bool {
	return e.Type.Fatal()
}

// NewAppError creates a new application error
func NewAppError(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// TypeOf returns the ErrorType carried by err, if any
func TypeOf(err error) (ErrorType, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type, true
	}
	return 0, false
}
