package serial

import (
	"errors"
	"fmt"
	"io/fs"

	"go.bug.st/serial"
)

// ErrPortClosed is returned by writes after Close
var ErrPortClosed = errors.New("port closed")

// SerialError represents a serial port specific error
type SerialError struct {
	Operation string
	Port      string
	Cause     error
}

// Error implements the error interface
func (e *SerialError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("serial %s failed on port %s: %v", e.Operation, e.Port, e.Cause)
	}
	return fmt.Sprintf("serial %s failed on port %s", e.Operation, e.Port)
}

// Unwrap returns the underlying cause
func (e *SerialError) Unwrap() error {
	return e.Cause
}

// NewSerialError creates a new serial error
func NewSerialError(operation, port string, cause error) *SerialError {
	return &SerialError{
		Operation: operation,
		Port:      port,
		Cause:     cause,
	}
}

// Hints returns remediation suggestions for a failed open
func Hints(err error) []string {
	if err == nil {
		return nil
	}

	var portErr *serial.PortError
	if errors.As(err, &portErr) {
		switch portErr.Code() {
		case serial.PermissionDenied:
			return permissionHints()
		case serial.PortBusy:
			return busyHints()
		case serial.PortNotFound:
			return notFoundHints()
		case serial.InvalidSerialPort:
			return []string{
				"The device exists but does not behave like a serial port",
				"Check that the path points at the USB serial adapter",
			}
		}
	}

	switch {
	case errors.Is(err, fs.ErrPermission):
		return permissionHints()
	case errors.Is(err, fs.ErrNotExist):
		return notFoundHints()
	}
	return nil
}

func permissionHints() []string {
	return []string{
		"Check if you have permission to access the port",
		"On Linux: Add your user to the 'dialout' group: sudo usermod -a -G dialout $USER",
		"On macOS: Check System Preferences > Security & Privacy",
	}
}

func busyHints() []string {
	return []string{
		"The port may be in use by another application",
		"Close other terminal programs or serial monitors",
	}
}

func notFoundHints() []string {
	return []string{
		"The specified port does not exist",
		"Use 'serial-monitor list' to see available ports",
	}
}
