package broadlink

import (
	"errors"
	"fmt"
)

// Sentinel errors for the transport layer.
var (
	// ErrNotAuthenticated is returned when an operation requires a session
	// key and Auth has not succeeded yet.
	ErrNotAuthenticated = errors.New("device session not authenticated")

	// ErrTimeout wraps send/receive deadline failures so callers can treat
	// connectivity problems as one error kind.
	ErrTimeout = errors.New("device did not respond within timeout")
)

// StatusError is a nonzero device status code reported in a response packet.
// The code space is signed 16-bit; known codes map to the fixed taxonomy
// below, everything else is surfaced with the raw value.
type StatusError struct {
	Code int16
}

var statusMessages = map[int16]string{
	-1:  "authentication failed",
	-2:  "you have been logged out",
	-3:  "the device is offline",
	-4:  "command not supported",
	-5:  "the device storage is full",
	-6:  "structure is abnormal",
	-7:  "control key is expired",
	-8:  "send error",
	-9:  "write error",
	-10: "read error",
	-11: "ssid could not be found in ap configuration",
}

func (e *StatusError) Error() string {
	if msg, ok := statusMessages[e.Code]; ok {
		return fmt.Sprintf("device error %d: %s", e.Code, msg)
	}
	return fmt.Sprintf("device error %d: unknown status code 0x%04x", e.Code, uint16(e.Code))
}

// CheckStatusCode maps a device status code to an error. Zero is success.
func CheckStatusCode(code int16) error {
	if code == 0 {
		return nil
	}
	return &StatusError{Code: code}
}
