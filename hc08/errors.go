package hc08

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNoDialer is returned when a driver is constructed without a Dialer.
	//
	// This indicates a configuration error. A Dialer is required in order to
	// establish a connection to the module.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrNotInitialized is returned when the Dialer produced no Transport.
	ErrNotInitialized = errors.New("module not initialized")

	// ErrAlreadyClosed is returned when Close is called on a driver whose
	// transport has already been closed.
	ErrAlreadyClosed = errors.New("module already closed")

	// ErrConsumed is returned by every operation on a handle that was
	// replaced by a successful mode transition or factory reset. Use the
	// handle the transition returned instead.
	ErrConsumed = errors.New("handle consumed by mode transition")

	// ErrRead is returned when the transport fails to deliver a byte for a
	// reason other than ErrWouldBlock.
	ErrRead = errors.New("read failed")

	// ErrWrite is returned when the transport fails to accept a byte.
	ErrWrite = errors.New("write failed")

	// ErrReadTimeout is returned when a read timeout is configured and no
	// byte arrives in time. Without a configured timeout reads wait forever.
	ErrReadTimeout = errors.New("read timed out")

	// ErrInvalidBaudRate is returned when a serial link is requested at a
	// rate the module does not support.
	ErrInvalidBaudRate = errors.New("invalid baud rate")

	// ErrInvalidChannel is returned when a UUID slot name is not one of
	// "connect", "service" or "characteristic".
	ErrInvalidChannel = errors.New("invalid UUID channel")

	// ErrWrongResponse is returned when the module's reply differs from the
	// acknowledgement or echo the command requires.
	//
	// Replies are compared byte for byte; there is no partial match and no
	// retry.
	ErrWrongResponse = errors.New("wrong response")

	// ErrLineTooLong is returned when a line of the AT+RX reply exceeds
	// at.MaxParamLine bytes.
	//
	// This typically indicates a framing error or a different firmware.
	ErrLineTooLong = errors.New("response line too long")
)

// Transport operations reported by TransportError.
const (
	OpRead  = "read"
	OpWrite = "write"
)

// TransportError reports a transport failure other than ErrWouldBlock. It
// matches ErrRead or ErrWrite, depending on Op, and unwraps to the cause.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("hc08: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	switch e.Op {
	case OpRead:
		return target == ErrRead
	case OpWrite:
		return target == ErrWrite
	}
	return false
}

// TransitionError reports a failed mode transition. The handle the
// transition was called on remains valid and keeps its mode.
//
// When RoleChanged is true the role command was acknowledged before the
// connectability command failed, so the module's actual role may no longer
// match the handle's mode. Nothing rolls the role back.
type TransitionError struct {
	From, To    Mode
	Step        string
	RoleChanged bool
	Err         error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("hc08: %s -> %s: %s: %v", e.From, e.To, e.Step, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}
